package registry

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

var (
	alice  = common.HexToAddress("0xa11ce")
	bob    = common.HexToAddress("0xb0b")
	target = common.HexToAddress("0x7a59e7")
)

func newBatch(creator common.Address) types.Batch {
	return types.Batch{
		Creator:      creator,
		CreatedAt:    time.Unix(1700000000, 0),
		Operations:   []types.Operation{types.NewOperation(target, big.NewInt(1), []byte{0x01}, 21000)},
		EstimatedGas: 21000,
	}
}

func Test_Registry_Insert(t *testing.T) {
	t.Parallel()

	r := New()
	assert.Equal(t, uint64(0), r.Count())

	id1 := r.Insert(newBatch(alice))
	id2 := r.Insert(newBatch(bob))
	id3 := r.Insert(types.Batch{ID: 42, Creator: alice})

	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)
	assert.Equal(t, uint64(3), id3)
	assert.Equal(t, uint64(3), r.Count())
	assert.Equal(t, uint64(2), r.CreatorCount(alice))
	assert.Equal(t, uint64(1), r.CreatorCount(bob))

	_, ok := r.Get(0)
	assert.False(t, ok)
	_, ok = r.Get(4)
	assert.False(t, ok)
}

func Test_Registry_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	r := New()
	want := newBatch(alice)
	id := r.Insert(want)
	want.ID = id

	got, ok := r.Get(id)
	require.True(t, ok)
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	got.Operations[0].Value.SetInt64(99)
	got.Operations[0].Data[0] = 0xff
	got.Operations = append(got.Operations, types.Operation{})

	again, ok := r.Get(id)
	require.True(t, ok)
	assert.Len(t, again.Operations, 1)
	assert.Equal(t, big.NewInt(1), again.Operations[0].Value)
	assert.Equal(t, byte(0x01), again.Operations[0].Data[0])
}

func Test_Registry_Update(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		giveID  uint64
		giveFn  func(b *types.Batch) error
		wantErr error
		want    func(t *testing.T, b types.Batch)
	}{
		{
			name:   "success: applies change",
			giveID: 1,
			giveFn: func(b *types.Batch) error {
				b.Cancelled = true
				return nil
			},
			want: func(t *testing.T, b types.Batch) {
				t.Helper()
				assert.True(t, b.Cancelled)
			},
		},
		{
			name:   "success: id and creator are immutable",
			giveID: 1,
			giveFn: func(b *types.Batch) error {
				b.ID = 9
				b.Creator = bob
				return nil
			},
			want: func(t *testing.T, b types.Batch) {
				t.Helper()
				assert.Equal(t, uint64(1), b.ID)
				assert.Equal(t, alice, b.Creator)
			},
		},
		{
			name:   "failure: fn error leaves record untouched",
			giveID: 1,
			giveFn: func(b *types.Batch) error {
				b.Executed = true
				b.Operations = nil
				return errBoom
			},
			wantErr: errBoom,
			want: func(t *testing.T, b types.Batch) {
				t.Helper()
				assert.False(t, b.Executed)
				assert.Len(t, b.Operations, 1)
			},
		},
		{
			name:    "failure: unknown id",
			giveID:  5,
			giveFn:  func(b *types.Batch) error { return nil },
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := New()
			r.Insert(newBatch(alice))

			err := r.Update(tt.giveID, tt.giveFn)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			if tt.want != nil {
				got, ok := r.Get(1)
				require.True(t, ok)
				tt.want(t, got)
			}
		})
	}
}

func Test_Registry_CreatorBatches(t *testing.T) {
	t.Parallel()

	r := New()
	for range 3 {
		r.Insert(newBatch(alice))
		r.Insert(newBatch(bob))
	}

	tests := []struct {
		name        string
		giveOffset  uint64
		giveLimit   uint64
		giveCreator common.Address
		want        []uint64
	}{
		{name: "all", giveOffset: 0, giveLimit: 10, giveCreator: alice, want: []uint64{1, 3, 5}},
		{name: "page", giveOffset: 1, giveLimit: 1, giveCreator: bob, want: []uint64{4}},
		{name: "tail shorter than limit", giveOffset: 2, giveLimit: 5, giveCreator: alice, want: []uint64{5}},
		{name: "offset at count", giveOffset: 3, giveLimit: 5, giveCreator: alice, want: []uint64{}},
		{name: "offset past count", giveOffset: 10, giveLimit: 5, giveCreator: alice, want: []uint64{}},
		{name: "zero limit", giveOffset: 0, giveLimit: 0, giveCreator: alice, want: []uint64{}},
		{name: "max limit", giveOffset: 1, giveLimit: ^uint64(0), giveCreator: alice, want: []uint64{3, 5}},
		{name: "unknown creator", giveOffset: 0, giveLimit: 5, giveCreator: target, want: []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.CreatorBatches(tt.giveCreator, tt.giveOffset, tt.giveLimit)
			assert.Equal(t, tt.want, got)
		})
	}
}
