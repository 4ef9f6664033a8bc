package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Operation_Pending(t *testing.T) {
	t.Parallel()

	op := Operation{
		Target:     common.HexToAddress("0xb1"),
		Value:      big.NewInt(1),
		Data:       []byte{0x01},
		GasLimit:   21_000,
		Executed:   true,
		Success:    true,
		ReturnData: []byte{0x02},
	}

	got := op.Pending()
	assert.False(t, got.Executed)
	assert.False(t, got.Success)
	assert.Nil(t, got.ReturnData)
	assert.Equal(t, op.Target, got.Target)
	assert.Equal(t, op.GasLimit, got.GasLimit)

	got.Value.SetInt64(2)
	assert.Equal(t, "1", op.Value.String())
}

func Test_Operation_ValueOrZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", Operation{}.ValueOrZero().String())

	op := NewOperation(common.HexToAddress("0xb1"), big.NewInt(8), nil, 1)
	v := op.ValueOrZero()
	v.SetInt64(0)
	assert.Equal(t, "8", op.Value.String())
}

func Test_Operation_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var op Operation
	err := json.Unmarshal([]byte(`{
		"target": "0x00000000000000000000000000000000000000b1",
		"value": 1000000000000000000,
		"data": "0xcafe",
		"gasLimit": 50000
	}`), &op)
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress("0xb1"), op.Target)
	assert.Equal(t, "1000000000000000000", op.Value.String())
	assert.Equal(t, []byte{0xca, 0xfe}, []byte(op.Data))
	assert.Equal(t, uint64(50_000), op.GasLimit)
	assert.False(t, op.Executed)
}
