package safecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64ToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    uint64
		want    int
		wantErr string
	}{
		{name: "zero", give: 0, want: 0},
		{name: "small index", give: 42, want: 42},
		{name: "max int", give: math.MaxInt, want: math.MaxInt},
		{name: "overflow", give: math.MaxUint64, wantErr: "value 18446744073709551615 exceeds int range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint64ToInt(tt.give)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
