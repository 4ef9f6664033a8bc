// Package safecast converts between integer types without silent overflow.
package safecast

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// Uint64ToInt converts a uint64 index or count to int, failing when it does not fit.
func Uint64ToInt(value uint64) (int, error) {
	if value > math.MaxInt {
		return 0, fmt.Errorf("value %d exceeds int range", value)
	}

	return cast.ToIntE(value)
}
