package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/params"
)

const (
	// DefaultMaxOperations is the maximum number of operations in a single batch.
	DefaultMaxOperations = 100

	// DefaultGasLimitMultiplier is the advisory safety margin, in percent, applied on top of a gas
	// estimate when choosing an operation gas limit. It is not enforced during execution.
	DefaultGasLimitMultiplier = 120

	// DefaultPendingWindow is how long a batch stays executable after creation.
	DefaultPendingWindow = time.Hour
)

var (
	// DefaultMaxBatchValue is the ceiling on the aggregate value of a batch (10 ether).
	DefaultMaxBatchValue = new(big.Int).Mul(big.NewInt(10), big.NewInt(params.Ether))

	// DefaultBatchFee is the fixed fee charged on batch creation (0.001 ether).
	DefaultBatchFee = big.NewInt(params.Ether / 1000)
)

// Limits holds the fixed constants a batch contract enforces.
type Limits struct {
	MaxOperations      int      `json:"maxOperations" validate:"gt=0"`
	MaxBatchValue      *big.Int `json:"maxBatchValue" validate:"required"`
	BatchFee           *big.Int `json:"batchFee" validate:"required"`
	GasLimitMultiplier uint64   `json:"gasLimitMultiplier" validate:"gte=100"`
	PendingWindow      Duration `json:"pendingWindow"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxOperations:      DefaultMaxOperations,
		MaxBatchValue:      new(big.Int).Set(DefaultMaxBatchValue),
		BatchFee:           new(big.Int).Set(DefaultBatchFee),
		GasLimitMultiplier: DefaultGasLimitMultiplier,
		PendingWindow:      NewDuration(DefaultPendingWindow),
	}
}

// SuggestGasLimit applies the limits' gas multiplier to a gas estimate.
func (l Limits) SuggestGasLimit(estimate uint64) uint64 {
	return SuggestGasLimit(estimate, l.GasLimitMultiplier)
}

// SuggestGasLimit scales estimate by multiplier percent, rounding up. A multiplier below 100 is
// treated as 100.
func SuggestGasLimit(estimate uint64, multiplier uint64) uint64 {
	if multiplier < 100 {
		multiplier = 100
	}

	scaled := new(big.Int).Mul(new(big.Int).SetUint64(estimate), new(big.Int).SetUint64(multiplier))
	scaled.Add(scaled, big.NewInt(99))
	scaled.Div(scaled, big.NewInt(100))
	if !scaled.IsUint64() {
		return ^uint64(0)
	}

	return scaled.Uint64()
}
