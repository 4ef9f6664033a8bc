package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// BatchStatus is the lifecycle state of a batch.
type BatchStatus string

const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusExecuted  BatchStatus = "executed"
	BatchStatusCancelled BatchStatus = "cancelled"
)

// Batch is an ordered collection of operations submitted together by a single creator.
//
// Executed and Cancelled are mutually exclusive. Once either is set the batch is terminal.
type Batch struct {
	ID           uint64         `json:"id"`
	Creator      common.Address `json:"creator"`
	Operations   []Operation    `json:"operations"`
	CreatedAt    time.Time      `json:"createdAt"`
	ExecutedAt   time.Time      `json:"executedAt"`
	Executed     bool           `json:"executed"`
	Cancelled    bool           `json:"cancelled"`
	GasUsed      uint64         `json:"gasUsed"`
	EstimatedGas uint64         `json:"estimatedGas"`
}

// Status returns the lifecycle state of the batch.
func (b Batch) Status() BatchStatus {
	switch {
	case b.Executed:
		return BatchStatusExecuted
	case b.Cancelled:
		return BatchStatusCancelled
	default:
		return BatchStatusPending
	}
}

// IsPending reports whether the batch can still be mutated, executed or cancelled.
func (b Batch) IsPending() bool {
	return !b.Executed && !b.Cancelled
}

// Deadline returns the last instant at which the batch may be executed.
func (b Batch) Deadline(window time.Duration) time.Time {
	return b.CreatedAt.Add(window)
}

// TotalValue sums the value of every operation in the batch.
func (b Batch) TotalValue() *big.Int {
	return TotalValue(b.Operations)
}

// Clone returns a deep copy of the batch.
func (b Batch) Clone() Batch {
	c := b
	if b.Operations != nil {
		c.Operations = make([]Operation, len(b.Operations))
		for i, op := range b.Operations {
			c.Operations[i] = op.Clone()
		}
	}

	return c
}

// TotalValue sums the value of the given operations, treating nil values as zero.
func TotalValue(ops []Operation) *big.Int {
	total := new(big.Int)
	for _, op := range ops {
		if op.Value != nil {
			total.Add(total, op.Value)
		}
	}

	return total
}

// TotalGasLimit sums the gas limits of the given operations.
func TotalGasLimit(ops []Operation) uint64 {
	var total uint64
	for _, op := range ops {
		total += op.GasLimit
	}

	return total
}
