package swiftbatch

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/internal/utils/safecast"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// Read-only queries. They take no guard and are safe to call from within sub-calls.

// GetBatch returns a copy of the batch with the given identifier.
func (c *BatchContract) GetBatch(batchID uint64) (types.Batch, error) {
	b, ok := c.registry.Get(batchID)
	if !ok {
		return types.Batch{}, NewValidationError(fmt.Errorf("%w: %d", ErrBatchNotFound, batchID))
	}

	return b, nil
}

// GetTransaction returns a copy of the operation at index in the given batch.
func (c *BatchContract) GetTransaction(batchID uint64, index uint64) (types.Operation, error) {
	b, err := c.GetBatch(batchID)
	if err != nil {
		return types.Operation{}, err
	}

	i, err := safecast.Uint64ToInt(index)
	if err != nil || i >= len(b.Operations) {
		return types.Operation{}, NewStateError(batchID, ErrIndexOutOfBounds)
	}

	return b.Operations[i], nil
}

// GetUserBatches returns up to limit identifiers of batches created by account, starting at
// offset, in creation order. It returns an empty slice when offset is at or past the number of
// batches the account created.
func (c *BatchContract) GetUserBatches(account common.Address, offset, limit uint64) []uint64 {
	return c.registry.CreatorBatches(account, offset, limit)
}

// GetGasOptimizationStats returns the lifetime gas saved by account's batches and the average per
// batch created. The average is 0 for an account without batches.
func (c *BatchContract) GetGasOptimizationStats(account common.Address) types.GasStats {
	stats := types.GasStats{
		TotalSaved: c.savings.total(account),
		BatchCount: c.registry.CreatorCount(account),
	}
	if stats.BatchCount > 0 {
		stats.AveragePerBatch = stats.TotalSaved / stats.BatchCount
	}

	return stats
}

// GetTotalBatchCount returns the number of batch identifiers ever allocated.
func (c *BatchContract) GetTotalBatchCount() uint64 {
	return c.registry.Count()
}

// FeeBalance returns the collected fees not yet withdrawn.
func (c *BatchContract) FeeBalance() *big.Int {
	return c.fees.Balance()
}

// Owner returns the current owner.
func (c *BatchContract) Owner() common.Address {
	return c.access.Owner()
}

// IsExecutor reports whether account may execute batches.
func (c *BatchContract) IsExecutor(account common.Address) bool {
	return c.access.IsExecutor(account)
}
