package swiftbatch

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/internal/registry"
	"github.com/SwiftBridge/swift-batch-transactions-contract/internal/utils/safecast"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// CreateBatch validates ops and stores them as a new pending batch owned by caller, returning the
// batch identifier. attachedFee must cover the batch fee; the whole amount is collected and is
// not refunded. Validation is all-or-nothing: on error nothing is stored and no fee is taken.
func (c *BatchContract) CreateBatch(
	ctx context.Context, caller common.Address, ops []types.Operation, attachedFee *big.Int,
) (uint64, error) {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return 0, NewStateError(0, err)
	}
	defer release()

	if err = ValidateOperations(ops, c.limits); err != nil {
		return 0, err
	}
	if err = validateFee(attachedFee, c.limits); err != nil {
		return 0, err
	}

	pending := make([]types.Operation, len(ops))
	for i, op := range ops {
		pending[i] = op.Pending()
	}

	batch := types.Batch{
		Creator:      caller,
		Operations:   pending,
		CreatedAt:    c.clock.Now(),
		EstimatedGas: types.TotalGasLimit(pending),
	}

	c.fees.collect(attachedFee)
	id := c.registry.Insert(batch)

	c.log(ctx).Infof("Created batch %d by %s with %d transactions, estimated gas %d",
		id, caller.Hex(), len(pending), batch.EstimatedGas)
	c.emit(ctx, types.BatchCreated{
		BatchID:        id,
		Creator:        caller,
		OperationCount: len(pending),
		EstimatedGas:   batch.EstimatedGas,
	})

	return id, nil
}

// AddTransactionToBatch appends op to a pending batch. Creator only, and only before the
// pending window has elapsed.
func (c *BatchContract) AddTransactionToBatch(
	ctx context.Context, caller common.Address, batchID uint64, op types.Operation,
) error {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return NewStateError(batchID, err)
	}
	defer release()

	var index int
	err = c.registry.Update(batchID, func(b *types.Batch) error {
		if err := c.requireMutable(*b, caller); err != nil {
			return err
		}
		if len(b.Operations) >= c.limits.MaxOperations {
			return NewValidationError(ErrTooManyOperations)
		}
		if err := ValidateOperation(op); err != nil {
			return NewOperationValidationError(len(b.Operations), err)
		}

		total := b.TotalValue()
		total.Add(total, op.ValueOrZero())
		if err := validateTotals(total, []types.Operation{op}, b.EstimatedGas, c.limits); err != nil {
			return err
		}

		index = len(b.Operations)
		b.Operations = append(b.Operations, op.Pending())
		b.EstimatedGas += op.GasLimit

		return nil
	})
	if err != nil {
		return c.mapRegistryError(batchID, err)
	}

	c.log(ctx).Infof("Added transaction %d to batch %d targeting %s", index, batchID, op.Target.Hex())
	c.emit(ctx, types.TransactionAdded{BatchID: batchID, Index: index, Target: op.Target})

	return nil
}

// RemoveTransactionFromBatch removes the operation at index from a pending batch. Creator only,
// and only before the pending window has elapsed.
//
// The last operation is moved into the vacated slot, so the order of the remaining operations is
// not preserved.
func (c *BatchContract) RemoveTransactionFromBatch(
	ctx context.Context, caller common.Address, batchID uint64, index uint64,
) error {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return NewStateError(batchID, err)
	}
	defer release()

	var (
		removed types.Operation
		slot    int
	)
	err = c.registry.Update(batchID, func(b *types.Batch) error {
		if err := c.requireMutable(*b, caller); err != nil {
			return err
		}

		i, err := safecast.Uint64ToInt(index)
		if err != nil || i >= len(b.Operations) {
			return NewStateError(batchID, ErrIndexOutOfBounds)
		}

		removed, slot = b.Operations[i], i
		last := len(b.Operations) - 1
		b.Operations[i] = b.Operations[last]
		b.Operations = b.Operations[:last]
		b.EstimatedGas -= removed.GasLimit

		return nil
	})
	if err != nil {
		return c.mapRegistryError(batchID, err)
	}

	c.log(ctx).Infof("Removed transaction %d from batch %d targeting %s", index, batchID, removed.Target.Hex())
	c.emit(ctx, types.TransactionRemoved{BatchID: batchID, Index: slot, Target: removed.Target})

	return nil
}

// requireMutable checks that caller may add to or remove from b.
func (c *BatchContract) requireMutable(b types.Batch, caller common.Address) error {
	if b.Creator != caller {
		return NewAuthorizationError(caller, ErrNotCreator)
	}
	if err := requirePending(b); err != nil {
		return err
	}
	if c.expired(b) {
		return NewStateError(b.ID, ErrBatchExpired)
	}

	return nil
}

func requirePending(b types.Batch) error {
	if b.Executed {
		return NewStateError(b.ID, ErrBatchExecuted)
	}
	if b.Cancelled {
		return NewStateError(b.ID, ErrBatchCancelled)
	}

	return nil
}

// expired reports whether the pending window of b has elapsed. The deadline itself is still
// inside the window.
func (c *BatchContract) expired(b types.Batch) bool {
	return c.clock.Now().After(b.Deadline(c.limits.PendingWindow.Duration))
}

func (c *BatchContract) mapRegistryError(batchID uint64, err error) error {
	if errors.Is(err, registry.ErrNotFound) {
		return NewValidationError(fmt.Errorf("%w: %d", ErrBatchNotFound, batchID))
	}

	return err
}
