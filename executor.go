package swiftbatch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// ExecuteBatch runs every operation of a pending batch, in stored order, and marks the batch
// executed. Executor only; the owner is always an executor.
//
// Each operation is invoked in isolation: a failing, reverting or panicking sub-call is recorded
// as Success=false with empty return data and never aborts the batch. The gas used is measured
// once across the whole loop, and the unspent share of the estimated gas is credited to the
// batch creator's lifetime savings. A batch can be executed at most once, and only within its
// pending window.
func (c *BatchContract) ExecuteBatch(
	ctx context.Context, caller common.Address, batchID uint64,
) (types.ExecutionResult, error) {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return types.ExecutionResult{}, NewStateError(batchID, err)
	}
	defer release()

	if err = c.access.requireExecutor(caller); err != nil {
		return types.ExecutionResult{}, err
	}

	batch, ok := c.registry.Get(batchID)
	if !ok {
		return types.ExecutionResult{}, NewValidationError(fmt.Errorf("%w: %d", ErrBatchNotFound, batchID))
	}
	if err = requirePending(batch); err != nil {
		return types.ExecutionResult{}, err
	}
	if c.expired(batch) {
		return types.ExecutionResult{}, NewStateError(batchID, ErrBatchExpired)
	}

	logger := c.log(ctx)
	logger.Infof("Executing batch %d with %d transactions for executor %s", batchID, len(batch.Operations), caller.Hex())

	result := types.ExecutionResult{
		BatchID:    batchID,
		Operations: make([]types.OperationResult, 0, len(batch.Operations)),
	}

	gasBefore := c.ledger.GasLeft()
	for i, op := range batch.Operations {
		if op.Executed {
			result.Operations = append(result.Operations, types.OperationResult{
				Index:      i,
				Target:     op.Target,
				Success:    op.Success,
				ReturnData: op.ReturnData,
				Skipped:    true,
			})
			tally(&result, op.Success)

			continue
		}

		call := c.invoke(ctx, op)
		if !call.Success {
			logger.Debugf("Transaction %d of batch %d to %s failed: %v", i, batchID, op.Target.Hex(), call.Err)
		}

		if err = c.registry.Update(batchID, func(b *types.Batch) error {
			recorded := &b.Operations[i]
			recorded.Executed = true
			recorded.Success = call.Success
			recorded.ReturnData = bytes.Clone(call.ReturnData)

			return nil
		}); err != nil {
			return types.ExecutionResult{}, c.mapRegistryError(batchID, err)
		}

		result.Operations = append(result.Operations, types.OperationResult{
			Index:      i,
			Target:     op.Target,
			Success:    call.Success,
			ReturnData: call.ReturnData,
		})
		tally(&result, call.Success)

		c.emit(ctx, types.TransactionExecuted{
			BatchID:    batchID,
			Index:      i,
			Target:     op.Target,
			Success:    call.Success,
			ReturnData: bytes.Clone(call.ReturnData),
		})
	}
	gasAfter := c.ledger.GasLeft()

	// A meter that grew during the loop is treated as having consumed nothing.
	if gasAfter < gasBefore {
		result.GasUsed = gasBefore - gasAfter
	}
	result.GasSaved = gasSaved(batch.EstimatedGas, result.GasUsed)

	executedAt := c.clock.Now()
	if err = c.registry.Update(batchID, func(b *types.Batch) error {
		b.Executed = true
		b.ExecutedAt = executedAt
		b.GasUsed = result.GasUsed

		return nil
	}); err != nil {
		return types.ExecutionResult{}, c.mapRegistryError(batchID, err)
	}
	c.savings.credit(batch.Creator, result.GasSaved)

	logger.Infof("Executed batch %d: %d succeeded, %d failed, gas used %d, gas saved %d",
		batchID, result.Succeeded, result.Failed, result.GasUsed, result.GasSaved)
	c.emit(ctx, types.BatchExecuted{
		BatchID: batchID,
		Success: result.AllSucceeded(),
		GasUsed: result.GasUsed,
	})

	return result, nil
}

// invoke performs one isolated sub-call. Errors and panics from the invoker are captured in the
// result and never propagate.
func (c *BatchContract) invoke(ctx context.Context, op types.Operation) (res types.CallResult) {
	defer func() {
		if r := recover(); r != nil {
			res = types.CallResult{Err: fmt.Errorf("sub-call panicked: %v", r)}
		}
	}()

	ret, err := c.ledger.Invoke(ctx, c.address, op.Clone())
	if err != nil {
		return types.CallResult{Err: err}
	}

	return types.CallResult{Success: true, ReturnData: ret}
}

func tally(result *types.ExecutionResult, success bool) {
	if success {
		result.Succeeded++
	} else {
		result.Failed++
	}
}
