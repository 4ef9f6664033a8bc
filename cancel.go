package swiftbatch

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// CancelBatch marks a pending batch cancelled. Creator only. The batch fee is not refunded.
//
// Cancellation is still allowed once the pending window has elapsed; it is the only way to move
// an expired batch out of the pending state.
func (c *BatchContract) CancelBatch(ctx context.Context, caller common.Address, batchID uint64) error {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return NewStateError(batchID, err)
	}
	defer release()

	err = c.registry.Update(batchID, func(b *types.Batch) error {
		if b.Creator != caller {
			return NewAuthorizationError(caller, ErrNotCreator)
		}
		if err := requirePending(*b); err != nil {
			return err
		}
		b.Cancelled = true

		return nil
	})
	if err != nil {
		return c.mapRegistryError(batchID, err)
	}

	c.log(ctx).Infof("Cancelled batch %d by %s", batchID, caller.Hex())
	c.emit(ctx, types.BatchCancelled{BatchID: batchID, Creator: caller})

	return nil
}
