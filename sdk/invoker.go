package sdk

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// Invoker performs the external call described by an operation on the host ledger.
//
// Invoke must forward op.Value from the caller account and must not let the call consume more
// than op.GasLimit. Any error is treated by the execution engine as a failed operation; it never
// aborts the enclosing batch. Implementations should charge consumed gas to the GasMeter that
// the batch contract was configured with.
//
// ctx carries the batch contract's re-entrancy guard. Implementations must pass ctx to any
// callback into the contract so that re-entry is rejected; a callback made with another context,
// or from another goroutine, blocks until the batch completes, which it never does.
type Invoker interface {
	Invoke(ctx context.Context, from common.Address, op types.Operation) ([]byte, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, from common.Address, op types.Operation) ([]byte, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, from common.Address, op types.Operation) ([]byte, error) {
	return f(ctx, from, op)
}
