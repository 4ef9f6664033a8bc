package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// GasMeter reports the gas remaining to the current execution. The execution engine reads it
// once before and once after running a batch and records the difference as the gas used.
type GasMeter interface {
	GasLeft() uint64
}

// Vault moves native currency out of the contract account.
type Vault interface {
	Transfer(ctx context.Context, to common.Address, amount *big.Int) error
}

// Ledger is the host environment a batch contract runs against.
type Ledger interface {
	Invoker
	GasMeter
	Vault
}
