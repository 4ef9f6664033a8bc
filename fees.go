package swiftbatch

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk"
)

// feeVault custodies the creation fees collected by the contract.
type feeVault struct {
	mu      sync.RWMutex
	balance *big.Int
	vault   sdk.Vault
}

func newFeeVault(vault sdk.Vault) *feeVault {
	return &feeVault{
		balance: new(big.Int),
		vault:   vault,
	}
}

func (f *feeVault) Balance() *big.Int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return new(big.Int).Set(f.balance)
}

func (f *feeVault) collect(amount *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.balance.Add(f.balance, amount)
}

// withdraw transfers the whole balance to to. The balance is zeroed before the transfer and
// restored if the transfer fails.
func (f *feeVault) withdraw(ctx context.Context, to common.Address) (*big.Int, error) {
	f.mu.Lock()
	amount := f.balance
	if amount.Sign() <= 0 {
		f.mu.Unlock()
		return nil, NewWithdrawError(ErrNoFees)
	}
	f.balance = new(big.Int)
	f.mu.Unlock()

	if err := f.vault.Transfer(ctx, to, new(big.Int).Set(amount)); err != nil {
		f.mu.Lock()
		f.balance.Add(f.balance, amount)
		f.mu.Unlock()

		return nil, NewWithdrawError(err)
	}

	return amount, nil
}
