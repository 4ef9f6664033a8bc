// Package ledgersim implements an in-process ledger for testing batch contracts.
//
// Accounts hold native balances and may have a Handler deployed at their address. Invoking an
// operation runs the target's handler (or performs a plain transfer when there is none), charges
// the gas it reports to a shared budget and moves the value only when the call succeeds.
package ledgersim

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

const (
	// DefaultGasBudget is the gas available to a freshly created ledger.
	DefaultGasBudget = uint64(30_000_000)

	// TransferGas is charged for a call to an account without a handler.
	TransferGas = uint64(2_600)
)

var (
	ErrOutOfGas            = errors.New("out of gas")
	ErrInsufficientBalance = errors.New("insufficient balance for transfer")
	ErrReverted            = errors.New("execution reverted")
)

var _ sdk.Ledger = (*Ledger)(nil)

// Call describes a single invocation delivered to a Handler.
type Call struct {
	From     common.Address
	To       common.Address
	Value    *big.Int
	Data     []byte
	GasLimit uint64
}

// Handler is the code deployed at an address. It returns the call's return data and the gas it
// consumed. A non-nil error reverts the call.
type Handler func(ctx context.Context, call Call) ([]byte, uint64, error)

// Ledger is an in-memory sdk.Ledger.
type Ledger struct {
	mu        sync.Mutex
	contract  common.Address
	gasLeft   uint64
	balances  map[common.Address]*big.Int
	handlers  map[common.Address]Handler
	calls     []Call
	transferE error
}

// New creates a ledger where contract is the account fees are withdrawn from.
func New(contract common.Address, gasBudget uint64) *Ledger {
	return &Ledger{
		contract: contract,
		gasLeft:  gasBudget,
		balances: make(map[common.Address]*big.Int),
		handlers: make(map[common.Address]Handler),
	}
}

// Fund credits amount to account.
func (l *Ledger) Fund(account common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balanceOf(account).Add(l.balanceOf(account), amount)
}

// Balance returns the balance of account.
func (l *Ledger) Balance(account common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return new(big.Int).Set(l.balanceOf(account))
}

// Deploy installs h at address, replacing any previous handler.
func (l *Ledger) Deploy(address common.Address, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.handlers[address] = h
}

// FailTransfers makes every subsequent Transfer fail with err. A nil err restores transfers.
func (l *Ledger) FailTransfers(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transferE = err
}

// Calls returns every call that was delivered, in order.
func (l *Ledger) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Call, len(l.calls))
	copy(out, l.calls)

	return out
}

// GasLeft implements sdk.GasMeter.
func (l *Ledger) GasLeft() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.gasLeft
}

// Invoke implements sdk.Invoker. The handler runs without the ledger lock held so it may call
// back into the ledger or the contract.
func (l *Ledger) Invoke(ctx context.Context, from common.Address, op types.Operation) ([]byte, error) {
	call := Call{
		From:     from,
		To:       op.Target,
		Value:    op.ValueOrZero(),
		Data:     op.Data,
		GasLimit: op.GasLimit,
	}

	l.mu.Lock()
	l.calls = append(l.calls, call)
	if l.balanceOf(from).Cmp(call.Value) < 0 {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from.Hex(), l.Balance(from), call.Value)
	}
	h, ok := l.handlers[op.Target]
	l.mu.Unlock()

	var (
		ret  []byte
		used = TransferGas
		err  error
	)
	if ok {
		ret, used, err = h(ctx, call)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if used > op.GasLimit {
		l.charge(op.GasLimit)
		return nil, fmt.Errorf("%w: used %d, limit %d", ErrOutOfGas, used, op.GasLimit)
	}
	l.charge(used)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReverted, err)
	}

	// The balance may have moved while the handler ran.
	if l.balanceOf(from).Cmp(call.Value) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientBalance, from.Hex())
	}
	l.move(from, op.Target, call.Value)

	return ret, nil
}

// Transfer implements sdk.Vault, paying amount from the contract account. When to has a handler
// it is called as a receive hook, and a hook error fails the transfer.
func (l *Ledger) Transfer(ctx context.Context, to common.Address, amount *big.Int) error {
	l.mu.Lock()
	if l.transferE != nil {
		err := l.transferE
		l.mu.Unlock()

		return err
	}
	if l.balanceOf(l.contract).Cmp(amount) < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%w: contract has %s, needs %s", ErrInsufficientBalance, l.Balance(l.contract), amount)
	}
	h, ok := l.handlers[to]
	l.mu.Unlock()

	if ok {
		if _, _, err := h(ctx, Call{From: l.contract, To: to, Value: new(big.Int).Set(amount)}); err != nil {
			return fmt.Errorf("%w: %w", ErrReverted, err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balanceOf(l.contract).Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s", ErrInsufficientBalance, l.contract.Hex())
	}
	l.move(l.contract, to, amount)

	return nil
}

func (l *Ledger) balanceOf(account common.Address) *big.Int {
	b, ok := l.balances[account]
	if !ok {
		b = new(big.Int)
		l.balances[account] = b
	}

	return b
}

func (l *Ledger) move(from, to common.Address, amount *big.Int) {
	l.balanceOf(from).Sub(l.balanceOf(from), amount)
	l.balanceOf(to).Add(l.balanceOf(to), amount)
}

func (l *Ledger) charge(gas uint64) {
	if gas > l.gasLeft {
		l.gasLeft = 0
		return
	}
	l.gasLeft -= gas
}
