package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"

	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

var ErrOutOfGas = errors.New("out of gas")

var _ sdk.Ledger = (*Ledger)(nil)

// Ledger is an sdk.Ledger backed by an EVM chain.
//
// Operations are dry-run with eth_call against the latest state, so executing a batch never
// changes the chain. Each operation is charged its gas estimate, or its whole gas limit when it
// reverts or the estimate does not fit. Fee withdrawals are sent as signed value transfers from
// the transactor account.
type Ledger struct {
	client  ContractBackend
	auth    *bind.TransactOpts
	gasLeft atomic.Uint64
}

// NewLedger creates a ledger with gasBudget gas available to batch execution. auth may be nil
// when the ledger is only used to simulate operations.
func NewLedger(client ContractBackend, auth *bind.TransactOpts, gasBudget uint64) *Ledger {
	l := &Ledger{
		client: client,
		auth:   auth,
	}
	l.gasLeft.Store(gasBudget)

	return l
}

// GasLeft implements sdk.GasMeter.
func (l *Ledger) GasLeft() uint64 {
	return l.gasLeft.Load()
}

// Invoke implements sdk.Invoker.
func (l *Ledger) Invoke(ctx context.Context, from common.Address, op types.Operation) ([]byte, error) {
	to := op.Target
	msg := ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: op.ValueOrZero(),
		Data:  op.Data,
	}

	estimate, err := l.client.EstimateGas(ctx, msg)
	if err == nil && estimate > op.GasLimit {
		l.charge(op.GasLimit)
		return nil, fmt.Errorf("%w: estimated %d, limit %d", ErrOutOfGas, estimate, op.GasLimit)
	}

	msg.Gas = op.GasLimit
	ret, callErr := l.client.CallContract(ctx, msg, nil)
	if err != nil || callErr != nil {
		l.charge(op.GasLimit)
		if callErr == nil {
			callErr = err
		}

		return nil, NewExecutionError(to, callErr)
	}
	l.charge(estimate)

	return ret, nil
}

// Transfer implements sdk.Vault.
func (l *Ledger) Transfer(ctx context.Context, to common.Address, amount *big.Int) error {
	if l.auth == nil {
		return errors.New("ledger was created without a transactor")
	}

	opts := *l.auth
	opts.Context = ctx

	nonce, err := l.client.PendingNonceAt(ctx, opts.From)
	if err != nil {
		return fmt.Errorf("failed to get nonce for %s: %w", opts.From.Hex(), err)
	}

	gasPrice := opts.GasPrice
	if gasPrice == nil {
		if gasPrice, err = l.client.SuggestGasPrice(ctx); err != nil {
			return fmt.Errorf("failed to suggest gas price: %w", err)
		}
	}

	tx := gethtypes.NewTx(&gethtypes.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    new(big.Int).Set(amount),
		Gas:      params.TxGas,
		GasPrice: gasPrice,
	})

	signed, err := opts.Signer(opts.From, tx)
	if err != nil {
		return fmt.Errorf("failed to sign transfer: %w", err)
	}

	if err = l.client.SendTransaction(ctx, signed); err != nil {
		return fmt.Errorf("failed to send transfer %s: %w", signed.Hash().Hex(), err)
	}

	return nil
}

func (l *Ledger) charge(gas uint64) {
	for {
		left := l.gasLeft.Load()
		next := uint64(0)
		if gas < left {
			next = left - gas
		}
		if l.gasLeft.CompareAndSwap(left, next) {
			return
		}
	}
}
