package swiftbatch

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/SwiftBridge/swift-batch-transactions-contract/internal/registry"
	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// BatchContract batches independent calls into one submission and executes each of them with
// its own failure isolation.
//
// Every state-mutating entry point runs to completion under a single guard, so calls from
// different goroutines are totally ordered. Callers are identified by an already authenticated
// address.
type BatchContract struct {
	address common.Address
	limits  types.Limits
	clock   clock.Clock
	logger  sdk.Logger
	ledger  sdk.Ledger

	guard    callGuard
	registry *registry.Registry
	access   *accessControl
	fees     *feeVault
	savings  *savingsLedger
	events   notifier
}

// NewBatchContract creates a contract owned by owner that executes operations against ledger.
func NewBatchContract(owner common.Address, ledger sdk.Ledger, opts ...Option) (*BatchContract, error) {
	if owner == (common.Address{}) {
		return nil, NewValidationError(fmt.Errorf("owner: %w", ErrZeroAddress))
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}

	o := defaultContractOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := validateLimits(o.limits); err != nil {
		return nil, err
	}
	if o.clock == nil {
		o.clock = clock.New()
	}

	c := &BatchContract{
		address:  o.address,
		limits:   o.limits,
		clock:    o.clock,
		logger:   o.logger,
		ledger:   ledger,
		registry: registry.New(),
		access:   newAccessControl(owner),
		fees:     newFeeVault(ledger),
		savings:  newSavingsLedger(),
	}
	for _, obs := range o.observers {
		c.events.subscribe(obs)
	}

	return c, nil
}

func validateLimits(l types.Limits) error {
	if err := validator.New().Struct(l); err != nil {
		return NewValidationError(fmt.Errorf("limits: %w", err))
	}
	if l.MaxBatchValue.Sign() < 0 || l.BatchFee.Sign() < 0 {
		return NewValidationError(errors.New("limits: amounts must not be negative"))
	}
	if l.PendingWindow.Duration <= 0 {
		return NewValidationError(errors.New("limits: pending window must be positive"))
	}

	return nil
}

// Subscribe registers an observer for all subsequent events.
func (c *BatchContract) Subscribe(o Observer) {
	c.events.subscribe(o)
}

// Address returns the ledger account operations are invoked from.
func (c *BatchContract) Address() common.Address {
	return c.address
}

// Limits returns a copy of the limits the contract enforces.
func (c *BatchContract) Limits() types.Limits {
	l := c.limits
	l.MaxBatchValue = new(big.Int).Set(c.limits.MaxBatchValue)
	l.BatchFee = new(big.Int).Set(c.limits.BatchFee)

	return l
}

// AuthorizeExecutor adds account to the executor allowlist. Owner only.
func (c *BatchContract) AuthorizeExecutor(ctx context.Context, caller, account common.Address) error {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return NewStateError(0, err)
	}
	defer release()

	if err = c.access.requireOwner(caller); err != nil {
		return err
	}
	if account == (common.Address{}) {
		return NewValidationError(fmt.Errorf("executor: %w", ErrZeroAddress))
	}

	c.access.authorize(account)
	c.log(ctx).Infof("Authorized executor %s", account.Hex())
	c.emit(ctx, types.ExecutorAuthorized{Executor: account})

	return nil
}

// RevokeExecutor removes account from the executor allowlist. Owner only. Revoking the owner has
// no effect on the owner's implicit authorization.
func (c *BatchContract) RevokeExecutor(ctx context.Context, caller, account common.Address) error {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return NewStateError(0, err)
	}
	defer release()

	if err = c.access.requireOwner(caller); err != nil {
		return err
	}

	c.access.revoke(account)
	c.log(ctx).Infof("Revoked executor %s", account.Hex())
	c.emit(ctx, types.ExecutorRevoked{Executor: account})

	return nil
}

// TransferOwnership hands the owner role to newOwner. Owner only.
func (c *BatchContract) TransferOwnership(ctx context.Context, caller, newOwner common.Address) error {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return NewStateError(0, err)
	}
	defer release()

	if err = c.access.requireOwner(caller); err != nil {
		return err
	}
	if newOwner == (common.Address{}) {
		return NewValidationError(fmt.Errorf("new owner: %w", ErrZeroAddress))
	}

	previous := c.access.transferOwnership(newOwner)
	c.log(ctx).Infof("Transferred ownership from %s to %s", previous.Hex(), newOwner.Hex())
	c.emit(ctx, types.OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner})

	return nil
}

// Withdraw transfers the full collected fee balance to the owner. Owner only.
func (c *BatchContract) Withdraw(ctx context.Context, caller common.Address) (*big.Int, error) {
	ctx, release, err := c.enter(ctx)
	if err != nil {
		return nil, NewStateError(0, err)
	}
	defer release()

	if err = c.access.requireOwner(caller); err != nil {
		return nil, err
	}

	amount, err := c.fees.withdraw(ctx, caller)
	if err != nil {
		c.log(ctx).Warnf("Fee withdrawal to %s failed: %v", caller.Hex(), err)
		return nil, err
	}

	c.log(ctx).Infof("Withdrew %s wei of fees to %s", amount, caller.Hex())
	c.emit(ctx, types.FeesWithdrawn{To: caller, Amount: new(big.Int).Set(amount)})

	return amount, nil
}

// Pause is reserved for halting batch creation and execution. It is not implemented and always
// fails, after checking the caller is the owner.
func (c *BatchContract) Pause(ctx context.Context, caller common.Address) error {
	if err := c.access.requireOwner(caller); err != nil {
		return err
	}

	return ErrPauseNotSupported
}

// enter acquires the contract guard for a state-changing call. Events emitted under the returned
// context are delivered by release, after the guard is dropped, with the caller's own context.
func (c *BatchContract) enter(ctx context.Context) (context.Context, func(), error) {
	guarded, unlock, err := c.guard.enter(ctx)
	if err != nil {
		return ctx, unlock, err
	}

	box := &outbox{}
	guarded = context.WithValue(guarded, outboxKey{}, box)

	release := func() {
		unlock()
		c.events.emit(ctx, c.log(ctx), box.drain()...)
	}

	return guarded, release, nil
}

// emit queues e for delivery when the current guarded call releases. Outside a guarded call it
// is delivered immediately.
func (c *BatchContract) emit(ctx context.Context, e types.Event) {
	if box, ok := ctx.Value(outboxKey{}).(*outbox); ok {
		box.add(e)
		return
	}

	c.events.emit(ctx, c.log(ctx), e)
}

func (c *BatchContract) log(ctx context.Context) sdk.Logger {
	if c.logger != nil {
		return c.logger
	}

	return sdk.LoggerFrom(ctx)
}
