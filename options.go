package swiftbatch

import (
	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"

	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

type Option func(*contractOptions)

type contractOptions struct {
	limits    types.Limits
	clock     clock.Clock
	logger    sdk.Logger
	address   common.Address
	observers []Observer
}

func defaultContractOptions() *contractOptions {
	return &contractOptions{
		limits: types.DefaultLimits(),
		clock:  clock.New(),
	}
}

// WithLimits overrides the default batch limits.
func WithLimits(limits types.Limits) Option {
	return func(opts *contractOptions) {
		opts.limits = limits
	}
}

// WithClock sets the clock used for creation timestamps and the pending window.
func WithClock(c clock.Clock) Option {
	return func(opts *contractOptions) {
		opts.clock = c
	}
}

// WithLogger sets the logger. Without it the logger is resolved from each call's context.
func WithLogger(logger sdk.Logger) Option {
	return func(opts *contractOptions) {
		opts.logger = logger
	}
}

// WithAddress sets the ledger account of the contract. Operations are invoked from it.
func WithAddress(address common.Address) Option {
	return func(opts *contractOptions) {
		opts.address = address
	}
}

// WithObserver registers an observer for contract events.
func WithObserver(o Observer) Option {
	return func(opts *contractOptions) {
		opts.observers = append(opts.observers, o)
	}
}
