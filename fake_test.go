package swiftbatch

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SwiftBridge/swift-batch-transactions-contract/internal/testutils/ledgersim"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

var (
	testOwner    = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	testCreator  = common.HexToAddress("0x0000000000000000000000000000000000000a02")
	testExecutor = common.HexToAddress("0x0000000000000000000000000000000000000a03")
	testStranger = common.HexToAddress("0x0000000000000000000000000000000000000a04")
	testContract = common.HexToAddress("0x0000000000000000000000000000000000000c01")

	testTargetA = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	testTargetB = common.HexToAddress("0x0000000000000000000000000000000000000b02")
	testTargetC = common.HexToAddress("0x0000000000000000000000000000000000000b03")
)

// fakeObserver records every event it receives.
type fakeObserver struct {
	mu     sync.Mutex
	events []types.Event
}

func (f *fakeObserver) observe(_ context.Context, e types.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, e)
}

func (f *fakeObserver) all() []types.Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.Event, len(f.events))
	copy(out, f.events)

	return out
}

func (f *fakeObserver) named(name string) []types.Event {
	var out []types.Event
	for _, e := range f.all() {
		if e.EventName() == name {
			out = append(out, e)
		}
	}

	return out
}

// testEnv bundles a contract wired to a simulated ledger.
type testEnv struct {
	contract *BatchContract
	ledger   *ledgersim.Ledger
	clock    *clock.Mock
	observer *fakeObserver
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	env := &testEnv{
		ledger:   ledgersim.New(testContract, ledgersim.DefaultGasBudget),
		clock:    clock.NewMock(),
		observer: &fakeObserver{},
	}

	base := []Option{
		WithAddress(testContract),
		WithClock(env.clock),
		WithLogger(zap.NewNop().Sugar()),
		WithObserver(env.observer.observe),
	}

	c, err := NewBatchContract(testOwner, env.ledger, append(base, opts...)...)
	require.NoError(t, err)
	env.contract = c

	return env
}

// succeedWith deploys a handler at target that consumes gas and returns ret.
func (e *testEnv) succeedWith(target common.Address, gas uint64, ret []byte) {
	e.ledger.Deploy(target, func(context.Context, ledgersim.Call) ([]byte, uint64, error) {
		return ret, gas, nil
	})
}

// revertWith deploys a handler at target that consumes gas and reverts.
func (e *testEnv) revertWith(target common.Address, gas uint64, reason string) {
	e.ledger.Deploy(target, func(context.Context, ledgersim.Call) ([]byte, uint64, error) {
		return nil, gas, &revertError{reason: reason}
	})
}

type revertError struct {
	reason string
}

func (e *revertError) Error() string {
	return "revert: " + e.reason
}

func (e *testEnv) createBatch(t *testing.T, ops ...types.Operation) uint64 {
	t.Helper()

	id, err := e.contract.CreateBatch(context.Background(), testCreator, ops, types.DefaultBatchFee)
	require.NoError(t, err)

	return id
}

func testOp(target common.Address, gasLimit uint64) types.Operation {
	return types.NewOperation(target, big.NewInt(0), nil, gasLimit)
}

const (
	kindValidation    = "validation"
	kindAuthorization = "authorization"
	kindState         = "state"
	kindWithdraw      = "withdraw"
)

// errorKind classifies err by the typed error it wraps.
func errorKind(err error) string {
	var (
		verr *ValidationError
		aerr *AuthorizationError
		serr *StateError
		werr *WithdrawError
	)

	switch {
	case errors.As(err, &verr):
		return kindValidation
	case errors.As(err, &aerr):
		return kindAuthorization
	case errors.As(err, &serr):
		return kindState
	case errors.As(err, &werr):
		return kindWithdraw
	default:
		return ""
	}
}
