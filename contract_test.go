package swiftbatch

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SwiftBridge/swift-batch-transactions-contract/internal/testutils/ledgersim"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

func TestNewBatchContract(t *testing.T) {
	t.Parallel()

	ledger := ledgersim.New(testContract, ledgersim.DefaultGasBudget)

	tests := []struct {
		name       string
		giveOwner  common.Address
		giveLedger *ledgersim.Ledger
		giveLimits func(l *types.Limits)
		wantErr    string
	}{
		{
			name:       "success",
			giveOwner:  testOwner,
			giveLedger: ledger,
		},
		{
			name:       "failure: zero owner",
			giveLedger: ledger,
			wantErr:    "validation failed: owner: address is the zero address",
		},
		{
			name:      "failure: nil ledger",
			giveOwner: testOwner,
			wantErr:   "ledger is required",
		},
		{
			name:       "failure: zero max operations",
			giveOwner:  testOwner,
			giveLedger: ledger,
			giveLimits: func(l *types.Limits) { l.MaxOperations = 0 },
			wantErr:    "Field validation for 'MaxOperations' failed on the 'gt' tag",
		},
		{
			name:       "failure: negative fee",
			giveOwner:  testOwner,
			giveLedger: ledger,
			giveLimits: func(l *types.Limits) { l.BatchFee = big.NewInt(-1) },
			wantErr:    "validation failed: limits: amounts must not be negative",
		},
		{
			name:       "failure: zero pending window",
			giveOwner:  testOwner,
			giveLedger: ledger,
			giveLimits: func(l *types.Limits) { l.PendingWindow = types.Duration{} },
			wantErr:    "validation failed: limits: pending window must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limits := types.DefaultLimits()
			if tt.giveLimits != nil {
				tt.giveLimits(&limits)
			}

			var opts []Option
			opts = append(opts, WithLimits(limits), WithAddress(testContract))

			// A nil *ledgersim.Ledger must reach the constructor as a nil interface.
			var (
				c   *BatchContract
				err error
			)
			if tt.giveLedger == nil {
				c, err = NewBatchContract(tt.giveOwner, nil, opts...)
			} else {
				c, err = NewBatchContract(tt.giveOwner, tt.giveLedger, opts...)
			}

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, c)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testOwner, c.Owner())
			assert.Equal(t, testContract, c.Address())
			assert.True(t, c.IsExecutor(testOwner))
			assert.Zero(t, c.GetTotalBatchCount())
			assert.Zero(t, c.FeeBalance().Sign())
			assert.Equal(t, types.DefaultMaxOperations, c.Limits().MaxOperations)
		})
	}
}

func TestLimits_ReturnsCopy(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.contract.Limits().BatchFee.SetInt64(0)

	assert.Equal(t, 0, env.contract.Limits().BatchFee.Cmp(types.DefaultBatchFee))
}

func TestExecutorAllowlist(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	err := env.contract.AuthorizeExecutor(ctx, testStranger, testExecutor)
	require.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, kindAuthorization, errorKind(err))
	assert.False(t, env.contract.IsExecutor(testExecutor))

	err = env.contract.AuthorizeExecutor(ctx, testOwner, common.Address{})
	require.ErrorIs(t, err, ErrZeroAddress)

	require.NoError(t, env.contract.AuthorizeExecutor(ctx, testOwner, testExecutor))
	assert.True(t, env.contract.IsExecutor(testExecutor))

	err = env.contract.RevokeExecutor(ctx, testExecutor, testExecutor)
	require.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, env.contract.RevokeExecutor(ctx, testOwner, testExecutor))
	assert.False(t, env.contract.IsExecutor(testExecutor))

	// The owner stays an executor regardless of the allowlist.
	require.NoError(t, env.contract.RevokeExecutor(ctx, testOwner, testOwner))
	assert.True(t, env.contract.IsExecutor(testOwner))

	assert.Equal(t, []types.Event{
		types.ExecutorAuthorized{Executor: testExecutor},
		types.ExecutorRevoked{Executor: testExecutor},
		types.ExecutorRevoked{Executor: testOwner},
	}, env.observer.all())
}

func TestTransferOwnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	err := env.contract.TransferOwnership(ctx, testStranger, testStranger)
	require.ErrorIs(t, err, ErrNotOwner)

	err = env.contract.TransferOwnership(ctx, testOwner, common.Address{})
	require.ErrorIs(t, err, ErrZeroAddress)
	assert.Equal(t, kindValidation, errorKind(err))

	require.NoError(t, env.contract.TransferOwnership(ctx, testOwner, testExecutor))
	assert.Equal(t, testExecutor, env.contract.Owner())
	assert.False(t, env.contract.IsExecutor(testOwner))
	assert.True(t, env.contract.IsExecutor(testExecutor))

	err = env.contract.AuthorizeExecutor(ctx, testOwner, testStranger)
	require.ErrorIs(t, err, ErrNotOwner)

	assert.Equal(t, []types.Event{
		types.OwnershipTransferred{PreviousOwner: testOwner, NewOwner: testExecutor},
	}, env.observer.all())
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.contract.Withdraw(ctx, testOwner)
	require.ErrorIs(t, err, ErrNoFees)
	assert.Equal(t, kindWithdraw, errorKind(err))

	env.createBatch(t, testOp(testTargetA, 1))
	env.createBatch(t, testOp(testTargetA, 1))
	want := new(big.Int).Mul(types.DefaultBatchFee, big.NewInt(2))
	// Fees are held by the contract account on the ledger.
	env.ledger.Fund(testContract, want)

	_, err = env.contract.Withdraw(ctx, testStranger)
	require.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, 0, env.contract.FeeBalance().Cmp(want))

	got, err := env.contract.Withdraw(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(want))
	assert.Zero(t, env.contract.FeeBalance().Sign())
	assert.Equal(t, 0, env.ledger.Balance(testOwner).Cmp(want))

	withdrawn := env.observer.named("FeesWithdrawn")
	require.Len(t, withdrawn, 1)
	assert.Equal(t, testOwner, withdrawn[0].(types.FeesWithdrawn).To)
	assert.Equal(t, 0, withdrawn[0].(types.FeesWithdrawn).Amount.Cmp(want))

	_, err = env.contract.Withdraw(ctx, testOwner)
	require.ErrorIs(t, err, ErrNoFees)
}

func TestWithdraw_TransferFails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createBatch(t, testOp(testTargetA, 1))
	env.ledger.Fund(testContract, types.DefaultBatchFee)

	errRejected := errors.New("recipient rejected transfer")
	env.ledger.FailTransfers(errRejected)

	_, err := env.contract.Withdraw(context.Background(), testOwner)
	require.ErrorIs(t, err, errRejected)
	assert.Equal(t, kindWithdraw, errorKind(err))
	assert.Equal(t, 0, env.contract.FeeBalance().Cmp(types.DefaultBatchFee))
	assert.Empty(t, env.observer.named("FeesWithdrawn"))

	env.ledger.FailTransfers(nil)
	got, err := env.contract.Withdraw(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(types.DefaultBatchFee))
}

func TestWithdraw_RejectsReentrantReceiver(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createBatch(t, testOp(testTargetA, 1))
	env.ledger.Fund(testContract, types.DefaultBatchFee)

	var reentryErr error
	env.ledger.Deploy(testOwner, func(ctx context.Context, _ ledgersim.Call) ([]byte, uint64, error) {
		_, reentryErr = env.contract.Withdraw(ctx, testOwner)
		return nil, 0, nil
	})

	got, err := env.contract.Withdraw(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(types.DefaultBatchFee))
	require.ErrorIs(t, reentryErr, ErrReentrantCall)
	assert.Equal(t, 0, env.ledger.Balance(testOwner).Cmp(types.DefaultBatchFee))
}

func TestPause(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	err := env.contract.Pause(context.Background(), testStranger)
	require.ErrorIs(t, err, ErrNotOwner)

	err = env.contract.Pause(context.Background(), testOwner)
	require.ErrorIs(t, err, ErrPauseNotSupported)
}
