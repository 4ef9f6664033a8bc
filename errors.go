package swiftbatch

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Validation failures: the input is malformed or out of range.
var (
	ErrBatchNotFound      = errors.New("batch not found")
	ErrEmptyBatch         = errors.New("no transactions in batch")
	ErrTooManyOperations  = errors.New("too many transactions in batch")
	ErrInsufficientFee    = errors.New("insufficient batch fee")
	ErrZeroTarget         = errors.New("transaction target is the zero address")
	ErrZeroGasLimit       = errors.New("transaction gas limit must be greater than 0")
	ErrNegativeValue      = errors.New("transaction value must not be negative")
	ErrBatchValueExceeded = errors.New("batch value exceeds maximum")
	ErrGasLimitOverflow   = errors.New("batch gas limit overflows")
	ErrZeroAddress        = errors.New("address is the zero address")
)

// Authorization failures: the caller lacks the required role.
var (
	ErrNotCreator  = errors.New("caller is not the batch creator")
	ErrNotExecutor = errors.New("caller is not an authorized executor")
	ErrNotOwner    = errors.New("caller is not the owner")
)

// State failures: a lifecycle precondition does not hold.
var (
	ErrBatchExecuted    = errors.New("batch already executed")
	ErrBatchCancelled   = errors.New("batch cancelled")
	ErrBatchExpired     = errors.New("batch pending window expired")
	ErrIndexOutOfBounds = errors.New("transaction index out of bounds")
	ErrReentrantCall    = errors.New("reentrant call")
)

var (
	ErrNoFees            = errors.New("no fees to withdraw")
	ErrPauseNotSupported = errors.New("pause is not supported")
)

// ValidationError is returned when the input to an entry point is malformed or out of range. No
// state is changed.
type ValidationError struct {
	// Index is the position of the offending operation, or -1 when the error is not tied to one.
	Index int
	Err   error
}

// NewValidationError creates a new ValidationError that is not tied to an operation.
func NewValidationError(err error) *ValidationError {
	return &ValidationError{Index: -1, Err: err}
}

// NewOperationValidationError creates a new ValidationError for the operation at index.
func NewOperationValidationError(index int, err error) *ValidationError {
	return &ValidationError{Index: index, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid transaction %d: %v", e.Index, e.Err)
	}

	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AuthorizationError is returned when the caller does not hold the role an entry point requires.
type AuthorizationError struct {
	Caller common.Address
	Err    error
}

// NewAuthorizationError creates a new AuthorizationError.
func NewAuthorizationError(caller common.Address, err error) *AuthorizationError {
	return &AuthorizationError{Caller: caller, Err: err}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("unauthorized %s: %v", e.Caller.Hex(), e.Err)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}

// StateError is returned when a batch is not in the lifecycle state an entry point requires.
type StateError struct {
	BatchID uint64
	Err     error
}

// NewStateError creates a new StateError.
func NewStateError(batchID uint64, err error) *StateError {
	return &StateError{BatchID: batchID, Err: err}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("batch %d: %v", e.BatchID, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// WithdrawError is returned when collected fees could not be withdrawn. Only the withdrawal is
// aborted.
type WithdrawError struct {
	Err error
}

// NewWithdrawError creates a new WithdrawError.
func NewWithdrawError(err error) *WithdrawError {
	return &WithdrawError{Err: err}
}

func (e *WithdrawError) Error() string {
	return fmt.Sprintf("withdraw failed: %v", e.Err)
}

func (e *WithdrawError) Unwrap() error {
	return e.Err
}
