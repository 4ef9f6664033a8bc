package swiftbatch

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/go-playground/validator/v10"

	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

var validate = validator.New()

// ValidateOperation checks a single operation: non-zero target, positive gas limit and a
// non-negative value.
func ValidateOperation(op types.Operation) error {
	if err := validate.Struct(op); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return err
		}

		switch fieldErrs[0].Field() {
		case "Target":
			return ErrZeroTarget
		case "GasLimit":
			return ErrZeroGasLimit
		default:
			return fieldErrs[0]
		}
	}

	if op.Value != nil && op.Value.Sign() < 0 {
		return ErrNegativeValue
	}

	return nil
}

// ValidateOperations checks a complete batch against limits: count, every operation, aggregate
// value and aggregate gas limit. The fee is not checked here.
func ValidateOperations(ops []types.Operation, limits types.Limits) error {
	if len(ops) == 0 {
		return NewValidationError(ErrEmptyBatch)
	}
	if len(ops) > limits.MaxOperations {
		return NewValidationError(fmt.Errorf("%w: %d > %d", ErrTooManyOperations, len(ops), limits.MaxOperations))
	}

	for i, op := range ops {
		if err := ValidateOperation(op); err != nil {
			return NewOperationValidationError(i, err)
		}
	}

	return validateTotals(types.TotalValue(ops), ops, 0, limits)
}

// validateTotals checks the aggregate value of ops against the ceiling and that their gas limits
// plus baseGas do not overflow.
func validateTotals(total *big.Int, ops []types.Operation, baseGas uint64, limits types.Limits) error {
	if total.Cmp(limits.MaxBatchValue) > 0 {
		return NewValidationError(fmt.Errorf("%w: %s > %s", ErrBatchValueExceeded, total, limits.MaxBatchValue))
	}

	sum := baseGas
	for _, op := range ops {
		var carry uint64
		sum, carry = bits.Add64(sum, op.GasLimit, 0)
		if carry != 0 {
			return NewValidationError(ErrGasLimitOverflow)
		}
	}

	return nil
}

func validateFee(fee *big.Int, limits types.Limits) error {
	if fee == nil || fee.Cmp(limits.BatchFee) < 0 {
		return NewValidationError(fmt.Errorf("%w: got %s, want at least %s", ErrInsufficientFee, feeString(fee), limits.BatchFee))
	}

	return nil
}

func feeString(fee *big.Int) string {
	if fee == nil {
		return "0"
	}

	return fee.String()
}
