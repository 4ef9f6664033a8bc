package evm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	selectorSize = 4
	revertPrefix = "revert:"
)

// ExecutionError is returned when an operation reverts. It carries the revert data returned by
// the node and, when it could be decoded, the human-readable reason.
type ExecutionError struct {
	Target common.Address
	// RevertData is the raw revert payload, selector included.
	RevertData []byte
	// Reason is the decoded Error(string) or Panic(uint256) reason, if any.
	Reason        string
	OriginalError error
}

// NewExecutionError wraps err, extracting revert data when the node returned any.
func NewExecutionError(target common.Address, err error) *ExecutionError {
	execErr := &ExecutionError{
		Target:        target,
		OriginalError: err,
	}

	execErr.RevertData = revertData(err)
	switch {
	case len(execErr.RevertData) >= selectorSize:
		if reason, uerr := abi.UnpackRevert(execErr.RevertData); uerr == nil {
			execErr.Reason = reason
		}
	case err != nil:
		// Plain string reverts, e.g. "execution reverted: revert: not allowed".
		if i := strings.Index(err.Error(), revertPrefix); i != -1 {
			execErr.Reason = strings.TrimSpace(err.Error()[i+len(revertPrefix):])
		}
	}

	return execErr
}

func (e *ExecutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("call to %s failed: %v (revert reason: %s)", e.Target.Hex(), e.OriginalError, e.Reason)
	}
	if len(e.RevertData) > 0 {
		return fmt.Sprintf("call to %s failed: %v (raw revert data: %s)", e.Target.Hex(), e.OriginalError, hexutil.Encode(e.RevertData))
	}

	return fmt.Sprintf("call to %s failed: %v", e.Target.Hex(), e.OriginalError)
}

func (e *ExecutionError) Unwrap() error {
	return e.OriginalError
}

// revertData returns the payload attached to a JSON-RPC execution error.
func revertData(err error) []byte {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil
	}

	switch data := dataErr.ErrorData().(type) {
	case string:
		b, derr := hexutil.Decode(data)
		if derr != nil {
			return nil
		}

		return b
	case []byte:
		return data
	default:
		return nil
	}
}
