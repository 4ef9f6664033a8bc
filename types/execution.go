package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// OperationResult is the recorded outcome of a single operation invocation.
type OperationResult struct {
	Index      int            `json:"index"`
	Target     common.Address `json:"target"`
	Success    bool           `json:"success"`
	ReturnData hexutil.Bytes  `json:"returnData"`
	// Skipped is true when the operation had already been executed and was not invoked again.
	Skipped bool `json:"skipped,omitempty"`
}

// ExecutionResult summarizes a completed batch execution.
type ExecutionResult struct {
	BatchID    uint64            `json:"batchId"`
	Operations []OperationResult `json:"operations"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	GasUsed    uint64            `json:"gasUsed"`
	GasSaved   uint64            `json:"gasSaved"`
}

// AllSucceeded reports whether every operation of the batch succeeded.
func (r ExecutionResult) AllSucceeded() bool {
	return r.Failed == 0
}

// GasStats is the lifetime gas accounting of an account.
type GasStats struct {
	TotalSaved      uint64 `json:"totalSaved"`
	AveragePerBatch uint64 `json:"averagePerBatch"`
	BatchCount      uint64 `json:"batchCount"`
}

// CallResult is the outcome of an isolated sub-call made by the execution engine.
type CallResult struct {
	Success    bool
	ReturnData []byte
	// Err holds the failure reason when Success is false. It is informational only.
	Err error
}
