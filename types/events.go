package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Event is a notification emitted by the batch contract.
type Event interface {
	EventName() string
}

var (
	_ Event = BatchCreated{}
	_ Event = TransactionAdded{}
	_ Event = TransactionRemoved{}
	_ Event = TransactionExecuted{}
	_ Event = BatchExecuted{}
	_ Event = BatchCancelled{}
	_ Event = ExecutorAuthorized{}
	_ Event = ExecutorRevoked{}
	_ Event = OwnershipTransferred{}
	_ Event = FeesWithdrawn{}
)

// BatchCreated is emitted once a batch has been stored.
type BatchCreated struct {
	BatchID        uint64         `json:"batchId"`
	Creator        common.Address `json:"creator"`
	OperationCount int            `json:"operationCount"`
	EstimatedGas   uint64         `json:"estimatedGas"`
}

func (BatchCreated) EventName() string { return "BatchCreated" }

// TransactionAdded is emitted when an operation is appended to a pending batch.
type TransactionAdded struct {
	BatchID uint64         `json:"batchId"`
	Index   int            `json:"index"`
	Target  common.Address `json:"target"`
}

func (TransactionAdded) EventName() string { return "TransactionAdded" }

// TransactionRemoved is emitted when an operation is removed from a pending batch.
type TransactionRemoved struct {
	BatchID uint64         `json:"batchId"`
	Index   int            `json:"index"`
	Target  common.Address `json:"target"`
}

func (TransactionRemoved) EventName() string { return "TransactionRemoved" }

// TransactionExecuted is emitted after each operation of a batch has been invoked.
type TransactionExecuted struct {
	BatchID    uint64         `json:"batchId"`
	Index      int            `json:"index"`
	Target     common.Address `json:"target"`
	Success    bool           `json:"success"`
	ReturnData []byte         `json:"returnData"`
}

func (TransactionExecuted) EventName() string { return "TransactionExecuted" }

// BatchExecuted is emitted once per batch after all of its operations have run. Success is true
// only if every operation succeeded.
type BatchExecuted struct {
	BatchID uint64 `json:"batchId"`
	Success bool   `json:"success"`
	GasUsed uint64 `json:"gasUsed"`
}

func (BatchExecuted) EventName() string { return "BatchExecuted" }

// BatchCancelled is emitted when the creator cancels a pending batch.
type BatchCancelled struct {
	BatchID uint64         `json:"batchId"`
	Creator common.Address `json:"creator"`
}

func (BatchCancelled) EventName() string { return "BatchCancelled" }

type ExecutorAuthorized struct {
	Executor common.Address `json:"executor"`
}

func (ExecutorAuthorized) EventName() string { return "ExecutorAuthorized" }

type ExecutorRevoked struct {
	Executor common.Address `json:"executor"`
}

func (ExecutorRevoked) EventName() string { return "ExecutorRevoked" }

type OwnershipTransferred struct {
	PreviousOwner common.Address `json:"previousOwner"`
	NewOwner      common.Address `json:"newOwner"`
}

func (OwnershipTransferred) EventName() string { return "OwnershipTransferred" }

type FeesWithdrawn struct {
	To     common.Address `json:"to"`
	Amount *big.Int       `json:"amount"`
}

func (FeesWithdrawn) EventName() string { return "FeesWithdrawn" }
