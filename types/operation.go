package types

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Operation is a single call bundled inside a batch. Target, Value, Data and GasLimit are supplied
// by the batch creator; Executed, Success and ReturnData are written once by the execution engine.
type Operation struct {
	// Target is the account invoked by the operation.
	Target common.Address `json:"target" validate:"required"`
	// Value is the amount of native currency (wei) forwarded with the call. A nil value is treated
	// as zero.
	Value *big.Int `json:"value"`
	// Data is the call payload.
	Data hexutil.Bytes `json:"data"`
	// GasLimit is the gas budget the operation may consume when invoked.
	GasLimit uint64 `json:"gasLimit" validate:"gt=0"`

	Executed   bool          `json:"executed"`
	Success    bool          `json:"success"`
	ReturnData hexutil.Bytes `json:"returnData"`
}

// NewOperation creates a pending operation.
func NewOperation(target common.Address, value *big.Int, data []byte, gasLimit uint64) Operation {
	return Operation{
		Target:   target,
		Value:    value,
		Data:     data,
		GasLimit: gasLimit,
	}
}

// ValueOrZero returns the operation value, substituting zero for nil.
func (o Operation) ValueOrZero() *big.Int {
	if o.Value == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(o.Value)
}

// Pending returns a copy of the operation with all execution outcome fields cleared.
func (o Operation) Pending() Operation {
	p := o.Clone()
	p.Executed = false
	p.Success = false
	p.ReturnData = nil

	return p
}

// Clone returns a deep copy of the operation.
func (o Operation) Clone() Operation {
	c := o
	if o.Value != nil {
		c.Value = new(big.Int).Set(o.Value)
	}
	if o.Data != nil {
		c.Data = bytes.Clone(o.Data)
	}
	if o.ReturnData != nil {
		c.ReturnData = bytes.Clone(o.ReturnData)
	}

	return c
}
