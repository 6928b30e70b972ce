package tx

import (
	"encoding/json"

	"github.com/oasislabs/sui-gateway/types"
)

// ExecutionResult is either an ExecutionSuccess or an ExecutionFailure
type ExecutionResult interface {
	isExecutionResult()
}

// ExecutionFailure is a transaction the node processed but reported
// errors for. Errors is never empty.
type ExecutionFailure struct {
	Errors []string
}

func (ExecutionFailure) isExecutionResult() {}

func (f ExecutionFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Errors []string `json:"errors"`
	}{Errors: f.Errors})
}

// ExecutedTransaction is a self contained snapshot of the outcome of
// one transaction
type ExecutedTransaction struct {
	SenderSignedData types.SenderSignedData
	Effects          types.TransactionEffects
	BalanceChanges   []types.BalanceChange
	Events           []types.Event
}

// ExecutionSuccess is a transaction the node executed without
// reporting errors
type ExecutionSuccess struct {
	Digest      types.Digest
	Transaction ExecutedTransaction
	RawEffects  []byte
}

func (ExecutionSuccess) isExecutionResult() {}

func (s ExecutionSuccess) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Digest         types.Digest             `json:"digest"`
		Transaction    types.SenderSignedData   `json:"transaction"`
		Effects        types.TransactionEffects `json:"effects"`
		Events         []types.Event            `json:"events"`
		BalanceChanges []types.BalanceChange    `json:"balanceChanges"`
		RawEffects     []byte                   `json:"rawEffects"`
	}{
		Digest:         s.Digest,
		Transaction:    s.Transaction.SenderSignedData,
		Effects:        s.Transaction.Effects,
		Events:         s.Transaction.Events,
		BalanceChanges: s.Transaction.BalanceChanges,
		RawEffects:     s.RawEffects,
	})
}
