package sui

import (
	"encoding/json"
)

// ExecuteRequestType is the wait mode requested when submitting
// a transaction
type ExecuteRequestType string

const (
	// WaitForEffectsCert returns once the transaction is certified,
	// before the node executed it locally
	WaitForEffectsCert ExecuteRequestType = "WaitForEffectsCert"

	// WaitForLocalExecution returns once the node executed the
	// transaction and can report its full effects
	WaitForLocalExecution ExecuteRequestType = "WaitForLocalExecution"
)

// ResponseOptions selects the facets returned with a transaction
// block response
type ResponseOptions struct {
	ShowInput          bool `json:"showInput"`
	ShowRawInput       bool `json:"showRawInput"`
	ShowEffects        bool `json:"showEffects"`
	ShowEvents         bool `json:"showEvents"`
	ShowObjectChanges  bool `json:"showObjectChanges"`
	ShowBalanceChanges bool `json:"showBalanceChanges"`
	ShowRawEffects     bool `json:"showRawEffects"`
}

// ExecuteRequest is a signed transaction ready for submission
type ExecuteRequest struct {
	TxBytes     []byte
	Signatures  [][]byte
	Options     ResponseOptions
	RequestType ExecuteRequestType
}

// Event is an event as reported by a node. All fields are kept in
// their text form.
type Event struct {
	PackageID         string          `json:"packageId"`
	TransactionModule string          `json:"transactionModule"`
	Sender            string          `json:"sender"`
	Type              string          `json:"type"`
	ParsedJSON        json.RawMessage `json:"parsedJson,omitempty"`
	BcsEncoding       string          `json:"bcsEncoding,omitempty"`
	Bcs               string          `json:"bcs"`
}

// TransactionBlockResponse is the response to an execution request.
// Binary facets are kept in their text form. Optional facets are nil
// when the node omitted them.
type TransactionBlockResponse struct {
	Digest                  string             `json:"digest"`
	RawTransaction          string             `json:"rawTransaction,omitempty"`
	RawEffects              json.RawMessage    `json:"rawEffects,omitempty"`
	Events                  *[]Event           `json:"events,omitempty"`
	BalanceChanges          *[]json.RawMessage `json:"balanceChanges,omitempty"`
	Errors                  []string           `json:"errors,omitempty"`
	ConfirmedLocalExecution *bool              `json:"confirmedLocalExecution,omitempty"`
}
