package sui

import (
	"context"
)

// Client is the capability of submitting transactions to a node
type Client interface {
	// ExecuteTransactionBlock submits a signed transaction and blocks
	// for as long as the requested wait mode demands
	ExecuteTransactionBlock(context.Context, ExecuteRequest) (*TransactionBlockResponse, error)
}
