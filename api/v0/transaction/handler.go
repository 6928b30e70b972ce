package transaction

import (
	"context"
	stderr "errors"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/rpc"
	"github.com/oasislabs/sui-gateway/tx"
)

// Executor runs the execution pipeline for a signed transaction
type Executor interface {
	Execute(ctx context.Context, in tx.EncodedInput) (tx.ExecutionResult, errors.Err)
}

type Services struct {
	Logger   log.Logger
	Executor Executor
}

// TransactionHandler implements the handlers for transaction execution
type TransactionHandler struct {
	logger   log.Logger
	executor Executor
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(services Services) TransactionHandler {
	if services.Logger == nil {
		panic("Logger must be provided as a service")
	}
	if services.Executor == nil {
		panic("Executor must be provided as a service")
	}

	return TransactionHandler{
		logger:   services.Logger.ForClass("transaction", "handler"),
		executor: services.Executor,
	}
}

// ExecuteTransaction submits a signed transaction and responds with the
// normalized outcome. A transaction that ran and failed on chain is a
// successful request whose body carries the errors.
func (h TransactionHandler) ExecuteTransaction(ctx context.Context, v interface{}) (interface{}, error) {
	req := v.(*ExecuteTransactionRequest)

	if len(req.TxBytes) == 0 {
		err := errors.New(errors.ErrEmptyInput, stderr.New("txBytes field has not been set"))
		h.logger.Debug(ctx, "failed to execute transaction", log.MapFields{
			"call_type": "ExecuteTransactionFailure",
		}, err)
		return nil, err
	}

	res, err := h.executor.Execute(ctx, tx.EncodedInput{
		TxBytes:    req.TxBytes,
		Signatures: req.Signatures,
	})
	if err != nil {
		h.logger.Debug(ctx, "failed to execute transaction", log.MapFields{
			"call_type": "ExecuteTransactionFailure",
		}, err)
		return nil, err
	}

	return res, nil
}

// BindHandler binds the transaction handler to the handler binder
func BindHandler(services Services, binder rpc.HandlerBinder) {
	handler := NewTransactionHandler(services)

	binder.Bind("POST", "/v0/api/transaction/execute", rpc.HandlerFunc(handler.ExecuteTransaction),
		rpc.EntityFactoryFunc(func() interface{} { return &ExecuteTransactionRequest{} }))
}
