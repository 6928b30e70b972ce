package tx

import (
	"context"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/oasislabs/sui-gateway/types"
	pkgerrors "github.com/pkg/errors"
)

var errEmptyResponse = pkgerrors.New("empty response from node")

// RequiredOptions are the facets every submission asks for. The
// normalizer cannot build a result without any of them.
var RequiredOptions = sui.ResponseOptions{
	ShowEvents:         true,
	ShowBalanceChanges: true,
	ShowRawInput:       true,
	ShowRawEffects:     true,
}

type SubmitterServices struct {
	Logger log.Logger
	Client sui.Client
}

// Submitter hands signed transactions to a node and waits for their
// local execution
type Submitter struct {
	logger log.Logger
	client sui.Client
}

func NewSubmitter(services *SubmitterServices) *Submitter {
	if services.Logger == nil {
		panic("Logger must be provided")
	}
	if services.Client == nil {
		panic("Client must be provided")
	}

	return &Submitter{
		logger: services.Logger.ForClass("tx", "Submitter"),
		client: services.Client,
	}
}

// Submit blocks until the node executed the transaction or the call
// failed. Cancellation of ctx is propagated to the node call.
func (s *Submitter) Submit(
	ctx context.Context,
	tx types.SignedTransaction,
) (*sui.TransactionBlockResponse, errors.Err) {
	txBytes, err := tx.TxBytes()
	if err != nil {
		return nil, errors.New(errors.ErrInternalError, err)
	}

	res, err := s.client.ExecuteTransactionBlock(ctx, sui.ExecuteRequest{
		TxBytes:     txBytes,
		Signatures:  tx.Signatures(),
		Options:     RequiredOptions,
		RequestType: sui.WaitForLocalExecution,
	})
	if err != nil {
		e := errors.New(errors.ErrSubmitTransaction, err)
		s.logger.Debug(ctx, "transaction submission failed", log.MapFields{
			"call_type": "SubmitTransactionFailure",
		}, e)
		return nil, e
	}

	if res == nil {
		return nil, errors.New(errors.ErrSubmitTransaction, errEmptyResponse)
	}

	return res, nil
}
