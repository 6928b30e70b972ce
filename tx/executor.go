package tx

import (
	"context"
	"time"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/metrics"
	"github.com/oasislabs/sui-gateway/stats"
	"github.com/oasislabs/sui-gateway/sui"
)

const executeMethod = "Execute"

const (
	stageDecode    = "decode"
	stageSubmit    = "submit"
	stageNormalize = "normalize"
)

type ExecutorServices struct {
	Logger  log.Logger
	Client  sui.Client
	Metrics *metrics.ExecutionMetrics
}

type ExecutorProps struct {
	Policy Policy
}

// Executor runs the execution pipeline: decode, assemble, submit and
// normalize. It holds no state between calls and is safe for
// concurrent use.
type Executor struct {
	logger     log.Logger
	submitter  *Submitter
	normalizer *Normalizer
	metrics    *metrics.ExecutionMetrics
	tracker    *stats.MethodTracker
}

func NewExecutor(services *ExecutorServices, props *ExecutorProps) *Executor {
	if services.Logger == nil {
		panic("Logger must be provided")
	}

	return &Executor{
		logger: services.Logger.ForClass("tx", "Executor"),
		submitter: NewSubmitter(&SubmitterServices{
			Logger: services.Logger,
			Client: services.Client,
		}),
		normalizer: NewNormalizer(props.Policy),
		metrics:    services.Metrics,
		tracker: stats.NewMethodTrackerWithResult(&stats.MethodTrackerProps{
			Methods: []string{executeMethod},
			Results: []string{
				string(metrics.OutcomeClientError),
				string(metrics.OutcomeInternalError),
				string(metrics.OutcomeExecuted),
				string(metrics.OutcomeFailed),
			},
			WindowSize: 64,
		}),
	}
}

func (e *Executor) Name() string {
	return "tx.Executor"
}

func (e *Executor) Stats() stats.Metrics {
	s := e.tracker.Stats()
	s["policy"] = e.normalizer.Policy().String()
	return s
}

// Execute submits the caller's signed transaction and waits for its
// result. A ClientError is returned before any node call is made.
func (e *Executor) Execute(ctx context.Context, in EncodedInput) (ExecutionResult, errors.Err) {
	v, err := e.tracker.InstrumentResult(executeMethod, func() *stats.TrackResult {
		result, err := e.execute(ctx, in)
		outcome := outcomeOf(result, err)
		if e.metrics != nil {
			e.metrics.Observe(outcome)
		}

		if err != nil {
			return &stats.TrackResult{Value: result, Error: err, Type: string(outcome)}
		}
		return &stats.TrackResult{Value: result, Type: string(outcome)}
	})
	if err != nil {
		return nil, err.(errors.Err)
	}

	return v.(ExecutionResult), nil
}

func (e *Executor) execute(ctx context.Context, in EncodedInput) (ExecutionResult, errors.Err) {
	start := time.Now()
	decoded, err := Decode(in)
	e.observeStage(stageDecode, start)
	if err != nil {
		e.logger.Debug(ctx, "failed to decode transaction", log.MapFields{
			"call_type": "DecodeTransactionFailure",
		}, err)
		return nil, err
	}

	tx := Assemble(decoded)

	e.logger.Debug(ctx, "", log.MapFields{
		"call_type":  "SubmitTransactionAttempt",
		"sender":     decoded.Data.V1.Sender.String(),
		"signatures": len(decoded.Signatures),
	})

	start = time.Now()
	res, err := e.submitter.Submit(ctx, tx)
	e.observeStage(stageSubmit, start)
	if err != nil {
		e.logger.Warn(ctx, "failed to submit transaction", log.MapFields{
			"call_type": "SubmitTransactionFailure",
		}, err)
		return nil, err
	}

	start = time.Now()
	result, err := e.normalizer.Normalize(res)
	e.observeStage(stageNormalize, start)
	if err != nil {
		e.logger.Warn(ctx, "node response violates its contract", log.MapFields{
			"call_type": "NormalizeResponseFailure",
			"digest":    res.Digest,
		}, err)
		return nil, err
	}

	switch r := result.(type) {
	case ExecutionFailure:
		e.logger.Debug(ctx, "transaction executed with errors", log.MapFields{
			"call_type": "ExecuteTransactionFailure",
			"digest":    res.Digest,
			"errors":    r.Errors,
		})
	case ExecutionSuccess:
		e.logger.Debug(ctx, "transaction executed", log.MapFields{
			"call_type": "ExecuteTransactionSuccess",
			"digest":    r.Digest.String(),
			"events":    len(r.Transaction.Events),
		})
	}

	return result, nil
}

func (e *Executor) observeStage(stage string, start time.Time) {
	if e.metrics != nil {
		e.metrics.ObserveStage(stage, time.Since(start))
	}
}

func outcomeOf(result ExecutionResult, err errors.Err) metrics.Outcome {
	if err != nil {
		if errors.IsClientError(err) {
			return metrics.OutcomeClientError
		}
		return metrics.OutcomeInternalError
	}

	if _, ok := result.(ExecutionFailure); ok {
		return metrics.OutcomeFailed
	}
	return metrics.OutcomeExecuted
}
