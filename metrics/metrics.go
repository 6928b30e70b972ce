package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Service is a background service used to expose the metrics
// collected by the gateway.
type Service interface {
	// StartInstrumentation starts exposing metrics.
	StartInstrumentation()

	// StopInstrumentation stops exposing metrics.
	StopInstrumentation()
}

// New constructs a new instrumentation service that exposes the
// metrics of gatherer.
func New(config *Config, logger log.Logger, gatherer prometheus.Gatherer) (Service, error) {
	logger = logger.ForClass("metrics", "Service")

	switch config.Mode {
	case metricsModeNone, "":
		return newStubService()
	case metricsModePull:
		return newPullService(config, logger, gatherer)
	case metricsModePush:
		return newPushService(config, logger, gatherer)
	default:
		return nil, fmt.Errorf("metrics: unsupported mode: '%v'", config.Mode)
	}
}

// A stub service is a stub instrumentation service.
type stubService struct{}

func newStubService() (Service, error) {
	return &stubService{}, nil
}

// StartInstrumentation implements the instrumentation service interface for stubService.
func (s *stubService) StartInstrumentation() {}

// StopInstrumentation implements the instrumentation service interface for stubService.
func (s *stubService) StopInstrumentation() {}

// A pull service is a service which exposes metrics that Prometheus can pull.
type pullService struct {
	// Pull service context.
	ctx context.Context

	// The HTTP server which hosts the Prometheus metrics endpoint.
	server *http.Server

	// A logger, for logging.
	logger log.Logger
}

func newPullService(config *Config, logger log.Logger, gatherer prometheus.Gatherer) (Service, error) {
	return &pullService{
		ctx: context.Background(),
		server: &http.Server{
			Addr:           fmt.Sprintf("%s:%s", config.PullAddr, config.PullPort),
			Handler:        promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		logger: logger,
	}, nil
}

// StartInstrumentation implements the instrumentation service interface for pullService.
func (s *pullService) StartInstrumentation() {
	server := s.server
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error(s.ctx, "metrics: pull server stopped", log.MapFields{
				"call_type": "PullServerFailure",
				"err":       err.Error(),
			})
		}
	}()
}

// StopInstrumentation implements the instrumentation service interface for pullService.
func (s *pullService) StopInstrumentation() {
	if s.server != nil {
		_ = s.server.Shutdown(s.ctx)
		s.server = nil
	}
}

// A push service is used to push metrics to Prometheus.
type pushService struct {
	// Push service context.
	ctx    context.Context
	cancel context.CancelFunc

	// The pusher which pushes updates to Prometheus.
	pusher *push.Pusher

	// The frequency with which to push updates to Prometheus.
	interval time.Duration

	// A logger, for logging.
	logger log.Logger
}

func newPushService(config *Config, logger log.Logger, gatherer prometheus.Gatherer) (Service, error) {
	for key, v := range map[string]string{
		cfgMetricsPushAddr:          config.PushAddr,
		cfgMetricsPushJobName:       config.PushJobName,
		cfgMetricsPushInstanceLabel: config.PushInstanceLabel,
	} {
		if v == "" {
			return nil, fmt.Errorf("metrics: %s required for push mode", key)
		}
	}

	if config.PushInterval <= 0 {
		return nil, fmt.Errorf("metrics: %s must be positive", cfgMetricsPushInterval)
	}

	pusher := push.New(config.PushAddr, config.PushJobName).
		Grouping("instance", config.PushInstanceLabel).
		Gatherer(gatherer)

	ctx, cancel := context.WithCancel(context.Background())
	return &pushService{
		ctx:      ctx,
		cancel:   cancel,
		pusher:   pusher,
		interval: config.PushInterval,
		logger:   logger,
	}, nil
}

// StartInstrumentation implements the instrumentation service interface for pushService.
func (s *pushService) StartInstrumentation() {
	go s.startWorker()
}

// StopInstrumentation implements the instrumentation service interface for pushService.
func (s *pushService) StopInstrumentation() {
	s.cancel()
}

func (s *pushService) startWorker() {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return

		case <-t.C:
			if err := s.pusher.Push(); err != nil {
				err := errors.New(errors.ErrPrometheusPushError, err)
				s.logger.Error(s.ctx, "metrics: unable to push to prometheus", err)
			}
		}
	}
}
