package gateway

import (
	"context"

	"github.com/oasislabs/sui-gateway/api/v0/health"
	"github.com/oasislabs/sui-gateway/api/v0/transaction"
	"github.com/oasislabs/sui-gateway/api/v0/version"
	"github.com/oasislabs/sui-gateway/backend"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/metrics"
	"github.com/oasislabs/sui-gateway/rpc"
	"github.com/oasislabs/sui-gateway/stats"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/oasislabs/sui-gateway/tx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

var RootLogger = log.NewLogrus(log.LogrusLoggerProperties{
	Level: logrus.DebugLevel,
})

var RootContext = context.Background()

// BackendClientFactoryFunc creates the client used to reach the
// configured backend
type BackendClientFactoryFunc func(context.Context, backend.Services, *backend.Config) (sui.Client, error)

type Factories struct {
	BackendClientFactory BackendClientFactoryFunc
}

// Deps are the dependencies shared by all the services
type Deps struct {
	Logger   log.Logger
	Registry *prometheus.Registry
}

// ServiceGroup holds the services that back the routers exposed by
// the gateway
type ServiceGroup struct {
	Logger   log.Logger
	Executor *tx.Executor
	Registry *prometheus.Registry
	Backend  backend.BackendProvider
	Services Services
	Health   *stats.HealthCheck
}

// NewRegistry creates the registry the gateway's prometheus metrics
// are registered to
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// NewServiceGroup creates the services of the gateway dialing the
// configured backend
func NewServiceGroup(ctx context.Context, deps Deps, config *Config) (*ServiceGroup, error) {
	return NewServiceGroupWithFactories(ctx, deps, config, Factories{
		BackendClientFactory: backend.NewBackendClient,
	})
}

// NewServiceGroupWithFactories creates the services of the gateway
// using the provided factories
func NewServiceGroupWithFactories(
	ctx context.Context,
	deps Deps,
	config *Config,
	factories Factories,
) (*ServiceGroup, error) {
	if deps.Logger == nil {
		return nil, errors.New("Logger must be provided")
	}
	if deps.Registry == nil {
		return nil, errors.New("Registry must be provided")
	}

	client, err := factories.BackendClientFactory(ctx, backend.Services{
		Logger: deps.Logger,
	}, &config.BackendConfig)
	if err != nil {
		return nil, err
	}

	executor := tx.NewExecutor(&tx.ExecutorServices{
		Logger:  deps.Logger,
		Client:  client,
		Metrics: metrics.NewExecutionMetrics("gateway", deps.Registry),
	}, &tx.ExecutorProps{
		Policy: config.NormalizerConfig.Policy,
	})

	services := NewServices()
	services.Add(RuntimeService{})
	services.Add(executor)
	if s, ok := client.(Service); ok {
		services.Add(s)
	}

	return &ServiceGroup{
		Logger:   deps.Logger,
		Executor: executor,
		Registry: deps.Registry,
		Backend:  config.BackendConfig.Provider,
		Services: services,
		Health:   &stats.HealthCheck{},
	}, nil
}

func newBinder(logger log.Logger, config BindConfig) *rpc.HttpBinder {
	limit := uint(config.HttpMaxBodyBytes)

	binder := rpc.NewHttpBinder(rpc.HttpBinderProperties{
		Encoder: rpc.JsonEncoder{},
		Logger:  logger,
		HandlerFactory: rpc.HttpHandlerFactoryFunc(func(factory rpc.EntityFactory, handler rpc.Handler) rpc.HttpMiddleware {
			return rpc.NewHttpJsonHandler(rpc.HttpJsonHandlerProperties{
				Limit:   limit,
				Handler: handler,
				Logger:  logger,
				Factory: factory,
			})
		}),
	})

	binder.AddPreProcessor(rpc.NewHttpCorsPreProcessor(rpc.HttpCorsPreProcessorProps{
		Enabled:          true,
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type", rpc.HttpHeaderTraceID},
		ExposedHeaders:   []string{rpc.HttpHeaderTraceID},
		AllowCredentials: false,
	}))

	return binder
}

// NewPublicRouter creates the router that serves transaction
// execution
func NewPublicRouter(group *ServiceGroup, config BindConfig) *rpc.HttpRouter {
	binder := newBinder(group.Logger, config)

	transaction.BindHandler(transaction.Services{
		Logger:   group.Logger,
		Executor: group.Executor,
	}, binder)
	version.BindHandler(&version.Deps{Backend: group.Backend.String()}, binder)

	router := binder.Build()
	group.Services.Add(RouterService{name: "router.public", router: router})
	return router
}

// NewPrivateRouter creates the router that serves the operational
// endpoints of the gateway
func NewPrivateRouter(group *ServiceGroup, config BindConfig) *rpc.HttpRouter {
	binder := newBinder(group.Logger, config)

	health.BindHandler(health.Services{
		Collector: group.Services,
		Reporter:  group.Health,
	}, binder)
	version.BindHandler(&version.Deps{Backend: group.Backend.String()}, binder)

	router := binder.Build()
	group.Services.Add(RouterService{name: "router.private", router: router})
	return router
}

// RouterService exposes the stats of a router as a Service
type RouterService struct {
	name   string
	router *rpc.HttpRouter
}

func (s RouterService) Name() string {
	return s.name
}

func (s RouterService) Stats() stats.Metrics {
	return s.router.Stats()
}
