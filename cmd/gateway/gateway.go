package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oasislabs/sui-gateway/config"
	"github.com/oasislabs/sui-gateway/gateway"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/metrics"
	"github.com/oasislabs/sui-gateway/stats"
)

// drainPeriod gives load balancers polling the health endpoint time
// to stop routing requests before the servers shut down
const drainPeriod = 5 * time.Second

func newServer(bindConfig gateway.BindConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           fmt.Sprintf("%s:%d", bindConfig.HttpInterface, bindConfig.HttpPort),
		Handler:        handler,
		ReadTimeout:    time.Duration(bindConfig.HttpReadTimeoutMs) * time.Millisecond,
		WriteTimeout:   time.Duration(bindConfig.HttpWriteTimeoutMs) * time.Millisecond,
		MaxHeaderBytes: int(bindConfig.HttpMaxHeaderBytes),
	}
}

func serve(ctx context.Context, logger log.Logger, name string, bindConfig gateway.BindConfig, s *http.Server) {
	var err error
	if bindConfig.HttpsEnabled {
		err = s.ListenAndServeTLS(bindConfig.TlsCertificatePath, bindConfig.TlsPrivateKeyPath)
	} else {
		err = s.ListenAndServe()
	}

	if err != nil && err != http.ErrServerClosed {
		logger.Fatal(ctx, "http server failed to listen", log.MapFields{
			"call_type": "HttpServerListenFailure",
			"server":    name,
			"err":       err.Error(),
		})
	}
}

func main() {
	parser, err := config.Generate(&gateway.Config{})
	if err != nil {
		fmt.Println("failed to generate configuration parser: ", err.Error())
		os.Exit(1)
	}

	if err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Println("failed to configure gateway: ", err.Error())
		_ = parser.Usage()
		os.Exit(1)
	}

	ctx := gateway.RootContext
	config := parser.Config.(*gateway.Config)
	logger := log.New(&config.LoggingConfig)
	logger.Info(ctx, "configuration parsed", log.MapFields{
		"call_type": "ConfigParseSuccess",
	}, config)

	registry := gateway.NewRegistry()
	group, err := gateway.NewServiceGroup(ctx, gateway.Deps{
		Logger:   logger,
		Registry: registry,
	}, config)
	if err != nil {
		logger.Fatal(ctx, "failed to start services", log.MapFields{
			"call_type": "ServicesStartFailure",
			"err":       err.Error(),
		})
	}

	metricsService, err := metrics.New(&config.MetricsConfig, logger, registry)
	if err != nil {
		logger.Fatal(ctx, "failed to start metrics service", log.MapFields{
			"call_type": "MetricsStartFailure",
			"err":       err.Error(),
		})
	}
	metricsService.StartInstrumentation()
	defer metricsService.StopInstrumentation()

	publicConfig := config.BindPublicConfig.BindConfig
	privateConfig := config.BindPrivateConfig.BindConfig
	public := newServer(publicConfig, gateway.NewPublicRouter(group, publicConfig))
	private := newServer(privateConfig, gateway.NewPrivateRouter(group, privateConfig))

	go serve(ctx, logger, "public", publicConfig, public)
	go serve(ctx, logger, "private", privateConfig, private)

	logger.Info(ctx, "gateway started", log.MapFields{
		"call_type": "GatewayStartSuccess",
		"public":    public.Addr,
		"private":   private.Addr,
	})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	group.Health.Set(stats.Drain)
	logger.Info(ctx, "draining gateway", log.MapFields{
		"call_type": "GatewayDrainAttempt",
	})
	time.Sleep(drainPeriod)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, s := range []*http.Server{public, private} {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "failed to shutdown http server", log.MapFields{
				"call_type": "HttpServerShutdownFailure",
				"addr":      s.Addr,
				"err":       err.Error(),
			})
		}
	}
}
