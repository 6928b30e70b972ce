package health

import (
	"context"

	"github.com/oasislabs/sui-gateway/rpc"
	"github.com/oasislabs/sui-gateway/stats"
)

// Collector gathers the stats of the services running in the gateway
type Collector interface {
	Stats() stats.Group
}

// Reporter reports the status the gateway advertises
type Reporter interface {
	Status() stats.HealthStatus
}

type Services struct {
	Collector Collector
	Reporter  Reporter
}

type HealthHandler struct {
	collector Collector
	reporter  Reporter
}

func NewHealthHandler(services Services) HealthHandler {
	if services.Collector == nil {
		panic("Collector must be provided as a service")
	}
	if services.Reporter == nil {
		panic("Reporter must be provided as a service")
	}

	return HealthHandler{collector: services.Collector, reporter: services.Reporter}
}

func (h HealthHandler) GetHealth(ctx context.Context, v interface{}) (interface{}, error) {
	_ = v.(*GetHealthRequest)
	return &GetHealthResponse{
		Health:  h.reporter.Status(),
		Metrics: h.collector.Stats(),
	}, nil
}

func BindHandler(services Services, binder rpc.HandlerBinder) {
	handler := NewHealthHandler(services)

	binder.Bind("GET", "/v0/api/health", rpc.HandlerFunc(handler.GetHealth),
		rpc.EntityFactoryFunc(func() interface{} { return &GetHealthRequest{} }))
}
