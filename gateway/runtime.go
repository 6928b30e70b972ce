package gateway

import (
	"runtime"

	"github.com/oasislabs/sui-gateway/stats"
)

// RuntimeService is an abstraction of the go runtime
// to be able to expose application metrics
type RuntimeService struct{}

// Name is the implementation of Service.Name
// for RuntimeService
func (s RuntimeService) Name() string {
	return "runtime"
}

// Stats is the implementation of Service.Stats
// for RuntimeService
func (s RuntimeService) Stats() stats.Metrics {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	metrics := make(stats.Metrics)
	metrics["NumCPU"] = runtime.NumCPU()
	metrics["NumGoroutine"] = runtime.NumGoroutine()
	metrics["HeapAlloc"] = mem.HeapAlloc
	metrics["NumGC"] = mem.NumGC
	return metrics
}
