package stats

import "sync/atomic"

// HealthStatus of a service. This status should be advertised by
// a service so that a health checker can know what action
// if any is required to keep the status on a Healthy state
type HealthStatus uint32

const (
	// Healthy status means that the service is up and running
	// and can take incoming requests
	Healthy HealthStatus = 0

	// Drain a service so that it processes the requests that
	// already are inflight but does not take further requests
	Drain HealthStatus = 1

	// Unhealthy status for a service that should be restarted
	Unhealthy HealthStatus = 2
)

func (s HealthStatus) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Drain:
		return "drain"
	case Unhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// HealthCheck holds the advertised status of the gateway. The zero
// value is Healthy. It is safe for concurrent use
type HealthCheck struct {
	status uint32
}

// Status returns the current status
func (h *HealthCheck) Status() HealthStatus {
	return HealthStatus(atomic.LoadUint32(&h.status))
}

// Set changes the advertised status
func (h *HealthCheck) Set(status HealthStatus) {
	atomic.StoreUint32(&h.status, uint32(status))
}
