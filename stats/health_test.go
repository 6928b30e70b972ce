package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckDefault(t *testing.T) {
	var h HealthCheck

	assert.Equal(t, Healthy, h.Status())
}

func TestHealthCheckSet(t *testing.T) {
	var h HealthCheck

	h.Set(Drain)

	assert.Equal(t, Drain, h.Status())
	assert.Equal(t, "drain", h.Status().String())
}

func TestHealthStatusString(t *testing.T) {
	assert.Equal(t, "healthy", Healthy.String())
	assert.Equal(t, "unhealthy", Unhealthy.String())
	assert.Equal(t, "unknown", HealthStatus(7).String())
}
