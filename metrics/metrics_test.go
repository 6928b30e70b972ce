package metrics

import (
	"io/ioutil"
	"testing"
	"time"

	"github.com/oasislabs/sui-gateway/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

var Logger = log.NewLogrus(log.LogrusLoggerProperties{
	Output: ioutil.Discard,
})

func TestExecutionMetricsObserve(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewExecutionMetrics("test", registry)

	m.Observe(OutcomeExecuted)
	m.Observe(OutcomeExecuted)
	m.Observe(OutcomeClientError)
	m.ObserveStage("decode", time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues("executed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("client_error")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Requests.WithLabelValues("failed")))

	families, err := registry.Gather()
	assert.Nil(t, err)
	assert.Equal(t, 2, len(families))
}

func TestNewServiceModes(t *testing.T) {
	registry := prometheus.NewRegistry()

	s, err := New(&Config{Mode: "none"}, Logger, registry)
	assert.Nil(t, err)
	assert.IsType(t, &stubService{}, s)

	s, err = New(&Config{Mode: "pull", PullAddr: "localhost", PullPort: "0"}, Logger, registry)
	assert.Nil(t, err)
	assert.IsType(t, &pullService{}, s)

	_, err = New(&Config{Mode: "push"}, Logger, registry)
	assert.Error(t, err)

	s, err = New(&Config{
		Mode:              "push",
		PushAddr:          "http://localhost:9091",
		PushJobName:       "gateway",
		PushInstanceLabel: "test",
		PushInterval:      time.Second,
	}, Logger, registry)
	assert.Nil(t, err)
	assert.IsType(t, &pushService{}, s)
	s.StopInstrumentation()

	_, err = New(&Config{Mode: "other"}, Logger, registry)
	assert.Error(t, err)
}
