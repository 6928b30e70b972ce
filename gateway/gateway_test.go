package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oasislabs/sui-gateway/backend"
	"github.com/oasislabs/sui-gateway/config"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/stats"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/oasislabs/sui-gateway/sui/suitest"
	"github.com/oasislabs/sui-gateway/tx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var Logger = log.NewLogrus(log.LogrusLoggerProperties{
	Output: ioutil.Discard,
})

func parseConfig(t *testing.T, args ...string) *Config {
	c := &Config{}
	parser, err := config.Generate(c)
	require.NoError(t, err)
	require.NoError(t, parser.Parse(args))
	return c
}

func newServiceGroup(t *testing.T, client *suitest.MockClient) *ServiceGroup {
	c := parseConfig(t, "--sui.url", "http://127.0.0.1:9000")

	group, err := NewServiceGroupWithFactories(context.TODO(), Deps{
		Logger:   Logger,
		Registry: NewRegistry(),
	}, c, Factories{
		BackendClientFactory: func(ctx context.Context, services backend.Services, config *backend.Config) (sui.Client, error) {
			return client, nil
		},
	})
	require.NoError(t, err)
	return group
}

func TestConfigDefaults(t *testing.T) {
	c := parseConfig(t, "--sui.url", "http://127.0.0.1:9000")

	assert.Equal(t, "127.0.0.1", c.BindPublicConfig.HttpInterface)
	assert.Equal(t, int32(1234), c.BindPublicConfig.HttpPort)
	assert.Equal(t, int32(1235), c.BindPrivateConfig.HttpPort)
	assert.Equal(t, backend.BackendSui, c.BackendConfig.Provider)
	assert.Equal(t, tx.PolicyShortCircuit, c.NormalizerConfig.Policy)
	assert.Equal(t, "none", c.MetricsConfig.Mode)
}

func TestConfigEagerPolicy(t *testing.T) {
	c := parseConfig(t, "--sui.url", "http://127.0.0.1:9000", "--normalizer.policy", "eager")

	assert.Equal(t, tx.PolicyEager, c.NormalizerConfig.Policy)
}

func TestConfigMissingURL(t *testing.T) {
	parser, err := config.Generate(&Config{})
	require.NoError(t, err)

	err = parser.Parse([]string{})
	assert.Equal(t, config.ErrKeyNotSet{Key: "sui.url"}, err)
}

func TestConfigHttpsRequiresCertificate(t *testing.T) {
	parser, err := config.Generate(&Config{})
	require.NoError(t, err)

	err = parser.Parse([]string{"--sui.url", "http://127.0.0.1:9000", "--bind_public.https_enabled"})
	assert.Error(t, err)
}

func TestPublicRouterExecute(t *testing.T) {
	client := &suitest.MockClient{}
	suitest.ImplementMock(client)
	group := newServiceGroup(t, client)
	router := NewPublicRouter(group, BindConfig{})

	p, err := json.Marshal(map[string]interface{}{
		"txBytes":    suitest.TxBytesBase64(),
		"signatures": []string{suitest.SignatureBase64()},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v0/api/transaction/execute", bytes.NewReader(p))
	req.Header.Add("Content-type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Header().Get("X-TRACE-ID"))
	client.AssertNumberOfCalls(t, "ExecuteTransactionBlock", 1)

	count, err := testutil.GatherAndCount(group.Registry, "gateway_execute_requests")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPublicRouterExecuteMalformedBinary(t *testing.T) {
	client := &suitest.MockClient{}
	suitest.ImplementMock(client)
	group := newServiceGroup(t, client)
	router := NewPublicRouter(group, BindConfig{})

	for _, txBytes := range []string{"AQ==", "AACAgICAgCA="} {
		p, err := json.Marshal(map[string]interface{}{
			"txBytes":    txBytes,
			"signatures": []string{suitest.SignatureBase64()},
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/v0/api/transaction/execute", bytes.NewReader(p))
		req.Header.Add("Content-type", "application/json")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusBadRequest, res.Code, txBytes)
		assert.Contains(t, res.Body.String(), "bad binary encoding for transaction data")
	}

	client.AssertNumberOfCalls(t, "ExecuteTransactionBlock", 0)
}

func TestPublicRouterHasNoHealth(t *testing.T) {
	group := newServiceGroup(t, &suitest.MockClient{})
	router := NewPublicRouter(group, BindConfig{})

	assert.True(t, router.HasHandler("/v0/api/transaction/execute", "POST"))
	assert.True(t, router.HasHandler("/v0/api/version", "GET"))
	assert.False(t, router.HasRoute("/v0/api/health"))
}

func TestPrivateRouterHealth(t *testing.T) {
	group := newServiceGroup(t, &suitest.MockClient{})
	NewPublicRouter(group, BindConfig{})
	router := NewPrivateRouter(group, BindConfig{})

	req := httptest.NewRequest("GET", "/v0/api/health", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Health  int                        `json:"health"`
		Metrics map[string]json.RawMessage `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Health)
	assert.Contains(t, body.Metrics, "runtime")
	assert.Contains(t, body.Metrics, "tx.Executor")
	assert.Contains(t, body.Metrics, "suitest.MockClient")
	assert.Contains(t, body.Metrics, "router.public")
	assert.Contains(t, body.Metrics, "router.private")
}

func TestPrivateRouterVersion(t *testing.T) {
	group := newServiceGroup(t, &suitest.MockClient{})
	router := NewPrivateRouter(group, BindConfig{})

	req := httptest.NewRequest("GET", "/v0/api/version", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"version":0,"backend":"sui"}`, res.Body.String())
}

func TestPrivateRouterHealthDrain(t *testing.T) {
	group := newServiceGroup(t, &suitest.MockClient{})
	router := NewPrivateRouter(group, BindConfig{})
	group.Health.Set(stats.Drain)

	req := httptest.NewRequest("GET", "/v0/api/health", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Health int `json:"health"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, int(stats.Drain), body.Health)
}
