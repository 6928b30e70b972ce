package backend

import (
	"context"
	stderr "errors"
	"io/ioutil"
	"testing"

	"github.com/oasislabs/sui-gateway/config"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/oasislabs/sui-gateway/sui/suitest"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var Logger = log.NewLogrus(log.LogrusLoggerProperties{
	Output: ioutil.Discard,
})

func TestConfigureSui(t *testing.T) {
	v := viper.New()
	v.Set("backend.provider", "sui")
	v.Set("sui.url", "http://127.0.0.1:9000")

	c := Config{}
	require.NoError(t, c.Configure(v))
	assert.Equal(t, BackendSui, c.Provider)
	assert.Equal(t, "http://127.0.0.1:9000", c.BackendConfig.(*SuiConfig).URL)
}

func TestConfigureMissingURL(t *testing.T) {
	v := viper.New()
	v.Set("backend.provider", "sui")

	c := Config{}
	assert.Equal(t, config.ErrKeyNotSet{Key: "sui.url"}, c.Configure(v))
}

func TestConfigureUnknownProvider(t *testing.T) {
	v := viper.New()
	v.Set("backend.provider", "ethereum")

	c := Config{}
	err := c.Configure(v)
	assert.Equal(t, config.ErrInvalidValue{
		Key:          "backend.provider",
		InvalidValue: "ethereum",
		Values:       []string{"sui"},
	}, err)
}

func TestNewBackendClientWithFactories(t *testing.T) {
	mock := &suitest.MockClient{}
	var props sui.RPCClientProps

	client, err := NewBackendClientWithFactories(context.TODO(), Services{Logger: Logger}, Factories{
		SuiClientFactory: sui.ClientFactoryFunc(func(ctx context.Context, logger log.Logger, p sui.RPCClientProps) (sui.Client, error) {
			props = p
			return mock, nil
		}),
	}, &Config{
		Provider:      BackendSui,
		BackendConfig: &SuiConfig{URL: "ws://127.0.0.1:9000"},
	})

	require.NoError(t, err)
	assert.Equal(t, mock, client)
	assert.Equal(t, "ws://127.0.0.1:9000", props.URL)
}

func TestNewBackendClientFactoryError(t *testing.T) {
	_, err := NewBackendClientWithFactories(context.TODO(), Services{Logger: Logger}, Factories{
		SuiClientFactory: sui.ClientFactoryFunc(func(ctx context.Context, logger log.Logger, p sui.RPCClientProps) (sui.Client, error) {
			return nil, stderr.New("dial failed")
		}),
	}, &Config{
		Provider:      BackendSui,
		BackendConfig: &SuiConfig{URL: "ws://127.0.0.1:9000"},
	})

	assert.EqualError(t, err, "failed to initialize sui client: dial failed")
}

func TestNewBackendClientBadScheme(t *testing.T) {
	_, err := NewBackendClient(context.TODO(), Services{Logger: Logger}, &Config{
		Provider:      BackendSui,
		BackendConfig: &SuiConfig{URL: "ftp://127.0.0.1:9000"},
	})

	assert.Error(t, err)
}
