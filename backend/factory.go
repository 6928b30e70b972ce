package backend

import (
	"context"

	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/pkg/errors"
)

type Services struct {
	Logger log.Logger
}

type Factories struct {
	SuiClientFactory sui.ClientFactory
}

// NewBackendClient creates the client for the configured provider
func NewBackendClient(ctx context.Context, services Services, config *Config) (sui.Client, error) {
	return NewBackendClientWithFactories(ctx, services, Factories{
		SuiClientFactory: sui.NewClient,
	}, config)
}

// NewBackendClientWithFactories creates the client for the configured
// provider with the provided factories
func NewBackendClientWithFactories(
	ctx context.Context,
	services Services,
	factories Factories,
	config *Config,
) (sui.Client, error) {
	switch config.Provider {
	case BackendSui:
		client, err := factories.SuiClientFactory.New(ctx, services.Logger, sui.RPCClientProps{
			URL: config.BackendConfig.(*SuiConfig).URL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize sui client")
		}
		return client, nil
	default:
		return nil, ErrUnknownBackend{Backend: config.Provider.String()}
	}
}
