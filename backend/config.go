package backend

import (
	"github.com/oasislabs/sui-gateway/config"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type BackendProvider string

const (
	BackendSui BackendProvider = "sui"
)

func (m BackendProvider) String() string {
	return string(m)
}

type Config struct {
	Provider      BackendProvider
	BackendConfig BackendConfig
}

func (c *Config) Log(fields log.Fields) {
	fields.Add("backend.provider", c.Provider)

	if c.BackendConfig != nil {
		c.BackendConfig.Log(fields)
	}
}

func (c *Config) Configure(v *viper.Viper) error {
	c.Provider = BackendProvider(v.GetString("backend.provider"))
	if len(c.Provider) == 0 {
		return config.ErrKeyNotSet{Key: "backend.provider"}
	}

	switch c.Provider {
	case BackendSui:
		c.BackendConfig = &SuiConfig{}
		return c.BackendConfig.Configure(v)
	default:
		return config.ErrInvalidValue{
			Key:          "backend.provider",
			InvalidValue: c.Provider.String(),
			Values:       []string{BackendSui.String()},
		}
	}
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("backend.provider", BackendSui.String(),
		"provider transactions are executed on. "+
			"Options are "+BackendSui.String()+".")

	if err := (&SuiConfig{}).Bind(v, cmd); err != nil {
		return err
	}

	return nil
}

type BackendConfig interface {
	log.Loggable
	config.Binder
	ID() BackendProvider
}

// SuiConfig is the configuration of the connection to a full node
type SuiConfig struct {
	URL string
}

func (c *SuiConfig) Log(fields log.Fields) {
	fields.Add("sui.url", c.URL)
}

func (c *SuiConfig) Configure(v *viper.Viper) error {
	c.URL = v.GetString("sui.url")
	if len(c.URL) == 0 {
		return config.ErrKeyNotSet{Key: "sui.url"}
	}

	return nil
}

func (c *SuiConfig) ID() BackendProvider {
	return BackendSui
}

func (c *SuiConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("sui.url", "", "url of the full node JSON-RPC endpoint")
	return nil
}
