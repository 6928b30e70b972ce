package gateway

import (
	"errors"

	"github.com/oasislabs/sui-gateway/backend"
	"github.com/oasislabs/sui-gateway/config"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/metrics"
	"github.com/oasislabs/sui-gateway/tx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the general application's configuration
type Config struct {
	BindPublicConfig  BindPublicConfig
	BindPrivateConfig BindPrivateConfig
	BackendConfig     backend.Config
	NormalizerConfig  tx.NormalizerConfig
	LoggingConfig     log.Config
	MetricsConfig     metrics.Config
}

func (c *Config) Use() string {
	return "sui-gateway"
}

func (c *Config) EnvPrefix() string {
	return "SUI_GW"
}

func (c *Config) Binders() []config.Binder {
	return []config.Binder{
		&c.BindPublicConfig,
		&c.BindPrivateConfig,
		&c.BackendConfig,
		&c.NormalizerConfig,
		&c.LoggingConfig,
		&c.MetricsConfig,
	}
}

func (c *Config) Log(fields log.Fields) {
	c.BindPublicConfig.Log(fields)
	c.BindPrivateConfig.Log(fields)
	c.BackendConfig.Log(fields)
	c.NormalizerConfig.Log(fields)
	c.LoggingConfig.Log(fields)
	c.MetricsConfig.Log(fields)
}

// BindConfig is the configuration for binding the exposed APIs
// to the computer network interface
type BindConfig struct {
	HttpInterface      string
	HttpPort           int32
	HttpReadTimeoutMs  int32
	HttpWriteTimeoutMs int32
	HttpMaxHeaderBytes int32
	HttpMaxBodyBytes   int32
	HttpsEnabled       bool
	TlsCertificatePath string
	TlsPrivateKeyPath  string
}

func (c *BindConfig) Configure(prefix string, v *viper.Viper) error {
	c.HttpInterface = v.GetString(prefix + ".http_interface")
	if len(c.HttpInterface) == 0 {
		return errors.New(prefix + ".http_interface must be set")
	}

	c.HttpPort = v.GetInt32(prefix + ".http_port")
	if c.HttpPort > 65535 || c.HttpPort < 0 {
		return errors.New(prefix + ".http_port must be an integer between 0 and 65535")
	}

	c.HttpReadTimeoutMs = v.GetInt32(prefix + ".http_read_timeout_ms")
	if c.HttpReadTimeoutMs < 0 {
		return errors.New(prefix + ".http_read_timeout_ms cannot be negative")
	}

	c.HttpWriteTimeoutMs = v.GetInt32(prefix + ".http_write_timeout_ms")
	if c.HttpWriteTimeoutMs < 0 {
		return errors.New(prefix + ".http_write_timeout_ms cannot be negative")
	}

	c.HttpMaxHeaderBytes = v.GetInt32(prefix + ".http_max_header_bytes")
	if c.HttpMaxHeaderBytes < 0 {
		return errors.New(prefix + ".http_max_header_bytes cannot be negative")
	}

	c.HttpMaxBodyBytes = v.GetInt32(prefix + ".http_max_body_bytes")
	if c.HttpMaxBodyBytes < 0 {
		return errors.New(prefix + ".http_max_body_bytes cannot be negative")
	}

	c.HttpsEnabled = v.GetBool(prefix + ".https_enabled")
	c.TlsCertificatePath = v.GetString(prefix + ".tls_certificate_path")
	c.TlsPrivateKeyPath = v.GetString(prefix + ".tls_private_key_path")

	if c.HttpsEnabled {
		if len(c.TlsCertificatePath) == 0 || len(c.TlsPrivateKeyPath) == 0 {
			return errors.New(prefix + ".tls_certificate_path and " + prefix + ".tls_private_key_path " +
				"must be set if " + prefix + ".https_enabled is set")
		}
	}

	return nil
}

func (c *BindConfig) Bind(prefix string, port int32, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(prefix+".http_interface", "127.0.0.1",
		"interface to bind for http")
	cmd.PersistentFlags().Int32(prefix+".http_port", port,
		"port to listen to for http")
	cmd.PersistentFlags().Int32(prefix+".http_read_timeout_ms",
		10000, "http read timeout for http interface")
	cmd.PersistentFlags().Int32(prefix+".http_write_timeout_ms",
		// execution blocks until the node executed the transaction
		// locally, so writes need more room than reads
		60000, "http write timeout for http interface")
	cmd.PersistentFlags().Int32(prefix+".http_max_header_bytes",
		10000, "http max header bytes for http")
	cmd.PersistentFlags().Int32(prefix+".http_max_body_bytes",
		1<<20, "maximum size of a request body in bytes")
	cmd.PersistentFlags().Bool(prefix+".https_enabled",
		false, "if set the interface will listen with https. If this option is "+
			"set, then "+prefix+".tls_certificate_path and "+prefix+
			".tls_private_key_path must be set as well")
	cmd.PersistentFlags().String(prefix+".tls_certificate_path",
		"", "path to the tls certificate for https")
	cmd.PersistentFlags().String(prefix+".tls_private_key_path",
		"", "path to the private key for https")

	return nil
}

func (c *BindConfig) log(prefix string, fields log.Fields) {
	fields.Add(prefix+".http_interface", c.HttpInterface)
	fields.Add(prefix+".http_port", c.HttpPort)
	fields.Add(prefix+".http_read_timeout_ms", c.HttpReadTimeoutMs)
	fields.Add(prefix+".http_write_timeout_ms", c.HttpWriteTimeoutMs)
	fields.Add(prefix+".http_max_header_bytes", c.HttpMaxHeaderBytes)
	fields.Add(prefix+".http_max_body_bytes", c.HttpMaxBodyBytes)
	fields.Add(prefix+".https_enabled", c.HttpsEnabled)
	fields.Add(prefix+".tls_certificate_path", c.TlsCertificatePath)
	fields.Add(prefix+".tls_private_key_path", c.TlsPrivateKeyPath)
}

// BindPublicConfig binds the interface that serves transaction
// execution
type BindPublicConfig struct {
	BindConfig
}

func (c *BindPublicConfig) Log(fields log.Fields) {
	c.BindConfig.log("bind_public", fields)
}

func (c *BindPublicConfig) Configure(v *viper.Viper) error {
	return c.BindConfig.Configure("bind_public", v)
}

func (c *BindPublicConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	return c.BindConfig.Bind("bind_public", 1234, cmd)
}

// BindPrivateConfig binds the interface that serves operational
// endpoints such as health
type BindPrivateConfig struct {
	BindConfig
}

func (c *BindPrivateConfig) Log(fields log.Fields) {
	c.BindConfig.log("bind_private", fields)
}

func (c *BindPrivateConfig) Configure(v *viper.Viper) error {
	return c.BindConfig.Configure("bind_private", v)
}

func (c *BindPrivateConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	return c.BindConfig.Bind("bind_private", 1235, cmd)
}
