package log

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config struct {
	Level  string
	Format string
}

func (c *Config) Log(fields Fields) {
	fields.Add("logging.level", c.Level)
	fields.Add("logging.format", c.Format)
}

func (c *Config) Configure(v *viper.Viper) error {
	c.Level = v.GetString("logging.level")
	if len(c.Level) == 0 {
		c.Level = "debug"
	}

	c.Format = v.GetString("logging.format")
	if len(c.Format) == 0 {
		c.Format = "json"
	}

	return nil
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("logging.level", "debug",
		"sets the minimum logging level for the logger")
	cmd.PersistentFlags().String("logging.format", "json",
		"sets the format of the log entries. Options are json, text.")
	return nil
}
