package tx

import (
	"github.com/oasislabs/sui-gateway/config"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cfgNormalizerPolicy = "normalizer.policy"

// NormalizerConfig holds the configuration of the result normalizer
type NormalizerConfig struct {
	Policy Policy
}

func (c *NormalizerConfig) Log(fields log.Fields) {
	fields.Add(cfgNormalizerPolicy, c.Policy.String())
}

func (c *NormalizerConfig) Configure(v *viper.Viper) error {
	c.Policy = Policy(v.GetString(cfgNormalizerPolicy))

	switch c.Policy {
	case PolicyShortCircuit, PolicyEager:
		return nil
	default:
		return config.ErrInvalidValue{
			Key:          cfgNormalizerPolicy,
			InvalidValue: c.Policy.String(),
			Values:       []string{PolicyShortCircuit.String(), PolicyEager.String()},
		}
	}
}

func (c *NormalizerConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(cfgNormalizerPolicy, PolicyShortCircuit.String(),
		"what to decode when the node reports errors. "+
			"Options are "+PolicyShortCircuit.String()+
			" and "+PolicyEager.String()+".")
	return nil
}
