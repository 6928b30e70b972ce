package main

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/oasislabs/sui-gateway/log"
	"github.com/oasislabs/sui-gateway/sui"
	"github.com/oasislabs/sui-gateway/tx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type ClientProps struct {
	URL     string
	Policy  string
	Verbose bool
}

func newLogger(props ClientProps) log.Logger {
	if !props.Verbose {
		return log.NewLogrus(log.LogrusLoggerProperties{Output: ioutil.Discard})
	}

	return log.NewLogrus(log.LogrusLoggerProperties{
		Level:     logrus.DebugLevel,
		Formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
	})
}

func dialExecutor(ctx context.Context, props ClientProps) (*tx.Executor, error) {
	logger := newLogger(props)

	client, err := sui.DialContext(ctx, logger, sui.RPCClientProps{URL: props.URL})
	if err != nil {
		return nil, err
	}

	return tx.NewExecutor(&tx.ExecutorServices{
		Logger: logger,
		Client: client,
	}, &tx.ExecutorProps{
		Policy: tx.Policy(props.Policy),
	}), nil
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// bindInputFlags binds the flags that carry the signed transaction
func bindInputFlags(flags *pflag.FlagSet, in *tx.EncodedInput) {
	flags.StringVar(&in.TxBytes, "tx-bytes", "", "base64 encoded BCS transaction data")
	flags.StringArrayVar(&in.Signatures, "signature", nil,
		"base64 encoded flag || signature || public key. Can be repeated")
}
