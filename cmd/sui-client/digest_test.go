package main

import (
	"bytes"
	"testing"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/sui/suitest"
	"github.com/oasislabs/sui-gateway/tx"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestRunDigest(t *testing.T) {
	err := runDigest(DigestProps{Input: tx.EncodedInput{
		TxBytes:    suitest.TxBytesBase64(),
		Signatures: []string{suitest.SignatureBase64()},
	}})

	assert.NoError(t, err)
}

func TestRunDigestBadTxBytes(t *testing.T) {
	err := runDigest(DigestProps{Input: tx.EncodedInput{TxBytes: "%%%"}})

	assert.True(t, errors.IsClientError(err))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	assert.NoError(t, printJSON(&buf, tx.ExecutionFailure{Errors: []string{"InsufficientGas"}}))
	assert.JSONEq(t, `{"errors":["InsufficientGas"]}`, buf.String())
}

func TestBindInputFlags(t *testing.T) {
	var in tx.EncodedInput
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindInputFlags(flags, &in)

	err := flags.Parse([]string{"--tx-bytes", "AAEC", "--signature", "c2ln", "--signature", "c2lnMg=="})

	assert.NoError(t, err)
	assert.Equal(t, "AAEC", in.TxBytes)
	assert.Equal(t, []string{"c2ln", "c2lnMg=="}, in.Signatures)
}
