package main

import (
	"fmt"
	"os"

	"github.com/oasislabs/sui-gateway/tx"
	"github.com/oasislabs/sui-gateway/types"
	"github.com/spf13/cobra"
)

type DigestProps struct {
	Input tx.EncodedInput
}

type digestOutput struct {
	Digest     types.Digest  `json:"digest"`
	Sender     types.Address `json:"sender"`
	Signatures int           `json:"signatures"`
}

// runDigest decodes the transaction locally without contacting a node
func runDigest(props DigestProps) error {
	decoded, err := tx.Decode(props.Input)
	if err != nil {
		return err
	}

	digest, derr := types.TransactionDigest(decoded.Data)
	if derr != nil {
		return derr
	}

	return printJSON(os.Stdout, digestOutput{
		Digest:     digest,
		Sender:     decoded.Data.V1.Sender,
		Signatures: len(decoded.Signatures),
	})
}

func bindDigest(cmd *cobra.Command) {
	var props DigestProps

	var digestCmd = &cobra.Command{
		Use:   "digest",
		Short: "compute the digest of a transaction",
		Long: "Decodes a transaction and its signatures the same way execute does " +
			"and prints the transaction digest without submitting it.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runDigest(props); err != nil {
				fmt.Println("ERROR: ", err)
				os.Exit(1)
			}
		},
	}

	bindInputFlags(digestCmd.PersistentFlags(), &props.Input)

	cmd.AddCommand(digestCmd)
}
