package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oasislabs/sui-gateway/tx"
	"github.com/spf13/cobra"
)

type ExecuteProps struct {
	ClientProps ClientProps
	Input       tx.EncodedInput
}

func runExecute(props ExecuteProps) error {
	ctx := context.Background()

	executor, err := dialExecutor(ctx, props.ClientProps)
	if err != nil {
		return err
	}

	res, xerr := executor.Execute(ctx, props.Input)
	if xerr != nil {
		return xerr
	}

	if err := printJSON(os.Stdout, res); err != nil {
		return fmt.Errorf("failed to serialize result to json: %s", err.Error())
	}

	if _, ok := res.(tx.ExecutionFailure); ok {
		return fmt.Errorf("transaction executed with errors")
	}

	return nil
}

func bindExecute(cmd *cobra.Command) {
	var props ExecuteProps

	var executeCmd = &cobra.Command{
		Use:   "execute",
		Short: "execute a signed transaction",
		Long: "Submits a transaction signed by its sender to a full node, waits " +
			"for it to be executed locally and prints the decoded result.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runExecute(props); err != nil {
				fmt.Println("ERROR: ", err)
				os.Exit(1)
			}
		},
	}

	executeCmd.PersistentFlags().StringVar(
		&props.ClientProps.URL, "url", "", "the JSON-RPC endpoint of the full node")
	executeCmd.PersistentFlags().StringVar(
		&props.ClientProps.Policy, "policy", tx.PolicyShortCircuit.String(),
		"what to decode when the node reports errors, short_circuit or eager")
	executeCmd.PersistentFlags().BoolVarP(
		&props.ClientProps.Verbose, "verbose", "v", false, "log the stages of the execution")
	bindInputFlags(executeCmd.PersistentFlags(), &props.Input)

	cmd.AddCommand(executeCmd)
}
