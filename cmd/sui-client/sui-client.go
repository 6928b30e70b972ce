package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{Use: "sui-client"}

	bindExecute(rootCmd)
	bindDigest(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("failed to parse command line arguments ", err.Error())
		os.Exit(1)
	}
}
