package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"powchain/logx"
)

var rootCmd = &cobra.Command{
	Use:   "powchain",
	Short: "Proof-of-work hash chain CLI",
	Long:  "Command line interface for building and validating a proof-of-work secured append-only ledger.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
