package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiruna-explorer/internal/logger"
)

var verbose bool

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kirunactl",
		Short:         "Validate Kiruna planning documents and compute diagram layouts offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				os.Setenv("LOG_LEVEL", "debug")
			}
			logger.Setup()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.AddCommand(newValidateCmd(), newLayoutCmd())
	return cmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
