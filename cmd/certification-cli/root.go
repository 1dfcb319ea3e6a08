package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "certification-cli",
		Short: "Offline tools for the certification scoring engine",
		Long: `certification-cli runs the certification scoring rules against local
fixtures, without a database or the content catalog.

Use it to replay a certification or to check the effect of a policy change.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScoreCmd())
	return rootCmd
}
