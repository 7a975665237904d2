package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hola",
		Short:         "Hola serves the greeting card editor and shared greetings",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Serving is the default when no subcommand is given.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
