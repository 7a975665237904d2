package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"hola/internal/config"
	"hola/internal/database"
)

func newMigrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cfg.StoreBackend != config.BackendPostgres {
				slog.Info("store backend has no schema, nothing to migrate", "store", cfg.StoreBackend)
				return nil
			}

			ctx := cmd.Context()
			db, err := database.Connect(ctx, cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			var version int64
			if status {
				version, err = database.Version(ctx, db)
			} else {
				version, err = database.Migrate(ctx, db)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "print the applied schema version without migrating")
	return cmd
}
