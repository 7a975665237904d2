package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hola/internal/config"
	"hola/internal/models"
	"hola/internal/store"
)

// greetingFinder is the read side of the greeting store.
type greetingFinder interface {
	FindByID(ctx context.Context, id string) (*models.Greeting, error)
}

// saveHistory is the read side of the save log.
type saveHistory interface {
	History(ctx context.Context, greetingID string) ([]store.SaveLogEntry, error)
}

// showOutput is printed by show --history.
type showOutput struct {
	Greeting *models.Greeting     `json:"greeting"`
	History  []store.SaveLogEntry `json:"history"`
}

func newShowCmd() *cobra.Command {
	var withHistory bool

	cmd := &cobra.Command{
		Use:   "show <greeting-id>",
		Short: "Print a stored greeting as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			svc, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer svc.close()

			greetings, closeCache, err := svc.greetingStore(cfg)
			if err != nil {
				return err
			}
			defer closeCache()

			var history saveHistory
			if withHistory {
				if svc.saves == nil {
					return fmt.Errorf("save history needs the %s store, not %s", config.BackendPostgres, cfg.StoreBackend)
				}
				history = svc.saves
			}
			return runShow(cmd.Context(), cmd.OutOrStdout(), greetings, history, args[0])
		},
	}

	cmd.Flags().BoolVar(&withHistory, "history", false, "include the recorded saves of the greeting")
	return cmd
}

// runShow prints the greeting with the given id. With a non-nil history the
// greeting is wrapped together with its saves.
func runShow(ctx context.Context, out io.Writer, greetings greetingFinder, history saveHistory, id string) error {
	g, err := greetings.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no greeting with id %q", id)
	}
	if err != nil {
		return fmt.Errorf("load greeting %q: %w", id, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if history == nil {
		return enc.Encode(g)
	}

	entries, err := history.History(ctx, id)
	if err != nil {
		return fmt.Errorf("load history of %q: %w", id, err)
	}
	if entries == nil {
		entries = []store.SaveLogEntry{}
	}
	return enc.Encode(showOutput{Greeting: g, History: entries})
}
