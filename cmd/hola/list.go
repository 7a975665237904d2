package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"hola/internal/config"
	"hola/internal/models"
)

type greetingLister interface {
	List(ctx context.Context) ([]models.Greeting, error)
}

func newListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored greetings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
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

			return runList(cmd.Context(), cmd.OutOrStdout(), greetings, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many greetings (0 prints all)")
	return cmd
}

// runList prints one line per greeting. A limit of 0 prints every greeting.
func runList(ctx context.Context, out io.Writer, greetings greetingLister, limit int) error {
	all, err := greetings.List(ctx)
	if err != nil {
		return err
	}
	if limit > 0 {
		all = lo.Subset(all, 0, uint(limit))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tOCCASION\tTO\tFROM\tCREATED")
	for _, g := range all {
		created := time.UnixMilli(g.CreatedAt).UTC().Format(time.RFC3339)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.Occasion, g.RecipientName, g.SenderName, created)
	}
	return tw.Flush()
}
