package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/history"
	"github.com/Aman-CERP/phonebench/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit   int
		format  string
		compare bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded benchmark runs",
		Long: `List benchmark runs recorded in the history database, newest first.

Runs over identical input files share a fingerprint, so their timings can be
compared directly.`,
		Example: `  # Last 10 runs
  phonebench history

  # Everything, as JSON
  phonebench history --limit 0 --format json

  # Newest run against the previous run on the same inputs
  phonebench history --compare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return amerrors.ValidationError(fmt.Sprintf("unknown format %q", format), nil).
					WithSuggestion("Use --format text or --format json")
			}
			if compare && format != "text" {
				return amerrors.ValidationError("--compare only supports text output", nil)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.History.Path, cfg.History.Driver)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			color, _ := ui.ParseColorMode(cfg.Output.Color)
			r := ui.NewHistoryRenderer(ui.NewConfig(cmd.OutOrStdout(), ui.WithColor(color)))

			if compare {
				return compareLatest(cmd, store, r)
			}

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if format == "json" {
				return r.RenderJSON(runs)
			}
			return r.Render(runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&compare, "compare", false, "Compare the newest run with the previous run on the same inputs")

	return cmd
}

func compareLatest(cmd *cobra.Command, store *history.Store, r *ui.HistoryRenderer) error {
	latest, err := store.List(cmd.Context(), 1)
	if err != nil {
		return err
	}
	if len(latest) == 0 {
		return r.Render(nil)
	}

	prev, ok, err := store.Previous(cmd.Context(), latest[0])
	if err != nil {
		return err
	}
	if !ok {
		return r.RenderComparison(latest[0], nil)
	}
	return r.RenderComparison(latest[0], &prev)
}
