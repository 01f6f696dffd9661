package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/phonebench/internal/config"
	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/preflight"
)

func newDoctorCmd() *cobra.Command {
	var (
		directory string
		queries   string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check inputs and environment before benchmarking",
		Long: `Run preflight checks without timing anything: both input files parse,
the directory is not so large that bubble sort is sure to be stopped, the
history location is writable with free space, and no other benchmark holds
the run lock.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("directory") {
				cfg.Paths.Directory = directory
			}
			if cmd.Flags().Changed("queries") {
				cfg.Paths.Queries = queries
			}

			checker := preflight.New(preflight.WithOutput(cmd.OutOrStdout()), preflight.WithVerbose(verbose))
			results := checker.RunAll(cmd.Context(), preflight.Targets{
				Directory:      cfg.Paths.Directory,
				Queries:        cfg.Paths.Queries,
				DataDir:        filepath.Dir(cfg.History.Path),
				LockDir:        config.DataDir(),
				HistoryEnabled: cfg.HistoryEnabled(),
			})
			checker.PrintResults(results)

			if checker.HasCriticalFailures(results) {
				return amerrors.ValidationError("preflight checks failed", nil).
					WithSuggestion("Fix the errors listed above, then run the benchmark")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&directory, "directory", "", "Directory file to check (default: from config)")
	cmd.Flags().StringVar(&queries, "queries", "", "Queries file to check (default: from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show details for passing checks")

	return cmd
}
