package cmd

import (
	"os"

	"github.com/spf13/cobra"

	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/output"
	"github.com/Aman-CERP/phonebench/internal/phonebook"
	"github.com/Aman-CERP/phonebench/internal/ui"
)

func newGenerateCmd() *cobra.Command {
	var (
		opts          phonebook.GenerateOptions
		directoryPath string
		queriesPath   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic directory and queries file",
		Long: `Write a random phone directory and a matching queries file.

The same seed always produces the same files. --missing of the queries name
nobody in the directory, so the expected found count is queries - missing.`,
		Example: `  # 100k entries, 1k queries of which 50 miss
  phonebench generate --entries 100000 --queries 1000 --missing 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return amerrors.ValidationError(err.Error(), nil)
			}

			status := output.New(cmd.OutOrStdout())
			if ui.IsTTY(cmd.ErrOrStderr()) && opts.Entries >= 10_000 {
				progress := output.New(cmd.ErrOrStderr())
				step := opts.Entries / 100
				opts.Progress = func(done, total int) {
					if done%step == 0 || done == total {
						progress.Progress(done, total, "entries")
					}
				}
			}

			if err := writeGenerated(directoryPath, queriesPath, opts); err != nil {
				return err
			}

			status.Successf("Wrote %d entries to %s", opts.Entries, directoryPath)
			status.Infof("%d queries (%d missing) to %s, seed %d", opts.Queries, opts.Missing, queriesPath, opts.Seed)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Entries, "entries", 1000, "Number of directory entries")
	f.IntVar(&opts.Queries, "queries", 100, "Number of queries")
	f.IntVar(&opts.Missing, "missing", 0, "How many queries should not be found")
	f.Uint64Var(&opts.Seed, "seed", 42, "Random seed")
	f.StringVar(&directoryPath, "directory", "directory.txt", "Directory output file")
	f.StringVar(&queriesPath, "queries-out", "find.txt", "Queries output file")

	return cmd
}

func writeGenerated(directoryPath, queriesPath string, opts phonebook.GenerateOptions) error {
	dir, err := os.Create(directoryPath)
	if err != nil {
		return amerrors.New(amerrors.ErrCodeFileWrite, "cannot create "+directoryPath, err).WithDetail("path", directoryPath)
	}
	defer func() { _ = dir.Close() }()

	queries, err := os.Create(queriesPath)
	if err != nil {
		return amerrors.New(amerrors.ErrCodeFileWrite, "cannot create "+queriesPath, err).WithDetail("path", queriesPath)
	}
	defer func() { _ = queries.Close() }()

	if err := phonebook.Generate(dir, queries, opts); err != nil {
		return amerrors.New(amerrors.ErrCodeFileWrite, "failed to write generated files", err)
	}
	if err := dir.Close(); err != nil {
		return amerrors.New(amerrors.ErrCodeFileWrite, "cannot close "+directoryPath, err)
	}
	if err := queries.Close(); err != nil {
		return amerrors.New(amerrors.ErrCodeFileWrite, "cannot close "+queriesPath, err)
	}
	return nil
}
