package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/phonebench/internal/bench"
	"github.com/Aman-CERP/phonebench/internal/config"
	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/history"
	"github.com/Aman-CERP/phonebench/internal/lock"
	"github.com/Aman-CERP/phonebench/internal/output"
	"github.com/Aman-CERP/phonebench/internal/phonebook"
	"github.com/Aman-CERP/phonebench/internal/ui"
	"github.com/Aman-CERP/phonebench/internal/watcher"
)

// runOptions holds the flags shared by the root command and `run`.
type runOptions struct {
	directory   string
	queries     string
	abortFactor int
	noColor     bool
	noHistory   bool
	watch       bool
	waitLock    bool
}

func addRunFlags(cmd *cobra.Command, o *runOptions) {
	f := cmd.Flags()
	f.StringVar(&o.directory, "directory", "", "Directory file, one '<phone> <name>' per line (default: directory.txt)")
	f.StringVar(&o.queries, "queries", "", "Queries file, one name per line (default: find.txt)")
	f.IntVar(&o.abortFactor, "abort-factor", 0, "Stop bubble sort after this many linear-search durations (default: 10)")
	f.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	f.BoolVar(&o.noHistory, "no-history", false, "Do not record this run in the history database")
	f.BoolVar(&o.watch, "watch", false, "Re-run whenever an input file changes")
	f.BoolVar(&o.waitLock, "wait-lock", false, "Wait for another running benchmark instead of failing")
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the search benchmark",
		Long: `Load the directory and queries, then time each search strategy in turn.

Bubble sort is stopped once it has taken longer than abort-factor times the
linear search; that strategy then searches linearly and says so in its report.`,
		Example: `  # Use directory.txt and find.txt in the current directory
  phonebench run

  # Explicit inputs, re-run on change
  phonebench run --directory big.txt --queries names.txt --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), cmd, opts)
		},
	}

	addRunFlags(cmd, &opts)
	return cmd
}

// applyRunFlags overrides cfg with the flags the user actually set.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, o runOptions) {
	f := cmd.Flags()
	if f.Changed("directory") {
		cfg.Paths.Directory = o.directory
	}
	if f.Changed("queries") {
		cfg.Paths.Queries = o.queries
	}
	if f.Changed("abort-factor") {
		cfg.Benchmark.AbortFactor = o.abortFactor
	}
	if o.noColor {
		cfg.Output.Color = string(ui.ColorNever)
	}
	if o.noHistory {
		disabled := false
		cfg.History.Enabled = &disabled
	}
}

// benchSession is everything one benchmark invocation reuses across watch
// iterations.
type benchSession struct {
	cfg      *config.Config
	loader   *phonebook.Loader
	runner   *bench.Runner
	runLock  *lock.RunLock
	store    *history.Store
	waitLock bool
	status   *output.Writer
	errOut   io.Writer
}

func runBenchmark(ctx context.Context, cmd *cobra.Command, opts runOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return amerrors.ConfigError("invalid run options", err)
	}

	color, _ := ui.ParseColorMode(cfg.Output.Color)
	renderer := ui.NewRenderer(ui.NewConfig(cmd.OutOrStdout(), ui.WithColor(color)))

	s := &benchSession{
		cfg:    cfg,
		loader: phonebook.NewLoader(cfg.Cache.Entries),
		runner: bench.NewRunner(
			bench.WithAbortFactor(cfg.Benchmark.AbortFactor),
			bench.WithReporter(renderer),
		),
		runLock:  lock.New(config.DataDir()),
		waitLock: opts.waitLock,
		status:   output.New(cmd.ErrOrStderr()),
		errOut:   cmd.ErrOrStderr(),
	}

	if cfg.HistoryEnabled() {
		store, err := history.Open(cfg.History.Path, cfg.History.Driver)
		if err != nil {
			s.warn("history disabled for this run", err)
		} else {
			s.store = store
			defer func() { _ = store.Close() }()
		}
	}

	if !opts.watch {
		return s.once(ctx)
	}
	return s.watch(ctx)
}

// once loads the inputs, runs every strategy and records the result. The run
// lock is held only while this runs.
func (s *benchSession) once(ctx context.Context) error {
	if err := s.runLock.Acquire(ctx, s.waitLock); err != nil {
		return err
	}
	defer func() { _ = s.runLock.Release() }()

	dirPath, queriesPath := s.cfg.Paths.Directory, s.cfg.Paths.Queries
	in, err := phonebook.LoadInputs(ctx, s.loader, dirPath, queriesPath)
	if err != nil {
		return err
	}

	started := time.Now()
	results, err := s.runner.Run(ctx, in.Directory, in.Queries)
	if err != nil {
		return err
	}

	if s.store != nil {
		s.record(ctx, history.Run{
			StartedAt:     started,
			Fingerprint:   history.FingerprintOf(in.DirectoryDigest, in.QueriesDigest),
			DirectoryPath: dirPath,
			QueriesPath:   queriesPath,
			Entries:       len(in.Directory),
			Queries:       len(in.Queries),
			AbortFactor:   s.cfg.Benchmark.AbortFactor,
			Results:       results,
		})
	}
	return nil
}

// record stores run. Its fingerprint comes from the bytes the benchmark
// parsed, not from the files as they are now.
func (s *benchSession) record(ctx context.Context, run history.Run) {
	id, err := s.store.Record(ctx, run)
	if err != nil {
		s.warn("run not recorded", err)
		return
	}
	slog.Debug("run_recorded", slog.Int64("id", id), slog.String("fingerprint", run.Fingerprint))
}

// watch runs once, then again after every debounced change to an input.
// Errors from individual runs are reported and watching continues.
func (s *benchSession) watch(ctx context.Context) error {
	w, err := watcher.New(s.cfg.DebounceDuration(), s.cfg.Paths.Directory, s.cfg.Paths.Queries)
	if err != nil {
		return amerrors.InternalError("failed to start watcher", err)
	}
	defer func() { _ = w.Stop() }()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	s.onceReporting(ctx)
	s.status.Status("👀", fmt.Sprintf("Watching %s and %s (Ctrl-C to stop)", s.cfg.Paths.Directory, s.cfg.Paths.Queries))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return amerrors.InternalError("watcher stopped", err)
		case batch, ok := <-w.Events():
			if !ok {
				return nil
			}
			for _, e := range batch {
				slog.Debug("input_changed", slog.String("path", e.Path), slog.String("op", e.Operation.String()))
			}
			s.onceReporting(ctx)
		}
	}
}

func (s *benchSession) onceReporting(ctx context.Context) {
	if err := s.once(ctx); err != nil && ctx.Err() == nil {
		_, _ = fmt.Fprint(s.errOut, amerrors.FormatForCLI(err))
	}
}

// warn reports a non-fatal problem on stderr. The debug log gets the
// structured error.
func (s *benchSession) warn(msg string, err error) {
	slog.Debug(msg, amerrors.LogAttrs(err)...)
	s.status.Warningf("%s: %v", msg, err)
}
