// Package cmd provides the CLI commands for phonebench.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/phonebench/internal/config"
	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/logging"
	"github.com/Aman-CERP/phonebench/internal/profiling"
	"github.com/Aman-CERP/phonebench/pkg/version"
)

// Persistent flags.
var (
	configPath   string
	debugMode    bool
	profileCPU   string
	profileMem   string
	profileTrace string
)

var (
	profileSession *profiling.Session
	loggingCleanup func()
)

// NewRootCmd creates the root command. Without a subcommand it runs the
// benchmark, accepting the same flags as `run`.
func NewRootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "phonebench",
		Short: "Benchmark phonebook search strategies",
		Long: `phonebench loads a phone directory and a list of names, then times four
ways of finding those names:

  linear search
  bubble sort + jump search (stopped if it takes too long)
  quick sort + binary search
  hash table

Each strategy runs on its own, one after another, and its timings are printed
as it finishes.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), cmd, opts)
		},
	}
	cmd.SetVersionTemplate("phonebench version {{.Version}}\n")

	addRunFlags(cmd, &opts)

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .phonebench.yaml in the current directory)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to ~/.phonebench/logs/")
	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfilingAndLogging
	cmd.PersistentPostRunE = stopProfilingAndLogging

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt by main.
func ExecuteContext(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	// PostRun hooks are skipped when RunE fails.
	cleanupProfilingAndLogging()
	return err
}

func startProfilingAndLogging(_ *cobra.Command, _ []string) error {
	if debugMode {
		logger, cleanup, err := logging.Setup(logging.DebugConfig())
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("debug_logging_enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Version))
	} else {
		level := config.NewConfig().Logging.Level
		// A broken config is reported by the command itself.
		if cfg, err := loadConfig(); err == nil {
			level = cfg.Logging.Level
		}
		logging.SetupStderr(level)
	}

	opts := profiling.Options{CPU: profileCPU, Mem: profileMem, Trace: profileTrace}
	if opts.Enabled() {
		s, err := profiling.Start(opts)
		if err != nil {
			return err
		}
		profileSession = s
	}
	return nil
}

func stopProfilingAndLogging(_ *cobra.Command, _ []string) error {
	var err error
	if profileSession != nil {
		err = profileSession.Stop()
		profileSession = nil
	}
	if loggingCleanup != nil {
		slog.Info("debug_logging_stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return err
}

func cleanupProfilingAndLogging() {
	_ = stopProfilingAndLogging(nil, nil)
}

// loadConfig loads the layered configuration for the current directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, amerrors.InternalError("failed to get current directory", err)
	}
	cfg, err := config.Load(cwd, configPath)
	if err != nil {
		code := amerrors.ErrCodeConfigInvalid
		if configPath != "" {
			if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
				code = amerrors.ErrCodeConfigNotFound
			}
		}
		return nil, amerrors.New(code, "failed to load configuration", err).
			WithSuggestion("Run 'phonebench config show' after fixing the file")
	}
	return cfg, nil
}
