package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/phonebench/internal/bench"
	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/pkg/version"
)

// benchEnv is the build plus the machine facts that affect timings.
type benchEnv struct {
	version.BuildInfo
	CPUs       int      `json:"cpus"`
	GOMAXPROCS int      `json:"gomaxprocs"`
	Strategies []string `json:"strategies"`
	Drivers    []string `json:"history_drivers"`
}

func currentEnv() benchEnv {
	env := benchEnv{
		BuildInfo:  version.GetInfo(),
		CPUs:       runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Drivers:    sql.Drivers(),
	}
	for _, s := range bench.Strategies() {
		env.Strategies = append(env.Strategies, s.Key())
	}
	return env
}

func newVersionCmd() *cobra.Command {
	var jsonOutput, shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and benchmark environment",
		Long: `Print the phonebench build with the facts that make timings comparable
between machines: CPU count, GOMAXPROCS, the strategies that run and the
SQLite drivers available for history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case shortOutput && jsonOutput:
				return amerrors.ValidationError("--short and --json cannot be combined", nil)
			case shortOutput:
				_, err := fmt.Fprintln(out, version.Short())
				return err
			case jsonOutput:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(currentEnv())
			}

			env := currentEnv()
			_, _ = fmt.Fprintln(out, version.String())
			_, _ = fmt.Fprintf(out, "  cpus: %d, gomaxprocs: %d\n", env.CPUs, env.GOMAXPROCS)
			_, _ = fmt.Fprintf(out, "  strategies: %s\n", strings.Join(env.Strategies, ", "))
			_, err := fmt.Fprintf(out, "  history drivers: %s\n", strings.Join(env.Drivers, ", "))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&shortOutput, "short", false, "Output only the version number")

	return cmd
}
