package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/phonebench/configs"
	"github.com/Aman-CERP/phonebench/internal/config"
	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage phonebench configuration.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/phonebench/config.yaml)
  3. Project config (.phonebench.yaml, or --config)
  4. Environment variables (PHONEBENCH_*)
  5. Command-line flags`,
		Example: `  # Create user config from template
  phonebench config init

  # Show effective configuration
  phonebench config show

  # Print config file paths
  phonebench config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the user configuration file",
		Long: `Write the annotated configuration template to the user config path.

An existing file is left alone unless --force is given, in which case it is
backed up next to itself first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (a backup is kept)")
	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())
	configPath := config.GetUserConfigPath()

	if config.UserConfigExists() {
		if !force {
			out.Warningf("User configuration already exists")
			out.Infof("Location: %s", configPath)
			out.Infof("Use --force to replace it (a backup is kept)")
			return nil
		}
		backupPath, err := config.BackupUserConfig()
		if err != nil {
			return amerrors.New(amerrors.ErrCodeFileWrite, "failed to back up user config", err).
				WithDetail("path", configPath)
		}
		out.Infof("Backup: %s", backupPath)
	}

	if err := os.MkdirAll(config.GetUserConfigDir(), 0o755); err != nil {
		return amerrors.New(amerrors.ErrCodeFileWrite, "failed to create config directory", err).
			WithDetail("path", config.GetUserConfigDir())
	}
	if err := os.WriteFile(configPath, []byte(configs.ConfigTemplate), 0o644); err != nil {
		return amerrors.New(amerrors.ErrCodeFileWrite, "failed to write config file", err).
			WithDetail("path", configPath)
	}

	out.Successf("Created user configuration")
	out.Infof("Location: %s", configPath)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Show the configuration after merging defaults, config files and environment variables.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return amerrors.InternalError("failed to marshal config", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project := configPath
			if project == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return amerrors.InternalError("failed to get current directory", err)
				}
				project = filepath.Join(cwd, config.ProjectFileNames[0])
			}

			historyPath := config.DefaultHistoryPath()
			if cfg, err := loadConfig(); err == nil {
				historyPath = cfg.History.Path
			}

			output.New(cmd.OutOrStdout()).KeyValue(
				[2]string{"user", config.GetUserConfigPath()},
				[2]string{"project", project},
				[2]string{"history", historyPath},
			)
			return nil
		},
	}
}
