// Package config loads phonebench configuration from defaults, the user
// config file, a project file and PHONEBENCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ProjectFileNames are the project config names looked up in a directory,
// in order of precedence.
var ProjectFileNames = []string{".phonebench.yaml", ".phonebench.yml"}

// Config represents the complete phonebench configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	Paths     PathsConfig     `yaml:"paths" json:"paths"`
	Benchmark BenchmarkConfig `yaml:"benchmark" json:"benchmark"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	History   HistoryConfig   `yaml:"history" json:"history"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Watch     WatchConfig     `yaml:"watch" json:"watch"`
	Cache     CacheConfig     `yaml:"cache" json:"cache"`
}

// PathsConfig names the two input files.
type PathsConfig struct {
	// Directory holds one "<phone> <name>" entry per line.
	Directory string `yaml:"directory" json:"directory"`
	// Queries holds one name per line.
	Queries string `yaml:"queries" json:"queries"`
}

// BenchmarkConfig tunes the benchmark runner.
type BenchmarkConfig struct {
	// AbortFactor bounds bubble sort at this many linear-search baselines.
	AbortFactor int `yaml:"abort_factor" json:"abort_factor"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	// Color is auto, always or never.
	Color string `yaml:"color" json:"color"`
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Path    string `yaml:"path" json:"path"`
	// Driver is "sqlite" (pure Go) or "sqlite3" (cgo).
	Driver string `yaml:"driver" json:"driver"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// WatchConfig configures `run --watch`.
type WatchConfig struct {
	Debounce string `yaml:"debounce" json:"debounce"`
}

// CacheConfig sizes the parsed input cache.
type CacheConfig struct {
	Entries int `yaml:"entries" json:"entries"`
}

// HistoryEnabled reports whether runs are recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// DebounceDuration returns the parsed watch debounce window.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Directory: "directory.txt",
			Queries:   "find.txt",
		},
		Benchmark: BenchmarkConfig{
			AbortFactor: 10,
		},
		Output: OutputConfig{
			Color: "auto",
		},
		History: HistoryConfig{
			Path:   DefaultHistoryPath(),
			Driver: "sqlite",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		Cache: CacheConfig{
			Entries: 8,
		},
	}
}

// DataDir returns ~/.phonebench, falling back to the temp directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".phonebench")
	}
	return filepath.Join(home, ".phonebench")
}

// DefaultHistoryPath returns the default history database path.
func DefaultHistoryPath() string {
	return filepath.Join(DataDir(), "history.db")
}

// GetUserConfigPath returns the path to the user/global configuration file:
//   - $XDG_CONFIG_HOME/phonebench/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/phonebench/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "phonebench", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "phonebench", "config.yaml")
	}
	return filepath.Join(home, ".config", "phonebench", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var parsed Config
	if err := readYAML(configPath, &parsed); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", configPath, err)
	}
	return &parsed, nil
}

// Load builds the configuration for dir. Sources in increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/phonebench/config.yaml)
//  3. Project config: explicit path if given, else .phonebench.yaml in dir
//  4. Environment variables (PHONEBENCH_*)
//
// Command-line flags are applied by the caller on top of the result.
func Load(dir, explicit string) (*Config, error) {
	cfg := NewConfig()

	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}
	if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	projectPath, err := findProjectFile(dir, explicit)
	if err != nil {
		return nil, err
	}
	if projectPath != "" {
		var parsed Config
		if err := readYAML(projectPath, &parsed); err != nil {
			return nil, err
		}
		cfg.mergeWith(&parsed)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// findProjectFile returns the project config path, or "" when there is none.
// An explicit path that does not exist is an error.
func findProjectFile(dir, explicit string) (string, error) {
	if explicit != "" {
		if !fileExists(explicit) {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}
	for _, name := range ProjectFileNames {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p, nil
		}
	}
	return "", nil
}

func readYAML(path string, into *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Paths.Directory != "" {
		c.Paths.Directory = other.Paths.Directory
	}
	if other.Paths.Queries != "" {
		c.Paths.Queries = other.Paths.Queries
	}

	if other.Benchmark.AbortFactor != 0 {
		c.Benchmark.AbortFactor = other.Benchmark.AbortFactor
	}

	if other.Output.Color != "" {
		c.Output.Color = other.Output.Color
	}

	// Enabled is a pointer so an explicit false survives the merge.
	if other.History.Enabled != nil {
		enabled := *other.History.Enabled
		c.History.Enabled = &enabled
	}
	if other.History.Path != "" {
		c.History.Path = expandHome(other.History.Path)
	}
	if other.History.Driver != "" {
		c.History.Driver = other.History.Driver
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}

	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}

	if other.Cache.Entries != 0 {
		c.Cache.Entries = other.Cache.Entries
	}
}

// applyEnvOverrides applies PHONEBENCH_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PHONEBENCH_DIRECTORY"); v != "" {
		c.Paths.Directory = v
	}
	if v := os.Getenv("PHONEBENCH_QUERIES"); v != "" {
		c.Paths.Queries = v
	}
	if v := os.Getenv("PHONEBENCH_ABORT_FACTOR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PHONEBENCH_ABORT_FACTOR must be an integer, got %q", v)
		}
		c.Benchmark.AbortFactor = n
	}
	if v := os.Getenv("PHONEBENCH_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("PHONEBENCH_HISTORY"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PHONEBENCH_HISTORY must be a boolean, got %q", v)
		}
		c.History.Enabled = &enabled
	}
	if v := os.Getenv("PHONEBENCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.Directory) == "" {
		return fmt.Errorf("paths.directory must not be empty")
	}
	if strings.TrimSpace(c.Paths.Queries) == "" {
		return fmt.Errorf("paths.queries must not be empty")
	}

	if c.Benchmark.AbortFactor < 1 {
		return fmt.Errorf("benchmark.abort_factor must be at least 1, got %d", c.Benchmark.AbortFactor)
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[strings.ToLower(c.Output.Color)] {
		return fmt.Errorf("output.color must be 'auto', 'always', or 'never', got %s", c.Output.Color)
	}

	validDrivers := map[string]bool{"sqlite": true, "sqlite3": true}
	if !validDrivers[c.History.Driver] {
		return fmt.Errorf("history.driver must be 'sqlite' or 'sqlite3', got %s", c.History.Driver)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d < 0 {
		return fmt.Errorf("watch.debounce must be a non-negative duration, got %q", c.Watch.Debounce)
	}

	if c.Cache.Entries < 0 {
		return fmt.Errorf("cache.entries must be non-negative, got %d", c.Cache.Entries)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
