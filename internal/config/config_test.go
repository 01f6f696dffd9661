package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config at an empty temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, key := range []string{
		"PHONEBENCH_DIRECTORY", "PHONEBENCH_QUERIES", "PHONEBENCH_ABORT_FACTOR",
		"PHONEBENCH_COLOR", "PHONEBENCH_HISTORY", "PHONEBENCH_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return xdg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	// Given: no configuration file exists
	cfg := NewConfig()

	// Then: all defaults should be applied
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "directory.txt", cfg.Paths.Directory)
	assert.Equal(t, "find.txt", cfg.Paths.Queries)
	assert.Equal(t, 10, cfg.Benchmark.AbortFactor)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, "sqlite", cfg.History.Driver)
	assert.Equal(t, "history.db", filepath.Base(cfg.History.Path))
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceDuration())
	assert.Equal(t, 8, cfg.Cache.Entries)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFiles_ReturnsDefaults(t *testing.T) {
	isolate(t)

	// Given: an empty project directory
	dir := t.TempDir()

	// When: loading
	cfg, err := Load(dir, "")

	// Then: defaults are returned
	require.NoError(t, err)
	assert.Equal(t, NewConfig().Paths, cfg.Paths)
	assert.Equal(t, 10, cfg.Benchmark.AbortFactor)
}

func TestLoad_Precedence(t *testing.T) {
	xdg := isolate(t)
	dir := t.TempDir()

	// Given: user config sets abort factor, color and queries
	writeFile(t, filepath.Join(xdg, "phonebench", "config.yaml"), `
benchmark:
  abort_factor: 3
output:
  color: never
paths:
  queries: user-find.txt
`)
	// And: project config overrides abort factor and directory
	writeFile(t, filepath.Join(dir, ".phonebench.yaml"), `
benchmark:
  abort_factor: 5
paths:
  directory: project-dir.txt
`)
	// And: env overrides the directory again
	t.Setenv("PHONEBENCH_DIRECTORY", "env-dir.txt")

	// When: loading
	cfg, err := Load(dir, "")
	require.NoError(t, err)

	// Then: each key comes from its highest-precedence source
	assert.Equal(t, 5, cfg.Benchmark.AbortFactor)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, "user-find.txt", cfg.Paths.Queries)
	assert.Equal(t, "env-dir.txt", cfg.Paths.Directory)
}

func TestLoad_YmlExtension(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".phonebench.yml"), "benchmark:\n  abort_factor: 7\n")

	cfg, err := Load(dir, "")

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Benchmark.AbortFactor)
}

func TestLoad_ExplicitPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".phonebench.yaml"), "benchmark:\n  abort_factor: 7\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "benchmark:\n  abort_factor: 2\n")

	// When: an explicit config is given
	cfg, err := Load(dir, explicit)

	// Then: it replaces the project file lookup
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Benchmark.AbortFactor)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".phonebench.yaml"), "benchmark: [unterminated\n")

	_, err := Load(dir, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_HistoryDisabledSurvivesMerge(t *testing.T) {
	xdg := isolate(t)
	dir := t.TempDir()

	// Given: user config disables history, project config says nothing about it
	writeFile(t, filepath.Join(xdg, "phonebench", "config.yaml"), "history:\n  enabled: false\n")
	writeFile(t, filepath.Join(dir, ".phonebench.yaml"), "logging:\n  level: debug\n")

	cfg, err := Load(dir, "")

	require.NoError(t, err)
	assert.False(t, cfg.HistoryEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_HistoryPathExpandsHome(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".phonebench.yaml"), "history:\n  path: ~/runs.db\n")

	cfg, err := Load(dir, "")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "runs.db"), cfg.History.Path)
}

func TestApplyEnvOverrides(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, cfg *Config)
		wantErr string
	}{
		{
			name: "all overrides",
			env: map[string]string{
				"PHONEBENCH_DIRECTORY":    "d.txt",
				"PHONEBENCH_QUERIES":      "q.txt",
				"PHONEBENCH_ABORT_FACTOR": "4",
				"PHONEBENCH_COLOR":        "always",
				"PHONEBENCH_HISTORY":      "false",
				"PHONEBENCH_LOG_LEVEL":    "error",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "d.txt", cfg.Paths.Directory)
				assert.Equal(t, "q.txt", cfg.Paths.Queries)
				assert.Equal(t, 4, cfg.Benchmark.AbortFactor)
				assert.Equal(t, "always", cfg.Output.Color)
				assert.False(t, cfg.HistoryEnabled())
				assert.Equal(t, "error", cfg.Logging.Level)
			},
		},
		{
			name:    "bad abort factor",
			env:     map[string]string{"PHONEBENCH_ABORT_FACTOR": "ten"},
			wantErr: "PHONEBENCH_ABORT_FACTOR",
		},
		{
			name:    "bad history flag",
			env:     map[string]string{"PHONEBENCH_HISTORY": "maybe"},
			wantErr: "PHONEBENCH_HISTORY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := NewConfig()

			err := cfg.applyEnvOverrides()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty directory", mutate: func(c *Config) { c.Paths.Directory = " " }, wantErr: "paths.directory"},
		{name: "empty queries", mutate: func(c *Config) { c.Paths.Queries = "" }, wantErr: "paths.queries"},
		{name: "zero abort factor", mutate: func(c *Config) { c.Benchmark.AbortFactor = 0 }, wantErr: "abort_factor"},
		{name: "abort factor one", mutate: func(c *Config) { c.Benchmark.AbortFactor = 1 }},
		{name: "bad color", mutate: func(c *Config) { c.Output.Color = "rainbow" }, wantErr: "output.color"},
		{name: "upper case color", mutate: func(c *Config) { c.Output.Color = "NEVER" }},
		{name: "bad driver", mutate: func(c *Config) { c.History.Driver = "postgres" }, wantErr: "history.driver"},
		{name: "cgo driver", mutate: func(c *Config) { c.History.Driver = "sqlite3" }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad debounce", mutate: func(c *Config) { c.Watch.Debounce = "soon" }, wantErr: "watch.debounce"},
		{name: "negative cache", mutate: func(c *Config) { c.Cache.Entries = -1 }, wantErr: "cache.entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	isolate(t)

	// Given: a customised config written as a project file
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Benchmark.AbortFactor = 6
	cfg.Paths.Directory = "big.txt"
	require.NoError(t, cfg.WriteYAML(filepath.Join(dir, ".phonebench.yaml")))

	// When: loading it back
	loaded, err := Load(dir, "")

	// Then: the values survive
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Benchmark.AbortFactor)
	assert.Equal(t, "big.txt", loaded.Paths.Directory)
}

func TestGetUserConfigPath_RespectsXDG(t *testing.T) {
	xdg := isolate(t)

	assert.Equal(t, filepath.Join(xdg, "phonebench", "config.yaml"), GetUserConfigPath())
	assert.Equal(t, filepath.Join(xdg, "phonebench"), GetUserConfigDir())
	assert.False(t, UserConfigExists())
}
