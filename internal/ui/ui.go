// Package ui renders benchmark reports for the terminal.
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Aman-CERP/phonebench/internal/bench"
)

// ColorMode selects when styled output is used.
type ColorMode string

const (
	// ColorAuto styles output only on an interactive terminal outside CI.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output even when it is piped.
	ColorAlways ColorMode = "always"
	// ColorNever always writes plain text.
	ColorNever ColorMode = "never"
)

// ParseColorMode converts a config value into a ColorMode.
func ParseColorMode(s string) (ColorMode, bool) {
	switch ColorMode(strings.ToLower(s)) {
	case ColorAuto, "":
		return ColorAuto, true
	case ColorAlways:
		return ColorAlways, true
	case ColorNever:
		return ColorNever, true
	default:
		return "", false
	}
}

// Renderer writes a report block for every strategy a bench.Runner executes.
type Renderer interface {
	bench.Reporter
}

// Config configures the renderer.
type Config struct {
	Output io.Writer
	Color  ColorMode
}

// ConfigOption is a function that modifies Config.
type ConfigOption func(*Config)

// WithColor sets the color mode.
func WithColor(mode ColorMode) ConfigOption {
	return func(c *Config) {
		c.Color = mode
	}
}

// NewConfig creates a new Config with the given output and options.
func NewConfig(output io.Writer, opts ...ConfigOption) Config {
	cfg := Config{
		Output: output,
		Color:  ColorAuto,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewRenderer returns a styled renderer for interactive terminals and a
// plain text renderer for pipes, CI, NO_COLOR, or when color is disabled.
func NewRenderer(cfg Config) Renderer {
	if useStyle(cfg) {
		return NewStyledRenderer(cfg)
	}
	return NewPlainRenderer(cfg)
}

func useStyle(cfg Config) bool {
	switch cfg.Color {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	return IsTTY(cfg.Output) && !DetectCI() && !DetectNoColor()
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}
