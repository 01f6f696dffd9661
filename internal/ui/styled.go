package ui

import (
	"io"
	"sync"

	"github.com/Aman-CERP/phonebench/internal/bench"
)

// StyledRenderer writes the same report text as PlainRenderer, colored with
// lipgloss. Nothing is drawn while a strategy is being timed.
type StyledRenderer struct {
	mu      sync.Mutex
	out     io.Writer
	palette palette
}

// NewStyledRenderer creates a styled renderer.
func NewStyledRenderer(cfg Config) *StyledRenderer {
	styles := DefaultStyles()
	if DetectNoColor() {
		styles = NoColorStyles()
	}
	return &StyledRenderer{out: cfg.Output, palette: styles.palette()}
}

// Started implements bench.Reporter.
func (r *StyledRenderer) Started(s bench.Strategy, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	writeStart(r.out, r.palette, s)
}

// Finished implements bench.Reporter.
func (r *StyledRenderer) Finished(res bench.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	writeResult(r.out, r.palette, res)
}
