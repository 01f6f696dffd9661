package ui

import (
	"io"
	"sync"

	"github.com/Aman-CERP/phonebench/internal/bench"
)

// PlainRenderer writes the report as plain text (for CI/pipes).
type PlainRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPlainRenderer creates a plain text renderer.
func NewPlainRenderer(cfg Config) *PlainRenderer {
	return &PlainRenderer{out: cfg.Output}
}

// Started implements bench.Reporter.
func (r *PlainRenderer) Started(s bench.Strategy, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	writeStart(r.out, plainPalette, s)
}

// Finished implements bench.Reporter.
func (r *PlainRenderer) Finished(res bench.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	writeResult(r.out, plainPalette, res)
}
