package ui

import (
	"fmt"
	"io"

	"github.com/Aman-CERP/phonebench/internal/bench"
)

// paint decorates one piece of report text.
type paint func(s string) string

func identity(s string) string { return s }

// palette decides how each kind of report text is decorated.
type palette struct {
	header  paint
	summary paint
	label   paint
	warning paint
}

var plainPalette = palette{header: identity, summary: identity, label: identity, warning: identity}

func writeStart(w io.Writer, p palette, s bench.Strategy) {
	_, _ = fmt.Fprintln(w, p.header(fmt.Sprintf("Start searching (%s)...", s)))
}

// writeResult prints the summary, the optional phase lines and the blank
// separator line for one strategy.
func writeResult(w io.Writer, p palette, r bench.Result) {
	_, _ = fmt.Fprintln(w, p.summary(fmt.Sprintf("Found %d / %d entries. Time taken: %s",
		r.Info.Found, r.Queries, bench.FormatElapsed(r.Total))))

	if r.Info.Hashing.Measured {
		_, _ = fmt.Fprintln(w, p.label("Creating time: ")+bench.FormatElapsed(r.Info.Hashing.Elapsed))
	}
	if r.Info.Sorting.Measured {
		line := p.label("Sorting time: ") + bench.FormatElapsed(r.Info.Sorting.Elapsed)
		if r.Info.Aborted {
			line += p.warning(" - STOPPED, moved to linear search")
		}
		_, _ = fmt.Fprintln(w, line)
	}
	if r.Info.Searching.Measured {
		_, _ = fmt.Fprintln(w, p.label("Searching time: ")+bench.FormatElapsed(r.Info.Searching.Elapsed))
	}
	_, _ = fmt.Fprintln(w)
}
