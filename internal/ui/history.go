package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Aman-CERP/phonebench/internal/bench"
	"github.com/Aman-CERP/phonebench/internal/history"
)

// HistoryRenderer prints recorded runs for `phonebench history`.
type HistoryRenderer struct {
	out    io.Writer
	styles Styles
	now    func() time.Time
}

// NewHistoryRenderer creates a history renderer.
func NewHistoryRenderer(cfg Config) *HistoryRenderer {
	styles := NoColorStyles()
	if useStyle(cfg) {
		styles = DefaultStyles()
	}
	return &HistoryRenderer{out: cfg.Output, styles: styles, now: time.Now}
}

// Render prints runs as text, newest first as given.
func (r *HistoryRenderer) Render(runs []history.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(r.out, "No runs recorded yet.")
		return err
	}

	for _, run := range runs {
		_, _ = fmt.Fprintf(r.out, "%s  %s  %s\n",
			r.styles.Header.Render(fmt.Sprintf("Run #%d", run.ID)),
			r.formatTime(run.StartedAt),
			r.styles.Label.Render("fingerprint "+run.Fingerprint))
		_, _ = fmt.Fprintf(r.out, "  %s (%d entries), %s (%d queries), abort factor %d\n",
			run.DirectoryPath, run.Entries, run.QueriesPath, run.Queries, run.AbortFactor)

		for _, res := range run.Results {
			line := fmt.Sprintf("  %-28s %s  %d/%d", res.Strategy, bench.FormatElapsed(res.Total),
				res.Info.Found, res.Queries)
			if res.Info.Aborted {
				line += r.styles.Warning.Render("  STOPPED")
			}
			_, _ = fmt.Fprintln(r.out, line)
		}
		_, _ = fmt.Fprintln(r.out)
	}
	return nil
}

// historyJSON is the stable JSON shape of one run.
type historyJSON struct {
	ID            int64        `json:"id"`
	StartedAt     time.Time    `json:"started_at"`
	Fingerprint   string       `json:"fingerprint"`
	DirectoryPath string       `json:"directory_path"`
	QueriesPath   string       `json:"queries_path"`
	Entries       int          `json:"entries"`
	Queries       int          `json:"queries"`
	AbortFactor   int          `json:"abort_factor"`
	Results       []resultJSON `json:"results"`
}

type resultJSON struct {
	Strategy    string `json:"strategy"`
	Found       int    `json:"found"`
	TotalNS     int64  `json:"total_ns"`
	SortingNS   *int64 `json:"sorting_ns,omitempty"`
	SearchingNS *int64 `json:"searching_ns,omitempty"`
	HashingNS   *int64 `json:"hashing_ns,omitempty"`
	Aborted     bool   `json:"aborted"`
}

// RenderJSON prints runs as an indented JSON array.
func (r *HistoryRenderer) RenderJSON(runs []history.Run) error {
	out := make([]historyJSON, 0, len(runs))
	for _, run := range runs {
		h := historyJSON{
			ID:            run.ID,
			StartedAt:     run.StartedAt,
			Fingerprint:   run.Fingerprint,
			DirectoryPath: run.DirectoryPath,
			QueriesPath:   run.QueriesPath,
			Entries:       run.Entries,
			Queries:       run.Queries,
			AbortFactor:   run.AbortFactor,
			Results:       make([]resultJSON, 0, len(run.Results)),
		}
		for _, res := range run.Results {
			h.Results = append(h.Results, resultJSON{
				Strategy:    res.Strategy.Key(),
				Found:       res.Info.Found,
				TotalNS:     int64(res.Total),
				SortingNS:   phaseNS(res.Info.Sorting),
				SearchingNS: phaseNS(res.Info.Searching),
				HashingNS:   phaseNS(res.Info.Hashing),
				Aborted:     res.Info.Aborted,
			})
		}
		out = append(out, h)
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func phaseNS(p bench.Phase) *int64 {
	if !p.Measured {
		return nil
	}
	ns := int64(p.Elapsed)
	return &ns
}

// formatTime renders t with a relative age for recent runs.
func (r *HistoryRenderer) formatTime(t time.Time) string {
	abs := t.Local().Format("2006-01-02 15:04")
	diff := r.now().Sub(t)

	switch {
	case diff < 0:
		return abs
	case diff < time.Minute:
		return abs + " (just now)"
	case diff < time.Hour:
		return fmt.Sprintf("%s (%s ago)", abs, plural(int(diff.Minutes()), "minute"))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%s (%s ago)", abs, plural(int(diff.Hours()), "hour"))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%s (%s ago)", abs, plural(int(diff.Hours()/24), "day"))
	default:
		return abs
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// RenderComparison prints how current fared against baseline, one line per
// strategy. A nil baseline means no earlier run shares the fingerprint.
func (r *HistoryRenderer) RenderComparison(current history.Run, baseline *history.Run) error {
	if baseline == nil {
		_, err := fmt.Fprintf(r.out, "Run #%d has no earlier run with fingerprint %s to compare against.\n",
			current.ID, current.Fingerprint)
		return err
	}

	_, _ = fmt.Fprintf(r.out, "%s  against run #%d (%s)\n",
		r.styles.Header.Render(fmt.Sprintf("Run #%d", current.ID)),
		baseline.ID, r.formatTime(baseline.StartedAt))

	regressions := 0
	for _, d := range history.Compare(current, *baseline) {
		if d.Status == history.StatusNew {
			_, _ = fmt.Fprintf(r.out, "  %-28s %s  %s\n", d.Strategy, bench.FormatElapsed(d.Current),
				r.styles.Label.Render("new"))
			continue
		}

		status := string(d.Status)
		switch d.Status {
		case history.StatusRegression:
			regressions++
			status = r.styles.Error.Render(status)
		case history.StatusImproved:
			status = r.styles.Header.Render(status)
		}
		_, _ = fmt.Fprintf(r.out, "  %-28s %s  was %s  %+6.1f%%  %s\n", d.Strategy,
			bench.FormatElapsed(d.Current), bench.FormatElapsed(d.Baseline), d.Percent, status)
	}

	if regressions > 0 {
		noun := "strategies"
		if regressions == 1 {
			noun = "strategy"
		}
		_, err := fmt.Fprintf(r.out, "\n%d %s slower by more than %.0f%%\n",
			regressions, noun, history.RegressionThreshold*100)
		return err
	}
	_, err := fmt.Fprintln(r.out)
	return err
}
