package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Aman-CERP/phonebench/internal/bench"
)

const (
	// RegressionThreshold is the slowdown beyond which a strategy counts as
	// regressed (20%).
	RegressionThreshold = 0.20
	// ImprovementThreshold is the speedup beyond which it counts as improved.
	ImprovementThreshold = 0.10
)

// Status classifies one strategy's change between two runs.
type Status string

const (
	StatusOK         Status = "OK"
	StatusRegression Status = "REGRESSION"
	StatusImproved   Status = "IMPROVED"
	StatusNew        Status = "NEW"
)

// Delta compares one strategy's total time against a baseline run.
type Delta struct {
	Strategy bench.Strategy
	Current  time.Duration
	Baseline time.Duration
	// Percent is positive when the current run is slower.
	Percent float64
	Status  Status
}

// Compare returns one Delta per strategy in current, in run order.
func Compare(current, baseline Run) []Delta {
	base := make(map[bench.Strategy]time.Duration, len(baseline.Results))
	for _, r := range baseline.Results {
		base[r.Strategy] = r.Total
	}

	deltas := make([]Delta, 0, len(current.Results))
	for _, r := range current.Results {
		d := Delta{Strategy: r.Strategy, Current: r.Total}
		b, ok := base[r.Strategy]
		if !ok {
			d.Status = StatusNew
			deltas = append(deltas, d)
			continue
		}
		d.Baseline = b

		change := 0.0
		if b > 0 {
			change = float64(r.Total-b) / float64(b)
		}
		d.Percent = change * 100

		switch {
		case change > RegressionThreshold:
			d.Status = StatusRegression
		case change < -ImprovementThreshold:
			d.Status = StatusImproved
		default:
			d.Status = StatusOK
		}
		deltas = append(deltas, d)
	}
	return deltas
}

// Previous returns the most recent run before run with the same fingerprint.
// ok is false when there is none.
func (s *Store) Previous(ctx context.Context, run Run) (prev Run, ok bool, err error) {
	var started string
	err = s.db.QueryRowContext(ctx, `
		SELECT id, started_at, fingerprint, directory_path, queries_path, entries, queries, abort_factor
		FROM runs
		WHERE fingerprint = ? AND id < ?
		ORDER BY id DESC
		LIMIT 1
	`, run.Fingerprint, run.ID).Scan(&prev.ID, &started, &prev.Fingerprint, &prev.DirectoryPath,
		&prev.QueriesPath, &prev.Entries, &prev.Queries, &prev.AbortFactor)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, historyError("query previous run", err)
	}
	prev.StartedAt, _ = time.Parse(time.RFC3339Nano, started)

	prev.Results, err = s.results(ctx, prev.ID, prev.Queries)
	if err != nil {
		return Run{}, false, err
	}
	return prev, true, nil
}
