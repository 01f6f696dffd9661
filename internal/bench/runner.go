package bench

import (
	"context"
	"log/slog"
	"time"

	"github.com/Aman-CERP/phonebench/internal/phonebook"
	"github.com/Aman-CERP/phonebench/internal/search"
	"github.com/Aman-CERP/phonebench/internal/sorting"
)

// DefaultAbortFactor is how many linear-search baselines bubble sort may use
// before it is stopped.
const DefaultAbortFactor = 10

// Reporter receives progress from a Runner.
type Reporter interface {
	// Started is called before the strategy's timer starts.
	Started(s Strategy, queries int)
	// Finished is called after the strategy's timer stops.
	Finished(r Result)
}

// Runner executes strategies one after another.
type Runner struct {
	abortFactor int
	reporter    Reporter
	budget      func(baseline time.Duration) time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithAbortFactor sets the bubble sort budget as a multiple of the linear
// search baseline. Values below 1 are ignored.
func WithAbortFactor(factor int) Option {
	return func(r *Runner) {
		if factor >= 1 {
			r.abortFactor = factor
		}
	}
}

// WithReporter sets the progress reporter.
func WithReporter(rep Reporter) Option {
	return func(r *Runner) {
		r.reporter = rep
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		abortFactor: DefaultAbortFactor,
		reporter:    nopReporter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.budget == nil {
		r.budget = func(baseline time.Duration) time.Duration {
			return baseline * time.Duration(r.abortFactor)
		}
	}
	return r
}

// Run benchmarks every strategy in order. The directory and queries are only
// read. Cancellation is honoured between strategies, never inside one.
func (r *Runner) Run(ctx context.Context, directory []phonebook.Entry, queries []string) ([]Result, error) {
	results := make([]Result, 0, len(Strategies()))
	var baseline time.Duration

	for _, s := range Strategies() {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := r.runOne(s, directory, queries, baseline)
		if s == StrategyLinear {
			baseline = res.Total
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runOne(s Strategy, directory []phonebook.Entry, queries []string, baseline time.Duration) Result {
	r.reporter.Started(s, len(queries))

	var budget time.Duration
	if s == StrategyBubbleJump {
		budget = r.budget(baseline)
	}
	info, total := Time(func() SearchInfo {
		return r.execute(s, directory, queries, budget)
	})

	// Nothing is logged inside the timed block.
	if info.Aborted {
		slog.Debug("bubble_sort_aborted",
			slog.Duration("budget", budget),
			slog.Duration("elapsed", info.Sorting.Elapsed))
	}
	res := Result{Strategy: s, Queries: len(queries), Total: total, Info: info}
	slog.Debug("strategy_finished",
		slog.String("strategy", s.Key()),
		slog.Int("found", info.Found),
		slog.Int("queries", len(queries)),
		slog.Duration("total", total),
		slog.Bool("aborted", info.Aborted))

	r.reporter.Finished(res)
	return res
}

// execute does the timed work of one strategy. budget only applies to bubble
// sort.
func (r *Runner) execute(s Strategy, directory []phonebook.Entry, queries []string, budget time.Duration) SearchInfo {
	switch s {
	case StrategyLinear:
		return SearchInfo{Found: search.CountFound(search.Over(directory, search.Linear), queries)}

	case StrategyBubbleJump:
		type sorted struct {
			entries []phonebook.Entry
			aborted bool
		}
		out, sortTime := Time(func() sorted {
			entries, aborted := sorting.Bubble(directory, budget)
			return sorted{entries: entries, aborted: aborted}
		})

		var searcher search.Searcher
		if out.aborted {
			searcher = search.Over(directory, search.Linear)
		} else {
			searcher = search.Over(out.entries, search.Jump)
		}
		found, searchTime := Time(func() int { return search.CountFound(searcher, queries) })

		return SearchInfo{
			Found:     found,
			Sorting:   Measured(sortTime),
			Searching: Measured(searchTime),
			Aborted:   out.aborted,
		}

	case StrategyQuickBinary:
		sorted, sortTime := Time(func() []phonebook.Entry { return sorting.Quick(directory) })
		found, searchTime := Time(func() int {
			return search.CountFound(search.Over(sorted, search.Binary), queries)
		})
		return SearchInfo{Found: found, Sorting: Measured(sortTime), Searching: Measured(searchTime)}

	case StrategyHash:
		index, hashTime := Time(func() *search.HashIndex { return search.BuildHashIndex(directory) })
		found, searchTime := Time(func() int { return search.CountFound(index, queries) })
		return SearchInfo{Found: found, Hashing: Measured(hashTime), Searching: Measured(searchTime)}

	default:
		return SearchInfo{}
	}
}

type nopReporter struct{}

func (nopReporter) Started(Strategy, int) {}
func (nopReporter) Finished(Result)       {}
