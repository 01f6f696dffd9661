package bench

import (
	"fmt"
	"time"
)

// Phase is an optionally measured duration.
type Phase struct {
	Elapsed  time.Duration
	Measured bool
}

// Measured wraps a duration that was taken.
func Measured(d time.Duration) Phase {
	return Phase{Elapsed: d, Measured: true}
}

// SearchInfo summarizes the work done by one strategy.
type SearchInfo struct {
	Found     int
	Sorting   Phase
	Searching Phase
	Hashing   Phase
	// Aborted is set when bubble sort ran out of budget and the strategy
	// fell back to linear search.
	Aborted bool
}

// Result is the outcome of one strategy run.
type Result struct {
	Strategy Strategy
	Queries  int
	Total    time.Duration
	Info     SearchInfo
}

// Time runs fn and returns its value with the wall-clock time it took.
func Time[T any](fn func() T) (T, time.Duration) {
	start := time.Now()
	v := fn()
	return v, time.Since(start)
}

// FormatElapsed renders d as "MM min. SS sec. LLL ms.". Minutes are not
// wrapped at the hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d min. %02d sec. %03d ms.", ms/60_000, (ms/1000)%60, ms%1000)
}
