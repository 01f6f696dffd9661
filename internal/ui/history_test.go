package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/phonebench/internal/bench"
	"github.com/Aman-CERP/phonebench/internal/history"
)

func sampleRuns(started time.Time) []history.Run {
	return []history.Run{{
		ID:            3,
		StartedAt:     started,
		Fingerprint:   "00ff00ff00ff00ff",
		DirectoryPath: "directory.txt",
		QueriesPath:   "find.txt",
		Entries:       500,
		Queries:       20,
		AbortFactor:   10,
		Results: []bench.Result{
			{Strategy: bench.StrategyLinear, Queries: 20, Total: 1500 * time.Millisecond,
				Info: bench.SearchInfo{Found: 19}},
			{Strategy: bench.StrategyBubbleJump, Queries: 20, Total: 20 * time.Second,
				Info: bench.SearchInfo{Found: 19, Sorting: bench.Measured(19 * time.Second),
					Searching: bench.Measured(time.Second), Aborted: true}},
		},
	}}
}

func newTestHistoryRenderer(buf *bytes.Buffer, now time.Time) *HistoryRenderer {
	r := NewHistoryRenderer(NewConfig(buf, WithColor(ColorNever)))
	r.now = func() time.Time { return now }
	return r
}

func TestHistoryRenderer_Render(t *testing.T) {
	// Given: one run recorded two hours ago
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	buf := &bytes.Buffer{}
	r := newTestHistoryRenderer(buf, now)

	// When: rendering as text
	require.NoError(t, r.Render(sampleRuns(now.Add(-2*time.Hour))))

	// Then: header, inputs and one line per strategy are printed
	out := buf.String()
	assert.Contains(t, out, "Run #3")
	assert.Contains(t, out, "(2 hours ago)")
	assert.Contains(t, out, "fingerprint 00ff00ff00ff00ff")
	assert.Contains(t, out, "directory.txt (500 entries), find.txt (20 queries), abort factor 10")
	assert.Contains(t, out, "linear search                00 min. 01 sec. 500 ms.  19/20\n")
	assert.Contains(t, out, "bubble sort + jump search    00 min. 20 sec. 000 ms.  19/20  STOPPED\n")
}

func TestHistoryRenderer_Empty(t *testing.T) {
	buf := &bytes.Buffer{}

	require.NoError(t, newTestHistoryRenderer(buf, time.Now()).Render(nil))

	assert.Equal(t, "No runs recorded yet.\n", buf.String())
}

func TestHistoryRenderer_RenderJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newTestHistoryRenderer(buf, time.Now())

	require.NoError(t, r.RenderJSON(sampleRuns(time.Now())))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "00ff00ff00ff00ff", decoded[0]["fingerprint"])

	results := decoded[0]["results"].([]any)
	require.Len(t, results, 2)
	linear := results[0].(map[string]any)
	assert.Equal(t, "linear", linear["strategy"])
	assert.NotContains(t, linear, "sorting_ns")
	bubble := results[1].(map[string]any)
	assert.Equal(t, true, bubble["aborted"])
	assert.Equal(t, float64(19*time.Second), bubble["sorting_ns"])
}

func TestHistoryRenderer_FormatTime(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	r := newTestHistoryRenderer(&bytes.Buffer{}, now)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "(just now)"},
		{time.Minute, "(1 minute ago)"},
		{5 * time.Minute, "(5 minutes ago)"},
		{3 * time.Hour, "(3 hours ago)"},
		{24 * time.Hour, "(1 day ago)"},
	}
	for _, tt := range tests {
		assert.True(t, strings.HasSuffix(r.formatTime(now.Add(-tt.ago)), tt.want), tt.want)
	}
	assert.NotContains(t, r.formatTime(now.Add(-30*24*time.Hour)), "ago")
}

func TestHistoryRenderer_RenderComparison(t *testing.T) {
	// Given: a current run where bubble sort slowed down and linear sped up
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	baseline := sampleRuns(now.Add(-3 * time.Hour))[0]
	baseline.ID = 1
	current := sampleRuns(now)[0]
	current.Results[0].Total = time.Second
	current.Results[1].Total = 30 * time.Second
	current.Results = append(current.Results, bench.Result{Strategy: bench.StrategyHash, Queries: 20,
		Total: 5 * time.Millisecond})

	buf := &bytes.Buffer{}
	r := newTestHistoryRenderer(buf, now)

	// When: rendering the comparison
	require.NoError(t, r.RenderComparison(current, &baseline))

	// Then: every strategy is classified and regressions are summarised
	out := buf.String()
	assert.Contains(t, out, "Run #3  against run #1 (")
	assert.Contains(t, out, "(3 hours ago)")
	assert.Contains(t, out, "linear search                00 min. 01 sec. 000 ms.  was 00 min. 01 sec. 500 ms.   -33.3%  IMPROVED\n")
	assert.Contains(t, out, "bubble sort + jump search    00 min. 30 sec. 000 ms.  was 00 min. 20 sec. 000 ms.   +50.0%  REGRESSION\n")
	assert.Contains(t, out, "hash table                   00 min. 00 sec. 005 ms.  new\n")
	assert.True(t, strings.HasSuffix(out, "\n1 strategy slower by more than 20%\n"))
}

func TestHistoryRenderer_RenderComparison_NoBaseline(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newTestHistoryRenderer(buf, time.Now())

	require.NoError(t, r.RenderComparison(sampleRuns(time.Now())[0], nil))

	assert.Equal(t, "Run #3 has no earlier run with fingerprint 00ff00ff00ff00ff to compare against.\n", buf.String())
}
