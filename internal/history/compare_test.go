package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/phonebench/internal/bench"
)

func runWithTotals(totals map[bench.Strategy]time.Duration) Run {
	var run Run
	for _, s := range bench.Strategies() {
		if d, ok := totals[s]; ok {
			run.Results = append(run.Results, bench.Result{Strategy: s, Total: d})
		}
	}
	return run
}

func TestCompare(t *testing.T) {
	// Given: a baseline without a hash result
	baseline := runWithTotals(map[bench.Strategy]time.Duration{
		bench.StrategyLinear:      100 * time.Millisecond,
		bench.StrategyBubbleJump:  100 * time.Millisecond,
		bench.StrategyQuickBinary: 100 * time.Millisecond,
	})
	current := runWithTotals(map[bench.Strategy]time.Duration{
		bench.StrategyLinear:      115 * time.Millisecond,
		bench.StrategyBubbleJump:  130 * time.Millisecond,
		bench.StrategyQuickBinary: 80 * time.Millisecond,
		bench.StrategyHash:        time.Millisecond,
	})

	// When: comparing
	deltas := Compare(current, baseline)

	// Then: each strategy is classified against the thresholds
	require.Len(t, deltas, 4)
	assert.Equal(t, StatusOK, deltas[0].Status)
	assert.InDelta(t, 15.0, deltas[0].Percent, 0.001)
	assert.Equal(t, StatusRegression, deltas[1].Status)
	assert.Equal(t, StatusImproved, deltas[2].Status)
	assert.InDelta(t, -20.0, deltas[2].Percent, 0.001)
	assert.Equal(t, StatusNew, deltas[3].Status)
	assert.Equal(t, bench.StrategyHash, deltas[3].Strategy)
}

func TestCompare_ZeroBaseline(t *testing.T) {
	baseline := runWithTotals(map[bench.Strategy]time.Duration{bench.StrategyHash: 0})
	current := runWithTotals(map[bench.Strategy]time.Duration{bench.StrategyHash: time.Millisecond})

	deltas := Compare(current, baseline)

	require.Len(t, deltas, 1)
	assert.Equal(t, StatusOK, deltas[0].Status)
	assert.Zero(t, deltas[0].Percent)
}

func TestStore_Previous(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// Given: runs a, b, a
	firstA, err := s.Record(ctx, sampleRun("a", base))
	require.NoError(t, err)
	_, err = s.Record(ctx, sampleRun("b", base.Add(time.Hour)))
	require.NoError(t, err)
	secondA, err := s.Record(ctx, sampleRun("a", base.Add(2*time.Hour)))
	require.NoError(t, err)

	// When/Then: the latest a finds the first a
	prev, ok, err := s.Previous(ctx, Run{ID: secondA, Fingerprint: "a"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, firstA, prev.ID)
	assert.Len(t, prev.Results, 4)

	// And: the first a has no predecessor
	_, ok, err = s.Previous(ctx, Run{ID: firstA, Fingerprint: "a"})
	require.NoError(t, err)
	assert.False(t, ok)
}
