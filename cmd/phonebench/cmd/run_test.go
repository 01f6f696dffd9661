package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/phonebench/internal/config"
	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/lock"
)

func TestRun_PrintsReportForEveryStrategy(t *testing.T) {
	// Given: inputs in the working directory
	work := sandbox(t)
	writeInputs(t, work)

	// When: running without history
	out, _, err := execute(t, "run", "--no-color", "--no-history")

	// Then: every strategy reports 2 of 3 found, in order
	require.NoError(t, err)
	names := []string{"linear search", "bubble sort + jump search", "quick sort + binary search", "hash table"}
	last := -1
	for _, name := range names {
		idx := strings.Index(out, "Start searching ("+name+")...")
		require.GreaterOrEqual(t, idx, 0, name)
		assert.Greater(t, idx, last)
		last = idx
	}
	assert.Equal(t, 4, strings.Count(out, "Found 2 / 3 entries. Time taken: "))
	assert.Equal(t, 2, strings.Count(out, "Sorting time: "))
	assert.Equal(t, 1, strings.Count(out, "Creating time: "))
	assert.Equal(t, 3, strings.Count(out, "Searching time: "))
	assert.NotContains(t, out, "\x1b[")
}

func TestRoot_WithoutSubcommandRuns(t *testing.T) {
	work := sandbox(t)
	writeInputs(t, work)

	out, _, err := execute(t, "--no-color", "--no-history")

	require.NoError(t, err)
	assert.Contains(t, out, "Start searching (hash table)...")
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	// Given: a project config pointing at files that do not exist
	work := sandbox(t)
	writeInputs(t, work)
	cfg := config.NewConfig()
	cfg.Paths.Directory = "absent.txt"
	require.NoError(t, cfg.WriteYAML(".phonebench.yaml"))

	// When: the flags name the real files
	out, _, err := execute(t, "run", "--no-history", "--directory", "directory.txt", "--queries", "find.txt")

	// Then: the flags win
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 / 3 entries.")
}

func TestRun_MissingInputFile(t *testing.T) {
	sandbox(t)

	_, _, err := execute(t, "run", "--no-history", "--directory", "missing.txt")

	require.Error(t, err)
	assert.Equal(t, amerrors.ErrCodeFileNotFound, amerrors.GetCode(err))
}

func TestRun_MalformedDirectory(t *testing.T) {
	work := sandbox(t)
	writeInputs(t, work)
	require.NoError(t, writeFile("directory.txt", "5550001 John Smith\nbroken\n"))

	_, _, err := execute(t, "run", "--no-history")

	require.Error(t, err)
	be, ok := amerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, amerrors.ErrCodeMalformedEntry, be.Code)
	assert.Equal(t, "2", be.Details["line"])
}

func TestRun_InvalidAbortFactor(t *testing.T) {
	work := sandbox(t)
	writeInputs(t, work)

	_, _, err := execute(t, "run", "--no-history", "--abort-factor", "0")

	require.Error(t, err)
	assert.Equal(t, amerrors.ErrCodeConfigInvalid, amerrors.GetCode(err))
}

func TestRun_LockBusy(t *testing.T) {
	// Given: another process holds the run lock
	work := sandbox(t)
	writeInputs(t, work)
	held := lock.New(config.DataDir())
	require.NoError(t, held.Acquire(context.Background(), false))
	defer func() { _ = held.Release() }()

	// When: running without --wait-lock
	out, _, err := execute(t, "run", "--no-history")

	// Then: it fails fast without benchmarking
	require.Error(t, err)
	assert.Equal(t, amerrors.ErrCodeLockBusy, amerrors.GetCode(err))
	assert.Empty(t, out)
}

func TestRun_RecordsHistory(t *testing.T) {
	// Given: two runs over the same inputs
	work := sandbox(t)
	writeInputs(t, work)
	for i := 0; i < 2; i++ {
		_, _, err := execute(t, "run", "--no-color")
		require.NoError(t, err)
	}

	// When: listing history as JSON
	out, _, err := execute(t, "history", "--format", "json")
	require.NoError(t, err)

	// Then: both runs share a fingerprint and carry four results
	var runs []struct {
		ID          int64  `json:"id"`
		Fingerprint string `json:"fingerprint"`
		Entries     int    `json:"entries"`
		Queries     int    `json:"queries"`
		Results     []struct {
			Strategy string `json:"strategy"`
			Found    int    `json:"found"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Equal(t, runs[0].Fingerprint, runs[1].Fingerprint)
	assert.Equal(t, 4, runs[0].Entries)
	assert.Equal(t, 3, runs[0].Queries)
	require.Len(t, runs[0].Results, 4)
	assert.Equal(t, "linear", runs[0].Results[0].Strategy)
	assert.Equal(t, 2, runs[0].Results[3].Found)
}
