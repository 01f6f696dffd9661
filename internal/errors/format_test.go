package errors

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForCLI_IncludesDetailsHintAndCode(t *testing.T) {
	// Given: an error with details and a suggestion
	err := New(ErrCodeMalformedEntry, "directory line has no space separator", nil).
		WithDetail("path", "directory.txt").
		WithDetail("line", "3").
		WithSuggestion("Each line must look like '<phone> <name>'")

	// When: formatting for CLI
	result := FormatForCLI(err)

	// Then: all parts are present, details sorted by key
	assert.Contains(t, result, "Error: directory line has no space separator")
	assert.Contains(t, result, "  line: 3\n  path: directory.txt\n")
	assert.Contains(t, result, "Hint: Each line must look like")
	assert.Contains(t, result, "Code: ERR_401_MALFORMED_ENTRY")
}

func TestFormatForCLI_StandardError(t *testing.T) {
	result := FormatForCLI(errors.New("something broke"))

	assert.Contains(t, result, "Error: something broke")
	assert.Contains(t, result, ErrCodeInternal)
}

func TestFormatForCLI_Cause(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "failed to load configuration", errors.New("abort_factor must be at least 1"))

	result := FormatForCLI(err)

	assert.Contains(t, result, "  Cause: abort_factor must be at least 1\n")
	assert.NotContains(t, FormatForCLI(errors.New("plain")), "Cause:")
}

func TestFormatForCLI_Nil(t *testing.T) {
	assert.Empty(t, FormatForCLI(nil))
}

func TestFormatJSON(t *testing.T) {
	// Given: an error with a cause
	err := New(ErrCodeFileNotFound, "find.txt not found", errors.New("no such file")).
		WithDetail("path", "find.txt")

	// When: formatting as JSON
	data, jerr := FormatJSON(err)
	require.NoError(t, jerr)

	// Then: fields round-trip
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, ErrCodeFileNotFound, parsed["code"])
	assert.Equal(t, "IO", parsed["category"])
	assert.Equal(t, "FATAL", parsed["severity"])
	assert.Equal(t, "no such file", parsed["cause"])
}

func TestLogAttrs(t *testing.T) {
	err := New(ErrCodeLockBusy, "another benchmark is running", nil).WithDetail("lock", "/tmp/x.lock")

	attrs := LogAttrs(err)

	require.Len(t, attrs, 10)
	assert.Equal(t, "error_code", attrs[0])
	assert.Equal(t, ErrCodeLockBusy, attrs[1])
	assert.Contains(t, attrs, "detail_lock")
	assert.Equal(t, []any{"error", "plain"}, LogAttrs(errors.New("plain")))
	assert.Nil(t, LogAttrs(nil))
}
