package preflight

import (
	"context"
	"fmt"

	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
	"github.com/Aman-CERP/phonebench/internal/lock"
	"github.com/Aman-CERP/phonebench/internal/phonebook"
)

// BubbleWarnEntries is the directory size above which bubble sort is expected
// to hit its time box on typical hardware.
const BubbleWarnEntries = 20000

// CheckDirectory parses the directory file and returns the entry count.
func (c *Checker) CheckDirectory(path string) (CheckResult, int) {
	result := CheckResult{
		Name:     "directory",
		Required: true,
	}

	entries, err := phonebook.LoadDirectory(path)
	if err != nil {
		result.Status = StatusFail
		result.Message = describe(err)
		result.Details = suggestion(err)
		return result, 0
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%s (%d entries)", path, len(entries))
	if len(entries) == 0 {
		result.Status = StatusWarn
		result.Message = path + " is empty"
	}
	return result, len(entries)
}

// CheckQueries reads the queries file.
func (c *Checker) CheckQueries(path string) CheckResult {
	result := CheckResult{
		Name:     "queries",
		Required: true,
	}

	queries, err := phonebook.LoadQueries(path)
	if err != nil {
		result.Status = StatusFail
		result.Message = describe(err)
		result.Details = suggestion(err)
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%s (%d queries)", path, len(queries))
	if len(queries) == 0 {
		result.Status = StatusWarn
		result.Message = path + " is empty"
	}
	return result
}

// CheckBubbleCost warns when the directory is large enough that bubble sort
// will most likely be stopped in favour of linear search.
func (c *Checker) CheckBubbleCost(entries int) CheckResult {
	result := CheckResult{
		Name:    "bubble_sort",
		Status:  StatusPass,
		Message: fmt.Sprintf("~%d comparisons", comparisons(entries)),
	}
	if entries > BubbleWarnEntries {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%d entries, ~%d comparisons; expect it to be stopped",
			entries, comparisons(entries))
		result.Details = "Raise --abort-factor to let it finish"
	}
	return result
}

// CheckRunLock warns when another benchmark holds the run lock.
func (c *Checker) CheckRunLock(ctx context.Context, dataDir string) CheckResult {
	result := CheckResult{Name: "run_lock"}

	l := lock.New(dataDir)
	if err := l.Acquire(ctx, false); err != nil {
		result.Status = StatusWarn
		result.Message = describe(err)
		result.Details = suggestion(err)
		return result
	}
	_ = l.Release()

	result.Status = StatusPass
	result.Message = "free"
	return result
}

func comparisons(n int) int {
	return n * (n - 1) / 2
}

func describe(err error) string {
	be, ok := amerrors.As(err)
	if !ok {
		return err.Error()
	}
	if line, ok := be.Details["line"]; ok {
		return fmt.Sprintf("%s (line %s)", be.Message, line)
	}
	return be.Message
}

func suggestion(err error) string {
	if be, ok := amerrors.As(err); ok {
		return be.Suggestion
	}
	return ""
}
