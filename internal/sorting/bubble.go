// Package sorting provides the two directory sorts compared by the benchmark.
// Both sort a copy with phonebook.Less and never touch the input slice.
package sorting

import (
	"slices"
	"time"

	"github.com/Aman-CERP/phonebench/internal/phonebook"
)

// Bubble sorts a copy of directory with adjacent swaps. Each pass moves the
// largest remaining entry to the end of the unsorted range; sorting stops
// early after a pass without swaps.
//
// The cumulative sort time is checked after every full pass. Once it exceeds
// budget the sort gives up and returns aborted=true with a nil slice. A budget
// of zero or less never aborts.
func Bubble(directory []phonebook.Entry, budget time.Duration) (sorted []phonebook.Entry, aborted bool) {
	return bubble(directory, budget, time.Now)
}

func bubble(directory []phonebook.Entry, budget time.Duration, now func() time.Time) ([]phonebook.Entry, bool) {
	result := slices.Clone(directory)
	start := now()

	for unsorted := len(result); unsorted > 1; unsorted-- {
		swapped := false
		for i := 1; i < unsorted; i++ {
			if phonebook.Less(result[i], result[i-1]) {
				result[i], result[i-1] = result[i-1], result[i]
				swapped = true
			}
		}

		if budget > 0 && now().Sub(start) > budget {
			return nil, true
		}
		if !swapped {
			break
		}
	}
	return result, false
}
