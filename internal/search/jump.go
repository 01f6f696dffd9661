package search

import (
	"math"

	"github.com/Aman-CERP/phonebench/internal/phonebook"
)

// BlockSize returns the jump distance used for a directory of n entries.
func BlockSize(n int) int {
	size := int(math.Sqrt(float64(n)))
	if size < 1 {
		return 1
	}
	return size
}

// Jump searches a sorted directory by skipping ahead BlockSize entries at a
// time and scanning the block that must contain query.
func Jump(haystack []phonebook.Entry, query string) (phonebook.Entry, bool) {
	n := len(haystack)
	if n == 0 {
		return phonebook.Entry{}, false
	}
	step := BlockSize(n)

	prev, cur := 0, 0
	for {
		name := haystack[cur].Name
		switch {
		case query == name:
			// Equal names may also end the previous block.
			return Linear(haystack[prev:cur+1], query)
		case query < name:
			return Linear(haystack[prev:cur], query)
		}

		next := min(cur+step, n-1)
		if next == cur {
			return phonebook.Entry{}, false
		}
		prev, cur = cur, next
	}
}
