package search

import "github.com/Aman-CERP/phonebench/internal/phonebook"

// Binary halves the search range of a sorted directory until it isolates the
// leftmost entry whose name is not less than query.
func Binary(haystack []phonebook.Entry, query string) (phonebook.Entry, bool) {
	lo, hi := 0, len(haystack)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if haystack[mid].Name < query {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(haystack) && haystack[lo].Name == query {
		return haystack[lo], true
	}
	return phonebook.Entry{}, false
}
