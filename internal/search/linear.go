package search

import "github.com/Aman-CERP/phonebench/internal/phonebook"

// Linear returns the first entry whose name equals query.
func Linear(haystack []phonebook.Entry, query string) (phonebook.Entry, bool) {
	for _, e := range haystack {
		if e.Name == query {
			return e, true
		}
	}
	return phonebook.Entry{}, false
}
