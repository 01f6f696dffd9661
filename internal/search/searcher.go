package search

import "github.com/Aman-CERP/phonebench/internal/phonebook"

// Searcher looks a name up in a prepared directory.
type Searcher interface {
	// Find returns the matching entry and true, or false if query is absent.
	Find(query string) (phonebook.Entry, bool)
}

// SearchFunc adapts a search over a slice to the Searcher interface.
type SearchFunc func(haystack []phonebook.Entry, query string) (phonebook.Entry, bool)

// Over binds fn to a directory.
func Over(haystack []phonebook.Entry, fn SearchFunc) Searcher {
	return boundSearch{haystack: haystack, fn: fn}
}

type boundSearch struct {
	haystack []phonebook.Entry
	fn       SearchFunc
}

func (b boundSearch) Find(query string) (phonebook.Entry, bool) {
	return b.fn(b.haystack, query)
}

// CountFound runs every query through s and counts the hits.
func CountFound(s Searcher, queries []string) int {
	found := 0
	for _, q := range queries {
		if _, ok := s.Find(q); ok {
			found++
		}
	}
	return found
}
