package search

import "github.com/Aman-CERP/phonebench/internal/phonebook"

// HashIndex maps names to entries.
type HashIndex struct {
	byName map[string]phonebook.Entry
}

// BuildHashIndex indexes the directory by name. When a name repeats, the
// last occurrence in input order wins.
func BuildHashIndex(directory []phonebook.Entry) *HashIndex {
	byName := make(map[string]phonebook.Entry, len(directory))
	for _, e := range directory {
		byName[e.Name] = e
	}
	return &HashIndex{byName: byName}
}

// Find implements Searcher.
func (h *HashIndex) Find(query string) (phonebook.Entry, bool) {
	e, ok := h.byName[query]
	return e, ok
}

// Len returns the number of distinct names.
func (h *HashIndex) Len() int {
	return len(h.byName)
}
