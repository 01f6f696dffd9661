// Package phonebook holds the directory data model and the loaders that read
// the directory and query files into memory.
package phonebook

import "strings"

// Entry is a single directory record. Name is the sort and search key.
type Entry struct {
	Phone string
	Name  string
	// Line is the 1-based input line the entry was read from. It breaks ties
	// between equal names so every sort produces the same order.
	Line int
}

// Less orders entries by name, then by input line.
func Less(a, b Entry) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Line < b.Line
}

// Compare returns -1, 0 or 1 following the same order as Less.
func Compare(a, b Entry) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	default:
		return 0
	}
}

// IsSorted reports whether entries are in Less order.
func IsSorted(entries []Entry) bool {
	for i := 1; i < len(entries); i++ {
		if Less(entries[i], entries[i-1]) {
			return false
		}
	}
	return true
}

// ParseEntry splits a directory line on its first space into phone and name.
// The name may itself contain spaces.
func ParseEntry(line string, lineNo int) (Entry, bool) {
	phone, name, ok := strings.Cut(line, " ")
	if !ok {
		return Entry{}, false
	}
	return Entry{Phone: phone, Name: name, Line: lineNo}, true
}
