// Package search implements the directory lookups compared by the benchmark:
// linear scan, jump search, binary search and hash-table lookup.
//
// Jump and binary search expect a directory sorted with phonebook.Less and
// return the leftmost entry whose name equals the query. Under that order the
// leftmost match is the earliest input occurrence, so both agree with Linear
// run on the unsorted directory.
package search
