package sorting

import (
	"slices"

	"github.com/Aman-CERP/phonebench/internal/phonebook"
)

// Quick sorts a copy of directory with quicksort using the Lomuto partition
// and the last element of each range as pivot.
func Quick(directory []phonebook.Entry) []phonebook.Entry {
	result := slices.Clone(directory)
	quicksort(result, 0, len(result)-1)
	return result
}

// quicksort recurses into the smaller side and loops on the larger one, which
// keeps the stack O(log n) on already sorted input.
func quicksort(a []phonebook.Entry, lo, hi int) {
	for lo < hi {
		p := partition(a, lo, hi)
		if p-lo < hi-p {
			quicksort(a, lo, p-1)
			lo = p + 1
		} else {
			quicksort(a, p+1, hi)
			hi = p - 1
		}
	}
}

func partition(a []phonebook.Entry, lo, hi int) int {
	pivot := a[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if phonebook.Less(a[j], pivot) {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}
