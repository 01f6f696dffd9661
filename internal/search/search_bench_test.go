package search

import (
	"fmt"
	"math/rand"
	"testing"
)

func BenchmarkSearch(b *testing.B) {
	for _, n := range []int{1_000, 100_000} {
		rng := rand.New(rand.NewSource(42))
		directory := randomDirectory(rng, n, n)
		sorted := sortedCopy(directory)
		queries := make([]string, 256)
		for i := range queries {
			queries[i] = fmt.Sprintf("name-%04d", rng.Intn(n))
		}

		searchers := []struct {
			name string
			s    Searcher
		}{
			{"linear", Over(directory, Linear)},
			{"jump", Over(sorted, Jump)},
			{"binary", Over(sorted, Binary)},
			{"hash", BuildHashIndex(directory)},
		}

		for _, tc := range searchers {
			b.Run(fmt.Sprintf("%s/n=%d", tc.name, n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					tc.s.Find(queries[i%len(queries)])
				}
			})
		}
	}
}
