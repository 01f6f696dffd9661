package phonebook

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
)

var (
	firstNames = []string{
		"Aaron", "Beatrice", "Carlos", "Dana", "Elif", "Farah", "Gustav", "Hana",
		"Ivan", "Jun", "Kofi", "Lena", "Mateo", "Nia", "Oskar", "Priya",
		"Quentin", "Rosa", "Sven", "Tamar", "Uma", "Viktor", "Wen", "Yusuf", "Zoe",
	}
	lastNames = []string{
		"Abbott", "Baker", "Castillo", "Dubois", "Eriksen", "Fischer", "Gupta",
		"Hayes", "Ibrahim", "Jensen", "Kowalski", "Lopez", "Moreau", "Nakamura",
		"Okafor", "Petrov", "Quinn", "Rossi", "Schmidt", "Tanaka", "Ueda",
		"Vasquez", "Walsh", "Xu", "Young", "Zielinski",
	}
)

// GenerateOptions controls a synthetic phonebook.
type GenerateOptions struct {
	Entries int
	Queries int
	// Missing is how many of the queries name nobody in the directory.
	Missing int
	Seed    uint64
	// Progress, if set, is called after each directory line is written.
	Progress func(done, total int)
}

// Validate checks the option ranges.
func (o GenerateOptions) Validate() error {
	switch {
	case o.Entries < 0 || o.Queries < 0 || o.Missing < 0:
		return fmt.Errorf("entries, queries and missing must not be negative")
	case o.Missing > o.Queries:
		return fmt.Errorf("missing (%d) cannot exceed queries (%d)", o.Missing, o.Queries)
	case o.Entries == 0 && o.Queries > o.Missing:
		return fmt.Errorf("an empty directory can only have missing queries")
	}
	return nil
}

// Generate writes a random directory to dir and queries to queries. The same
// options always produce the same bytes.
func Generate(dir, queries io.Writer, opts GenerateOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	names := make([]string, opts.Entries)
	dw := bufio.NewWriter(dir)
	for i := range names {
		names[i] = randomName(rng)
		phone := fmt.Sprintf("%03d%03d%04d", 200+rng.IntN(800), rng.IntN(1000), rng.IntN(10000))
		if _, err := fmt.Fprintf(dw, "%s %s\n", phone, names[i]); err != nil {
			return err
		}
		if opts.Progress != nil {
			opts.Progress(i+1, opts.Entries)
		}
	}
	if err := dw.Flush(); err != nil {
		return err
	}

	// Missing queries carry a suffix no generated name has.
	missingAt := make(map[int]bool, opts.Missing)
	for _, i := range rng.Perm(opts.Queries)[:opts.Missing] {
		missingAt[i] = true
	}

	qw := bufio.NewWriter(queries)
	for i := 0; i < opts.Queries; i++ {
		var q string
		if missingAt[i] {
			q = fmt.Sprintf("%s Unlisted-%d", randomName(rng), i)
		} else {
			q = names[rng.IntN(len(names))]
		}
		if _, err := fmt.Fprintln(qw, q); err != nil {
			return err
		}
	}
	return qw.Flush()
}

func randomName(rng *rand.Rand) string {
	return firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))]
}
