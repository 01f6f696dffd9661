package history

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/Aman-CERP/phonebench/internal/phonebook"
)

// FingerprintOf combines input digests, in order, into the key shared by runs
// over identical inputs.
func FingerprintOf(digests ...phonebook.Digest) string {
	d := xxhash.New()
	for _, dg := range digests {
		// The size delimits each file so content cannot shift across the boundary.
		_, _ = fmt.Fprintf(d, "%016x\x00%d\x00", dg.Sum, dg.Size)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// Fingerprint reads the given files and returns FingerprintOf their contents.
func Fingerprint(paths ...string) (string, error) {
	digests := make([]phonebook.Digest, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", p, err)
		}
		dg, err := phonebook.DigestOf(f)
		_ = f.Close()
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", p, err)
		}
		digests = append(digests, dg)
	}
	return FingerprintOf(digests...), nil
}
