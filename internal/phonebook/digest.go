package phonebook

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest identifies the exact bytes of one input file.
type Digest struct {
	Sum  uint64
	Size int64
}

// String renders the digest as "<hex sum>:<size>".
func (d Digest) String() string {
	return fmt.Sprintf("%016x:%d", d.Sum, d.Size)
}

// digester hashes everything written to it and counts the bytes.
type digester struct {
	h *xxhash.Digest
	n int64
}

func newDigester() *digester {
	return &digester{h: xxhash.New()}
}

func (d *digester) Write(p []byte) (int, error) {
	d.n += int64(len(p))
	return d.h.Write(p)
}

func (d *digester) digest() Digest {
	return Digest{Sum: d.h.Sum64(), Size: d.n}
}

// DigestOf consumes r and returns the digest of its content.
func DigestOf(r io.Reader) (Digest, error) {
	d := newDigester()
	if _, err := io.Copy(d, r); err != nil {
		return Digest{}, err
	}
	return d.digest(), nil
}
