package phonebook

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheEntries is the number of parsed files kept by a Loader.
const DefaultCacheEntries = 8

type stamp struct {
	path    string
	size    int64
	modNano int64
}

// parsed is one cached file: its parsed form and the digest of the bytes it
// was parsed from.
type parsed[T any] struct {
	value  T
	digest Digest
}

// Loader reads input files and keeps recently parsed ones in an LRU cache
// keyed by path, size and modification time. In watch mode only the file that
// changed is parsed again.
type Loader struct {
	directories *lru.Cache[stamp, parsed[[]Entry]]
	queries     *lru.Cache[stamp, parsed[[]string]]
}

// NewLoader creates a Loader caching up to size parsed files of each kind.
func NewLoader(size int) *Loader {
	if size <= 0 {
		size = DefaultCacheEntries
	}
	dirs, _ := lru.New[stamp, parsed[[]Entry]](size)
	qs, _ := lru.New[stamp, parsed[[]string]](size)
	return &Loader{directories: dirs, queries: qs}
}

// Directory returns the parsed directory at path and the digest of the
// content it came from. Callers must not modify the returned slice.
func (l *Loader) Directory(path string) ([]Entry, Digest, error) {
	key, err := fileStamp(path)
	if err != nil {
		return nil, Digest{}, err
	}
	if p, ok := l.directories.Get(key); ok {
		slog.Debug("directory_cache_hit", slog.String("path", path))
		return p.value, p.digest, nil
	}
	entries, digest, err := loadDirectory(path)
	if err != nil {
		return nil, Digest{}, err
	}
	l.directories.Add(key, parsed[[]Entry]{value: entries, digest: digest})
	return entries, digest, nil
}

// Queries returns the parsed queries file at path and its digest.
func (l *Loader) Queries(path string) ([]string, Digest, error) {
	key, err := fileStamp(path)
	if err != nil {
		return nil, Digest{}, err
	}
	if p, ok := l.queries.Get(key); ok {
		slog.Debug("queries_cache_hit", slog.String("path", path))
		return p.value, p.digest, nil
	}
	queries, digest, err := loadQueries(path)
	if err != nil {
		return nil, Digest{}, err
	}
	l.queries.Add(key, parsed[[]string]{value: queries, digest: digest})
	return queries, digest, nil
}

// Len returns the number of cached directory and query files.
func (l *Loader) Len() (directories, queries int) {
	return l.directories.Len(), l.queries.Len()
}
