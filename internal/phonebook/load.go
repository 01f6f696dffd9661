package phonebook

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1024 * 1024

// Inputs is everything a benchmark run reads from disk.
type Inputs struct {
	Directory []Entry
	Queries   []string
	// DirectoryDigest and QueriesDigest hash the bytes that were parsed.
	DirectoryDigest Digest
	QueriesDigest   Digest
}

// ReadDirectory parses directory lines of the form "<phone> <name>".
// A line without a space, including an empty line, is a malformed entry.
func ReadDirectory(r io.Reader, source string) ([]Entry, error) {
	var entries []Entry
	lineNo := 0
	err := scanLines(r, func(line string) error {
		lineNo++
		e, ok := ParseEntry(line, lineNo)
		if !ok {
			return amerrors.New(amerrors.ErrCodeMalformedEntry,
				"directory line has no space between phone and name", nil).
				WithDetail("path", source).
				WithDetail("line", strconv.Itoa(lineNo)).
				WithSuggestion("Each directory line must look like '<phone> <name>'")
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, wrapRead(err, source)
	}
	return entries, nil
}

// ReadQueries returns one query per line, verbatim apart from a trailing '\r'.
func ReadQueries(r io.Reader, source string) ([]string, error) {
	var queries []string
	err := scanLines(r, func(line string) error {
		queries = append(queries, line)
		return nil
	})
	if err != nil {
		return nil, wrapRead(err, source)
	}
	return queries, nil
}

// LoadDirectory reads and parses the directory file at path.
func LoadDirectory(path string) ([]Entry, error) {
	entries, _, err := loadDirectory(path)
	return entries, err
}

// LoadQueries reads the queries file at path.
func LoadQueries(path string) ([]string, error) {
	queries, _, err := loadQueries(path)
	return queries, err
}

func loadDirectory(path string) ([]Entry, Digest, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, Digest{}, err
	}
	defer func() { _ = f.Close() }()

	d := newDigester()
	entries, err := ReadDirectory(io.TeeReader(f, d), path)
	if err != nil {
		return nil, Digest{}, err
	}
	return entries, d.digest(), nil
}

func loadQueries(path string) ([]string, Digest, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, Digest{}, err
	}
	defer func() { _ = f.Close() }()

	d := newDigester()
	queries, err := ReadQueries(io.TeeReader(f, d), path)
	if err != nil {
		return nil, Digest{}, err
	}
	return queries, d.digest(), nil
}

// LoadInputs reads both input files. The two reads are independent and run
// in parallel; nothing here is part of a timed benchmark block.
func LoadInputs(ctx context.Context, loader *Loader, directoryPath, queriesPath string) (*Inputs, error) {
	var in Inputs
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, digest, err := loader.Directory(directoryPath)
		if err != nil {
			return err
		}
		in.Directory, in.DirectoryDigest = entries, digest
		return nil
	})
	g.Go(func() error {
		queries, digest, err := loader.Queries(queriesPath)
		if err != nil {
			return err
		}
		in.Queries, in.QueriesDigest = queries, digest
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("inputs_loaded",
		slog.String("directory", directoryPath),
		slog.Int("entries", len(in.Directory)),
		slog.String("queries", queriesPath),
		slog.Int("query_count", len(in.Queries)))
	return &in, nil
}

func scanLines(r io.Reader, fn func(line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if err := fn(strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	return sc.Err()
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	switch {
	case os.IsNotExist(err):
		return nil, amerrors.New(amerrors.ErrCodeFileNotFound, "input file not found: "+path, err).
			WithDetail("path", path).
			WithSuggestion("Pass --directory/--queries or set paths in .phonebench.yaml")
	case os.IsPermission(err):
		return nil, amerrors.New(amerrors.ErrCodeFilePermission, "cannot open input file: "+path, err).
			WithDetail("path", path)
	default:
		return nil, amerrors.IOError("cannot open input file: "+path, err).WithDetail("path", path)
	}
}

func wrapRead(err error, source string) error {
	if _, ok := amerrors.As(err); ok {
		return err
	}
	return amerrors.IOError("failed to read "+source, err).WithDetail("path", source)
}

// fileStamp identifies one version of a file on disk.
func fileStamp(path string) (stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stamp{}, amerrors.New(amerrors.ErrCodeFileNotFound, "input file not found: "+path, err).
				WithDetail("path", path).
				WithSuggestion("Pass --directory/--queries or set paths in .phonebench.yaml")
		}
		return stamp{}, amerrors.IOError("cannot stat input file: "+path, err).WithDetail("path", path)
	}
	return stampOf(path, info), nil
}

func stampOf(path string, info fs.FileInfo) stamp {
	return stamp{path: path, size: info.Size(), modNano: info.ModTime().UnixNano()}
}
