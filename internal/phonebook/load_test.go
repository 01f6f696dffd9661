package phonebook

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDirectory_ParsesLines(t *testing.T) {
	// Given: a directory with CRLF endings and multi-word names
	input := "101 Alice\r\n102 Bob Smith\n103 Alice\n"

	// When: reading it
	entries, err := ReadDirectory(strings.NewReader(input), "mem")

	// Then: entries keep input order and line numbers
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Phone: "101", Name: "Alice", Line: 1},
		{Phone: "102", Name: "Bob Smith", Line: 2},
		{Phone: "103", Name: "Alice", Line: 3},
	}, entries)
}

func TestReadDirectory_MalformedLine(t *testing.T) {
	// Given: the third line has no space
	input := "101 Alice\n102 Bob\nCarol\n"

	// When: reading it
	_, err := ReadDirectory(strings.NewReader(input), "directory.txt")

	// Then: a malformed entry error names the line
	require.Error(t, err)
	be, ok := amerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, amerrors.ErrCodeMalformedEntry, be.Code)
	assert.Equal(t, "3", be.Details["line"])
	assert.Equal(t, "directory.txt", be.Details["path"])
}

func TestReadDirectory_EmptyLineIsMalformed(t *testing.T) {
	_, err := ReadDirectory(strings.NewReader("101 Alice\n\n102 Bob\n"), "mem")

	assert.Equal(t, amerrors.ErrCodeMalformedEntry, amerrors.GetCode(err))
}

func TestReadDirectory_Empty(t *testing.T) {
	entries, err := ReadDirectory(strings.NewReader(""), "mem")

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadQueries_KeepsLinesVerbatim(t *testing.T) {
	queries, err := ReadQueries(strings.NewReader("Alice\r\nCarol Ann\n Bob\n"), "mem")

	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Carol Ann", " Bob"}, queries)
}

func TestLoadDirectory_MissingFile(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope.txt"))

	require.Error(t, err)
	assert.Equal(t, amerrors.ErrCodeFileNotFound, amerrors.GetCode(err))
	assert.True(t, amerrors.IsFatal(err))
	assert.True(t, os.IsNotExist(unwrapAll(err)))
}

func unwrapAll(err error) error {
	for {
		be, ok := err.(*amerrors.BenchError)
		if !ok || be.Cause == nil {
			return err
		}
		err = be.Cause
	}
}

func TestLoadInputs_ReadsBothFiles(t *testing.T) {
	// Given: both input files on disk
	dir := t.TempDir()
	dirPath := writeFile(t, dir, "directory.txt", "101 Alice\n102 Bob\n103 Alice\n")
	qPath := writeFile(t, dir, "find.txt", "Alice\nCarol\nBob\n")

	// When: loading
	in, err := LoadInputs(context.Background(), NewLoader(0), dirPath, qPath)

	// Then: both are populated
	require.NoError(t, err)
	assert.Len(t, in.Directory, 3)
	assert.Equal(t, []string{"Alice", "Carol", "Bob"}, in.Queries)

	// And: the digests describe the bytes that were parsed
	want, err := DigestOf(strings.NewReader("101 Alice\n102 Bob\n103 Alice\n"))
	require.NoError(t, err)
	assert.Equal(t, want, in.DirectoryDigest)
	assert.Equal(t, int64(len("Alice\nCarol\nBob\n")), in.QueriesDigest.Size)
}

func TestLoadInputs_PropagatesError(t *testing.T) {
	dir := t.TempDir()
	dirPath := writeFile(t, dir, "directory.txt", "101 Alice\n")

	_, err := LoadInputs(context.Background(), NewLoader(0), dirPath, filepath.Join(dir, "missing.txt"))

	assert.Equal(t, amerrors.ErrCodeFileNotFound, amerrors.GetCode(err))
}

func TestLoader_CachesUntilFileChanges(t *testing.T) {
	// Given: a loader and a directory file
	dir := t.TempDir()
	path := writeFile(t, dir, "directory.txt", "101 Alice\n")
	loader := NewLoader(2)

	// When: loading twice without changes
	first, firstDigest, err := loader.Directory(path)
	require.NoError(t, err)
	second, secondDigest, err := loader.Directory(path)
	require.NoError(t, err)

	// Then: only one parse is cached
	assert.Equal(t, first, second)
	assert.Equal(t, firstDigest, secondDigest)
	dirs, _ := loader.Len()
	assert.Equal(t, 1, dirs)

	// When: the file changes
	require.NoError(t, os.WriteFile(path, []byte("101 Alice\n102 Bob\n"), 0o644))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
	third, thirdDigest, err := loader.Directory(path)

	// Then: the new content is parsed
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.NotEqual(t, firstDigest, thirdDigest)
}
