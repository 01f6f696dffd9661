package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sandbox isolates HOME, the user config and the working directory.
func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"PHONEBENCH_DIRECTORY", "PHONEBENCH_QUERIES", "PHONEBENCH_ABORT_FACTOR",
		"PHONEBENCH_COLOR", "PHONEBENCH_HISTORY", "PHONEBENCH_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	work := t.TempDir()
	t.Chdir(work)
	return work
}

func writeInputs(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "directory.txt"),
		[]byte("5550001 John Smith\n5550002 Ann Lee\n5550003 Bob Stone\n5550004 Ann Lee\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "find.txt"),
		[]byte("Ann Lee\nNobody Here\nJohn Smith\n"), 0o644))
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	cleanupProfilingAndLogging()
	return out.String(), errOut.String(), err
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
