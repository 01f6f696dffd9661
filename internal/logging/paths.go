package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns ~/.phonebench/logs, or a temp directory fallback.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".phonebench", "logs")
	}
	return filepath.Join(home, ".phonebench", "logs")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "phonebench.log")
}
