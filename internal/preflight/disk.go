package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// MinDiskSpaceBytes is the free space below which recording history fails (50MB).
const MinDiskSpaceBytes = 50 * 1024 * 1024

// historyGrowthFactor is how many copies of the current history must fit in
// the free space before the check stops warning.
const historyGrowthFactor = 4

// freeSpace reports the bytes available to unprivileged users on the
// filesystem holding path.
var freeSpace = func(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// CheckDiskSpace checks that the filesystem holding the history data
// directory has room for the database and its WAL files. The directory need
// not exist yet; the nearest existing parent is measured instead.
func (c *Checker) CheckDiskSpace(dir string, required bool) CheckResult {
	result := CheckResult{
		Name:     "disk_space",
		Required: required,
	}

	existing, err := nearestExisting(dir)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("cannot locate %s: %v", dir, err)
		return result
	}
	free, err := freeSpace(existing)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("cannot read free space of %s: %v", existing, err)
		return result
	}
	used := historyBytes(dir)

	result.Message = fmt.Sprintf("%s free, history uses %s", formatBytes(free), formatBytes(used))
	switch {
	case free < MinDiskSpaceBytes:
		result.Status = StatusFail
		result.Details = fmt.Sprintf("at least %s is needed to record runs; use --no-history or free space", formatBytes(MinDiskSpaceBytes))
	case used > 0 && free < used*historyGrowthFactor:
		result.Status = StatusWarn
		result.Details = fmt.Sprintf("history is large relative to free space; prune %s", dir)
	default:
		result.Status = StatusPass
	}
	return result
}

func nearestExisting(dir string) (string, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		path = parent
	}
}

// historyBytes sums the regular files directly inside dir: the database
// plus any -wal and -shm siblings. A missing directory counts as empty.
func historyBytes(dir string) uint64 {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	var total uint64
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if info, err := e.Info(); err == nil {
			total += uint64(info.Size())
		}
	}
	return total
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit && exp < 3; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
