package storage

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// tempPrefix is the name prefix AtomicWrite uses for its temp files.
const tempPrefix = ".tmp-"

// CleanOrphanedTempFiles removes temp files older than maxAge that an
// interrupted AtomicWrite left in dir. It returns the number removed.
// A missing dir is not an error.
func CleanOrphanedTempFiles(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
