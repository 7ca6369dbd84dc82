package storage

import "path/filepath"

// Storage resolves relative input and output paths against a base directory.
type Storage struct {
	BaseDir string
}

// New creates a new Storage instance with the provided base directory.
func New(baseDir string) *Storage {
	return &Storage{BaseDir: baseDir}
}

// Resolve returns p unchanged if it is absolute, otherwise p joined to BaseDir.
func (s *Storage) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || s == nil || s.BaseDir == "" {
		return p
	}
	return filepath.Join(s.BaseDir, p)
}
