package storage

import (
	"path/filepath"
	"strings"
)

// OutputPath derives an output file name from input: the base name with
// suffix appended before the extension, placed in dir (or next to the input
// when dir is empty). A non-empty format replaces the extension.
//
//	OutputPath("out", "/in/cat.jpg", "_fit", "webp") == "out/cat_fit.webp"
func OutputPath(dir, input, suffix, format string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if format != "" {
		ext = "." + strings.ToLower(strings.TrimPrefix(format, "."))
	}
	return filepath.Join(dir, name+suffix+ext)
}
