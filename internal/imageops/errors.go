package imageops

import "errors"

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
