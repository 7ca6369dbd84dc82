package pipeline

import (
	"errors"
	"fmt"

	"imageutils/internal/imageops"
)

var (
	ErrNotAnImage        = fmt.Errorf("%w: input is not a supported image", imageops.ErrUnsupportedFormat)
	ErrTooLarge          = errors.New("image exceeds size limit")
	ErrInvalidDimensions = errors.New("image dimensions out of range")
	ErrUnknownOp         = fmt.Errorf("%w: unknown operation", imageops.ErrInvalidArgument)
)

// Default maximum dimension (width or height) allowed by validator.
const MaxDimension = 8000

// Output formats understood by Encoder.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatWebP = "webp"
	FormatAVIF = "avif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)
