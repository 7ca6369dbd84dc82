package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	webp "github.com/chai2010/webp"
	"github.com/gen2brain/avif"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"imageutils/internal/imageops"
)

// DefaultWebPQuality is the standard quality used for lossy WebP encoding.
const DefaultWebPQuality = 80

// DefaultAVIFQuality is the standard quality used for AVIF encoding.
const DefaultAVIFQuality = 60

// DefaultAVIFSpeed is the standard speed used for AVIF encoding.
const DefaultAVIFSpeed = 6

// DefaultJPEGQuality is the standard quality used for JPEG encoding.
const DefaultJPEGQuality = 90

// Encoder writes images in one of the supported formats.
type Encoder struct {
	WebPQuality int
	AVIFQuality int
	AVIFSpeed   int
	JPEGQuality int
	Logger      hclog.Logger
}

// NewEncoder returns an Encoder with the default qualities.
func NewEncoder(logger hclog.Logger) *Encoder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Encoder{
		WebPQuality: DefaultWebPQuality,
		AVIFQuality: DefaultAVIFQuality,
		AVIFSpeed:   DefaultAVIFSpeed,
		JPEGQuality: DefaultJPEGQuality,
		Logger:      logger,
	}
}

// Encode writes img to w in format and logs the encoded size.
func (e *Encoder) Encode(w io.Writer, img image.Image, format string) error {
	if img == nil {
		return errors.New("nil image")
	}
	if w == nil {
		return errors.New("nil writer")
	}

	c := &countingWriter{w: w}
	var err error
	switch NormalizeFormat(format) {
	case FormatPNG:
		err = png.Encode(c, img)
	case FormatJPEG:
		err = jpeg.Encode(c, img, &jpeg.Options{Quality: clamp(e.JPEGQuality, 1, 100, DefaultJPEGQuality)})
	case FormatGIF:
		err = gif.Encode(c, img, nil)
	case FormatWebP:
		err = EncodeWebP(img, c, e.WebPQuality)
	case FormatAVIF:
		err = EncodeAVIF(img, c, e.AVIFQuality, e.AVIFSpeed)
	case FormatBMP:
		err = bmp.Encode(c, img)
	case FormatTIFF:
		err = tiff.Encode(c, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: output format %q", imageops.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return err
	}

	e.logger().Debug("encoded image", "format", NormalizeFormat(format), "size", c.n,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

func (e *Encoder) logger() hclog.Logger {
	if e.Logger == nil {
		return hclog.NewNullLogger()
	}
	return e.Logger
}

// EncodeWebP encodes img to WebP written to w with given quality (1-100).
// A quality at or below zero selects DefaultWebPQuality.
func EncodeWebP(img image.Image, w io.Writer, quality int) error {
	quality = clamp(quality, 1, 100, DefaultWebPQuality)
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
}

// EncodeAVIF encodes img to AVIF written to w with given quality (0-100) and speed (0-10).
func EncodeAVIF(img image.Image, w io.Writer, quality, speed int) error {
	quality = clamp(quality, 1, 100, DefaultAVIFQuality)
	speed = clamp(speed, 1, 10, DefaultAVIFSpeed)
	return avif.Encode(w, img, avif.Options{Quality: quality, QualityAlpha: quality, Speed: speed})
}

// clamp limits v to [lo, hi]; values at or below zero select def.
func clamp(v, lo, hi, def int) int {
	if v <= 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeFormat maps format aliases ("jpg", ".PNG", "tif") to the
// canonical names above. Unknown names are returned lower-cased.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "jpg":
		return FormatJPEG
	case "tif":
		return FormatTIFF
	}
	return f
}

// FormatFromPath returns the output format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	f := NormalizeFormat(filepath.Ext(path))
	switch f {
	case FormatPNG, FormatJPEG, FormatGIF, FormatWebP, FormatAVIF, FormatBMP, FormatTIFF:
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format from %q", imageops.ErrUnsupportedFormat, path)
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	m, err := c.w.Write(p)
	c.n += int64(m)
	return m, err
}
