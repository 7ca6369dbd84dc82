package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	webp "github.com/chai2010/webp"
	"github.com/gen2brain/avif"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DetectContentType returns the MIME type of data. It extends
// http.DetectContentType with the AVIF and TIFF signatures.
func DetectContentType(data []byte) string {
	if len(data) >= 12 && string(data[4:8]) == "ftyp" {
		switch string(data[8:12]) {
		case "avif", "avis":
			return "image/avif"
		}
	}
	if len(data) >= 4 {
		switch string(data[:4]) {
		case "II*\x00", "MM\x00*":
			return "image/tiff"
		}
	}
	return http.DetectContentType(data)
}

// ValidateAndDecode reads up to maxBytes from r, checks content type, decodes to image.Image
// and validates dimensions (MaxDimension).
func ValidateAndDecode(r io.Reader, maxBytes int64) (image.Image, string, error) {
	// read up to maxBytes+1 to detect overflow
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > maxBytes {
		return nil, "", ErrTooLarge
	}

	ct := DetectContentType(data)
	dec, ok := decoders[ct]
	if !ok {
		return nil, ct, fmt.Errorf("%w (%s)", ErrNotAnImage, ct)
	}
	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, ct, fmt.Errorf("decode %s: %w", ct, err)
	}

	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return nil, ct, ErrInvalidDimensions
	}

	return img, ct, nil
}

var decoders = map[string]func(io.Reader) (image.Image, error){
	"image/jpeg": jpeg.Decode,
	"image/png":  png.Decode,
	"image/gif":  gif.Decode,
	"image/webp": webp.Decode,
	"image/avif": avif.Decode,
	"image/bmp":  bmp.Decode,
	"image/tiff": tiff.Decode,
}

// Load decodes the image at path and applies its EXIF orientation, if any.
func Load(path string, maxBytes int64) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, ct, err := ValidateAndDecode(f, maxBytes)
	if err != nil {
		return nil, ct, fmt.Errorf("%s: %w", path, err)
	}

	if strings.HasPrefix(ct, "image/jpeg") {
		img, err = ApplyEXIFOrientation(img, f)
		if err != nil {
			return nil, ct, fmt.Errorf("%s: exif: %w", path, err)
		}
	}
	return img, ct, nil
}
