package imageops

import (
	"fmt"
)

// MaxPixels caps the area of any image the operations allocate: 2^28 pixels
// is a 16384x16384 canvas, 1 GiB as RGBA.
const MaxPixels = 1 << 28

// checkCanvas rejects sizes that are empty or larger than MaxPixels.
func checkCanvas(what string, width, height int64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %s size %dx%d", ErrInvalidArgument, what, width, height)
	}
	if width > MaxPixels || height > MaxPixels || width*height > MaxPixels {
		return fmt.Errorf("%w: %s size %dx%d exceeds %d pixels", ErrInvalidArgument, what, width, height, MaxPixels)
	}
	return nil
}

// FitDimensions validates a fit target. The output of Fit is always exactly
// the requested size.
func FitDimensions(width, height int) (int, int, error) {
	if err := checkCanvas("target", int64(width), int64(height)); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// ScaleDimensions computes the size of srcWidth x srcHeight scaled by the
// largest factor that keeps it inside the targetWidth x targetHeight box.
// The bounding axis matches the box exactly; the other is rounded up to the
// next whole pixel and never exceeds its side of the box.
func ScaleDimensions(srcWidth, srcHeight, targetWidth, targetHeight int) (int, int, error) {
	if srcWidth <= 0 || srcHeight <= 0 || srcWidth > MaxPixels || srcHeight > MaxPixels {
		return 0, 0, fmt.Errorf("%w: source size %dx%d", ErrInvalidArgument, srcWidth, srcHeight)
	}
	if targetWidth <= 0 || targetHeight <= 0 || targetWidth > MaxPixels || targetHeight > MaxPixels {
		return 0, 0, fmt.Errorf("%w: target size %dx%d", ErrInvalidArgument, targetWidth, targetHeight)
	}

	sw, sh := int64(srcWidth), int64(srcHeight)
	tw, th := int64(targetWidth), int64(targetHeight)
	var w, h int64
	if tw*sh <= th*sw {
		w = tw
		h = (tw*sh + sw - 1) / sw
	} else {
		h = th
		w = (th*sw + sh - 1) / sh
	}
	w = max(w, 1)
	h = max(h, 1)
	if err := checkCanvas("scaled", w, h); err != nil {
		return 0, 0, err
	}
	return int(w), int(h), nil
}

// BorderSize returns the canvas size for a source of srcWidth x srcHeight
// padded by the given margins.
func BorderSize(srcWidth, srcHeight, left, top, right, bottom int) (int, int, error) {
	if left < 0 || top < 0 || right < 0 || bottom < 0 {
		return 0, 0, fmt.Errorf("%w: negative margin (%d,%d,%d,%d)", ErrInvalidArgument, left, top, right, bottom)
	}
	if left > MaxPixels || top > MaxPixels || right > MaxPixels || bottom > MaxPixels {
		return 0, 0, fmt.Errorf("%w: margin (%d,%d,%d,%d) exceeds %d", ErrInvalidArgument, left, top, right, bottom, MaxPixels)
	}
	w := int64(left) + int64(srcWidth) + int64(right)
	h := int64(top) + int64(srcHeight) + int64(bottom)
	if err := checkCanvas("border canvas", w, h); err != nil {
		return 0, 0, err
	}
	return int(w), int(h), nil
}
