package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// SolidImage returns a width x height image filled with c.
func SolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	r, g, b, a := c.RGBA()
	px := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, px)
		}
	}
	return img
}

// GradientImage returns an opaque image whose red channel follows x and
// green channel follows y, so every pixel in a small image is distinct.
func GradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(128)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}

// WriteTestImage encodes img into dir/name, picking JPEG or PNG from the
// extension, and returns the full path.
func WriteTestImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	switch filepath.Ext(name) {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			t.Fatalf("encode jpeg: %v", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("encode png: %v", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// AssertSize fails the test unless img is width x height.
func AssertSize(t *testing.T, img image.Image, width, height int) {
	t.Helper()
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		t.Fatalf("expected %dx%d, got %dx%d", width, height, b.Dx(), b.Dy())
	}
}

// AssertColor fails the test unless the pixel at (x, y) of img equals want
// after conversion to 8-bit RGBA.
func AssertColor(t *testing.T, img image.Image, x, y int, want color.Color) {
	t.Helper()
	got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	exp := color.RGBAModel.Convert(want).(color.RGBA)
	if got != exp {
		t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, exp, got)
	}
}

// AssertOpaque fails the test if any pixel of img has alpha below 0xffff.
func AssertOpaque(t *testing.T, img image.Image) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				t.Fatalf("pixel (%d,%d) not opaque: alpha %#x", x, y, a)
			}
		}
	}
}

// Equal reports whether a and b have the same bounds and pixel values.
func Equal(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if color.RGBA64Model.Convert(a.At(x, y)) != color.RGBA64Model.Convert(b.At(x, y)) {
				return false
			}
		}
	}
	return true
}
