// Package imageops implements fit, scale, tile and border over in-memory
// images. Resampling is delegated to a Resampler; the rest is geometry and
// compositing onto a freshly allocated canvas. Inputs are never modified.
package imageops

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resampler resizes src to exactly width x height.
type Resampler interface {
	Resample(src image.Image, width, height int) (image.Image, error)
}

// ResamplerFunc adapts a function to the Resampler interface.
type ResamplerFunc func(src image.Image, width, height int) (image.Image, error)

func (f ResamplerFunc) Resample(src image.Image, width, height int) (image.Image, error) {
	return f(src, width, height)
}

// ImagingResampler resizes with github.com/disintegration/imaging.
type ImagingResampler struct {
	Filter imaging.ResampleFilter
}

func (r ImagingResampler) Resample(src image.Image, width, height int) (image.Image, error) {
	return imaging.Resize(src, width, height, r.Filter), nil
}

// DefaultResampler is used when an Ops is created without one.
var DefaultResampler Resampler = ImagingResampler{Filter: imaging.Lanczos}

// Ops applies the image operations with a particular Resampler. The zero
// value is not usable; create one with New. An Ops has no mutable state and
// may be shared between goroutines.
type Ops struct {
	resampler Resampler
}

// New returns an Ops using r, or DefaultResampler if r is nil.
func New(r Resampler) *Ops {
	if r == nil {
		r = DefaultResampler
	}
	return &Ops{resampler: r}
}

var std = New(nil)

// Fit resizes src to exactly width x height, ignoring its aspect ratio.
func Fit(src image.Image, width, height int) (image.Image, error) {
	return std.Fit(src, width, height)
}

// Scale resizes src to the largest size that fits inside width x height
// while keeping its aspect ratio.
func Scale(src image.Image, width, height int) (image.Image, error) {
	return std.Scale(src, width, height)
}

// Tile repeats src from the origin to fill an opaque width x height canvas.
func Tile(src image.Image, width, height int) (*image.RGBA, error) {
	return std.Tile(src, width, height)
}

// Border pads src with the given margins, filled with fill.
func Border(src image.Image, left, top, right, bottom int, fill Paint) (*image.RGBA, error) {
	return std.Border(src, left, top, right, bottom, fill)
}

// Fit resamples src to exactly width x height with the Ops resampler.
func (o *Ops) Fit(src image.Image, width, height int) (image.Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	w, h, err := FitDimensions(width, height)
	if err != nil {
		return nil, err
	}
	return o.resample(src, w, h)
}

// Scale resamples src to the size ScaleDimensions computes for the
// width x height box.
func (o *Ops) Scale(src image.Image, width, height int) (image.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	b := src.Bounds()
	w, h, err := ScaleDimensions(b.Dx(), b.Dy(), width, height)
	if err != nil {
		return nil, err
	}
	return o.resample(src, w, h)
}

// Tile repeats src over an opaque width x height canvas. It does not resample.
func (o *Ops) Tile(src image.Image, width, height int) (*image.RGBA, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := checkCanvas("tile", int64(width), int64(height)); err != nil {
		return nil, err
	}

	dst := newOpaqueCanvas(width, height)
	sb := src.Bounds()
	for y := 0; y < height; y += sb.Dy() {
		for x := 0; x < width; x += sb.Dx() {
			r := image.Rect(x, y, x+sb.Dx(), y+sb.Dy()).Intersect(dst.Bounds())
			draw.Draw(dst, r, src, sb.Min, draw.Over)
		}
	}
	return dst, nil
}

// Border draws src at (left, top) on an opaque canvas whose margins are
// filled with fill. A nil fill leaves the margins black.
func (o *Ops) Border(src image.Image, left, top, right, bottom int, fill Paint) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	sb := src.Bounds()
	w, h, err := BorderSize(sb.Dx(), sb.Dy(), left, top, right, bottom)
	if err != nil {
		return nil, err
	}

	dst := newOpaqueCanvas(w, h)
	inner := image.Rect(left, top, left+sb.Dx(), top+sb.Dy())
	if fill != nil {
		for _, r := range margins(dst.Bounds(), inner) {
			fill.Fill(dst, r)
		}
	}
	draw.Draw(dst, inner, src, sb.Min, draw.Over)
	return dst, nil
}

func (o *Ops) resample(src image.Image, width, height int) (image.Image, error) {
	out, err := o.resampler.Resample(src, width, height)
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: resample to %dx%d: %w", ErrUnsupportedFormat, width, height, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: resampler returned no image for %T", ErrUnsupportedFormat, src)
	}
	return out, nil
}

func checkSource(src image.Image) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	if src.Bounds().Empty() {
		return fmt.Errorf("%w: empty source %v", ErrInvalidArgument, src.Bounds())
	}
	return nil
}

// newOpaqueCanvas allocates an RGBA canvas filled with opaque black, the
// starting state of an RGB buffer.
func newOpaqueCanvas(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	return dst
}

// margins returns the up to four strips of outer not covered by inner:
// full-width top and bottom bands, then the left and right pieces between them.
func margins(outer, inner image.Rectangle) []image.Rectangle {
	rs := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y),
		image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),
		image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y),
	}
	out := rs[:0]
	for _, r := range rs {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}
