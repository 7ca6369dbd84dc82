// Package engine selects an imageops.Resampler by name. Each engine wraps a
// different resampling library and maps the shared filter names onto its
// closest native kernel.
package engine

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"imageutils/internal/imageops"
)

// Engine names.
const (
	Imaging = "imaging"
	XDraw   = "xdraw"
	Gift    = "gift"
	Nfnt    = "nfnt"
	Bild    = "bild"
)

// Filter names.
const (
	Lanczos    = "lanczos"
	CatmullRom = "catmullrom"
	Linear     = "linear"
	Box        = "box"
	Nearest    = "nearest"
)

// Default engine and filter.
const (
	DefaultEngine = Imaging
	DefaultFilter = Lanczos
)

type factory func(filter string) imageops.Resampler

var engines = map[string]factory{
	Imaging: newImaging,
	XDraw:   newXDraw,
	Gift:    newGift,
	Nfnt:    newNfnt,
	Bild:    newBild,
}

var filters = map[string]bool{
	Lanczos:    true,
	CatmullRom: true,
	Linear:     true,
	Box:        true,
	Nearest:    true,
}

// New returns the Resampler for the named engine and filter. Empty names
// select the defaults.
func New(name, filter string) (imageops.Resampler, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	filter = strings.ToLower(strings.TrimSpace(filter))
	if name == "" {
		name = DefaultEngine
	}
	if filter == "" {
		filter = DefaultFilter
	}
	f, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown engine %q", imageops.ErrInvalidArgument, name)
	}
	if !filters[filter] {
		return nil, fmt.Errorf("%w: unknown filter %q", imageops.ErrInvalidArgument, filter)
	}
	return f(filter), nil
}

// Names lists the registered engines in sorted order.
func Names() []string {
	names := make([]string, 0, len(engines))
	for n := range engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Filters lists the accepted filter names in sorted order.
func Filters() []string {
	names := make([]string, 0, len(filters))
	for n := range filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newImaging(filter string) imageops.Resampler {
	f := imaging.Lanczos
	switch filter {
	case CatmullRom:
		f = imaging.CatmullRom
	case Linear:
		f = imaging.Linear
	case Box:
		f = imaging.Box
	case Nearest:
		f = imaging.NearestNeighbor
	}
	return imageops.ImagingResampler{Filter: f}
}

// x/image/draw has no Lanczos kernel; CatmullRom is the closest.
func newXDraw(filter string) imageops.Resampler {
	var s draw.Scaler = draw.CatmullRom
	switch filter {
	case Linear:
		s = draw.BiLinear
	case Box:
		s = draw.ApproxBiLinear
	case Nearest:
		s = draw.NearestNeighbor
	}
	return imageops.ResamplerFunc(func(src image.Image, width, height int) (image.Image, error) {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return dst, nil
	})
}

func newGift(filter string) imageops.Resampler {
	r := gift.LanczosResampling
	switch filter {
	case CatmullRom:
		r = gift.CubicResampling
	case Linear:
		r = gift.LinearResampling
	case Box:
		r = gift.BoxResampling
	case Nearest:
		r = gift.NearestNeighborResampling
	}
	return imageops.ResamplerFunc(func(src image.Image, width, height int) (image.Image, error) {
		g := gift.New(gift.Resize(width, height, r))
		dst := image.NewNRGBA(g.Bounds(src.Bounds()))
		g.Draw(dst, src)
		return dst, nil
	})
}

// nfnt/resize has no box kernel; bilinear stands in.
func newNfnt(filter string) imageops.Resampler {
	f := resize.Lanczos3
	switch filter {
	case CatmullRom:
		f = resize.Bicubic
	case Linear, Box:
		f = resize.Bilinear
	case Nearest:
		f = resize.NearestNeighbor
	}
	return imageops.ResamplerFunc(func(src image.Image, width, height int) (image.Image, error) {
		return resize.Resize(uint(width), uint(height), src, f), nil
	})
}

func newBild(filter string) imageops.Resampler {
	f := transform.Lanczos
	switch filter {
	case CatmullRom:
		f = transform.CatmullRom
	case Linear:
		f = transform.Linear
	case Box:
		f = transform.Box
	case Nearest:
		f = transform.NearestNeighbor
	}
	return imageops.ResamplerFunc(func(src image.Image, width, height int) (image.Image, error) {
		return transform.Resize(src, width, height, f), nil
	})
}
