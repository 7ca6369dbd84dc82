package imageops

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Paint fills a region of a canvas. Border uses it for the margins.
type Paint interface {
	Fill(dst draw.Image, r image.Rectangle)
}

type solidPaint struct {
	src *image.Uniform
}

// Solid returns a Paint that fills with a single colour.
func Solid(c color.Color) Paint {
	return solidPaint{src: image.NewUniform(c)}
}

func (p solidPaint) Fill(dst draw.Image, r image.Rectangle) {
	draw.Draw(dst, r, p.src, image.Point{}, draw.Over)
}

type patternPaint struct {
	src tiledImage
}

// Pattern returns a Paint that repeats img across the region. The pattern is
// anchored at the canvas origin, so adjacent fills line up.
func Pattern(img image.Image) Paint {
	return patternPaint{src: tiledImage{img: img}}
}

func (p patternPaint) Fill(dst draw.Image, r image.Rectangle) {
	if p.src.img == nil || p.src.img.Bounds().Empty() {
		return
	}
	draw.Draw(dst, r, p.src, r.Min, draw.Over)
}

type gradientPaint struct {
	p0, p1 image.Point
	c0, c1 color.RGBA64
}

// LinearGradient returns a Paint that blends from c0 at p0 to c1 at p1 along
// the line between them. Points beyond either end take that end's colour.
func LinearGradient(p0, p1 image.Point, c0, c1 color.Color) Paint {
	return gradientPaint{
		p0: p0,
		p1: p1,
		c0: color.RGBA64Model.Convert(c0).(color.RGBA64),
		c1: color.RGBA64Model.Convert(c1).(color.RGBA64),
	}
}

func (p gradientPaint) Fill(dst draw.Image, r image.Rectangle) {
	draw.Draw(dst, r, p, r.Min, draw.Over)
}

func (p gradientPaint) ColorModel() color.Model { return color.RGBA64Model }

func (p gradientPaint) Bounds() image.Rectangle { return infiniteRect }

func (p gradientPaint) At(x, y int) color.Color {
	dx := float64(p.p1.X - p.p0.X)
	dy := float64(p.p1.Y - p.p0.Y)
	den := dx*dx + dy*dy
	t := 0.0
	if den > 0 {
		t = ((float64(x-p.p0.X))*dx + (float64(y-p.p0.Y))*dy) / den
	}
	switch {
	case t <= 0:
		return p.c0
	case t >= 1:
		return p.c1
	}
	lerp := func(a, b uint16) uint16 {
		return uint16(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.RGBA64{
		R: lerp(p.c0.R, p.c1.R),
		G: lerp(p.c0.G, p.c1.G),
		B: lerp(p.c0.B, p.c1.B),
		A: lerp(p.c0.A, p.c1.A),
	}
}

var infiniteRect = image.Rectangle{
	Min: image.Point{X: -1e9, Y: -1e9},
	Max: image.Point{X: 1e9, Y: 1e9},
}

// tiledImage repeats img over the whole plane. Point (0, 0) maps to
// img.Bounds().Min.
type tiledImage struct {
	img image.Image
}

func (t tiledImage) ColorModel() color.Model { return t.img.ColorModel() }

func (t tiledImage) Bounds() image.Rectangle { return infiniteRect }

func (t tiledImage) At(x, y int) color.Color {
	b := t.img.Bounds()
	return t.img.At(b.Min.X+mod(x, b.Dx()), b.Min.Y+mod(y, b.Dy()))
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
