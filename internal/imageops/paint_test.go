package imageops

import (
	"image"
	"image/color"
	"testing"
)

func TestSolid_FillsOnlyRegion(t *testing.T) {
	dst := newOpaqueCanvas(4, 4)
	Solid(color.White).Fill(dst, image.Rect(1, 1, 3, 3))

	if got := dst.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("outside region changed: %v", got)
	}
	if got := dst.RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("inside region not filled: %v", got)
	}
}

func TestPattern_AnchoredAtOrigin(t *testing.T) {
	p := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			p.SetRGBA(x, y, color.RGBA{uint8(x * 50), uint8(y * 100), 0, 255})
		}
	}

	dst := newOpaqueCanvas(10, 10)
	Pattern(p).Fill(dst, image.Rect(4, 5, 10, 10))
	for y := 5; y < 10; y++ {
		for x := 4; x < 10; x++ {
			if got, want := dst.RGBAAt(x, y), p.RGBAAt(x%3, y%2); got != want {
				t.Fatalf("(%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestPattern_EmptyImageIsNoop(t *testing.T) {
	dst := newOpaqueCanvas(2, 2)
	Pattern(image.NewRGBA(image.Rectangle{})).Fill(dst, dst.Bounds())
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("expected canvas untouched, got %v", got)
	}
}

func TestLinearGradient(t *testing.T) {
	dst := newOpaqueCanvas(20, 2)
	LinearGradient(image.Pt(0, 0), image.Pt(10, 0), color.Black, color.White).Fill(dst, dst.Bounds())

	if got := dst.RGBAAt(0, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("start: expected black, got %v", got)
	}
	if got := dst.RGBAAt(5, 0); got != (color.RGBA{128, 128, 128, 255}) {
		t.Fatalf("midpoint: expected mid gray, got %v", got)
	}
	for x := 10; x < 20; x++ {
		if got := dst.RGBAAt(x, 0); got != (color.RGBA{255, 255, 255, 255}) {
			t.Fatalf("past end at x=%d: expected white, got %v", x, got)
		}
	}
}

func TestMod(t *testing.T) {
	cases := []struct{ a, n, want int }{
		{7, 3, 1},
		{-1, 3, 2},
		{-3, 3, 0},
		{0, 5, 0},
	}
	for _, c := range cases {
		if got := mod(c.a, c.n); got != c.want {
			t.Fatalf("mod(%d, %d) = %d, want %d", c.a, c.n, got, c.want)
		}
	}
}
