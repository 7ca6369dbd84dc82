package imageops

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}},
		{"ff0000", color.RGBA{255, 0, 0, 255}},
		{"#0f0", color.RGBA{0, 255, 0, 255}},
		{"#00000000", color.RGBA{0, 0, 0, 0}},
		{" White ", color.RGBA{255, 255, 255, 255}},
		{"transparent", color.RGBA{}},
		{"chartreuse", color.RGBA{0x7f, 0xff, 0x00, 0xff}},
		{"Navy", color.RGBA{0x00, 0x00, 0x80, 0xff}},
		{"gray", color.RGBA{0x80, 0x80, 0x80, 0xff}},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got := color.RGBAModel.Convert(c).(color.RGBA); got != tt.want {
			t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "notacolour", "#1234567"} {
		if _, err := ParseColor(in); err == nil {
			t.Fatalf("ParseColor(%q): expected error", in)
		}
	}
}
