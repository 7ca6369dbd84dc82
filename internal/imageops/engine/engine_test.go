package engine_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"imageutils/internal/imageops"
	"imageutils/internal/imageops/engine"
	"imageutils/internal/testutil"
)

func TestNew_AllEnginesAndFilters(t *testing.T) {
	src := testutil.GradientImage(64, 48)
	for _, name := range engine.Names() {
		for _, filter := range engine.Filters() {
			t.Run(name+"/"+filter, func(t *testing.T) {
				r, err := engine.New(name, filter)
				require.NoError(t, err)

				out, err := imageops.New(r).Fit(src, 30, 17)
				require.NoError(t, err)
				testutil.AssertSize(t, out, 30, 17)

				out, err = imageops.New(r).Scale(src, 32, 32)
				require.NoError(t, err)
				testutil.AssertSize(t, out, 32, 24)
			})
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	r, err := engine.New("", "")
	require.NoError(t, err)
	require.IsType(t, imageops.ImagingResampler{}, r)

	r, err = engine.New(" XDraw ", "Nearest")
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestNew_Unknown(t *testing.T) {
	_, err := engine.New("magick", "")
	require.True(t, errors.Is(err, imageops.ErrInvalidArgument))

	_, err = engine.New(engine.Gift, "sinc")
	require.ErrorIs(t, err, imageops.ErrInvalidArgument)
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"bild", "gift", "imaging", "nfnt", "xdraw"}, engine.Names())
	require.Equal(t, []string{"box", "catmullrom", "lanczos", "linear", "nearest"}, engine.Filters())
}

var red = color.RGBA{255, 0, 0, 255}

func TestSolidColourSurvivesNearest(t *testing.T) {
	src := testutil.SolidImage(10, 10, red)
	for _, name := range engine.Names() {
		r, err := engine.New(name, engine.Nearest)
		require.NoError(t, err)
		out, err := r.Resample(src, 5, 20)
		require.NoError(t, err)
		testutil.AssertSize(t, out, 5, 20)
		got := color.RGBAModel.Convert(out.At(2, 10)).(color.RGBA)
		require.InDelta(t, 255, int(got.R), 1, name)
		require.InDelta(t, 0, int(got.G), 1, name)
		require.InDelta(t, 0, int(got.B), 1, name)
		require.InDelta(t, 255, int(got.A), 1, name)
	}
}
