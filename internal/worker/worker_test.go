package worker

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"imageutils/internal/imageops"
	"imageutils/internal/pipeline"
	"imageutils/internal/testutil"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "batch.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestWorker_RunManifest(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTestImage(t, dir, "wide.png", testutil.GradientImage(200, 100))
	testutil.WriteTestImage(t, dir, "tile.png", testutil.SolidImage(10, 10, color.RGBA{255, 0, 0, 255}))
	testutil.WriteTestImage(t, dir, "dots.png", testutil.SolidImage(2, 2, color.White))

	path := writeManifest(t, dir, `
output_dir = "out"
format = "png"

[[job]]
op = "scale"
input = "wide.png"
width = 100
height = 100

[[job]]
op = "fit"
input = "wide.png"
output = "stretched.jpg"
width = 30
height = 90

[[job]]
op = "tile"
input = "tile.png"
width = 25
height = 15

[[job]]
op = "border"
input = "tile.png"
left = 5
top = 5
right = 5
bottom = 5
color = "#ffffff"

[[job]]
op = "border"
input = "tile.png"
output = "out/patterned.png"
left = 2
top = 2
right = 2
bottom = 2
pattern = "dots.png"
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Jobs, 5)

	reqs, err := m.Requests(1 << 20)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "out", "wide_scale.png"), reqs[0].Output)
	require.Equal(t, filepath.Join(dir, "stretched.jpg"), reqs[1].Output)

	w := NewWorker(pipeline.NewProcessor(nil, nil, 0, nil), 3, nil)
	results := w.Run(context.Background(), reqs)
	require.Len(t, results, 5)
	require.Zero(t, Failed(results))

	sizes := [][2]int{{100, 50}, {30, 90}, {25, 15}, {20, 20}, {14, 14}}
	for i, r := range results {
		require.NoError(t, r.Err)
		require.Equal(t, reqs[i].Output, r.Output.Output)
		img, _, err := pipeline.Load(r.Output.Output, 1<<20)
		require.NoError(t, err)
		testutil.AssertSize(t, img, sizes[i][0], sizes[i][1])
	}
}

func TestWorker_FailureDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	in := testutil.WriteTestImage(t, dir, "in.png", testutil.GradientImage(20, 20))
	reqs := []pipeline.Request{
		{Op: pipeline.OpFit, Input: in, Output: filepath.Join(dir, "a.png"), Width: 10, Height: 10},
		{Op: pipeline.OpFit, Input: in, Output: filepath.Join(dir, "b.png"), Width: -1, Height: 10},
		{Op: pipeline.OpScale, Input: filepath.Join(dir, "missing.png"), Output: filepath.Join(dir, "c.png"), Width: 10, Height: 10},
		{Op: pipeline.OpTile, Input: in, Output: filepath.Join(dir, "d.png"), Width: 50, Height: 50},
	}

	results := NewWorker(pipeline.NewProcessor(nil, nil, 0, nil), 2, nil).Run(context.Background(), reqs)
	require.Equal(t, 2, Failed(results))
	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, imageops.ErrInvalidArgument)
	require.ErrorIs(t, results[2].Err, os.ErrNotExist)
	require.NoError(t, results[3].Err)
}

func TestWorker_Metrics(t *testing.T) {
	dir := t.TempDir()
	in := testutil.WriteTestImage(t, dir, "in.png", testutil.GradientImage(20, 20))
	reqs := []pipeline.Request{
		{Op: pipeline.OpFit, Input: in, Output: filepath.Join(dir, "a.png"), Width: 10, Height: 10},
		{Op: pipeline.OpFit, Input: in, Output: filepath.Join(dir, "b.png"), Width: 0, Height: 10},
		{Op: pipeline.OpTile, Input: in, Output: filepath.Join(dir, "c.png"), Width: 30, Height: 30},
	}

	w := NewWorker(pipeline.NewProcessor(nil, nil, 0, nil), 2, nil)
	results := w.Run(context.Background(), reqs)

	stats := w.Metrics().Snapshot()
	require.Equal(t, 1, stats["fit"].Processed)
	require.Equal(t, 1, stats["fit"].Failed)
	require.Equal(t, 1, stats["tile"].Processed)
	require.Equal(t, results[0].Output.Bytes+results[2].Output.Bytes, w.Metrics().Totals().Bytes)
}

func TestWorker_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	in := testutil.WriteTestImage(t, dir, "in.png", testutil.GradientImage(8, 8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []pipeline.Request{
		{Op: pipeline.OpFit, Input: in, Output: filepath.Join(dir, "a.png"), Width: 4, Height: 4},
		{Op: pipeline.OpFit, Input: in, Output: filepath.Join(dir, "b.png"), Width: 4, Height: 4},
	}
	results := NewWorker(pipeline.NewProcessor(nil, nil, 0, nil), 1, nil).Run(ctx, reqs)
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", r.Err)
		}
	}
}

func TestManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest(writeManifest(t, dir, "[[job]]\nop = \"fit\"\nsize = 3\n"))
	require.Error(t, err, "unknown key should be rejected")

	m, err := LoadManifest(writeManifest(t, dir, "[[job]]\nop = \"rotate\"\ninput = \"a.png\"\n"))
	require.NoError(t, err)
	_, err = m.Requests(1 << 20)
	require.ErrorIs(t, err, pipeline.ErrUnknownOp)

	m, err = LoadManifest(writeManifest(t, dir, "[[job]]\nop = \"fit\"\n"))
	require.NoError(t, err)
	_, err = m.Requests(1 << 20)
	require.ErrorIs(t, err, imageops.ErrInvalidArgument)
}

func TestParseFill(t *testing.T) {
	p, err := ParseFill("", "", 1<<20)
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = ParseFill("white", "", 1<<20)
	require.NoError(t, err)
	require.NotNil(t, p)

	_, err = ParseFill("white", "p.png", 1<<20)
	require.ErrorIs(t, err, imageops.ErrInvalidArgument)

	_, err = ParseFill("#nothex", "", 1<<20)
	require.ErrorIs(t, err, imageops.ErrInvalidArgument)

	_, err = ParseFill("", filepath.Join(t.TempDir(), "missing.png"), 1<<20)
	require.Error(t, err)
}
