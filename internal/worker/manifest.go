package worker

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"imageutils/internal/imageops"
	"imageutils/internal/pipeline"
	"imageutils/internal/storage"
)

// Job is one [[job]] entry of a manifest.
type Job struct {
	Op     string `toml:"op"`
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Format string `toml:"format"`

	Width  int `toml:"width"`
	Height int `toml:"height"`

	Left   int `toml:"left"`
	Top    int `toml:"top"`
	Right  int `toml:"right"`
	Bottom int `toml:"bottom"`
	// Color and Pattern select the border fill; at most one may be set.
	Color   string `toml:"color"`
	Pattern string `toml:"pattern"`
}

// Manifest is a TOML batch description. Relative paths are resolved against
// the directory holding the manifest.
//
//	output_dir = "out"
//	format = "webp"
//
//	[[job]]
//	op = "scale"
//	input = "photos/cat.jpg"
//	width = 320
//	height = 320
type Manifest struct {
	OutputDir string `toml:"output_dir"`
	Format    string `toml:"format"`
	Jobs      []Job  `toml:"job"`

	store *storage.Storage
}

// LoadManifest parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read manifest %s: unknown keys %v", path, undecoded)
	}
	m.store = storage.New(filepath.Dir(path))
	return &m, nil
}

// OutputDirPath is the resolved output directory, or "" when outputs go next
// to their inputs.
func (m *Manifest) OutputDirPath() string {
	return m.store.Resolve(m.OutputDir)
}

// Requests converts the jobs into pipeline requests. Pattern images are
// loaded with the given size limit.
func (m *Manifest) Requests(maxBytes int64) ([]pipeline.Request, error) {
	reqs := make([]pipeline.Request, 0, len(m.Jobs))
	for i, job := range m.Jobs {
		req, err := m.request(job, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (m *Manifest) request(job Job, maxBytes int64) (pipeline.Request, error) {
	op, err := pipeline.ParseOp(job.Op)
	if err != nil {
		return pipeline.Request{}, err
	}
	if job.Input == "" {
		return pipeline.Request{}, fmt.Errorf("%w: missing input", imageops.ErrInvalidArgument)
	}

	// an explicit output keeps the format of its extension
	format := job.Format
	if format == "" && job.Output == "" {
		format = m.Format
	}
	input := m.store.Resolve(job.Input)
	output := m.store.Resolve(job.Output)
	if output == "" {
		output = storage.OutputPath(m.OutputDirPath(), input, "_"+string(op), pipeline.NormalizeFormat(format))
	}

	fill, err := ParseFill(job.Color, m.store.Resolve(job.Pattern), maxBytes)
	if err != nil {
		return pipeline.Request{}, err
	}

	return pipeline.Request{
		Op:     op,
		Input:  input,
		Output: output,
		Format: format,
		Width:  job.Width,
		Height: job.Height,
		Left:   job.Left,
		Top:    job.Top,
		Right:  job.Right,
		Bottom: job.Bottom,
		Fill:   fill,
	}, nil
}

// ParseFill builds a border Paint from a colour string or a pattern image
// path. Both empty yields a nil Paint.
func ParseFill(colorSpec, patternPath string, maxBytes int64) (imageops.Paint, error) {
	switch {
	case colorSpec != "" && patternPath != "":
		return nil, fmt.Errorf("%w: color and pattern are mutually exclusive", imageops.ErrInvalidArgument)
	case colorSpec != "":
		c, err := imageops.ParseColor(colorSpec)
		if err != nil {
			return nil, err
		}
		return imageops.Solid(c), nil
	case patternPath != "":
		img, _, err := pipeline.Load(patternPath, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("load pattern: %w", err)
		}
		return imageops.Pattern(img), nil
	}
	return nil, nil
}
