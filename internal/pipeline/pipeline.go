// Package pipeline moves images between files and the operations in
// imageops: decode with limits and EXIF orientation, apply one operation,
// encode, and write the result atomically.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/hashicorp/go-hclog"

	"imageutils/internal/imageops"
	"imageutils/internal/storage"
)

// DefaultMaxBytes bounds the size of an input file.
const DefaultMaxBytes = 50 << 20

// Op names one of the image operations.
type Op string

const (
	OpFit    Op = "fit"
	OpScale  Op = "scale"
	OpTile   Op = "tile"
	OpBorder Op = "border"
)

// ParseOp returns the Op named s.
func ParseOp(s string) (Op, error) {
	switch op := Op(strings.ToLower(strings.TrimSpace(s))); op {
	case OpFit, OpScale, OpTile, OpBorder:
		return op, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownOp, s)
}

// Request describes one file-to-file operation.
type Request struct {
	Op     Op
	Input  string
	Output string
	// Format overrides the format implied by Output's extension.
	Format string

	Width, Height int

	Left, Top, Right, Bottom int
	Fill                     imageops.Paint
}

// Result describes a written output.
type Result struct {
	Output string
	Format string
	Width  int
	Height int
	Bytes  int64
}

// Processor executes Requests.
type Processor struct {
	ops      *imageops.Ops
	encoder  *Encoder
	maxBytes int64
	logger   hclog.Logger
}

// NewProcessor returns a Processor. Nil arguments select defaults, and
// maxBytes <= 0 selects DefaultMaxBytes.
func NewProcessor(ops *imageops.Ops, enc *Encoder, maxBytes int64, logger hclog.Logger) *Processor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if ops == nil {
		ops = imageops.New(nil)
	}
	if enc == nil {
		enc = NewEncoder(logger.Named("encoder"))
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Processor{ops: ops, encoder: enc, maxBytes: maxBytes, logger: logger}
}

// Apply runs the operation named by req on img.
func (p *Processor) Apply(img image.Image, req Request) (image.Image, error) {
	switch req.Op {
	case OpFit:
		return p.ops.Fit(img, req.Width, req.Height)
	case OpScale:
		return p.ops.Scale(img, req.Width, req.Height)
	case OpTile:
		return p.ops.Tile(img, req.Width, req.Height)
	case OpBorder:
		return p.ops.Border(img, req.Left, req.Top, req.Right, req.Bottom, req.Fill)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
}

// Process loads req.Input, applies the operation and writes req.Output.
// The output is only replaced once it has been fully encoded.
func (p *Processor) Process(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := NormalizeFormat(req.Format)
	if format == "" {
		f, err := FormatFromPath(req.Output)
		if err != nil {
			return nil, err
		}
		format = f
	}

	img, _, err := Load(req.Input, p.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	out, err := p.Apply(img, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Op, err)
	}

	var buf bytes.Buffer
	if err := p.encoder.Encode(&buf, out, format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	n, err := storage.AtomicWrite(req.Output, &buf)
	if err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	b := out.Bounds()
	p.logger.Info("processed image", "op", req.Op, "input", req.Input, "output", req.Output,
		"width", b.Dx(), "height", b.Dy(), "bytes", n)

	return &Result{
		Output: req.Output,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Bytes:  n,
	}, nil
}
