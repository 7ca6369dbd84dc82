package worker

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"imageutils/internal/metrics"
	"imageutils/internal/pipeline"
)

// Worker runs pipeline requests on a bounded pool of goroutines.
type Worker struct {
	proc    *pipeline.Processor
	workers int
	logger  hclog.Logger
	metrics *metrics.Recorder
}

// Result is the outcome of one request. Exactly one of Output and Err is set.
type Result struct {
	Request pipeline.Request
	Output  *pipeline.Result
	Err     error
}

// NewWorker creates a Worker running at most workers requests at once.
func NewWorker(proc *pipeline.Processor, workers int, logger hclog.Logger) *Worker {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Worker{proc: proc, workers: workers, logger: logger, metrics: metrics.New()}
}

// Metrics returns the per-operation counters accumulated over every Run.
func (w *Worker) Metrics() *metrics.Recorder {
	return w.metrics
}

// Run processes reqs and returns their results in the same order. A failed
// request does not stop the others; once ctx is cancelled, requests that have
// not started fail with the context error.
func (w *Worker) Run(ctx context.Context, reqs []pipeline.Request) []Result {
	results := make([]Result, len(reqs))
	start := time.Now()
	w.logger.Info("starting batch", "jobs", len(reqs), "workers", w.workers)

	var g errgroup.Group
	g.SetLimit(w.workers)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			results[i].Request = req
			out, err := w.proc.Process(ctx, req)
			if err != nil {
				w.logger.Error("job failed", "index", i, "op", req.Op, "input", req.Input, "error", err)
				results[i].Err = err
				w.metrics.LogFailed(string(req.Op))
				return nil
			}
			results[i].Output = out
			w.metrics.LogProcessed(string(req.Op), out.Bytes)
			return nil
		})
	}
	_ = g.Wait()

	stats := w.metrics.Snapshot()
	for _, op := range w.metrics.Ops() {
		s := stats[op]
		w.logger.Debug("operation totals", "op", op, "processed", s.Processed, "failed", s.Failed, "bytes", s.Bytes)
	}
	w.logger.Info("batch finished", "jobs", len(reqs), "failed", Failed(results), "duration", time.Since(start))
	return results
}

// Failed counts the results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
