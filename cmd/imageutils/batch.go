package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"imageutils/internal/storage"
	"imageutils/internal/worker"
)

// staleTempAge is how old an AtomicWrite temp file must be before batch
// treats it as left over from an interrupted run.
const staleTempAge = time.Hour

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Run the jobs listed in a TOML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := worker.LoadManifest(args[0])
			if err != nil {
				return err
			}
			reqs, err := m.Requests(a.cfg.MaxBytes)
			if err != nil {
				return err
			}

			if dir := m.OutputDirPath(); dir != "" {
				n, err := storage.CleanOrphanedTempFiles(dir, staleTempAge)
				if err != nil {
					a.logger.Warn("temp file cleanup failed", "dir", dir, "error", err)
				} else if n > 0 {
					a.logger.Info("removed stale temp files", "dir", dir, "count", n)
				}
			}

			p, err := a.processor()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := worker.NewWorker(p, a.cfg.Workers, a.logger.Named("worker"))
			results := w.Run(ctx, reqs)
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Request.Input, r.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s %dx%d\n", r.Output.Output, r.Output.Width, r.Output.Height)
			}
			stats := w.Metrics().Snapshot()
			for _, op := range w.Metrics().Ops() {
				s := stats[op]
				fmt.Fprintf(out, "%-6s processed=%d failed=%d bytes=%d\n", op, s.Processed, s.Failed, s.Bytes)
			}
			if failed := worker.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(results))
			}
			return nil
		},
	}
}
