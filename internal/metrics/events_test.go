package metrics

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecorder_Counts(t *testing.T) {
	r := New()
	r.LogProcessed("scale", 100)
	r.LogProcessed("scale", 50)
	r.LogFailed("scale")
	r.LogProcessed("border", 10)
	r.LogEvent("ignored", "tile", 99)

	want := map[string]OpStats{
		"scale":  {Processed: 2, Failed: 1, Bytes: 150},
		"border": {Processed: 1, Bytes: 10},
		"tile":   {},
	}
	if diff := cmp.Diff(want, r.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"border", "scale", "tile"}, r.Ops()); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
	if got := r.Totals(); got != (OpStats{Processed: 3, Failed: 1, Bytes: 160}) {
		t.Fatalf("unexpected totals %+v", got)
	}
}

func TestRecorder_Concurrent(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.LogProcessed("fit", 2)
			r.LogFailed("fit")
		}()
	}
	wg.Wait()

	if got := r.Snapshot()["fit"]; got != (OpStats{Processed: 50, Failed: 50, Bytes: 100}) {
		t.Fatalf("unexpected counters %+v", got)
	}
}

func TestRecorder_SnapshotIsCopy(t *testing.T) {
	r := New()
	r.LogProcessed("fit", 1)
	snap := r.Snapshot()
	r.LogProcessed("fit", 1)
	if snap["fit"].Processed != 1 {
		t.Fatalf("snapshot changed after later events: %+v", snap["fit"])
	}
}
