package metrics

import (
	"sort"
	"sync"
)

// EventType represents the outcome of one processed request
type EventType string

const (
	EventProcessed EventType = "processed"
	EventFailed    EventType = "failed"
)

// OpStats holds the counters for one operation.
type OpStats struct {
	Processed int
	Failed    int
	Bytes     int64
}

// Recorder counts batch events per operation. It is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	ops map[string]*OpStats
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{ops: make(map[string]*OpStats)}
}

// LogEvent records one event for op. bytes is added for processed events.
func (r *Recorder) LogEvent(eventType EventType, op string, bytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.ops[op]
	if !ok {
		s = &OpStats{}
		r.ops[op] = s
	}
	switch eventType {
	case EventProcessed:
		s.Processed++
		s.Bytes += bytes
	case EventFailed:
		s.Failed++
	}
}

// LogProcessed records a successful request that wrote n bytes.
func (r *Recorder) LogProcessed(op string, n int64) {
	r.LogEvent(EventProcessed, op, n)
}

// LogFailed records a failed request.
func (r *Recorder) LogFailed(op string) {
	r.LogEvent(EventFailed, op, 0)
}

// Snapshot returns a copy of the counters keyed by operation.
func (r *Recorder) Snapshot() map[string]OpStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]OpStats, len(r.ops))
	for op, s := range r.ops {
		out[op] = *s
	}
	return out
}

// Ops returns the recorded operation names in sorted order.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.ops))
	for op := range r.ops {
		names = append(names, op)
	}
	sort.Strings(names)
	return names
}

// Totals sums the counters over every operation.
func (r *Recorder) Totals() OpStats {
	var t OpStats
	for _, s := range r.Snapshot() {
		t.Processed += s.Processed
		t.Failed += s.Failed
		t.Bytes += s.Bytes
	}
	return t
}
