package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates wall time per named section. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	counts map[string]int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		totals: make(map[string]time.Duration),
		counts: make(map[string]int),
	}
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer rec.Track("meshing.Pass")()
func (r *Recorder) Track(name string) func() {
	if r == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		r.mu.Lock()
		r.totals[name] += d
		r.counts[name]++
		r.mu.Unlock()
	}
}

// Sample is the accumulated time of one section.
type Sample struct {
	Name  string
	Total time.Duration
	Count int
}

// Snapshot returns all sections, slowest first.
func (r *Recorder) Snapshot() []Sample {
	r.mu.Lock()
	out := make([]Sample, 0, len(r.totals))
	for k, v := range r.totals {
		out = append(out, Sample{Name: k, Total: v, Count: r.counts[k]})
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the n slowest sections.
// Example: "meshing.Pass:4.2ms/12, meshing.Build:2.1ms/3"
func (r *Recorder) TopN(n int) string {
	ss := r.Snapshot()
	if n > len(ss) {
		n = len(ss)
	}
	parts := make([]string, 0, n)
	for _, s := range ss[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%sms/%d", s.Name, strings.TrimSuffix(fmt.Sprintf("%.1f", ms), ".0"), s.Count))
	}
	return strings.Join(parts, ", ")
}
