package meshing

import "go.uber.org/atomic"

// Stats counts worker activity. It is written by the worker goroutine and may
// be read from anywhere.
type Stats struct {
	Messages  atomic.Int64 // every inbound message
	Fragments atomic.Int64 // fragments stored into a receiving chunk
	Dropped   atomic.Int64 // fragments for unregistered chunks
	Discarded atomic.Int64 // fragments for already meshed chunks
	Rejected  atomic.Int64 // malformed fragments
	Passes    atomic.Int64
	Meshed    atomic.Int64
	Sent      atomic.Int64
	Tracked   atomic.Int64 // chunks in the state map after the last pass
}

// StatsSnapshot is a plain copy of Stats.
type StatsSnapshot struct {
	Messages, Fragments, Dropped, Discarded, Rejected int64
	Passes, Meshed, Sent, Tracked                     int64
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Messages:  s.Messages.Load(),
		Fragments: s.Fragments.Load(),
		Dropped:   s.Dropped.Load(),
		Discarded: s.Discarded.Load(),
		Rejected:  s.Rejected.Load(),
		Passes:    s.Passes.Load(),
		Meshed:    s.Meshed.Load(),
		Sent:      s.Sent.Load(),
		Tracked:   s.Tracked.Load(),
	}
}
