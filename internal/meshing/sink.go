package meshing

import (
	"errors"
	"sync"
)

// ErrSinkClosed is returned by Send once the consumer has gone away.
var ErrSinkClosed = errors.New("meshing: sink closed")

// Sink receives finished chunk buffers. Send is called only from the worker
// goroutine; Close is called once when the worker stops.
//
// Send may block. While it does, the worker waits on the consumer and not on
// its inbound channel, so a slow consumer stalls fragment assembly too.
type Sink interface {
	Send(buf NewChunkBuffer) error
	Close() error
}

// SinkPolicy decides what the worker does when Send fails.
type SinkPolicy int

const (
	// ClosedSinkFatal aborts the worker with a panic.
	ClosedSinkFatal SinkPolicy = iota
	// ClosedSinkDrop logs once and turns further sends into no-ops.
	ClosedSinkDrop
)

func (p SinkPolicy) String() string {
	switch p {
	case ClosedSinkFatal:
		return "fatal"
	case ClosedSinkDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// ChannelSink delivers buffers over a Go channel. The consumer ranges over C
// and may call Hangup to stop accepting buffers.
type ChannelSink struct {
	ch        chan NewChunkBuffer
	hangup    chan struct{}
	hangOnce  sync.Once
	closeOnce sync.Once
}

// NewChannelSink returns a sink whose channel buffers up to capacity meshes.
// Send blocks while the buffer is full.
func NewChannelSink(capacity int) *ChannelSink {
	return &ChannelSink{
		ch:     make(chan NewChunkBuffer, capacity),
		hangup: make(chan struct{}),
	}
}

// C returns the receive side. It is closed when the worker stops.
func (s *ChannelSink) C() <-chan NewChunkBuffer { return s.ch }

// Send queues buf, or fails with ErrSinkClosed after Hangup.
func (s *ChannelSink) Send(buf NewChunkBuffer) error {
	select {
	case <-s.hangup:
		return ErrSinkClosed
	default:
	}
	select {
	case s.ch <- buf:
		return nil
	case <-s.hangup:
		return ErrSinkClosed
	}
}

// Hangup is called by the consumer to refuse further buffers.
func (s *ChannelSink) Hangup() {
	s.hangOnce.Do(func() { close(s.hangup) })
}

// Close closes the receive side.
func (s *ChannelSink) Close() error {
	s.closeOnce.Do(func() { close(s.ch) })
	return nil
}
