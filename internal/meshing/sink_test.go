package meshing

import (
	"errors"
	"testing"
	"time"
)

func TestChannelSinkSendBlocksWhileFull(t *testing.T) {
	sink := NewChannelSink(1)
	if err := sink.Send(NewChunkBuffer{Pos: origin}); err != nil {
		t.Fatalf("first Send: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- sink.Send(NewChunkBuffer{Pos: origin}) }()

	select {
	case err := <-done:
		t.Fatalf("Send on a full sink returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	sink.Hangup()
	select {
	case err := <-done:
		if !errors.Is(err, ErrSinkClosed) {
			t.Errorf("blocked Send = %v, want ErrSinkClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Hangup did not release a blocked Send")
	}
}

func TestChannelSinkCloseEndsRange(t *testing.T) {
	sink := NewChannelSink(2)
	_ = sink.Send(NewChunkBuffer{Pos: origin})
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_ = sink.Close()

	n := 0
	for range sink.C() {
		n++
	}
	if n != 1 {
		t.Errorf("received %d buffers, want 1", n)
	}
}
