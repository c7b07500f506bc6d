package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	r := NewRecorder()
	for i := 0; i < 3; i++ {
		stop := r.Track("a")
		time.Sleep(time.Millisecond)
		stop()
	}
	r.Track("b")()

	ss := r.Snapshot()
	if len(ss) != 2 {
		t.Fatalf("got %d samples, want 2", len(ss))
	}
	if ss[0].Name != "a" || ss[0].Count != 3 {
		t.Errorf("slowest sample = %+v, want a with 3 calls", ss[0])
	}
	if !strings.HasPrefix(r.TopN(1), "a:") {
		t.Errorf("TopN(1) = %q", r.TopN(1))
	}
}

func TestNilRecorderTrack(t *testing.T) {
	var r *Recorder
	r.Track("x")()
}
