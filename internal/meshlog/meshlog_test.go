package meshlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"voxmesh/internal/meshing"
	"voxmesh/internal/world"
)

func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	w, err := Create(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	buf := meshing.NewChunkBuffer{
		Pos: world.ChunkCoord{X: 1, Y: -2, Z: 3},
		Mesh: meshing.Mesh{
			Vertices:   make([]float32, 2*3*meshing.VertexStride),
			QuadBlocks: []world.BlockID{4},
		},
	}
	want := []Record{
		NewRecord(buf, false),
		{Pos: [3]int{0, 0, 0}},
	}
	for _, r := range want {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if w.Count() != 2 {
		t.Errorf("Count = %d, want 2", w.Count())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Write(Record{}); err != os.ErrClosed {
		t.Errorf("Write after Close = %v, want ErrClosed", err)
	}

	got, err := ReadFile(filepath.Join(dir, "out", FileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
	if got[0].Quads != 1 || got[0].Triangles != 2 || got[0].Blocks[4] != 1 {
		t.Errorf("summary = %+v", got[0])
	}
}
