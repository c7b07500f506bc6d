package feed

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"voxmesh/internal/config"
	"voxmesh/internal/meshing"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

func TestScriptExpands(t *testing.T) {
	s, err := ParseScript([]byte(`
steps:
  - allow: [0, 0, 0]
  - fill: {pos: [0, 0, 0], block: stone}
  - fragment: {pos: [1, 2, 3], frag: [1, 0], column: [4, 5]}
  - remove: [0, 0, 0]
`))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	msgs, err := s.Messages(2, registry.Default())
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 1+4+1+1 {
		t.Fatalf("got %d messages, want 7", len(msgs))
	}
	if msgs[0] != meshing.Message(meshing.AllowChunk{}) {
		t.Errorf("first message = %#v", msgs[0])
	}
	fill, ok := msgs[1].(meshing.NewChunkFragment)
	if !ok || fill.Column[0] != registry.BlockStone {
		t.Errorf("fill fragment = %#v", msgs[1])
	}
	want := meshing.NewChunkFragment{
		Pos:    world.ChunkCoord{X: 1, Y: 2, Z: 3},
		Frag:   world.FragmentCoord{X: 1},
		Column: []world.BlockID{4, 5},
	}
	if diff := cmp.Diff(want, msgs[5]); diff != "" {
		t.Errorf("fragment step (-want +got):\n%s", diff)
	}
	if _, ok := msgs[6].(meshing.RemoveChunk); !ok {
		t.Errorf("last message = %#v, want RemoveChunk", msgs[6])
	}
}

func TestScriptNumericBlock(t *testing.T) {
	s := &Script{Steps: []Step{{Fill: &FillStep{Block: "7"}}}}
	msgs, err := s.Messages(1, nil)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if got := msgs[0].(meshing.NewChunkFragment).Column[0]; got != 7 {
		t.Errorf("block = %d, want 7", got)
	}
}

func TestScriptRejectsBadSteps(t *testing.T) {
	p := [3]int{}
	cases := map[string]*Script{
		"empty step":    {Steps: []Step{{}}},
		"two actions":   {Steps: []Step{{Allow: &p, Remove: &p}}},
		"unknown block": {Steps: []Step{{Fill: &FillStep{Block: "unobtainium"}}}},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Messages(2, registry.Default()); !errors.Is(err, ErrScript) {
				t.Errorf("err = %v, want ErrScript", err)
			}
		})
	}
}

func TestTerrainIsDeterministic(t *testing.T) {
	cfg := config.TerrainConfig{Seed: 5, Radius: 1, SeaLevel: 0, Shuffle: true}
	a := NewTerrain(cfg, 4).Messages()
	b := NewTerrain(cfg, 4).Messages()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different feeds:\n%s", diff)
	}
	if want := 27 * (1 + 16); len(a) != want {
		t.Fatalf("got %d messages, want %d", len(a), want)
	}
	for i := 0; i < 27; i++ {
		if _, ok := a[i].(meshing.AllowChunk); !ok {
			t.Fatalf("message %d is %T, want AllowChunk first", i, a[i])
		}
	}
}

func TestTerrainLayers(t *testing.T) {
	cfg := config.TerrainConfig{Seed: 3, Radius: 2, SeaLevel: 0}
	tr := NewTerrain(cfg, 16)
	for x := -20; x < 20; x += 3 {
		z := -x / 2
		h := tr.HeightAt(x, z)
		surface, above := registry.BlockGrass, registry.BlockAir
		if h < cfg.SeaLevel {
			surface, above = registry.BlockDirt, registry.BlockWater
		}
		if got := tr.BlockAt(x, h, z); got != surface {
			t.Errorf("surface at %d,%d = %d, want %d", x, z, got, surface)
		}
		if got := tr.BlockAt(x, h+1, z); got != above {
			t.Errorf("above surface at %d,%d = %d, want %d", x, z, got, above)
		}
		if got := tr.BlockAt(x, h-10, z); got != registry.BlockStone {
			t.Errorf("deep at %d,%d = %d, want stone", x, z, got)
		}
	}
}

func TestNoiseRange(t *testing.T) {
	n := valueNoise{seed: 9, octaves: 4, persistence: 0.5, lacunarity: 2}
	for i := 0; i < 200; i++ {
		v := n.At(float64(i)*0.37, float64(-i)*0.91)
		if v < 0 || v > 1 {
			t.Fatalf("noise %v out of [0,1]", v)
		}
	}
}

func TestTerrainFeedMeshesInteriorChunks(t *testing.T) {
	const size = 4
	cfg := config.TerrainConfig{Seed: 11, Radius: 2, SeaLevel: 0, Shuffle: true}
	msgs := NewTerrain(cfg, size).Messages()

	in := make(chan meshing.Message, len(msgs))
	for _, m := range msgs {
		in <- m
	}
	close(in)

	sink := meshing.NewChannelSink(len(msgs))
	w := meshing.NewWorker(in, sink, registry.Default(), meshing.FaceMesher{}, meshing.Options{Size: size})
	w.Run()

	seen := map[world.ChunkCoord]bool{}
	for buf := range sink.C() {
		if seen[buf.Pos] {
			t.Errorf("chunk %v meshed twice", buf.Pos)
		}
		seen[buf.Pos] = true
	}
	// Only chunks strictly inside the cube have all six neighbors.
	if len(seen) != 27 {
		t.Fatalf("meshed %d chunks, want 27", len(seen))
	}
	for pos := range seen {
		if pos.X < -1 || pos.X > 1 || pos.Y < -1 || pos.Y > 1 || pos.Z < -1 || pos.Z > 1 {
			t.Errorf("edge chunk %v was meshed", pos)
		}
	}
}
