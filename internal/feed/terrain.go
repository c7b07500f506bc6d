package feed

import (
	"math"
	"math/rand"

	"voxmesh/internal/config"
	"voxmesh/internal/meshing"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

// Terrain generates a heightmap landscape and slices it into chunk messages.
type Terrain struct {
	cfg   config.TerrainConfig
	size  int
	noise valueNoise
}

// NewTerrain returns a generator for chunks of the given size.
func NewTerrain(cfg config.TerrainConfig, size int) *Terrain {
	return &Terrain{
		cfg:  cfg,
		size: size,
		noise: valueNoise{
			seed:        cfg.Seed,
			octaves:     4,
			persistence: 0.5,
			lacunarity:  2.0,
		},
	}
}

// HeightAt returns the surface height in blocks at world column (x, z).
func (t *Terrain) HeightAt(x, z int) int {
	n := t.noise.At(float64(x)/24.0, float64(z)/24.0)
	span := float64(t.size * t.cfg.Radius)
	return int(math.Floor(float64(t.cfg.SeaLevel) + (n-0.5)*span))
}

// BlockAt returns the block at a world position.
func (t *Terrain) BlockAt(x, y, z int) world.BlockID {
	h := t.HeightAt(x, z)
	switch {
	case y < h-3:
		return registry.BlockStone
	case y < h:
		return registry.BlockDirt
	case y == h:
		if h < t.cfg.SeaLevel {
			return registry.BlockDirt
		}
		return registry.BlockGrass
	case y <= t.cfg.SeaLevel:
		return registry.BlockWater
	default:
		return registry.BlockAir
	}
}

// Coords lists every chunk in the cube of the configured radius around the origin.
func (t *Terrain) Coords() []world.ChunkCoord {
	r := t.cfg.Radius
	out := make([]world.ChunkCoord, 0, (2*r+1)*(2*r+1)*(2*r+1))
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			for z := -r; z <= r; z++ {
				out = append(out, world.ChunkCoord{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// Fragments returns the column fragments of one chunk.
func (t *Terrain) Fragments(pos world.ChunkCoord) []meshing.Message {
	out := make([]meshing.Message, 0, t.size*t.size)
	base := pos.Origin(t.size)
	bx, by, bz := int(base.X()), int(base.Y()), int(base.Z())
	for x := 0; x < t.size; x++ {
		for y := 0; y < t.size; y++ {
			col := make([]world.BlockID, t.size)
			for z := range col {
				col[z] = t.BlockAt(bx+x, by+y, bz+z)
			}
			out = append(out, meshing.NewChunkFragment{
				Pos:    pos,
				Frag:   world.FragmentCoord{X: x, Y: y},
				Column: col,
			})
		}
	}
	return out
}

// Messages returns an AllowChunk for every chunk followed by all fragments.
// With Shuffle set the fragments arrive in a seed-determined random order.
func (t *Terrain) Messages() []meshing.Message {
	coords := t.Coords()
	msgs := make([]meshing.Message, 0, len(coords)*(1+t.size*t.size))
	for _, pos := range coords {
		msgs = append(msgs, meshing.AllowChunk{Pos: pos})
	}
	frags := make([]meshing.Message, 0, len(coords)*t.size*t.size)
	for _, pos := range coords {
		frags = append(frags, t.Fragments(pos)...)
	}
	if t.cfg.Shuffle {
		rng := rand.New(rand.NewSource(t.cfg.Seed))
		rng.Shuffle(len(frags), func(i, j int) { frags[i], frags[j] = frags[j], frags[i] })
	}
	return append(msgs, frags...)
}
