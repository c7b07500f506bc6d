package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/world"
)

// VertexStride is number of float32 per vertex (pos.xyz + normal.xyz)
const VertexStride = 6

// Mesh is chunk geometry in world space: two triangles per quad, vertices
// interleaved as pos+normal. Block (x, y, z) spans [x, x+1] on every axis.
type Mesh struct {
	Vertices []float32
	// QuadBlocks holds the block id of every emitted quad, in emission order.
	QuadBlocks []world.BlockID
}

// Quads returns the number of quads in the mesh.
func (m Mesh) Quads() int { return len(m.QuadBlocks) }

// Triangles returns the number of triangles in the mesh.
func (m Mesh) Triangles() int { return len(m.Vertices) / (3 * VertexStride) }

// FaceMesher emits a quad for every exposed face of every non-air block,
// greedily merging coplanar neighbors of the same block id.
type FaceMesher struct{}

// Build implements MeshBuilder.
func (FaceMesher) Build(pos world.ChunkCoord, s *world.Storage, _ Opacity) Mesh {
	size := s.Size()
	m := Mesh{Vertices: make([]float32, 0, 1024)}
	origin := pos.Origin(size)
	mask := make([]world.BlockID, size*size)
	for _, d := range world.Directions {
		buildGreedyForDirection(&m, s, origin, d, mask)
	}
	return m
}

// planeAxes returns the normal axis of d and the two in-plane axes (u, v),
// chosen so that u × v points along the positive normal axis.
func planeAxes(d world.Direction) (n, u, v int) {
	switch d {
	case world.East, world.West:
		return 0, 1, 2
	case world.Up, world.Down:
		return 1, 2, 0
	default:
		return 2, 0, 1
	}
}

// buildGreedyForDirection performs 2D greedy meshing for one face direction,
// one layer at a time along the normal axis.
func buildGreedyForDirection(m *Mesh, s *world.Storage, origin mgl32.Vec3, d world.Direction, mask []world.BlockID) {
	size := s.Size()
	n, u, v := planeAxes(d)
	dx, dy, dz := d.Offset()
	positive := dx+dy+dz > 0

	var p [3]int
	for layerIdx := 0; layerIdx < size; layerIdx++ {
		// Fill the layer mask with the block id of every exposed face, Air elsewhere.
		p[n] = layerIdx
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				p[u], p[v] = i, j
				id := s.Blocks.Get(p[0], p[1], p[2])
				if id != world.Air && s.Sides.Exposed(p[0], p[1], p[2], d) {
					mask[i*size+j] = id
				} else {
					mask[i*size+j] = world.Air
				}
			}
		}

		// Greedy merge over mask (rows along u, columns along v).
		for i := 0; i < size; i++ {
			for j := 0; j < size; {
				id := mask[i*size+j]
				if id == world.Air {
					j++
					continue
				}
				width := 1
				for j+width < size && mask[i*size+j+width] == id {
					width++
				}
				height := 1
			grow:
				for i+height < size {
					for k := j; k < j+width; k++ {
						if mask[(i+height)*size+k] != id {
							break grow
						}
					}
					height++
				}

				plane := layerIdx
				if positive {
					plane++
				}
				emitQuad(m, origin, d, n, u, v, plane, i, j, i+height, j+width, id)

				for a := i; a < i+height; a++ {
					for b := j; b < j+width; b++ {
						mask[a*size+b] = world.Air
					}
				}
				j += width
			}
		}
	}
}

// emitQuad appends the rectangle [u0,u1]×[v0,v1] on the given plane as two
// triangles, wound counter-clockwise when seen from outside the block.
func emitQuad(m *Mesh, origin mgl32.Vec3, d world.Direction, n, u, v, plane, u0, v0, u1, v1 int, id world.BlockID) {
	corner := func(a, b int) mgl32.Vec3 {
		var c mgl32.Vec3
		c[n] = float32(plane)
		c[u] = float32(a)
		c[v] = float32(b)
		return origin.Add(c)
	}
	c0, c1, c2, c3 := corner(u0, v0), corner(u1, v0), corner(u1, v1), corner(u0, v1)
	dx, dy, dz := d.Offset()
	if dx+dy+dz < 0 {
		c1, c3 = c3, c1
	}
	normal := d.Normal()
	for _, c := range [6]mgl32.Vec3{c0, c1, c2, c2, c3, c0} {
		m.Vertices = append(m.Vertices, c[0], c[1], c[2], normal[0], normal[1], normal[2])
	}
	m.QuadBlocks = append(m.QuadBlocks, id)
}
