package meshing

import "voxmesh/internal/world"

// resolveOcclusion computes s.Sides for the chunk at pos, which must have been
// detached from the map while its six neighbors are still present.
//
// Bits are toggled, not cleared. Every voxel/direction pair is visited by
// exactly one of the two passes below, so on a fresh mask a toggle equals
// clearing the bit. Resolving the same mask twice would restore it.
func (w *Worker) resolveOcclusion(pos world.ChunkCoord, s *world.Storage) {
	w.resolveBoundary(pos, s)
	w.resolveInterior(s)
}

// resolveBoundary reads the layer of each neighbor that touches this chunk.
func (w *Worker) resolveBoundary(pos world.ChunkCoord, s *world.Storage) {
	for _, d := range world.Directions {
		src := w.chunks[pos.Neighbor(d)].storage.Blocks
		dx, dy, dz := d.Offset()
		nx, ox, lx := layer(dx, w.size)
		ny, oy, ly := layer(dy, w.size)
		nz, oz, lz := layer(dz, w.size)
		for i := 0; i < lx; i++ {
			for j := 0; j < ly; j++ {
				for k := 0; k < lz; k++ {
					if !w.opacity.IsOpaque(src.Get(nx+i, ny+j, nz+k)) {
						s.Sides.Toggle(ox+i, oy+j, oz+k, d)
					}
				}
			}
		}
	}
}

// resolveInterior handles every face whose neighbor voxel lies in the same chunk.
func (w *Worker) resolveInterior(s *world.Storage) {
	blocks := s.Blocks
	for x := 0; x < w.size; x++ {
		for y := 0; y < w.size; y++ {
			for z := 0; z < w.size; z++ {
				for _, d := range world.Directions {
					dx, dy, dz := d.Offset()
					if !blocks.InBounds(x+dx, y+dy, z+dz) {
						continue
					}
					if !w.opacity.IsOpaque(blocks.Get(x+dx, y+dy, z+dz)) {
						s.Sides.Toggle(x, y, z, d)
					}
				}
			}
		}
	}
}

// layer maps one axis of a direction offset to the neighbor's start index,
// the own start index and the run length. Along the direction the neighbor's
// near face (index 0 for +1, size-1 for -1) lines up with our far face.
func layer(offset, size int) (neighbor, own, n int) {
	switch offset {
	case 1:
		return 0, size - 1, 1
	case -1:
		return size - 1, 0, 1
	default:
		return 0, 0, size
	}
}
