package meshing

import "voxmesh/internal/world"

// received reports whether st has exactly the fragment count of a whole chunk.
func (w *Worker) received(st *chunkState) bool {
	return st.phase == receiving && st.fragments == w.full
}

// ready reports whether the chunk at pos may be meshed: it is fully received
// and every one of its six neighbors is either meshed or fully received.
func (w *Worker) ready(pos world.ChunkCoord) bool {
	st, ok := w.chunks[pos]
	if !ok || !w.received(st) {
		return false
	}
	for _, d := range world.Directions {
		nb, ok := w.chunks[pos.Neighbor(d)]
		if !ok {
			return false
		}
		if nb.phase == receiving && nb.fragments != w.full {
			return false
		}
	}
	return true
}
