package meshing

import (
	"fmt"

	"voxmesh/internal/world"
)

// dispatch hands a finished mesh to the sink. With ClosedSinkFatal a failed
// send panics and takes the worker down.
func (w *Worker) dispatch(pos world.ChunkCoord, mesh Mesh) {
	if w.sinkDead {
		return
	}
	err := w.sink.Send(NewChunkBuffer{Pos: pos, Mesh: mesh})
	if err == nil {
		w.stats.Sent.Inc()
		return
	}
	log := w.log.WithError(err).WithField("pos", pos)
	if w.policy == ClosedSinkFatal {
		log.Error("meshing: mesh consumer is gone")
		panic(fmt.Errorf("meshing: send chunk buffer %v: %w", pos, err))
	}
	log.Error("meshing: mesh consumer is gone, discarding further meshes")
	w.sinkDead = true
}

// retire turns a dispatched chunk into a meshed state. The storage stays with
// the chunk so that neighbors meshed later can still read it.
func (w *Worker) retire(st *chunkState) *chunkState {
	st.phase = meshed
	st.fragments = 0
	return st
}

// takeStorage hands out the spare, cleared, or allocates when the slot is empty.
func (w *Worker) takeStorage() *world.Storage {
	s := w.spare
	if s == nil {
		return world.NewStorage(w.size)
	}
	w.spare = nil
	s.Blocks.Fill(world.Air)
	s.Sides.Reset()
	return s
}

// recycle parks storage evicted from the map in the single spare slot. The
// previous spare, if any, is left to the garbage collector.
func (w *Worker) recycle(s *world.Storage) {
	if s != nil {
		w.spare = s
	}
}
