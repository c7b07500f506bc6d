package meshing

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"voxmesh/internal/world"
)

func (w *Worker) handle(msg Message) {
	w.stats.Messages.Inc()
	switch m := msg.(type) {
	case AllowChunk:
		w.allow(m.Pos)
	case NewChunkFragment:
		w.assemble(m)
	case RemoveChunk:
		w.remove(m.Pos)
	default:
		w.log.WithField("type", fmt.Sprintf("%T", msg)).Warn("meshing: ignoring unknown message")
	}
}

// allow installs a fresh receiving state, replacing whatever was at pos.
// The replaced storage becomes the spare after the new state took the old one.
func (w *Worker) allow(pos world.ChunkCoord) {
	w.dropping = false
	evicted := w.chunks[pos]
	w.chunks[pos] = &chunkState{phase: receiving, storage: w.takeStorage()}
	if evicted != nil {
		w.recycle(evicted.storage)
	}
	w.log.WithField("pos", pos).Debug("meshing: allowed chunk")
}

func (w *Worker) remove(pos world.ChunkCoord) {
	w.dropping = false
	if st, ok := w.chunks[pos]; ok {
		delete(w.chunks, pos)
		w.recycle(st.storage)
	}
	w.log.WithField("pos", pos).Debug("meshing: removed chunk")
}

// assemble stores one column. Completion is a plain counter: a column delivered
// twice is counted twice, so duplicates can make a chunk look complete early or
// push it past completion for good.
func (w *Worker) assemble(m NewChunkFragment) {
	if !m.Frag.Valid(w.size) || len(m.Column) != w.size {
		w.stats.Rejected.Inc()
		w.log.WithFields(logrus.Fields{
			"pos":  m.Pos,
			"frag": m.Frag,
			"len":  len(m.Column),
		}).Warn("meshing: rejected malformed chunk fragment")
		return
	}

	st, ok := w.chunks[m.Pos]
	if !ok {
		w.stats.Dropped.Inc()
		if !w.dropping {
			w.log.WithField("pos", m.Pos).Warn("meshing: dropped chunk fragment because the chunk was not allowed")
			w.dropping = true
		}
		return
	}
	w.dropping = false

	if st.phase != receiving {
		w.stats.Discarded.Inc()
		return
	}

	st.fragments++
	copy(st.storage.Blocks.Column(m.Frag), m.Column)
	w.stats.Fragments.Inc()
	if st.fragments == w.full {
		w.log.WithField("pos", m.Pos).Debug("meshing: chunk fully received")
	}
}
