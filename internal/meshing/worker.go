package meshing

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"voxmesh/internal/profiling"
	"voxmesh/internal/world"
)

type phase uint8

const (
	receiving phase = iota // accumulating fragments, not meshed yet
	meshed                 // finalized, kept only as a neighbor read source
)

// chunkState is one entry of the worker's spatial map.
type chunkState struct {
	phase     phase
	fragments int
	storage   *world.Storage
}

// Options configures a Worker. The zero value is usable.
type Options struct {
	// Size is the chunk side length. Zero means world.ChunkSize.
	Size int
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
	// OnClosedSink selects the reaction to a failed Send.
	OnClosedSink SinkPolicy
	// Profiler, if set, times passes and mesh builds.
	Profiler *profiling.Recorder
}

// Worker assembles chunk fragments, waits for each chunk's six neighbors and
// meshes the chunk once they have all arrived. All state is owned by the
// goroutine running Run.
type Worker struct {
	size    int
	full    int // fragments needed for a complete chunk
	in      <-chan Message
	sink    Sink
	opacity Opacity
	builder MeshBuilder
	policy  SinkPolicy
	log     logrus.FieldLogger
	prof    *profiling.Recorder

	chunks map[world.ChunkCoord]*chunkState
	// spare holds the last storage evicted by allow or remove. The next allow
	// reuses it instead of allocating.
	spare    *world.Storage
	dropping bool // a drop warning was emitted and nothing was accepted since
	sinkDead bool

	stats Stats
	wg    sync.WaitGroup
}

// NewWorker creates a worker reading from in and delivering meshes to sink.
// A sink whose Send blocks, such as a full ChannelSink, pauses the worker.
func NewWorker(in <-chan Message, sink Sink, opacity Opacity, builder MeshBuilder, opts Options) *Worker {
	size := opts.Size
	if size <= 0 {
		size = world.ChunkSize
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Worker{
		size:    size,
		full:    size * size,
		in:      in,
		sink:    sink,
		opacity: opacity,
		builder: builder,
		policy:  opts.OnClosedSink,
		log:     log,
		prof:    opts.Profiler,
		chunks:  make(map[world.ChunkCoord]*chunkState),
	}
}

// Size returns the chunk side length this worker was built for.
func (w *Worker) Size() int { return w.size }

// Stats exposes the worker's counters.
func (w *Worker) Stats() *Stats { return &w.stats }

// Start runs the worker on its own goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Run()
	}()
}

// Wait blocks until a worker launched with Start has stopped.
func (w *Worker) Wait() {
	w.wg.Wait()
}

// Run processes messages until the inbound channel is closed. Every iteration
// blocks for one message, drains whatever else is queued, then runs one
// meshing pass over all chunks.
func (w *Worker) Run() {
	defer w.closeSink()
	for {
		msg, ok := <-w.in
		if !ok {
			w.log.Debug("meshing: inbound channel closed, stopping")
			return
		}
		w.handle(msg)
		w.drain()
		w.pass()
	}
}

// drain consumes queued messages without blocking. A closed channel ends the
// drain; the following blocking receive observes it again and stops Run.
func (w *Worker) drain() {
	for {
		select {
		case msg, ok := <-w.in:
			if !ok {
				return
			}
			w.handle(msg)
		default:
			return
		}
	}
}

// pass meshes every chunk whose readiness gate is open. Eligible chunks are
// collected first so that no entry is modified while the map is scanned.
func (w *Worker) pass() {
	defer w.prof.Track("meshing.Pass")()
	w.stats.Passes.Inc()

	for _, pos := range w.eligible() {
		w.meshChunk(pos)
	}
	w.stats.Tracked.Store(int64(len(w.chunks)))
}

// eligible returns the coordinates passing the readiness gate, ordered by X, Y, Z.
func (w *Worker) eligible() []world.ChunkCoord {
	var out []world.ChunkCoord
	for pos := range w.chunks {
		if w.ready(pos) {
			out = append(out, pos)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// meshChunk detaches the chunk from the map, resolves its visibility against
// the neighbors still in the map, builds and dispatches the mesh, and puts the
// chunk back as meshed.
func (w *Worker) meshChunk(pos world.ChunkCoord) {
	st := w.chunks[pos]
	delete(w.chunks, pos)

	w.log.WithField("pos", pos).Debug("meshing: rendering chunk")
	w.resolveOcclusion(pos, st.storage)

	stop := w.prof.Track("meshing.Build")
	mesh := w.builder.Build(pos, st.storage, w.opacity)
	stop()

	w.dispatch(pos, mesh)
	w.chunks[pos] = w.retire(st)
	w.stats.Meshed.Inc()
	w.log.WithField("pos", pos).Debug("meshing: updated chunk")
}

func (w *Worker) closeSink() {
	if err := w.sink.Close(); err != nil {
		w.log.WithError(err).Warn("meshing: closing sink")
	}
}
