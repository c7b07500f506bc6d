package meshing

import "voxmesh/internal/world"

// Message is a control or data message consumed by the Worker.
// The set is closed: AllowChunk, NewChunkFragment and RemoveChunk.
type Message interface {
	isMessage()
}

// AllowChunk (re)registers a chunk. Any previous state at Pos, including a
// finished mesh, is discarded.
type AllowChunk struct {
	Pos world.ChunkCoord
}

// NewChunkFragment carries one column of a chunk. Column holds exactly
// chunk-size block ids running along Z.
type NewChunkFragment struct {
	Pos    world.ChunkCoord
	Frag   world.FragmentCoord
	Column []world.BlockID
}

// RemoveChunk forgets a chunk in whatever state it is in.
type RemoveChunk struct {
	Pos world.ChunkCoord
}

func (AllowChunk) isMessage()       {}
func (NewChunkFragment) isMessage() {}
func (RemoveChunk) isMessage()      {}

// NewChunkBuffer is emitted once a chunk has been meshed. The consumer owns Mesh.
type NewChunkBuffer struct {
	Pos  world.ChunkCoord
	Mesh Mesh
}

// Opacity answers whether a block type hides the faces touching it.
// Implementations must be safe for concurrent reads.
type Opacity interface {
	IsOpaque(id world.BlockID) bool
}

// OpacityFunc adapts a function to Opacity.
type OpacityFunc func(id world.BlockID) bool

// IsOpaque calls f(id).
func (f OpacityFunc) IsOpaque(id world.BlockID) bool { return f(id) }

// MeshBuilder turns a chunk's blocks and resolved visibility mask into geometry.
// The storage must not be retained or modified: neighbors keep reading it.
type MeshBuilder interface {
	Build(pos world.ChunkCoord, s *world.Storage, opacity Opacity) Mesh
}

// MeshBuilderFunc adapts a function to MeshBuilder.
type MeshBuilderFunc func(pos world.ChunkCoord, s *world.Storage, opacity Opacity) Mesh

// Build calls f.
func (f MeshBuilderFunc) Build(pos world.ChunkCoord, s *world.Storage, opacity Opacity) Mesh {
	return f(pos, s, opacity)
}
