package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the default side length of a cubic chunk.
const ChunkSize = 16

// FullMask has every direction bit set. Fresh masks start from it.
const FullMask uint8 = 1<<NumDirections - 1

// ChunkCoord identifies a chunk in the world grid.
type ChunkCoord struct {
	X, Y, Z int
}

// Neighbor returns the coordinate of the adjacent chunk in direction d.
func (c ChunkCoord) Neighbor(d Direction) ChunkCoord {
	dx, dy, dz := d.Offset()
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Origin returns the world-space position of the chunk's minimum corner.
func (c ChunkCoord) Origin(size int) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X * size), float32(c.Y * size), float32(c.Z * size)}
}

// Less orders coordinates by X, then Y, then Z.
func (c ChunkCoord) Less(o ChunkCoord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.Z < o.Z
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// FragmentCoord identifies one column of a chunk. The column runs along Z.
type FragmentCoord struct {
	X, Y int
}

// Valid reports whether f addresses a column of a chunk with the given size.
func (f FragmentCoord) Valid(size int) bool {
	return f.X >= 0 && f.X < size && f.Y >= 0 && f.Y < size
}

// Volume is a dense size³ block array. Columns along Z are contiguous.
type Volume struct {
	size   int
	blocks []BlockID
}

// NewVolume returns a volume filled with Air.
func NewVolume(size int) *Volume {
	return &Volume{size: size, blocks: make([]BlockID, size*size*size)}
}

// Size returns the side length.
func (v *Volume) Size() int { return v.size }

func (v *Volume) index(x, y, z int) int {
	return (x*v.size+y)*v.size + z
}

// InBounds reports whether (x, y, z) lies inside the volume.
func (v *Volume) InBounds(x, y, z int) bool {
	return x >= 0 && x < v.size && y >= 0 && y < v.size && z >= 0 && z < v.size
}

// Get returns the block at local coordinates. Coordinates must be in bounds.
func (v *Volume) Get(x, y, z int) BlockID {
	return v.blocks[v.index(x, y, z)]
}

// Set stores a block at local coordinates. Coordinates must be in bounds.
func (v *Volume) Set(x, y, z int, id BlockID) {
	v.blocks[v.index(x, y, z)] = id
}

// Column returns the backing slice of the column at f. Writes go through to the volume.
func (v *Volume) Column(f FragmentCoord) []BlockID {
	start := v.index(f.X, f.Y, 0)
	return v.blocks[start : start+v.size]
}

// Fill sets every block to id.
func (v *Volume) Fill(id BlockID) {
	for i := range v.blocks {
		v.blocks[i] = id
	}
}

// Blocks exposes the flat block slice in x, y, z order.
func (v *Volume) Blocks() []BlockID { return v.blocks }

// Mask holds a 6-bit visibility mask per voxel, aligned with a Volume.
type Mask struct {
	size int
	bits []uint8
}

// NewMask returns a mask with every bit set.
func NewMask(size int) *Mask {
	m := &Mask{size: size, bits: make([]uint8, size*size*size)}
	m.Reset()
	return m
}

// Size returns the side length.
func (m *Mask) Size() int { return m.size }

// Get returns the mask bits at local coordinates.
func (m *Mask) Get(x, y, z int) uint8 {
	return m.bits[(x*m.size+y)*m.size+z]
}

// Toggle flips the bit for d at local coordinates.
func (m *Mask) Toggle(x, y, z int, d Direction) {
	m.bits[(x*m.size+y)*m.size+z] ^= d.Bit()
}

// Exposed reports whether the face toward d is exposed, i.e. its bit was cleared.
func (m *Mask) Exposed(x, y, z int, d Direction) bool {
	return m.Get(x, y, z)&d.Bit() == 0
}

// Reset sets every bit again.
func (m *Mask) Reset() {
	for i := range m.bits {
		m.bits[i] = FullMask
	}
}

// Storage is the block volume and visibility mask owned by one chunk.
type Storage struct {
	Blocks *Volume
	Sides  *Mask
}

// NewStorage allocates an empty volume with a full mask.
func NewStorage(size int) *Storage {
	return &Storage{Blocks: NewVolume(size), Sides: NewMask(size)}
}

// Size returns the side length.
func (s *Storage) Size() int { return s.Blocks.Size() }
