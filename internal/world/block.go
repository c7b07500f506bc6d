package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockID identifies a voxel's type. Interpretation is left to the registry.
type BlockID uint16

// Air is the default block every fresh volume is filled with.
const Air BlockID = 0

// Direction identifies one of the six axis-aligned faces of a block (or of a chunk).
// Its value is also the bit index used in visibility masks.
type Direction int

const (
	South Direction = iota // -Z
	North                  // +Z
	East                   // +X
	West                   // -X
	Up                     // +Y
	Down                   // -Y
)

// NumDirections is the number of axis-aligned directions.
const NumDirections = 6

// Directions lists every direction in mask-bit order.
var Directions = [NumDirections]Direction{South, North, East, West, Up, Down}

var directionOffsets = [NumDirections][3]int{
	South: {0, 0, -1},
	North: {0, 0, 1},
	East:  {1, 0, 0},
	West:  {-1, 0, 0},
	Up:    {0, 1, 0},
	Down:  {0, -1, 0},
}

var directionNames = [NumDirections]string{"south", "north", "east", "west", "up", "down"}

// Offset returns the unit step for d.
func (d Direction) Offset() (dx, dy, dz int) {
	o := directionOffsets[d]
	return o[0], o[1], o[2]
}

// Bit returns the mask bit for d.
func (d Direction) Bit() uint8 {
	return 1 << uint(d)
}

// Normal returns the outward face normal for d.
func (d Direction) Normal() mgl32.Vec3 {
	dx, dy, dz := d.Offset()
	return mgl32.Vec3{float32(dx), float32(dy), float32(dz)}
}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}
