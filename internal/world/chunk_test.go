package world

import "testing"

func TestColumnIsContiguousAlongZ(t *testing.T) {
	v := NewVolume(4)
	col := v.Column(FragmentCoord{X: 2, Y: 1})
	for z := range col {
		col[z] = BlockID(z + 1)
	}
	for z := 0; z < 4; z++ {
		if got := v.Get(2, 1, z); got != BlockID(z+1) {
			t.Errorf("Get(2,1,%d) = %d, want %d", z, got, z+1)
		}
	}
	if got := v.Get(1, 2, 0); got != Air {
		t.Errorf("neighboring column touched: got %d", got)
	}
}

func TestNewMaskStartsFull(t *testing.T) {
	m := NewMask(2)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				if m.Get(x, y, z) != FullMask {
					t.Fatalf("mask at %d,%d,%d = %06b, want %06b", x, y, z, m.Get(x, y, z), FullMask)
				}
			}
		}
	}
	if FullMask != 0x3F {
		t.Errorf("FullMask = %#x, want 0x3f", FullMask)
	}
}

func TestToggleAndExposed(t *testing.T) {
	m := NewMask(2)
	if m.Exposed(0, 0, 0, East) {
		t.Fatal("fresh mask reports exposed face")
	}
	m.Toggle(0, 0, 0, East)
	if !m.Exposed(0, 0, 0, East) {
		t.Error("toggled face not exposed")
	}
	if m.Exposed(0, 0, 0, West) {
		t.Error("toggle leaked into another direction")
	}
	m.Toggle(0, 0, 0, East)
	if m.Exposed(0, 0, 0, East) {
		t.Error("second toggle did not restore the bit")
	}
}

func TestDirections(t *testing.T) {
	for _, d := range Directions {
		dx, dy, dz := d.Offset()
		if abs(dx)+abs(dy)+abs(dz) != 1 {
			t.Errorf("%v offset is not a unit step", d)
		}
	}
	c := ChunkCoord{X: 1, Y: 2, Z: 3}
	if got := c.Neighbor(West); got != (ChunkCoord{X: 0, Y: 2, Z: 3}) {
		t.Errorf("Neighbor(West) = %v", got)
	}
}

func TestOriginScalesBySize(t *testing.T) {
	o := ChunkCoord{X: -1, Y: 0, Z: 2}.Origin(16)
	if o.X() != -16 || o.Y() != 0 || o.Z() != 32 {
		t.Errorf("Origin = %v", o)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
