package registry

import (
	"fmt"

	"voxmesh/internal/world"
)

// Block ids of the default registry.
const (
	BlockAir world.BlockID = iota
	BlockStone
	BlockGrass
	BlockDirt
	BlockCobblestone
	BlockBedrock
	BlockPlanksOak
	BlockWater
	BlockLava
	BlockGlass
	BlockLeaves
)

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID            world.BlockID `yaml:"id"`
	Name          string        `yaml:"name"`
	IsSolid       bool          `yaml:"solid"`
	IsTransparent bool          `yaml:"transparent"`
}

// Registry maps block ids to their definitions. It is never mutated after
// construction, so one instance can be shared by any number of workers.
type Registry struct {
	blocks map[world.BlockID]*BlockDefinition
	names  map[string]world.BlockID
}

// New builds a registry from the given definitions. Duplicate ids or names are rejected.
func New(defs ...BlockDefinition) (*Registry, error) {
	r := &Registry{
		blocks: make(map[world.BlockID]*BlockDefinition, len(defs)),
		names:  make(map[string]world.BlockID, len(defs)),
	}
	for i := range defs {
		def := defs[i]
		if _, dup := r.blocks[def.ID]; dup {
			return nil, fmt.Errorf("block id %d registered twice", def.ID)
		}
		if def.Name != "" {
			if _, dup := r.names[def.Name]; dup {
				return nil, fmt.Errorf("block name %q registered twice", def.Name)
			}
			r.names[def.Name] = def.ID
		}
		r.blocks[def.ID] = &def
	}
	return r, nil
}

// Get returns the definition for id.
func (r *Registry) Get(id world.BlockID) (BlockDefinition, bool) {
	def, ok := r.blocks[id]
	if !ok {
		return BlockDefinition{}, false
	}
	return *def, true
}

// Lookup resolves a block name to its id.
func (r *Registry) Lookup(name string) (world.BlockID, bool) {
	id, ok := r.names[name]
	return id, ok
}

// IsOpaque reports whether blocks of this type hide the faces touching them.
// Unknown ids are treated like air.
func (r *Registry) IsOpaque(id world.BlockID) bool {
	def, ok := r.blocks[id]
	return ok && !def.IsTransparent
}

// Len returns the number of registered block types.
func (r *Registry) Len() int { return len(r.blocks) }

// DefaultBlocks lists the built-in block set.
func DefaultBlocks() []BlockDefinition {
	return []BlockDefinition{
		{ID: BlockAir, Name: "air", IsTransparent: true},
		{ID: BlockStone, Name: "stone", IsSolid: true},
		{ID: BlockGrass, Name: "grass", IsSolid: true},
		{ID: BlockDirt, Name: "dirt", IsSolid: true},
		{ID: BlockCobblestone, Name: "cobblestone", IsSolid: true},
		{ID: BlockBedrock, Name: "bedrock", IsSolid: true},
		{ID: BlockPlanksOak, Name: "oak_planks", IsSolid: true},
		// Fluids can be moved through; lava still hides what is behind it.
		{ID: BlockWater, Name: "water_still", IsTransparent: true},
		{ID: BlockLava, Name: "lava_still"},
		{ID: BlockGlass, Name: "glass", IsSolid: true, IsTransparent: true},
		{ID: BlockLeaves, Name: "leaves", IsSolid: true, IsTransparent: true},
	}
}

// Default returns a registry holding DefaultBlocks.
func Default() *Registry {
	r, err := New(DefaultBlocks()...)
	if err != nil {
		panic(err)
	}
	return r
}
