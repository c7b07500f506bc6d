package feed

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"voxmesh/internal/meshing"
	"voxmesh/internal/world"
)

// ErrScript is wrapped by every script decoding or expansion failure.
var ErrScript = errors.New("feed script")

// Names resolves block names used in scripts. *registry.Registry implements it.
type Names interface {
	Lookup(name string) (world.BlockID, bool)
}

// Script is a scripted message sequence, for example:
//
//	steps:
//	  - allow: [0, 0, 0]
//	  - fill: {pos: [0, 0, 0], block: stone}
//	  - fragment: {pos: [0, 0, 0], frag: [1, 0], column: [1, 1]}
//	  - remove: [0, 0, 0]
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Allow    *[3]int       `yaml:"allow"`
	Remove   *[3]int       `yaml:"remove"`
	Fill     *FillStep     `yaml:"fill"`
	Fragment *FragmentStep `yaml:"fragment"`
}

// FillStep expands to every column of a chunk, all of one block.
type FillStep struct {
	Pos   [3]int `yaml:"pos"`
	Block string `yaml:"block"`
}

// FragmentStep is a single column.
type FragmentStep struct {
	Pos    [3]int          `yaml:"pos"`
	Frag   [2]int          `yaml:"frag"`
	Column []world.BlockID `yaml:"column"`
}

// ParseScript decodes a YAML script.
func ParseScript(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScript(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Messages expands the script for chunks of the given size. Fragment columns
// are passed through unchecked so malformed input reaches the worker as written.
func (s *Script) Messages(size int, names Names) ([]meshing.Message, error) {
	var out []meshing.Message
	for i, st := range s.Steps {
		n := 0
		if st.Allow != nil {
			n++
			out = append(out, meshing.AllowChunk{Pos: coord(*st.Allow)})
		}
		if st.Remove != nil {
			n++
			out = append(out, meshing.RemoveChunk{Pos: coord(*st.Remove)})
		}
		if st.Fill != nil {
			n++
			id, err := resolve(st.Fill.Block, names)
			if err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrScript, i, err)
			}
			out = append(out, Fill(coord(st.Fill.Pos), size, id)...)
		}
		if st.Fragment != nil {
			n++
			out = append(out, meshing.NewChunkFragment{
				Pos:    coord(st.Fragment.Pos),
				Frag:   world.FragmentCoord{X: st.Fragment.Frag[0], Y: st.Fragment.Frag[1]},
				Column: append([]world.BlockID(nil), st.Fragment.Column...),
			})
		}
		if n != 1 {
			return nil, fmt.Errorf("%w: step %d has %d actions, want 1", ErrScript, i, n)
		}
	}
	return out, nil
}

// Fill returns the size² fragments that fill the chunk at pos with id.
func Fill(pos world.ChunkCoord, size int, id world.BlockID) []meshing.Message {
	out := make([]meshing.Message, 0, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			col := make([]world.BlockID, size)
			for z := range col {
				col[z] = id
			}
			out = append(out, meshing.NewChunkFragment{Pos: pos, Frag: world.FragmentCoord{X: x, Y: y}, Column: col})
		}
	}
	return out
}

func coord(p [3]int) world.ChunkCoord {
	return world.ChunkCoord{X: p[0], Y: p[1], Z: p[2]}
}

func resolve(block string, names Names) (world.BlockID, error) {
	if names != nil {
		if id, ok := names.Lookup(block); ok {
			return id, nil
		}
	}
	v, err := strconv.ParseUint(block, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("unknown block %q", block)
	}
	return world.BlockID(v), nil
}
