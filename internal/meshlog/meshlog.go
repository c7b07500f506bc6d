package meshlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"voxmesh/internal/meshing"
)

// FileName is the log written inside the output directory.
const FileName = "meshes.jsonl.zst"

// Record summarizes one meshed chunk.
type Record struct {
	Pos       [3]int         `json:"pos"`
	Quads     int            `json:"quads"`
	Triangles int            `json:"triangles"`
	Blocks    map[uint16]int `json:"blocks,omitempty"` // quads per block id
	Vertices  []float32      `json:"vertices,omitempty"`
}

// NewRecord builds the record for buf. Vertices are only kept when requested.
func NewRecord(buf meshing.NewChunkBuffer, withVertices bool) Record {
	r := Record{
		Pos:       [3]int{buf.Pos.X, buf.Pos.Y, buf.Pos.Z},
		Quads:     buf.Mesh.Quads(),
		Triangles: buf.Mesh.Triangles(),
	}
	if len(buf.Mesh.QuadBlocks) > 0 {
		r.Blocks = make(map[uint16]int)
		for _, id := range buf.Mesh.QuadBlocks {
			r.Blocks[uint16(id)]++
		}
	}
	if withVertices {
		r.Vertices = buf.Mesh.Vertices
	}
	return r
}

// Writer appends JSON lines to a zstd-compressed file.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	n   int
}

// Create opens dir/FileName for writing, creating dir if needed.
func Create(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

// Write appends one record.
func (w *Writer) Write(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return os.ErrClosed
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.n++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	var firstErr error
	if err := w.w.Flush(); err != nil {
		firstErr = err
	}
	if err := w.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	w.w, w.enc, w.f = nil, nil, nil
	return firstErr
}

// Read decodes every record from a compressed log.
func Read(r io.Reader) ([]Record, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Record
	jd := json.NewDecoder(dec)
	for {
		var rec Record
		if err := jd.Decode(&rec); err == io.EOF {
			return out, nil
		} else if err != nil {
			return out, fmt.Errorf("meshlog: record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
}

// ReadFile decodes the log at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
