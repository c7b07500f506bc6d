package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"voxmesh/internal/meshing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxmesh.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
chunk_size: 8
inbound_queue: 0
log_level: DEBUG
on_closed_sink: drop
feed:
  terrain:
    seed: 42
    radius: 99
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChunkSize != 8 {
		t.Errorf("ChunkSize = %d, want 8", cfg.ChunkSize)
	}
	if cfg.InboundQueue != 1 {
		t.Errorf("InboundQueue = %d, want clamped to 1", cfg.InboundQueue)
	}
	if cfg.OutboundQueue != Default().OutboundQueue {
		t.Errorf("OutboundQueue = %d, want default", cfg.OutboundQueue)
	}
	if cfg.Level() != logrus.DebugLevel {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
	if p, _ := cfg.SinkPolicy(); p != meshing.ClosedSinkDrop {
		t.Errorf("SinkPolicy = %v, want drop", p)
	}
	if cfg.Feed.Terrain.Seed != 42 || cfg.Feed.Terrain.Radius != 8 {
		t.Errorf("Terrain = %+v, want seed 42 radius 8", cfg.Feed.Terrain)
	}
	if !cfg.Feed.Terrain.Shuffle {
		t.Error("unset shuffle lost its default")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"chunk size": "chunk_size: 0\n",
		"log level":  "log_level: loud\n",
		"policy":     "on_closed_sink: retry\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want ErrNotExist", err)
	}
}
