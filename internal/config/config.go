package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"voxmesh/internal/meshing"
	"voxmesh/internal/world"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings of one meshing run.
type Config struct {
	ChunkSize     int    `yaml:"chunk_size"`
	InboundQueue  int    `yaml:"inbound_queue"`
	OutboundQueue int    `yaml:"outbound_queue"`
	LogLevel      string `yaml:"log_level"`
	OnClosedSink  string `yaml:"on_closed_sink"` // fatal | drop

	// Registry is an optional block registry file; empty means the built-in set.
	Registry string `yaml:"registry"`
	// Output is the directory receiving the compressed mesh log; empty disables it.
	Output string `yaml:"output"`

	Feed FeedConfig `yaml:"feed"`
}

// FeedConfig selects where inbound messages come from. A script wins over terrain.
type FeedConfig struct {
	Script  string        `yaml:"script"`
	Terrain TerrainConfig `yaml:"terrain"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ChunkSize:     world.ChunkSize,
		InboundQueue:  4096,
		OutboundQueue: 256,
		LogLevel:      "info",
		OnClosedSink:  "fatal",
		Feed:          FeedConfig{Terrain: DefaultTerrain()},
	}
}

// Load reads a YAML file over the defaults, then normalizes and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Normalize clamps queue sizes and terrain settings to workable values.
func (c *Config) Normalize() {
	c.InboundQueue = clamp(c.InboundQueue, 1, 1<<20)
	c.OutboundQueue = clamp(c.OutboundQueue, 1, 1<<16)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.OnClosedSink = strings.ToLower(strings.TrimSpace(c.OnClosedSink))
	if c.OnClosedSink == "" {
		c.OnClosedSink = "fatal"
	}
	c.Feed.Terrain.Normalize()
}

// Validate reports settings that cannot be clamped into shape.
func (c Config) Validate() error {
	if c.ChunkSize < 1 || c.ChunkSize > 256 {
		return fmt.Errorf("%w: chunk_size %d out of range [1, 256]", ErrInvalid, c.ChunkSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	if _, err := c.SinkPolicy(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// SinkPolicy maps on_closed_sink to the worker policy.
func (c Config) SinkPolicy() (meshing.SinkPolicy, error) {
	switch c.OnClosedSink {
	case "fatal":
		return meshing.ClosedSinkFatal, nil
	case "drop":
		return meshing.ClosedSinkDrop, nil
	default:
		return 0, fmt.Errorf("%w: on_closed_sink %q (want fatal or drop)", ErrInvalid, c.OnClosedSink)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
