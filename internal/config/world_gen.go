package config

// TerrainConfig holds the settings of the generated terrain feed
type TerrainConfig struct {
	Seed     int64 `yaml:"seed"`
	Radius   int   `yaml:"radius"`    // chunks around the origin on every axis
	SeaLevel int   `yaml:"sea_level"` // in blocks; columns below it are topped with water
	Shuffle  bool  `yaml:"shuffle"`   // deliver fragments out of order
}

// DefaultTerrain returns the terrain feed defaults.
func DefaultTerrain() TerrainConfig {
	return TerrainConfig{
		Seed:     1,
		Radius:   2,
		SeaLevel: 4,
		Shuffle:  true,
	}
}

// Normalize clamps the radius to a range a single worker handles comfortably.
func (t *TerrainConfig) Normalize() {
	t.Radius = clamp(t.Radius, 1, 8)
}
