package hull

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

type PartitionStrategy string

const (
	// PartitionBest assigns a point to the face it is furthest in front of
	PartitionBest PartitionStrategy = "best"
	// PartitionFirst assigns a point to the first face it is in front of
	PartitionFirst PartitionStrategy = "first"
)

// machine epsilon of float32, 2^-23
const float32Epsilon = 1.1920928955078125e-07

// Config tunes the tolerances of the quickhull builder
type Config struct {
	// InitialEpsilon is scaled by the extents of the point cloud
	InitialEpsilon float64 `yaml:"initial_epsilon"`
	// MergeVolumeFraction of the bounding box volume under which an eye point is
	// discarded. Zero keeps every eye point.
	MergeVolumeFraction float64           `yaml:"merge_volume_fraction"`
	Partition           PartitionStrategy `yaml:"partition"`
	// MaxIterations caps the merge loop, zero is unlimited
	MaxIterations int `yaml:"max_iterations"`
}

func DefaultConfig() Config {
	return Config{
		InitialEpsilon:      math.Sqrt(float32Epsilon),
		MergeVolumeFraction: 1.0 / 3000.0,
		Partition:           PartitionBest,
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("hull: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("hull: reading config %s: %w", path, err)
	}

	return ParseConfig(data)
}

func (c Config) Validate() error {
	if c.InitialEpsilon <= 0 || math.IsNaN(c.InitialEpsilon) || math.IsInf(c.InitialEpsilon, 0) {
		return fmt.Errorf("hull: initial_epsilon must be positive, got %v", c.InitialEpsilon)
	}
	if c.MergeVolumeFraction < 0 || math.IsNaN(c.MergeVolumeFraction) {
		return fmt.Errorf("hull: merge_volume_fraction must not be negative, got %v", c.MergeVolumeFraction)
	}
	switch c.Partition {
	case PartitionBest, PartitionFirst, "":
	default:
		return fmt.Errorf("hull: unknown partition strategy %q", c.Partition)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("hull: max_iterations must not be negative, got %d", c.MaxIterations)
	}

	return nil
}
