package convex

import (
	"fmt"
	"os"

	"github.com/akmonengine/convex/hull"
	"gopkg.in/yaml.v3"
)

// Config is the YAML description of a Detector
type Config struct {
	Workers   int         `yaml:"workers"`
	Debug     bool        `yaml:"debug"`
	LogPrefix string      `yaml:"log_prefix"`
	Hull      hull.Config `yaml:"hull"`
}

func DefaultConfig() Config {
	return Config{
		Workers:   DEFAULT_WORKERS,
		LogPrefix: "convex",
		Hull:      hull.DefaultConfig(),
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("convex: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("convex: reading config %s: %w", path, err)
	}

	return ParseConfig(data)
}

func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("convex: workers must not be negative, got %d", c.Workers)
	}
	if err := c.Hull.Validate(); err != nil {
		return fmt.Errorf("convex: %w", err)
	}

	return nil
}
