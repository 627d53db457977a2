// Package config holds the settings of the svg2bas conversion,
// optionally read from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Z-index modes
const (
	ZIndexUniform = "uniform" // every path on layer 1
	ZIndexStack   = "stack"   // path i on layer i+1
)

type Config struct {
	OutputPath    string `yaml:"outputPath"`
	DurationMs    int    `yaml:"durationMs"`
	Workers       int    `yaml:"workers"`
	CheckGeometry bool   `yaml:"checkGeometry"`
	PreviewPath   string `yaml:"previewPath"`
	ZIndex        string `yaml:"zIndex"`
	Verify        bool   `yaml:"verify"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OutputPath: "outputbas.txt",
		DurationMs: 1000,
		Workers:    1,
		ZIndex:     ZIndexUniform,
	}
}

// Load reads the YAML file at `path` on top of the defaults.
// The result is not validated, so that command line flags may still
// override it: call Validate once the settings are final.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the consistency of the settings.
func (c Config) Validate() error {
	if c.OutputPath == "" {
		return errors.New("outputPath is empty")
	}
	if c.DurationMs <= 0 {
		return fmt.Errorf("durationMs must be positive, got %d", c.DurationMs)
	}
	switch c.ZIndex {
	case ZIndexUniform, ZIndexStack:
	default:
		return fmt.Errorf("unknown zIndex mode %q", c.ZIndex)
	}
	return nil
}
