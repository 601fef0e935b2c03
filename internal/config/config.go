// Package config loads the YAML configuration of the stsearch tool.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/stsearch/pattern"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = ".stsearch.yaml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NamedPattern is a pattern kept inline in the configuration.
type NamedPattern struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Config represents the configuration of the tool.
type Config struct {
	Dialect  string         `yaml:"dialect"`
	Format   string         `yaml:"format"`
	Color    bool           `yaml:"color"`
	Workers  int            `yaml:"workers"`
	Patterns []NamedPattern `yaml:"patterns,omitempty"`
	Include  []string       `yaml:"include,omitempty"`
}

func Default() Config {
	return Config{
		Dialect: pattern.JavaScript.Name,
		Format:  FormatText,
		Color:   true,
		Include: []string{"**/*.pat"},
	}
}

// Load reads the configuration at path. Fields missing from the file keep
// their default values. A missing file at DefaultPath is not an error.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the dialect, the format and the worker count.
func (c Config) Validate() error {
	if _, ok := pattern.LookupDialect(c.Dialect); !ok {
		return fmt.Errorf("unknown dialect %q", c.Dialect)
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	for i, np := range c.Patterns {
		if np.Name == "" {
			return fmt.Errorf("pattern #%d has no name", i+1)
		}
	}
	return nil
}

// Write stores config at path, creating or truncating the file.
func Write(path string, config Config) error {
	if path == "" {
		path = DefaultPath
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
