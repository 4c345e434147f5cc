// Package config loads command-line settings from an xlkit configuration file.
//
// Files named xlkit.yaml or xlkit.yml are parsed with gopkg.in/yaml.v3.
// Files named xlkit.json or xlkit.jsonc may carry comments and trailing
// commas; github.com/tidwall/jsonc strips them before encoding/json parses
// the result.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the cells command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// FileNames lists the configuration file names searched by Find, in order.
var FileNames = []string{"xlkit.yaml", "xlkit.yml", "xlkit.json", "xlkit.jsonc"}

// ErrInvalid is returned for unreadable or out-of-range settings.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings shared by all commands. Command-line flags
// override values read from a file.
type Config struct {
	// DataOnly drops formulas and keeps their cached results.
	DataOnly bool `yaml:"data_only" json:"data_only"`

	// GuessTypes re-interprets string cells as numbers, percentages, or times.
	GuessTypes bool `yaml:"guess_types" json:"guess_types"`

	// Output selects text, json, or yaml rendering.
	Output string `yaml:"output" json:"output"`

	// LogLevel is any level name accepted by logrus.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Output:   OutputText,
		LogLevel: logrus.WarnLevel.String(),
	}
}

// Load reads the configuration file at path. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalid, path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalid, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the first configuration file in dir, if any.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Validate checks the output format and log level.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output %q (want text, json, or yaml)", ErrInvalid, c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return lvl, nil
}
