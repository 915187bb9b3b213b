package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = ".seri.yaml"

// Config holds the defaults read from the YAML config file. Flags and
// environment variables override every field.
type Config struct {
	// Format is the output format: "tikz" or "html".
	Format string `yaml:"format"`
	// Template is the path of a template file. A relative path is resolved
	// against the directory of the config file.
	Template string `yaml:"template"`
	// Standalone wraps output in the built-in template of the format when
	// no template is given.
	Standalone bool `yaml:"standalone"`
	// Strict requires every session to be fully scheduled.
	Strict bool `yaml:"strict"`
	// Sort orders sessions by start time instead of rejecting
	// out-of-order documents.
	Sort bool `yaml:"sort"`
	// Abstracts appends an abstracts section to TikZ output.
	Abstracts bool `yaml:"abstracts"`
	// OutputDir is where compiled files are written in batch mode.
	OutputDir string `yaml:"output_dir"`
	// Latexmk is the latexmk executable used by compile --pdf.
	Latexmk string `yaml:"latexmk"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Format:   "tikz",
		LogLevel: "info",
	}
}

// Normalize fills in missing values so a partial file behaves like the
// defaults.
func (c *Config) Normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = "tikz"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfig reads the YAML config at path. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	if cfg.Template != "" && !filepath.IsAbs(cfg.Template) {
		cfg.Template = filepath.Join(filepath.Dir(path), cfg.Template)
	}
	return cfg, nil
}
