package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tixyva/internal/patterns"
)

const (
	DefaultWidth    = 32
	DefaultHeight   = 32
	DefaultFPS      = 30
	DefaultTheme    = "lavender"
	DefaultDataDir  = ".tixyva"
	DefaultLogLevel = "info"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Width    int                `yaml:"width"`
	Height   int                `yaml:"height"`
	FPS      int                `yaml:"fps"`
	Audio    bool               `yaml:"audio"`
	Theme    string             `yaml:"theme"`
	DataDir  string             `yaml:"data_dir"`
	LogFile  string             `yaml:"log_file"`
	LogLevel string             `yaml:"log_level"`
	Watch    string             `yaml:"watch"`
	Patterns []patterns.Pattern `yaml:"patterns"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
		Audio:    true,
		Theme:    DefaultTheme,
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	for i, p := range c.Patterns {
		if p.Source == "" {
			return fmt.Errorf("%w: pattern %d (%s) has no source", ErrInvalid, i, p.Name)
		}
	}
	return nil
}

// Library is the built-in patterns followed by the configured ones.
func (c *Config) Library() patterns.Library {
	return patterns.Builtin.With(c.Patterns...)
}
