package app

import (
	"errors"
	"fmt"

	"github.com/vk/orgdefaults/internal/consumer"
	"github.com/vk/orgdefaults/internal/render"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SettingsPath string // settings.hcl or settings.yaml at the build root
	Projects     []string

	Format       string
	OutDir       string
	ListStrategy string
	Strict       bool
	InferScm     bool
	Watch        bool
	Workers      int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SettingsPath == "" {
		return nil, errors.New("SettingsPath is a required configuration field and cannot be empty")
	}
	if _, err := render.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	if _, err := consumer.ParseListStrategy(cfg.ListStrategy); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	return &cfg, nil
}

func (c *Config) format() render.Format {
	f, _ := render.ParseFormat(c.Format)
	return f
}

func (c *Config) listStrategy() consumer.ListStrategy {
	s, _ := consumer.ParseListStrategy(c.ListStrategy)
	return s
}
