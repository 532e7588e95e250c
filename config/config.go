// Package config holds the settings of an experiment run
package config

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config holds all run configuration
type Config struct {
	// Experiment
	Name   string `mapstructure:"name"`
	Games  int    `mapstructure:"games"` // Per matchup
	OutDir string `mapstructure:"out"`

	// Game
	Steps       int     `mapstructure:"steps"`
	BanditCount int     `mapstructure:"arms"`
	Decay       float64 `mapstructure:"decay"`
	Seed        uint64  `mapstructure:"seed"`

	// Selector
	ThompsonStep int `mapstructure:"thompson_step"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Default returns a config matching the competition game
func Default() *Config {
	return &Config{
		Name:         "selector",
		Games:        10,
		OutDir:       "experiments",
		Steps:        2000,
		BanditCount:  100,
		Decay:        0.97,
		Seed:         42,
		ThompsonStep: 1000,
		LogLevel:     "info",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Games <= 0 {
		return errors.New("games must be positive")
	}
	if c.OutDir == "" {
		return errors.New("out is required")
	}
	if c.Steps <= 0 {
		return errors.New("steps must be positive")
	}
	if c.BanditCount <= 0 {
		return errors.New("arms must be positive")
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return errors.Errorf("decay %v must be in (0, 1]", c.Decay)
	}
	if c.ThompsonStep <= 0 {
		return errors.New("thompson_step must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}
