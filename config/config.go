package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are the config files Load looks for, in order. The first one
// present is used.
var DefaultFiles = []string{"config.yaml", "config.yml", "config.json"}

// DeckConfig lists the characteristic values a new deck is generated from.
type DeckConfig struct {
	Shapes   []string `json:"shapes" yaml:"shapes" env:"SET_SHAPES"`
	Colors   []string `json:"colors" yaml:"colors" env:"SET_COLORS"`
	Numbers  []int    `json:"numbers" yaml:"numbers" env:"SET_NUMBERS"`
	Shadings []string `json:"shadings" yaml:"shadings" env:"SET_SHADINGS"`
}

// AIParams tunes the autoplayer.
type AIParams struct {
	Name       string `json:"name" yaml:"name" env:"SET_AI_NAME"`
	DelayMinMS int    `json:"delay_min_ms" yaml:"delay_min_ms" env:"SET_AI_DELAY_MIN_MS"`
	DelayMaxMS int    `json:"delay_max_ms" yaml:"delay_max_ms" env:"SET_AI_DELAY_MAX_MS"`
	SpotChance int    `json:"spot_chance" yaml:"spot_chance" env:"SET_AI_SPOT_CHANCE"` // 0-100, probability to take a set in play on a given move
}

// Config holds all configurable parameters.
type Config struct {
	// Seed fixes the shuffle for reproducible games; 0 means a fresh seed per game.
	Seed int64 `json:"seed" yaml:"seed" env:"SET_SEED"`

	LogLevel string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`

	// Color enables ANSI colours in the console.
	Color bool `json:"color" yaml:"color" env:"SET_COLOR"`

	// ActionBuffer is the capacity of a session's action channel.
	ActionBuffer int `json:"action_buffer" yaml:"action_buffer" env:"SET_ACTION_BUFFER"`

	Deck DeckConfig `json:"deck" yaml:"deck"`

	AI AIParams `json:"ai" yaml:"ai"`
}

// Defaults returns a Config for the standard 81-card game.
func Defaults() *Config {
	return &Config{
		Seed:         0,
		LogLevel:     "info",
		Color:        true,
		ActionBuffer: 16,
		Deck: DeckConfig{
			Shapes:   []string{"diamond", "squiggle", "oval"},
			Colors:   []string{"red", "green", "purple"},
			Numbers:  []int{1, 2, 3},
			Shadings: []string{"solid", "striped", "open"},
		},
		AI: AIParams{Name: "Thalia", DelayMinMS: 400, DelayMaxMS: 1200, SpotChance: 70},
	}
}

// Load reads configuration from the first of DefaultFiles that exists in
// the working directory, then applies environment variable overrides.
// Fields not set in either source keep their default values.
func Load() *Config {
	cfg := Defaults()

	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := LoadFile(cfg, name); err != nil {
			slog.Warn("failed to load config file", "tag", "config", "file", name, "err", err)
		}
		break
	}

	return applyEnv(cfg)
}

// LoadFile decodes the file at path over cfg. The format follows the
// extension: .yaml/.yml or .json.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("config file %q: unsupported extension", path)
	}
	if err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return nil
}

// applyEnv returns cfg with environment overrides applied. If any variable
// fails to parse, every override is ignored and cfg is returned unchanged.
func applyEnv(cfg *Config) *Config {
	overridden := *cfg
	if err := env.Parse(&overridden); err != nil {
		slog.Warn("ignoring environment overrides", "tag", "config", "err", err)
		return cfg
	}
	return &overridden
}
