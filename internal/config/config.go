package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/pathfinder/observability"
)

// Config represents the top-level configuration parsed from pathfinder.yaml.
type Config struct {
	// Grid contains the default grid settings.
	Grid GridConfig `yaml:"grid"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
	// Observer names the registered observer receiving search events
	// ("slog" or "noop").
	Observer string `yaml:"observer"`
	// Render contains settings for image and terminal output.
	Render RenderConfig `yaml:"render"`
	// Server configures the step-through web visualizer.
	Server ServerConfig `yaml:"server"`
}

// GridConfig contains grid settings.
type GridConfig struct {
	// Dimension is the number of rows and columns of a new grid.
	Dimension int `yaml:"dimension"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty means stdout.
	Path string `yaml:"path"`
}

// RenderConfig configures the renderers.
type RenderConfig struct {
	// CellSize is the edge length of one cell in PNG output, in pixels.
	CellSize int `yaml:"cell_size"`
	// FrameEvery writes one PNG frame every N search steps.
	FrameEvery int `yaml:"frame_every"`
	// StepDelay pauses terminal animation between steps (e.g. "20ms").
	StepDelay string `yaml:"step_delay"`
}

// ServerConfig configures the web visualizer.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// Walls configures the random wall generator used by /init.
	Walls WallConfig `yaml:"walls"`
}

// WallConfig configures clustered random walls built from random walks.
type WallConfig struct {
	// Clusters is the number of random walks.
	Clusters int `yaml:"clusters"`
	// Steps is the length of each walk.
	Steps int `yaml:"steps"`
	// Density is the probability that a visited cell becomes a wall.
	Density float64 `yaml:"density"`
}

const (
	DefaultDimension  = 50
	DefaultCellSize   = 16
	DefaultFrameEvery = 1
	DefaultAddr       = ":8080"
	DefaultObserver   = "slog"
	DefaultLevel      = "info"
)


// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for configuration fields that are missing.
func ApplyDefaults(config *Config) {
	if config.Grid.Dimension == 0 {
		config.Grid.Dimension = DefaultDimension
	}
	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLevel
	}
	if config.Observer == "" {
		config.Observer = DefaultObserver
	}
	if config.Render.CellSize == 0 {
		config.Render.CellSize = DefaultCellSize
	}
	if config.Render.FrameEvery == 0 {
		config.Render.FrameEvery = DefaultFrameEvery
	}
	if config.Server.Addr == "" {
		config.Server.Addr = DefaultAddr
	}
	if config.Server.Walls.Clusters == 0 {
		config.Server.Walls.Clusters = 8
	}
	if config.Server.Walls.Steps == 0 {
		config.Server.Walls.Steps = 200
	}
	if config.Server.Walls.Density == 0 {
		config.Server.Walls.Density = 0.25
	}
}

// Validate checks the configuration for errors.
func Validate(config *Config) error {
	if config.Grid.Dimension < 1 {
		return fmt.Errorf("grid dimension must be positive, got %d", config.Grid.Dimension)
	}
	if config.Render.CellSize < 1 {
		return fmt.Errorf("render cell_size must be positive, got %d", config.Render.CellSize)
	}
	if config.Render.FrameEvery < 1 {
		return fmt.Errorf("render frame_every must be positive, got %d", config.Render.FrameEvery)
	}
	if config.Render.StepDelay != "" {
		if _, err := config.Render.ParseStepDelay(); err != nil {
			return err
		}
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
	}

	if !slices.Contains(observability.Names(), config.Observer) {
		return fmt.Errorf("invalid observer: %s (allowed: %s)", config.Observer, strings.Join(observability.Names(), ", "))
	}

	walls := config.Server.Walls
	if walls.Clusters < 0 || walls.Steps < 0 {
		return fmt.Errorf("wall clusters and steps must not be negative")
	}
	if walls.Density < 0 || walls.Density > 1 {
		return fmt.Errorf("wall density must be within [0,1], got %g", walls.Density)
	}
	return nil
}

// Load reads a YAML config file over the defaults and validates the result.
// Only keys absent from the file keep their default, so an explicit zero such
// as "density: 0" is honoured. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
