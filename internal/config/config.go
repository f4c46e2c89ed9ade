// Package config loads runtime settings from an optional YAML file layered
// over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"rainbow-rogue/internal/runlog"
)

// Minimum map size; smaller maps cannot hold the fallback layout's rooms.
const (
	MinMapWidth  = 20
	MinMapHeight = 12
)

// Config is the full runtime configuration.
type Config struct {
	Seed   int64        `yaml:"seed"`
	Map    MapConfig    `yaml:"map"`
	Player PlayerConfig `yaml:"player"`
	Log    LogConfig    `yaml:"log"`
	Stats  StatsConfig  `yaml:"stats"`
	Server ServerConfig `yaml:"server"`
}

type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PlayerConfig struct {
	FOVRadius int `yaml:"fov_radius"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type StatsConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Map:    MapConfig{Width: 80, Height: 48},
		Player: PlayerConfig{FOVRadius: 8},
		Log:    LogConfig{Level: "info"},
		Stats:  StatsConfig{Backend: runlog.BackendJSONL},
		Server: ServerConfig{Port: 2222, HostKey: "server_host_key"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults; a
// missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: %s not found", path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Map.Width < MinMapWidth || c.Map.Height < MinMapHeight {
		errs = append(errs, fmt.Errorf("map must be at least %dx%d, got %dx%d",
			MinMapWidth, MinMapHeight, c.Map.Width, c.Map.Height))
	}
	if c.Player.FOVRadius <= 0 {
		errs = append(errs, fmt.Errorf("player.fov_radius must be positive, got %d", c.Player.FOVRadius))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Stats.Backend {
	case runlog.BackendJSONL, runlog.BackendNone:
	case runlog.BackendPostgres:
		if c.Stats.DSN == "" {
			errs = append(errs, errors.New("stats.dsn is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown stats.backend %q", c.Stats.Backend))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SlogLevel maps the level name onto a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log.level %q", l.Level)
}
