package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the demo server configuration. Values come from
// defaults, then an optional TOML file, then environment overrides,
// in that order.
type Config struct {
	Server ServerConfig `toml:"server"`
	Static StaticConfig `toml:"static"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Port       int `toml:"port"`
	Workers    int `toml:"workers"`
	QueueDepth int `toml:"queue_depth"`
}

type StaticConfig struct {
	Dir string `toml:"dir"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       8080,
			Workers:    10,
			QueueDepth: 256,
		},
		Static: StaticConfig{Dir: "/webroot"},
		Log:    LogConfig{Level: "info", Pretty: true},
	}
}

// Load builds the configuration. path may be empty; a missing file at
// a given path is an error, a present file only needs to set the keys
// it cares about.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	if v := os.Getenv("WEBFX_STATIC_DIR"); v != "" {
		c.Static.Dir = v
	}
	if v := os.Getenv("WEBFX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.Server.QueueDepth < 1 {
		return errors.New("queue_depth must be at least 1")
	}
	if c.Static.Dir == "" {
		return errors.New("static dir must not be empty")
	}
	return nil
}
