// Package config loads server configuration from fkit.toml and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	DB     DBConfig     `toml:"database"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type DBConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 3000},
		DB:     DBConfig{Path: "fkit.db"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads configuration from an optional TOML file and environment
// variables. Environment variables win over the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if dbPath := os.Getenv("FKIT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if host := os.Getenv("FKIT_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FKIT_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FKIT_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if level := os.Getenv("FKIT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// WriteDefault writes a commented default config file. The database file is
// named after the directory the config lives in, matching what `fkit init`
// produces for a fresh project.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	content := fmt.Sprintf(`[database]
path = "%s.db"

[server]
host = "0.0.0.0"
port = 3000

[log]
level = "info"
`, filepath.Base(dir))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
