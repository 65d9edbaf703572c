package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	WallSync  WallSyncConfig  `yaml:"wallsync"`
	Composite CompositeConfig `yaml:"composite"`
	Export    ExportConfig    `yaml:"export"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type WallSyncConfig struct {
	BatchSize int `yaml:"batch_size"`
}

type CompositeConfig struct {
	MaxDimension     int `yaml:"max_dimension"`
	ImageTimeoutSecs int `yaml:"image_timeout_seconds"`
}

type ExportConfig struct {
	DownloadsDir string `yaml:"downloads_dir"`
}

// GetPort returns the HTTP port with priority: config -> env -> default.
func (s *ServerConfig) GetPort() int {
	return intWithEnvFallback(s.Port, "PORTER_PORT", 8080)
}

// GetPath returns the database path with priority: config -> env -> default.
func (d *DatabaseConfig) GetPath() string {
	if d.Path != "" {
		return d.Path
	}
	if v := os.Getenv("PORTER_DB_PATH"); v != "" {
		return v
	}
	return "scenes.db"
}

// GetBatchSize returns the wall creation batch size; host bulk-create calls
// never exceed this many records.
func (w *WallSyncConfig) GetBatchSize() int {
	return intWithEnvFallback(w.BatchSize, "PORTER_WALL_BATCH_SIZE", 100)
}

// GetMaxDimension returns the composite canvas dimension ceiling.
func (c *CompositeConfig) GetMaxDimension() int {
	return intWithEnvFallback(c.MaxDimension, "PORTER_MAX_CANVAS_DIM", 16384)
}

// GetImageTimeoutSecs returns the per-image HTTP load timeout.
func (c *CompositeConfig) GetImageTimeoutSecs() int {
	return intWithEnvFallback(c.ImageTimeoutSecs, "PORTER_IMAGE_TIMEOUT", 30)
}

// GetDownloadsDir returns where file exports land when not streamed.
func (e *ExportConfig) GetDownloadsDir() string {
	if e.DownloadsDir != "" {
		return e.DownloadsDir
	}
	if v := os.Getenv("PORTER_DOWNLOADS_DIR"); v != "" {
		return v
	}
	return "downloads"
}

func intWithEnvFallback(configured int, envKey string, def int) int {
	if configured > 0 {
		return configured
	}
	if v := os.Getenv(envKey); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// Load reads a YAML config file. A missing file is not an error: every value
// has an env or built-in fallback.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
