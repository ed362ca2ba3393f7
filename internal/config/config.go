// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds the HTTP/WebSocket listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CatalogConfig holds settings for the products backend.
type CatalogConfig struct {
	BaseURL      string        `yaml:"base_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	ModelTimeout time.Duration `yaml:"model_timeout"`
	MaxModelMB   int           `yaml:"max_model_mb"`
}

// ViewerConfig holds presentation settings.
type ViewerConfig struct {
	TargetSize float32 `yaml:"target_size"` // Normalized fit size in meters
	MinScale   float32 `yaml:"min_scale"`
	MaxScale   float32 `yaml:"max_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Catalog: CatalogConfig{
			BaseURL:      "http://127.0.0.1:8081",
			FetchTimeout: 10 * time.Second,
			ModelTimeout: 30 * time.Second,
			MaxModelMB:   64,
		},
		Viewer: ViewerConfig{
			TargetSize: 1.0,
			MinScale:   0.125,
			MaxScale:   8.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
