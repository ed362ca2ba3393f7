package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}

	if cfg.Catalog.BaseURL != "http://127.0.0.1:8081" {
		t.Errorf("expected catalog base http://127.0.0.1:8081, got %s", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.FetchTimeout != 10*time.Second {
		t.Errorf("expected fetch timeout 10s, got %v", cfg.Catalog.FetchTimeout)
	}
	if cfg.Catalog.ModelTimeout != 30*time.Second {
		t.Errorf("expected model timeout 30s, got %v", cfg.Catalog.ModelTimeout)
	}
	if cfg.Catalog.MaxModelMB != 64 {
		t.Errorf("expected max model size 64 MB, got %d", cfg.Catalog.MaxModelMB)
	}

	if cfg.Viewer.TargetSize != 1.0 {
		t.Errorf("expected target size 1.0, got %f", cfg.Viewer.TargetSize)
	}
	if cfg.Viewer.MinScale != 0.125 {
		t.Errorf("expected min scale 0.125, got %f", cfg.Viewer.MinScale)
	}
	if cfg.Viewer.MaxScale != 8.0 {
		t.Errorf("expected max scale 8.0, got %f", cfg.Viewer.MaxScale)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vitrine.yaml")

	yamlContent := `
server:
  addr: ":9090"

catalog:
  base_url: "http://catalog.internal:8081"
  fetch_timeout: 5s
  model_timeout: 1m
  max_model_mb: 128

viewer:
  target_size: 0.75
  min_scale: 0.25
  max_scale: 4.0

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Server.Addr)
	}

	if cfg.Catalog.BaseURL != "http://catalog.internal:8081" {
		t.Errorf("expected catalog base http://catalog.internal:8081, got %s", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.FetchTimeout != 5*time.Second {
		t.Errorf("expected fetch timeout 5s, got %v", cfg.Catalog.FetchTimeout)
	}
	if cfg.Catalog.ModelTimeout != time.Minute {
		t.Errorf("expected model timeout 1m, got %v", cfg.Catalog.ModelTimeout)
	}
	if cfg.Catalog.MaxModelMB != 128 {
		t.Errorf("expected max model size 128 MB, got %d", cfg.Catalog.MaxModelMB)
	}

	if cfg.Viewer.TargetSize != 0.75 {
		t.Errorf("expected target size 0.75, got %f", cfg.Viewer.TargetSize)
	}
	if cfg.Viewer.MinScale != 0.25 {
		t.Errorf("expected min scale 0.25, got %f", cfg.Viewer.MinScale)
	}
	if cfg.Viewer.MaxScale != 4.0 {
		t.Errorf("expected max scale 4.0, got %f", cfg.Viewer.MaxScale)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewer:
  target_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/vitrine.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "vitrine.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  addr: \":7000\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find vitrine.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "addr flag",
			setup: func() {
				*flagAddr = ":9999"
			},
			verify: func(cfg *Config) {
				if cfg.Server.Addr != ":9999" {
					t.Errorf("expected addr :9999, got %s", cfg.Server.Addr)
				}
			},
			teardown: func() {
				*flagAddr = ""
			},
		},
		{
			name: "catalog flag",
			setup: func() {
				*flagCatalog = "http://localhost:9001"
			},
			verify: func(cfg *Config) {
				if cfg.Catalog.BaseURL != "http://localhost:9001" {
					t.Errorf("expected catalog base http://localhost:9001, got %s", cfg.Catalog.BaseURL)
				}
			},
			teardown: func() {
				*flagCatalog = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vitrine.yaml")

	yamlContent := `
server:
  addr: ":7070"
catalog:
  base_url: "http://file.example:8081"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagAddr = ":6060"
	defer func() {
		*flagConfig = ""
		*flagAddr = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Addr should be from flag, not file
	if cfg.Server.Addr != ":6060" {
		t.Errorf("expected addr :6060 from flag, got %s", cfg.Server.Addr)
	}

	// Catalog base should be from file since no flag override
	if cfg.Catalog.BaseURL != "http://file.example:8081" {
		t.Errorf("expected catalog base from file, got %s", cfg.Catalog.BaseURL)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "vitrine.yaml")

	cfg := Default()
	cfg.Server.Addr = ":5555"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Server.Addr != ":5555" {
		t.Errorf("expected saved addr :5555, got %s", loaded.Server.Addr)
	}
}
