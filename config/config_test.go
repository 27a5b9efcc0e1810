package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.API.BaseURL != "http://localhost:3000" {
		t.Errorf("expected default base URL http://localhost:3000, got %s", config.API.BaseURL)
	}
	if config.API.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", config.API.Timeout)
	}
	if config.Cart.Path == "" {
		t.Error("expected a default cart path")
	}
	if config.Log.Level != "info" {
		t.Errorf("expected default log level info, got %s", config.Log.Level)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty base URL", func(c *Config) { c.API.BaseURL = "" }, true},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, true},
		{"zero timeout allowed", func(c *Config) { c.API.Timeout = 0 }, false},
		{"empty cart path", func(c *Config) { c.Cart.Path = "" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  base_url: https://shop.example.com
  timeout: 5s
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if config.API.BaseURL != "https://shop.example.com" {
		t.Errorf("expected base URL from file, got %s", config.API.BaseURL)
	}
	if config.API.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", config.API.Timeout)
	}
	if config.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", config.Log.Level)
	}
	// Unset fields keep their defaults.
	if config.Cart.Path == "" {
		t.Error("expected default cart path to survive partial file")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [not a map"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.API.BaseURL = "https://shop.example.com"
	config.Log.Level = "warn"

	if err := config.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	reloaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if reloaded.API.BaseURL != config.API.BaseURL {
		t.Errorf("expected base URL %s, got %s", config.API.BaseURL, reloaded.API.BaseURL)
	}
	if reloaded.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", reloaded.Log.Level)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{
		API: APIConfig{BaseURL: "https://other.example.com"},
		Log: LogConfig{Level: "error"},
	}

	base.Merge(other)

	if base.API.BaseURL != "https://other.example.com" {
		t.Errorf("expected merged base URL, got %s", base.API.BaseURL)
	}
	if base.Log.Level != "error" {
		t.Errorf("expected merged log level, got %s", base.Log.Level)
	}
	// Zero values in other leave base untouched.
	if base.API.Timeout != 30*time.Second {
		t.Errorf("expected timeout to survive merge, got %s", base.API.Timeout)
	}
	if base.Cart.Path == "" {
		t.Error("expected cart path to survive merge")
	}
}

func TestMergeNil(t *testing.T) {
	base := DefaultConfig()
	base.Merge(nil)
	if base.API.BaseURL != "http://localhost:3000" {
		t.Errorf("merge with nil changed config: %s", base.API.BaseURL)
	}
}

func TestLoaderEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv(EnvAPIBaseURL, "https://env.example.com")
	t.Setenv(EnvLogLevel, "debug")

	cartPath := filepath.Join(t.TempDir(), "cart.json")
	t.Setenv(EnvCartPath, cartPath)

	loader := NewLoader(nil)
	config, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.API.BaseURL != "https://env.example.com" {
		t.Errorf("expected env base URL, got %s", config.API.BaseURL)
	}
	if config.Cart.Path != cartPath {
		t.Errorf("expected env cart path, got %s", config.Cart.Path)
	}
	if config.Log.Level != "debug" {
		t.Errorf("expected env log level, got %s", config.Log.Level)
	}
}

func TestLoaderExplicitFileWinsOverDefaults(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvCartPath, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api:\n  base_url: https://explicit.example.com\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loader := NewLoader(nil)
	config, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.API.BaseURL != "https://explicit.example.com" {
		t.Errorf("expected explicit file base URL, got %s", config.API.BaseURL)
	}
}

func TestLoaderMissingExplicitFile(t *testing.T) {
	loader := NewLoader(nil)
	if _, err := loader.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
