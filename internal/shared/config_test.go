package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:8080" {
			t.Errorf("expected base URL http://localhost:8080, got %s", config.API.BaseURL)
		}

		if config.Callback.Port != 8765 {
			t.Errorf("expected callback port 8765, got %d", config.Callback.Port)
		}

		if config.Database.Path != "socialdash.db" {
			t.Errorf("expected database path socialdash.db, got %s", config.Database.Path)
		}

		if len(config.Platforms.OAuth) != 7 {
			t.Errorf("expected 7 oauth platforms by default, got %d", len(config.Platforms.OAuth))
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://dash.example.com"
timeout_seconds = 10

[callback]
host = "127.0.0.1"
port = 9999

[platforms]
oauth = ["Facebook", "LinkedIn"]

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`

		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://dash.example.com" {
			t.Errorf("expected custom base URL, got %s", config.API.BaseURL)
		}
		if config.Callback.Addr() != "127.0.0.1:9999" {
			t.Errorf("expected callback addr 127.0.0.1:9999, got %s", config.Callback.Addr())
		}
		if !config.Platforms.HasOAuth("LinkedIn") {
			t.Error("expected LinkedIn to have oauth")
		}
		if !config.Platforms.HasOAuth("linkedin") {
			t.Error("expected matching to ignore case")
		}
		if config.Platforms.HasOAuth("TikTok") {
			t.Error("did not expect TikTok to have oauth")
		}
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("SOCIALDASH_API_URL", "https://override.example.com")

		config := DefaultConfig()
		if config.API.BaseURL != "https://override.example.com" {
			t.Errorf("expected env override to win, got %s", config.API.BaseURL)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("[api]\nbase_url = \"\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
