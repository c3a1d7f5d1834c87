package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API       APIConfig       `toml:"api"`
	Callback  CallbackConfig  `toml:"callback"`
	Platforms PlatformsConfig `toml:"platforms"`
	Database  DatabaseConfig  `toml:"database"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration, defaulting to 30s.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// CallbackConfig contains settings for the loopback server that catches
// OAuth redirect callbacks.
type CallbackConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the listen address for the callback server.
func (c CallbackConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PlatformsConfig names the platforms with a real backend OAuth integration.
// Platforms not listed take the demo connect path.
type PlatformsConfig struct {
	OAuth []string `toml:"oauth"`
}

// HasOAuth reports whether the named platform has a real integration.
// Matching ignores case so slugs and display names both work.
func (p PlatformsConfig) HasOAuth(platform string) bool {
	for _, name := range p.OAuth {
		if strings.EqualFold(name, platform) {
			return true
		}
	}
	return false
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified
// path, then applies .env and environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}
	if c.Callback.Port < 0 || c.Callback.Port > 65535 {
		return fmt.Errorf("%w: callback.port %d out of range", ErrInvalidConfig, c.Callback.Port)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the
// embedded example config, with environment overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	applyEnvOverrides(&config)
	return &config
}

// applyEnvOverrides loads a .env file when present and overlays
// SOCIALDASH_* environment variables onto the config.
func applyEnvOverrides(config *Config) {
	// Missing .env is not an error
	_ = godotenv.Load()

	if url := os.Getenv("SOCIALDASH_API_URL"); url != "" {
		config.API.BaseURL = url
	}
	if path := os.Getenv("SOCIALDASH_DB"); path != "" {
		config.Database.Path = path
	}
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
