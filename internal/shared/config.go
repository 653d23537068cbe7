package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Any field tagged with env can be overridden by the matching SHOWTUNES_* variable, which is also read from a .env file when present.
type Config struct {
	Spotify  SpotifyConfig `toml:"spotify"`
	Polling  PollingConfig `toml:"polling"`
	Storage  StorageConfig `toml:"storage"`
	API      APIConfig     `toml:"api"`
	LogLevel string        `toml:"log_level" env:"SHOWTUNES_LOG_LEVEL"`
}

// SpotifyConfig contains Spotify API credentials and endpoints.
type SpotifyConfig struct {
	ClientID          string   `toml:"client_id" env:"SHOWTUNES_CLIENT_ID"`
	ClientSecret      string   `toml:"client_secret" env:"SHOWTUNES_CLIENT_SECRET"`
	TokenURL          string   `toml:"token_url" env:"SHOWTUNES_TOKEN_URL"`
	Scopes            []string `toml:"scopes" env:"SHOWTUNES_SCOPES" envSeparator:" "`
	ForcePKCE         bool     `toml:"force_pkce" env:"SHOWTUNES_FORCE_PKCE"`
	ShowDialog        bool     `toml:"show_dialog" env:"SHOWTUNES_SHOW_DIALOG"`
	ExpiryThresholdMs int      `toml:"expiry_threshold_ms" env:"SHOWTUNES_EXPIRY_THRESHOLD_MS"`
	Domain            string   `toml:"domain" env:"SHOWTUNES_DOMAIN"`
	APIURL            string   `toml:"api_url" env:"SHOWTUNES_API_URL"`
	AccountsURL       string   `toml:"accounts_url" env:"SHOWTUNES_ACCOUNTS_URL"`
}

// PollingConfig contains the two playback poll intervals in milliseconds.
type PollingConfig struct {
	IdleMs     int `toml:"idle_polling_ms" env:"SHOWTUNES_IDLE_POLLING_MS"`
	PlaybackMs int `toml:"playback_polling_ms" env:"SHOWTUNES_PLAYBACK_POLLING_MS"`
}

// StorageConfig contains secure storage settings.
type StorageConfig struct {
	Driver       string `toml:"driver" env:"SHOWTUNES_STORAGE_DRIVER"`
	Path         string `toml:"path" env:"SHOWTUNES_STORAGE_PATH"`
	Secret       string `toml:"secret" env:"SHOWTUNES_STORAGE_SECRET"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// APIConfig contains outbound API client settings.
type APIConfig struct {
	RateLimit float64 `toml:"rate_limit" env:"SHOWTUNES_API_RATE_LIMIT"`
}

const (
	defaultIdlePolling     = 5000
	defaultPlaybackPolling = 1000
	defaultAPIURL          = "https://api.spotify.com/v1"
	defaultAccountsURL     = "https://accounts.spotify.com"
	defaultRateLimit       = 10
)

// LoadConfig reads and parses a TOML configuration file from the specified path, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyDefaults()
	return &config
}

// LoadDefaultConfig returns [DefaultConfig] with environment overrides applied, for running without a config file.
func LoadDefaultConfig() (*Config, error) {
	config := DefaultConfig()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return config, nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	_ = godotenv.Load()

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("%w: parsing environment: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Polling.IdleMs <= 0 {
		c.Polling.IdleMs = defaultIdlePolling
	}
	if c.Polling.PlaybackMs <= 0 {
		c.Polling.PlaybackMs = defaultPlaybackPolling
	}
	if c.Spotify.APIURL == "" {
		c.Spotify.APIURL = defaultAPIURL
	}
	if c.Spotify.AccountsURL == "" {
		c.Spotify.AccountsURL = defaultAccountsURL
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.API.RateLimit <= 0 {
		c.API.RateLimit = defaultRateLimit
	}
}

// IdleInterval returns the poll interval used while nothing is playing.
func (p PollingConfig) IdleInterval() time.Duration {
	return time.Duration(p.IdleMs) * time.Millisecond
}

// PlaybackInterval returns the poll interval used while a track is playing.
func (p PollingConfig) PlaybackInterval() time.Duration {
	return time.Duration(p.PlaybackMs) * time.Millisecond
}

// ExpiryThreshold returns how long before expiry a token is refreshed proactively.
func (s SpotifyConfig) ExpiryThreshold() time.Duration {
	return time.Duration(s.ExpiryThresholdMs) * time.Millisecond
}
