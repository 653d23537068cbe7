package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Path != "./showtunes.db" {
			t.Errorf("expected storage path ./showtunes.db, got %s", config.Storage.Path)
		}

		if config.Polling.PlaybackInterval() != time.Second {
			t.Errorf("expected playback interval 1s, got %v", config.Polling.PlaybackInterval())
		}

		if config.Polling.IdleInterval() != 5*time.Second {
			t.Errorf("expected idle interval 5s, got %v", config.Polling.IdleInterval())
		}

		if config.Spotify.ClientID != "" {
			t.Errorf("expected empty spotify client_id, got %s", config.Spotify.ClientID)
		}

		if len(config.Spotify.Scopes) == 0 {
			t.Error("expected default scopes")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.Path != DefaultConfig().Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `log_level = "debug"

[spotify]
client_id = "test_client_id"
token_url = "https://broker.example.com/token"
expiry_threshold_ms = 60000
domain = "http://localhost:4200"

[polling]
idle_polling_ms = 3000

[storage]
driver = "bolt"
path = "/custom/showtunes.bolt"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Driver != "bolt" {
			t.Errorf("expected storage driver bolt, got %s", config.Storage.Driver)
		}
		if config.Spotify.TokenURL != "https://broker.example.com/token" {
			t.Errorf("unexpected token url %s", config.Spotify.TokenURL)
		}
		if config.Spotify.ExpiryThreshold() != time.Minute {
			t.Errorf("expected 1m expiry threshold, got %v", config.Spotify.ExpiryThreshold())
		}
		if config.Polling.IdleInterval() != 3*time.Second {
			t.Errorf("expected idle interval 3s, got %v", config.Polling.IdleInterval())
		}

		t.Run("Fills Defaults", func(t *testing.T) {
			if config.Polling.PlaybackMs != 1000 {
				t.Errorf("expected default playback polling 1000, got %d", config.Polling.PlaybackMs)
			}
			if config.Spotify.APIURL != "https://api.spotify.com/v1" {
				t.Errorf("expected default api url, got %s", config.Spotify.APIURL)
			}
			if config.API.RateLimit != 10 {
				t.Errorf("expected default rate limit 10, got %v", config.API.RateLimit)
			}
		})
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		t.Setenv("SHOWTUNES_CLIENT_SECRET", "from-env")
		t.Setenv("SHOWTUNES_PLAYBACK_POLLING_MS", "250")

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Spotify.ClientSecret != "from-env" {
			t.Errorf("expected client secret from env, got %q", config.Spotify.ClientSecret)
		}
		if config.Polling.PlaybackMs != 250 {
			t.Errorf("expected playback polling 250, got %d", config.Polling.PlaybackMs)
		}
	})

	t.Run("LoadDefaultConfig", func(t *testing.T) {
		t.Run("Applies Environment", func(t *testing.T) {
			t.Setenv("SHOWTUNES_CLIENT_ID", "from-env")
			t.Setenv("SHOWTUNES_IDLE_POLLING_MS", "7000")

			config, err := LoadDefaultConfig()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Spotify.ClientID != "from-env" {
				t.Errorf("expected client id from env, got %q", config.Spotify.ClientID)
			}
			if config.Polling.IdleInterval() != 7*time.Second {
				t.Errorf("expected idle interval 7s, got %v", config.Polling.IdleInterval())
			}
			if config.Spotify.APIURL != defaultAPIURL {
				t.Errorf("expected default api url, got %s", config.Spotify.APIURL)
			}
		})

		t.Run("Invalid Environment", func(t *testing.T) {
			t.Setenv("SHOWTUNES_IDLE_POLLING_MS", "soon")

			if _, err := LoadDefaultConfig(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
