package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
	"github.com/zembrodt/showtunes-sub000/internal/storage"
)

// Setup writes config.toml from the template if it is missing and initializes secure storage.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("✓ Config written to %s\n", configPath)
	}

	config := r.loadConfig(cmd)
	if err := r.initStorage(config); err != nil {
		return err
	}

	r.writePlain("✓ Storage ready (%s)\n", config.Storage.Driver)
	if config.Spotify.ClientID == "" {
		r.writePlain("\nNext steps:\n")
		r.writePlain("1. Set spotify.client_id in %s (or SHOWTUNES_CLIENT_ID)\n", configPath)
		r.writePlain("2. Register %s/callback as a redirect URI of your Spotify app\n", config.Spotify.Domain)
		r.writePlain("3. Run 'showtunes login'\n")
	}
	return nil
}

func (r *Runner) initStorage(config *shared.Config) error {
	if r.storage != nil {
		return nil
	}

	r.logger.Info("initializing storage", "driver", config.Storage.Driver, "path", config.Storage.Path)
	store, err := storage.Open(config.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store.Close()
}
