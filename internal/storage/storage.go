package storage

import (
	"fmt"

	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

const (
	KeyState          = "STATE"
	KeyCodeVerifier   = "CODE_VERIFIER"
	KeyAuthToken      = "AUTH_TOKEN"
	KeyPreviousVolume = "PREVIOUS_VOLUME"
)

// SecureStorage stores string values by key.
//
// Get returns "" and a nil error for a key that was never set.
type SecureStorage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open creates the backend named by cfg.Driver and wraps it with [Sealed] when cfg.Secret is set.
func Open(cfg shared.StorageConfig) (SecureStorage, error) {
	var (
		store SecureStorage
		err   error
	)

	switch cfg.Driver {
	case "", "sqlite":
		store, err = OpenSQLite(cfg.Path, cfg.MaxOpenConns, cfg.MaxIdleConns)
	case "bolt":
		store, err = OpenBolt(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedStorageType, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Secret != "" {
		return Sealed(store, cfg.Secret)
	}
	return store, nil
}
