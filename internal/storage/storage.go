// Package storage holds the single key-value slot the ledger snapshot lives in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tally-dev/tally/internal/config"
)

// ErrNotFound is returned by Slot.Read when the key does not exist.
var ErrNotFound = errors.New("slot not found")

// Slot is one persisted key. Writes replace the whole value (last write wins).
type Slot interface {
	// Read returns the stored bytes, or ErrNotFound.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored bytes.
	Write(ctx context.Context, data []byte) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(ctx context.Context) error
	// Close releases any connection held by the slot.
	Close() error
}

// Open returns the slot selected by cfg. Relative paths are resolved against dir.
func Open(ctx context.Context, dir string, cfg config.StorageConfig) (Slot, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileSlot(resolve(dir, cfg.Dir), cfg.Key), nil
	case config.BackendMemory:
		return NewMemorySlot(), nil
	case config.BackendSQLite:
		slot, err := NewSQLiteSlot(resolve(dir, cfg.SQLitePath), cfg.Key)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case config.BackendRedis:
		slot := NewRedisSlot(RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			Namespace: cfg.Redis.Namespace,
		}, cfg.Key)
		if err := slot.Ping(ctx); err != nil {
			slot.Close()
			return nil, err
		}
		return slot, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
