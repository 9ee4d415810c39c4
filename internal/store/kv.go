// Package store persists studyr state as JSON documents in a key-value
// backend (SQLite by default, Badger optionally).
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sadopc/studyr/internal/config"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// KV is a flat string-keyed document store. Set is last-write-wins.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

var (
	_ KV = (*Store)(nil)
	_ KV = (*Badger)(nil)
)

// Open returns the backend selected by cfg.Type.
func Open(cfg config.Storage, logger *slog.Logger) (KV, error) {
	switch cfg.Type {
	case "", "sqlite":
		if cfg.Path == "" {
			return nil, errors.New("sqlite storage needs a path")
		}
		return New(cfg.Path)
	case "badger":
		return OpenBadger(BadgerConfig{Path: cfg.Path, Logger: logger})
	case "memory":
		return NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
