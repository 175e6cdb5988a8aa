// Package storage provides the device-scoped key-value store games are
// persisted in, and the game repository built on top of it.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no record.
var ErrNotFound = errors.New("storage: record not found")

// ErrCorrupt is returned when a record exists but cannot be decoded.
var ErrCorrupt = errors.New("storage: corrupt record")

// Storage is a durable key-value store for one device.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Backend hands out one Storage per device.
type Backend interface {
	Scope(device string) Storage
	Close() error
}
