package store

import (
	"context"
	"fmt"
)

// Slots is a persistent key-value store. Each key holds one opaque value
// that is always read and written whole.
type Slots interface {
	// Load returns the value stored under key. ok is false when the key is absent.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Lifecycle
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the slot backend with the given name.
func Open(backend, dbPath string) (Slots, error) {
	switch backend {
	case BackendSQLite, "":
		slots, err := NewSQLiteSlots(dbPath)
		if err != nil {
			return nil, err
		}
		return slots, nil
	case BackendMemory:
		return NewMemorySlots(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
