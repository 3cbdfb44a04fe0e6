// Package store persists the task list and id counter in durable key-value
// storage.
package store

import (
	"context"

	"go.trai.ch/zerr"
)

// Fixed, versionless storage keys.
const (
	KeyTasks  = "tasks"
	KeyNextID = "next_id"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = zerr.New("unknown storage backend")

// Backend is a durable string key-value store.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put writes all entries in a single atomic write.
	Put(ctx context.Context, entries map[string]string) error

	// Close releases the backend.
	Close() error
}

// Open opens the named backend at path.
func Open(backend, path string) (Backend, error) {
	switch backend {
	case "", BackendSQLite:
		return NewSQLiteBackend(path)
	case BackendJSON:
		return NewJSONFileBackend(path)
	default:
		return nil, zerr.With(ErrUnknownBackend, "backend", backend)
	}
}
