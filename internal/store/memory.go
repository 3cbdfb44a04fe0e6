package store

import (
	"context"
	"maps"
)

// MemoryBackend keeps entries in process memory. FailPuts makes every Put
// return the given error, which is how tests simulate a full disk.
type MemoryBackend struct {
	Entries  map[string]string
	Puts     int
	FailPuts error
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{Entries: map[string]string{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.Entries[key]
	return v, ok, nil
}

func (m *MemoryBackend) Put(_ context.Context, entries map[string]string) error {
	if m.FailPuts != nil {
		return m.FailPuts
	}
	maps.Copy(m.Entries, entries)
	m.Puts++
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
