package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// JSONFileBackend implements Backend as one JSON object on disk. Every Put
// rewrites the whole file through a temp file and rename.
type JSONFileBackend struct {
	filename string
	data     map[string]string
}

// NewJSONFileBackend creates or opens a JSON-backed store.
func NewJSONFileBackend(filename string) (*JSONFileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, zerr.Wrap(err, "create store dir")
	}

	b := &JSONFileBackend{filename: filename, data: map[string]string{}}
	raw, err := os.ReadFile(filename)
	switch {
	case os.IsNotExist(err):
		return b, nil
	case err != nil:
		return nil, zerr.Wrap(err, "read store file")
	}
	if err := json.Unmarshal(raw, &b.data); err != nil {
		return nil, zerr.Wrap(err, "parse store file")
	}
	if b.data == nil {
		b.data = map[string]string{}
	}
	return b, nil
}

func (b *JSONFileBackend) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *JSONFileBackend) Put(_ context.Context, entries map[string]string) error {
	next := make(map[string]string, len(b.data)+len(entries))
	for k, v := range b.data {
		next[k] = v
	}
	for k, v := range entries {
		next[k] = v
	}

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "encode store file")
	}
	tmp := b.filename + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return zerr.Wrap(err, "write store file")
	}
	if err := os.Rename(tmp, b.filename); err != nil {
		return zerr.Wrap(err, "replace store file")
	}

	b.data = next
	return nil
}

func (b *JSONFileBackend) Close() error {
	return nil
}
