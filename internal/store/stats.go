package store

import (
	"os"
)

// Stats holds storage statistics.
type Stats struct {
	Backend   string `json:"backend"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Tasks     int    `json:"tasks"`
	NextID    int    `json:"next_id"`
}

// CollectStats describes the store at path holding tasks with the given
// next id.
func CollectStats(backend, path string, tasks, nextID int) *Stats {
	st := &Stats{Backend: backend, Path: path, Tasks: tasks, NextID: nextID}
	if info, err := os.Stat(path); err == nil {
		st.SizeBytes = info.Size()
	}
	return st
}
