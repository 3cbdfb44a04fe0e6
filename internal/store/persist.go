package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/rcliao/task-analyzer/internal/model"
	"github.com/rcliao/task-analyzer/internal/reconcile"
)

// Snapshot is the persisted state of a task store.
type Snapshot struct {
	Tasks  []model.Task
	NextID int
	// Healed is the number of duplicate-title tasks dropped on restore.
	Healed int
}

// Persister mirrors task store state into a Backend.
type Persister struct {
	backend Backend
	log     *slog.Logger
}

// NewPersister wraps backend. A nil logger discards output.
func NewPersister(backend Backend, log *slog.Logger) *Persister {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Persister{backend: backend, log: log}
}

// Save writes the ordered task list and the next id in one backend write.
func (p *Persister) Save(ctx context.Context, tasks []model.Task, nextID int) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return zerr.Wrap(err, "encode tasks")
	}
	return p.backend.Put(ctx, map[string]string{
		KeyTasks:  string(b),
		KeyNextID: strconv.Itoa(nextID),
	})
}

// Restore reads the saved state. Without a saved counter the next id is
// derived from the highest task id. Duplicate titles (case-insensitive)
// left by an earlier session are dropped, first one wins, and the healed
// state is written back.
func (p *Persister) Restore(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	raw, ok, err := p.backend.Get(ctx, KeyTasks)
	if err != nil {
		return snap, err
	}
	if ok && strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &snap.Tasks); err != nil {
			return snap, zerr.Wrap(err, "decode saved tasks")
		}
	}
	for i := range snap.Tasks {
		if snap.Tasks[i].Dependencies == nil {
			snap.Tasks[i].Dependencies = []int{}
		}
	}

	rawID, ok, err := p.backend.Get(ctx, KeyNextID)
	if err != nil {
		return snap, err
	}
	if ok {
		n, err := strconv.Atoi(strings.TrimSpace(rawID))
		if err != nil {
			p.log.Warn("ignoring unreadable id counter", "value", rawID)
		} else {
			snap.NextID = n
		}
	}
	if floor := maxID(snap.Tasks) + 1; snap.NextID < floor {
		snap.NextID = floor
	}

	snap.Tasks, snap.Healed = reconcile.DedupeFunc(snap.Tasks, func(t model.Task) string {
		return strings.ToLower(t.Title)
	})
	if snap.Healed > 0 {
		p.log.Warn("removed duplicate tasks from saved state", "count", snap.Healed)
		if err := p.Save(ctx, snap.Tasks, snap.NextID); err != nil {
			p.log.Warn("could not write healed state", "error", err)
		}
	}

	return snap, nil
}

func maxID(tasks []model.Task) int {
	m := 0
	for _, t := range tasks {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}
