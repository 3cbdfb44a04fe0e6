// Package tasks holds the authoritative task list for a session: id
// allocation, validation, title uniqueness and bulk import.
package tasks

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/rcliao/task-analyzer/internal/model"
	"github.com/rcliao/task-analyzer/internal/reconcile"
	"github.com/rcliao/task-analyzer/internal/store"
)

// Persistence is the durable mirror of a Store.
type Persistence interface {
	Save(ctx context.Context, tasks []model.Task, nextID int) error
	Restore(ctx context.Context) (store.Snapshot, error)
}

// Candidate is user input for a new task. Dependencies is a comma-separated
// list of task ids.
type Candidate struct {
	Title          string
	DueDate        string
	EstimatedHours float64
	Importance     int
	Dependencies   string
}

// Store is the ordered task list of one session. Every successful mutation
// is written through to Persistence before it returns. A Store is not safe
// for concurrent use.
type Store struct {
	tasks   []model.Task
	ids     *Allocator
	p       Persistence
	log     *slog.Logger
	saveErr error
}

// Open restores a Store from p. A nil logger discards output.
func Open(ctx context.Context, p Persistence, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	snap, err := p.Restore(ctx)
	if err != nil {
		return nil, err
	}

	s := &Store{
		tasks: snap.Tasks,
		ids:   NewAllocator(snap.NextID),
		p:     p,
		log:   log,
	}
	if m := maxID(s.tasks); s.ids.Peek() <= m {
		s.ids.Recover(m)
	}
	log.Debug("store opened", "tasks", len(s.tasks), "next_id", s.ids.Peek())
	return s, nil
}

// Add validates c and appends it as a new task.
func (s *Store) Add(ctx context.Context, c Candidate) (model.Task, error) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return model.Task{}, ErrMissingTitle
	}
	if s.hasTitle(title) {
		return model.Task{}, ErrDuplicateTitle
	}
	if !(c.EstimatedHours > 0) || math.IsInf(c.EstimatedHours, 1) {
		return model.Task{}, ErrInvalidEffort
	}
	if c.Importance < model.MinImportance || c.Importance > model.MaxImportance {
		return model.Task{}, ErrInvalidImportance
	}

	t := model.Task{
		ID:             s.ids.Next(),
		Title:          title,
		DueDate:        optional(c.DueDate),
		EstimatedHours: c.EstimatedHours,
		Importance:     c.Importance,
		Dependencies:   ParseDependencies(c.Dependencies),
	}
	s.tasks = append(s.tasks, t)
	s.persist(ctx)

	s.log.Info("task added", "id", t.ID, "title", t.Title)
	return t.Clone(), nil
}

// Remove deletes the task with id. It reports whether a task was removed;
// an unknown id is not an error.
func (s *Store) Remove(ctx context.Context, id int) bool {
	removed := false
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.persist(ctx)

	if removed {
		s.log.Info("task removed", "id", id)
	}
	return removed
}

// Clear removes every task and restarts ids at 1.
func (s *Store) Clear(ctx context.Context) {
	s.tasks = nil
	s.ids.Reset()
	s.persist(ctx)
	s.log.Info("tasks cleared")
}

// Dedupe drops tasks whose title repeats an earlier one, ignoring case.
// It returns how many were dropped.
func (s *Store) Dedupe(ctx context.Context) int {
	kept, dropped := reconcile.DedupeFunc(s.tasks, titleKey)
	if dropped == 0 {
		return 0
	}
	s.tasks = kept
	s.persist(ctx)
	s.log.Info("duplicate tasks removed", "count", dropped)
	return dropped
}

// List returns a copy of the tasks in insertion order.
func (s *Store) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// NextID returns the id the next added task will get.
func (s *Store) NextID() int { return s.ids.Peek() }

// SaveErr returns the error from the most recent mutation's write, or nil if
// it succeeded or the mutation wrote nothing. A failed write leaves the
// in-memory list authoritative.
func (s *Store) SaveErr() error { return s.saveErr }

func (s *Store) persist(ctx context.Context) {
	s.saveErr = s.p.Save(ctx, s.tasks, s.ids.Peek())
	if s.saveErr != nil {
		s.log.Warn("could not save tasks", "error", s.saveErr)
	}
}

func (s *Store) hasTitle(title string) bool {
	key := strings.ToLower(title)
	for _, t := range s.tasks {
		if titleKey(t) == key {
			return true
		}
	}
	return false
}

func titleKey(t model.Task) string {
	return strings.ToLower(t.Title)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
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
