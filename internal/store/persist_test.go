package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rcliao/task-analyzer/internal/model"
)

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	p := NewPersister(b, nil)

	due := "2025-12-05"
	tasks := []model.Task{
		{ID: 1, Title: "Write docs", DueDate: &due, EstimatedHours: 6, Importance: 7, Dependencies: []int{2}},
		{ID: 4, Title: "Fix bug", EstimatedHours: 0.5, Importance: 9, Dependencies: []int{}},
	}
	if err := p.Save(ctx, tasks, 5); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := p.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if snap.NextID != 5 {
		t.Errorf("expected next id 5, got %d", snap.NextID)
	}
	if len(snap.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(snap.Tasks))
	}
	if snap.Tasks[0].Due() != "2025-12-05" || snap.Tasks[1].DueDate != nil {
		t.Errorf("due dates not round-tripped: %+v", snap.Tasks)
	}
	if snap.Tasks[1].Title != "Fix bug" {
		t.Errorf("order not preserved: %+v", snap.Tasks)
	}
}

func TestRestoreEmpty(t *testing.T) {
	snap, err := NewPersister(NewMemoryBackend(), nil).Restore(context.Background())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(snap.Tasks) != 0 || snap.NextID != 1 {
		t.Errorf("expected empty store with next id 1, got %+v", snap)
	}
}

func TestRestoreDerivesCounter(t *testing.T) {
	b := NewMemoryBackend()
	b.Entries[KeyTasks] = `[{"id":3,"title":"a","estimated_hours":1,"importance":5},{"id":8,"title":"b","estimated_hours":1,"importance":5}]`

	snap, err := NewPersister(b, nil).Restore(context.Background())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if snap.NextID != 9 {
		t.Errorf("expected next id 9, got %d", snap.NextID)
	}
	if snap.Tasks[0].Dependencies == nil {
		t.Error("dependencies should be normalized to an empty slice")
	}
	if b.Puts != 0 {
		t.Errorf("clean restore should not write, got %d puts", b.Puts)
	}
}

func TestRestoreStaleCounterNeverCollides(t *testing.T) {
	b := NewMemoryBackend()
	b.Entries[KeyTasks] = `[{"id":5,"title":"a","estimated_hours":1,"importance":5}]`
	b.Entries[KeyNextID] = "2"

	snap, _ := NewPersister(b, nil).Restore(context.Background())
	if snap.NextID != 6 {
		t.Errorf("expected next id 6, got %d", snap.NextID)
	}
}

func TestRestoreHealsDuplicates(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	b.Entries[KeyTasks] = `[
		{"id":1,"title":"X","estimated_hours":1,"importance":5},
		{"id":2,"title":"other","estimated_hours":1,"importance":5},
		{"id":3,"title":"x","estimated_hours":2,"importance":3}
	]`
	b.Entries[KeyNextID] = "4"

	snap, err := NewPersister(b, nil).Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(snap.Tasks) != 2 || snap.Healed != 1 {
		t.Fatalf("expected 2 tasks and 1 healed, got %d/%d", len(snap.Tasks), snap.Healed)
	}
	if snap.Tasks[0].ID != 1 {
		t.Errorf("expected first X to survive, got id %d", snap.Tasks[0].ID)
	}
	if b.Puts != 1 {
		t.Fatalf("expected healed state to be saved once, got %d puts", b.Puts)
	}

	again, _ := NewPersister(b, nil).Restore(ctx)
	if len(again.Tasks) != 2 || again.Healed != 0 || again.NextID != 4 {
		t.Errorf("expected saved healed state, got %+v", again)
	}
}

func TestRestoreCorruptTasks(t *testing.T) {
	b := NewMemoryBackend()
	b.Entries[KeyTasks] = `{"id":1}`

	if _, err := NewPersister(b, nil).Restore(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRestoreUnreadableCounter(t *testing.T) {
	b := NewMemoryBackend()
	b.Entries[KeyTasks] = `[{"id":2,"title":"a","estimated_hours":1,"importance":5}]`
	b.Entries[KeyNextID] = "NaN"

	snap, err := NewPersister(b, nil).Restore(context.Background())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if snap.NextID != 3 {
		t.Errorf("expected next id 3, got %d", snap.NextID)
	}
}

func TestSaveFailure(t *testing.T) {
	b := NewMemoryBackend()
	b.FailPuts = errors.New("quota exceeded")

	err := NewPersister(b, nil).Save(context.Background(), nil, 1)
	if err == nil {
		t.Fatal("expected save error")
	}
}

func TestSaveNilTasksWritesEmptyArray(t *testing.T) {
	b := NewMemoryBackend()
	NewPersister(b, nil).Save(context.Background(), nil, 1)
	if b.Entries[KeyTasks] != "[]" {
		t.Errorf("expected '[]', got %q", b.Entries[KeyTasks])
	}
	if b.Entries[KeyNextID] != "1" {
		t.Errorf("expected '1', got %q", b.Entries[KeyNextID])
	}
}
