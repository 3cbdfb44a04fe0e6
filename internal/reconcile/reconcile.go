// Package reconcile deduplicates and classifies scored task lists returned
// by the analysis service.
package reconcile

import (
	"github.com/rcliao/task-analyzer/internal/model"
)

// DefaultTopN is the number of top suggestions surfaced to the user.
const DefaultTopN = 3

// DedupeFunc keeps the first item for each key and drops the rest.
// Order of the surviving items is preserved. It returns the survivors and
// how many items were dropped.
func DedupeFunc[T any](items []T, key func(T) string) ([]T, int) {
	out := make([]T, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		k := key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out, len(items) - len(out)
}

// Reconcile drops every scored task whose exact title was already seen.
// Titles are compared case-sensitively; the service payload is opaque data.
func Reconcile(scored []model.ScoredTask) []model.ScoredTask {
	out, _ := DedupeFunc(scored, func(t model.ScoredTask) string { return t.Title })
	return out
}

// TopSuggestions returns the first n tasks in their existing order.
func TopSuggestions(scored []model.ScoredTask, n int) []model.ScoredTask {
	if n < 0 {
		n = 0
	}
	if n > len(scored) {
		n = len(scored)
	}
	return scored[:n]
}
