// Package model defines the core task data types.
package model

// Task is a user-authored unit of work.
type Task struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	DueDate        *string `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int   `json:"dependencies"`
}

// ScoredTask is a Task annotated by the analysis service.
type ScoredTask struct {
	Task
	PriorityScore  float64            `json:"priority_score"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown,omitempty"`
	Explanation    string             `json:"explanation"`
}

// Due returns the due date or "" when none is set.
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Dependencies = append([]int{}, t.Dependencies...)
	return c
}

const (
	// MinImportance and MaxImportance bound Task.Importance.
	MinImportance = 1
	MaxImportance = 10
)
