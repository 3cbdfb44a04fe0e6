package reconcile

import (
	"sort"
	"strconv"

	"github.com/rcliao/task-analyzer/internal/model"
)

// Factor is one entry of a score breakdown.
type Factor struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Result is a reconciled scored task prepared for display.
type Result struct {
	Rank         int      `json:"rank"`
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Score        float64  `json:"priority_score"`
	ScoreText    string   `json:"score_text"`
	Level        Level    `json:"level"`
	DueDate      string   `json:"due_date,omitempty"`
	Hours        float64  `json:"estimated_hours"`
	Importance   int      `json:"importance"`
	Dependencies []int    `json:"dependencies"`
	Factors      []Factor `json:"score_breakdown"`
	Explanation  string   `json:"explanation"`
}

// Report is the view model for an analysis run.
type Report struct {
	Top     []Result `json:"top"`
	Results []Result `json:"results"`
	Dropped int      `json:"dropped,omitempty"`
}

// BuildReport reconciles scored and builds its view model. topN <= 0 means
// DefaultTopN.
func BuildReport(scored []model.ScoredTask, topN int) Report {
	if topN <= 0 {
		topN = DefaultTopN
	}
	kept := Reconcile(scored)

	r := Report{
		Results: make([]Result, 0, len(kept)),
		Dropped: len(scored) - len(kept),
	}
	for i, t := range kept {
		r.Results = append(r.Results, newResult(i+1, t))
	}
	r.Top = r.Results[:len(TopSuggestions(kept, topN))]
	return r
}

func newResult(rank int, t model.ScoredTask) Result {
	deps := t.Dependencies
	if deps == nil {
		deps = []int{}
	}
	return Result{
		Rank:         rank,
		ID:           t.ID,
		Title:        t.Title,
		Score:        t.PriorityScore,
		ScoreText:    FormatScore(t.PriorityScore),
		Level:        Classify(t.PriorityScore),
		DueDate:      t.Due(),
		Hours:        t.EstimatedHours,
		Importance:   t.Importance,
		Dependencies: deps,
		Factors:      factors(t.ScoreBreakdown),
		Explanation:  t.Explanation,
	}
}

// factors flattens a breakdown map in name order so output is stable.
func factors(m map[string]float64) []Factor {
	out := make([]Factor, 0, len(m))
	for name, score := range m {
		out = append(out, Factor{Name: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FormatScore renders a score with three decimals.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}
