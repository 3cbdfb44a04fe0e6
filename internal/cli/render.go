package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rcliao/task-analyzer/internal/analysis"
	"github.com/rcliao/task-analyzer/internal/model"
	"github.com/rcliao/task-analyzer/internal/reconcile"
)

func renderTasks(w io.Writer, list []model.Task) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet. Add one with `add` or load a batch with `import`.")
		return err
	}
	for _, t := range list {
		meta := []string{}
		if d := t.Due(); d != "" {
			meta = append(meta, "due "+d)
		}
		meta = append(meta,
			formatHours(t.EstimatedHours),
			fmt.Sprintf("importance %d/10", t.Importance),
		)
		if len(t.Dependencies) > 0 {
			meta = append(meta, "depends on "+joinInts(t.Dependencies))
		}
		if _, err := fmt.Fprintf(w, "#%-4d %s\n      %s\n", t.ID, t.Title, strings.Join(meta, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func renderReport(w io.Writer, res *analysis.Result, r reconcile.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Top suggestions (%s)\n", res.Strategy)
	for _, t := range r.Top {
		fmt.Fprintf(&b, "  #%d %s  score %s [%s]\n", t.Rank, t.Title, t.ScoreText, t.Level)
		fmt.Fprintf(&b, "     due %s | effort %s | importance %d/10\n", orNone(t.DueDate, "not specified"), formatHours(t.Hours), t.Importance)
		if t.Explanation != "" {
			fmt.Fprintf(&b, "     %s\n", t.Explanation)
		}
	}

	b.WriteString("\nAll results\n")
	for _, t := range r.Results {
		fmt.Fprintf(&b, "  %d. %s  %s [%s]\n", t.Rank, t.Title, t.ScoreText, t.Level)
		deps := "none"
		if len(t.Dependencies) > 0 {
			deps = joinInts(t.Dependencies)
		}
		fmt.Fprintf(&b, "     due %s | effort %s | importance %d/10 | dependencies %s\n",
			orNone(t.DueDate, "not specified"), formatHours(t.Hours), t.Importance, deps)
		if len(t.Factors) > 0 {
			parts := make([]string, len(t.Factors))
			for i, f := range t.Factors {
				parts[i] = f.Name + "=" + reconcile.FormatScore(f.Score)
			}
			fmt.Fprintf(&b, "     breakdown: %s\n", strings.Join(parts, " "))
		}
		if t.Explanation != "" {
			fmt.Fprintf(&b, "     why: %s\n", t.Explanation)
		}
	}

	for _, warn := range res.Warnings {
		fmt.Fprintf(&b, "\nwarning: %s", warn)
	}
	if len(res.Warnings) > 0 {
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

func joinInts(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ", ")
}

func orNone(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
