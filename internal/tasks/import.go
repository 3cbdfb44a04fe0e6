package tasks

import (
	"context"
	"encoding/json"
	"strings"

	"go.trai.ch/zerr"

	"github.com/rcliao/task-analyzer/internal/model"
)

// Defaults applied to bulk-imported descriptors.
const (
	DefaultTitle      = "Untitled Task"
	DefaultHours      = 1.0
	DefaultImportance = 5
)

var errNullDescriptor = zerr.New("descriptor is null")

// Descriptor is one entry of an import batch. Any field that is missing,
// null, zero or of the wrong JSON type decodes as unset.
type Descriptor struct {
	Title          string
	DueDate        string
	EstimatedHours float64
	Importance     int
	Dependencies   []int
}

// UnmarshalJSON decodes an object field by field, ignoring bad values.
// Anything other than a JSON object is an error.
func (d *Descriptor) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errNullDescriptor
	}

	*d = Descriptor{}
	decodeLoose(fields["title"], &d.Title)
	decodeLoose(fields["due_date"], &d.DueDate)
	decodeLoose(fields["estimated_hours"], &d.EstimatedHours)
	d.Importance = lenientInt(fields["importance"])

	var deps []json.RawMessage
	if json.Unmarshal(fields["dependencies"], &deps) == nil {
		for _, raw := range deps {
			if id := lenientInt(raw); id > 0 {
				d.Dependencies = append(d.Dependencies, id)
			}
		}
	}
	return nil
}

// decodeLoose decodes raw into dst and leaves dst at its zero value when raw
// is missing or of the wrong type.
func decodeLoose(raw json.RawMessage, dst any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// lenientInt accepts JSON numbers with no fractional part. Anything else
// is 0.
func lenientInt(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || f != float64(int(f)) {
		return 0
	}
	return int(f)
}

// task applies the import defaults.
func (d Descriptor) task(id int) model.Task {
	t := model.Task{
		ID:             id,
		Title:          d.effectiveTitle(),
		DueDate:        optional(d.DueDate),
		EstimatedHours: d.EstimatedHours,
		Importance:     d.Importance,
		Dependencies:   normalizeDependencies(d.Dependencies),
	}
	if !(t.EstimatedHours > 0) {
		t.EstimatedHours = DefaultHours
	}
	if t.Importance < model.MinImportance || t.Importance > model.MaxImportance {
		t.Importance = DefaultImportance
	}
	return t
}

func (d Descriptor) effectiveTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// ImportReport summarizes an ImportBatch call.
type ImportReport struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// Total is the number of descriptors processed.
func (r ImportReport) Total() int { return r.Imported + len(r.Skipped) }

// ImportBatch adds every descriptor in data, a JSON array of objects, whose
// title is not already taken (ignoring case, including titles added earlier
// in the same batch). A structurally malformed batch adds nothing.
func (s *Store) ImportBatch(ctx context.Context, data []byte) (ImportReport, error) {
	report := ImportReport{Skipped: []string{}}

	var batch []Descriptor
	if err := json.Unmarshal(data, &batch); err != nil || batch == nil {
		s.log.Debug("rejected import batch", "error", err)
		return report, ErrMalformedBatch
	}

	for _, d := range batch {
		title := d.effectiveTitle()
		if s.hasTitle(title) {
			report.Skipped = append(report.Skipped, title)
			continue
		}
		s.tasks = append(s.tasks, d.task(s.ids.Next()))
		report.Imported++
	}

	if report.Imported > 0 {
		s.persist(ctx)
	} else {
		s.saveErr = nil
	}
	s.log.Info("import finished", "imported", report.Imported, "skipped", len(report.Skipped))
	return report, nil
}
