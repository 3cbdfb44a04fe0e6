package tasks

import "go.trai.ch/zerr"

var (
	// ErrMissingTitle is returned when a task title is empty after trimming.
	ErrMissingTitle = zerr.New("task title is required")

	// ErrDuplicateTitle is returned when a title already exists, ignoring case.
	ErrDuplicateTitle = zerr.New("a task with this title already exists")

	// ErrInvalidEffort is returned when estimated hours are not greater than 0.
	ErrInvalidEffort = zerr.New("estimated hours must be greater than 0")

	// ErrInvalidImportance is returned when importance is outside 1-10.
	ErrInvalidImportance = zerr.New("importance must be between 1 and 10")

	// ErrMalformedBatch is returned when an import batch is not a JSON array of objects.
	ErrMalformedBatch = zerr.New("import batch must be a JSON array of task objects")
)
