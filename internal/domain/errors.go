package domain

import "errors"

var (
	// ErrTaskNotFound indicates no task with the given id exists.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousTaskID indicates an id prefix that matches more than one task.
	ErrAmbiguousTaskID = errors.New("ambiguous task id")

	// ErrTitleRequired indicates an empty or blank task title.
	ErrTitleRequired = errors.New("title is required")

	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrInvalidViewMode  = errors.New("invalid view mode")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidSortKey   = errors.New("invalid sort key")
	ErrInvalidSortOrder = errors.New("invalid sort order")

	// ErrCorruptSnapshot indicates persisted state could not be decoded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrCapabilityUnavailable indicates the environment does not support or
	// has denied an external capability (voice input, notifications).
	ErrCapabilityUnavailable = errors.New("capability unavailable")
)
