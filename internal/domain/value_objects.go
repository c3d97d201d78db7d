package domain

import (
	"fmt"
	"strings"
)

// Title is a validated, trimmed, non-empty task title.
type Title struct {
	value string
}

// NewTitle creates a new Title, validating the input.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Title{}, ErrTitleRequired
	}
	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// NewPriority validates and creates a Priority.
// Empty input yields the default priority.
func NewPriority(s string) (Priority, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultPriority, nil
	}

	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPriority, s)
	}
}

// NewFilter validates and creates a Filter.
func NewFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterAll, FilterCompleted, FilterPending,
		FilterOverdue, FilterToday, FilterUpcoming:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidFilter, s)
	}
}

// NewViewMode validates and creates a ViewMode.
func NewViewMode(s string) (ViewMode, error) {
	v := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case ViewModeDashboard, ViewModeList, ViewModeCalendar:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidViewMode, s)
	}
}

// NewTheme validates and creates a Theme.
func NewTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTheme, s)
	}
}

// NewSortKey validates and creates a SortKey.
// Matching is case-insensitive; "due_date" and "createdAt" style aliases are accepted.
func NewSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "duedate", "due_date", "due":
		return SortByDueDate, nil
	case "priority":
		return SortByPriority, nil
	case "created", "createdat", "created_at":
		return SortByCreated, nil
	case "title":
		return SortByTitle, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidSortKey, s)
	}
}

// NewSortOrder validates and creates a SortOrder.
func NewSortOrder(s string) (SortOrder, error) {
	o := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidSortOrder, s)
	}
}
