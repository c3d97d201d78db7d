package domain

// Priority represents the urgency of a task.
// Value object - immutable string enum.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the ordering weight used when sorting by priority.
// Unknown values weigh zero so they sort below low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Filter names a status predicate over the task collection.
// Value object - immutable string enum.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
	FilterOverdue   Filter = "overdue"
	FilterToday     Filter = "today"
	FilterUpcoming  Filter = "upcoming"
)

// ViewMode is the active top-level presentation perspective.
type ViewMode string

const (
	ViewModeDashboard ViewMode = "dashboard"
	ViewModeList      ViewMode = "list"
	ViewModeCalendar  ViewMode = "calendar"
)

// Theme is the display mode applied to the presentation surface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SortKey selects the field a task list is ordered by.
type SortKey string

const (
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
	SortByCreated  SortKey = "created"
	SortByTitle    SortKey = "title"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Defaults applied to new tasks and fresh store state.
const (
	DefaultCategory  = "general"
	DefaultPriority  = PriorityMedium
	DefaultTheme     = ThemeLight
	DefaultViewMode  = ViewModeDashboard
	DefaultFilter    = FilterAll
	DefaultSortKey   = SortByDueDate
	DefaultSortOrder = SortAsc

	// DescriptionMaxLength is enforced by editing surfaces, not by the store.
	DescriptionMaxLength = 500
)

// Priorities lists every valid Priority, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Filters lists every valid Filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterPending, FilterCompleted, FilterOverdue, FilterToday, FilterUpcoming}
}
