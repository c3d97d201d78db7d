// Package query derives filtered, searched, sorted and aggregated views over a
// task collection. Every function is pure: inputs are never modified, and the
// same collection and clock reading always produce the same result, so readers
// may call them concurrently without coordination.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/rezkam/taskmind/internal/domain"
)

// Query describes a list view: search term, status filter and ordering.
// Zero values mean no search, all tasks, due date ascending.
type Query struct {
	Search    string
	Filter    domain.Filter
	SortKey   domain.SortKey
	SortOrder domain.SortOrder
}

// Apply runs search, then status filter, then sort.
func Apply(tasks []domain.Task, q Query, now time.Time) []domain.Task {
	filter := q.Filter
	if filter == "" {
		filter = domain.DefaultFilter
	}
	key := q.SortKey
	if key == "" {
		key = domain.DefaultSortKey
	}
	order := q.SortOrder
	if order == "" {
		order = domain.DefaultSortOrder
	}

	result := Search(tasks, q.Search)
	result = FilterByStatus(result, filter, now)
	return Sort(result, key, order)
}

// FilterByStatus returns the tasks matching filter, preserving input order.
// Unknown filters match nothing.
func FilterByStatus(tasks []domain.Task, filter domain.Filter, now time.Time) []domain.Task {
	var keep func(domain.Task) bool

	switch filter {
	case domain.FilterAll:
		keep = func(domain.Task) bool { return true }
	case domain.FilterCompleted:
		keep = func(t domain.Task) bool { return t.Completed }
	case domain.FilterPending:
		keep = domain.Task.IsPending
	case domain.FilterOverdue:
		keep = func(t domain.Task) bool { return t.IsOverdue(now) }
	case domain.FilterToday:
		keep = func(t domain.Task) bool { return t.IsDueToday(now) }
	case domain.FilterUpcoming:
		keep = func(t domain.Task) bool { return t.IsUpcoming(now) }
	default:
		return []domain.Task{}
	}

	return where(tasks, keep)
}

// Search returns tasks whose title, description, category or any tag contains
// term, ignoring case. A blank term matches every task.
func Search(tasks []domain.Task, term string) []domain.Task {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(tasks)
	}

	return where(tasks, func(t domain.Task) bool {
		if containsFold(t.Title, term) || containsFold(t.Category, term) {
			return true
		}
		if t.Description != nil && containsFold(*t.Description, term) {
			return true
		}
		return slices.ContainsFunc(t.Tags, func(tag string) bool {
			return containsFold(tag, term)
		})
	})
}

// Sort returns a stably sorted copy of tasks. Tasks without a due date sort as
// if due infinitely far in the future.
func Sort(tasks []domain.Task, key domain.SortKey, order domain.SortOrder) []domain.Task {
	sorted := slices.Clone(tasks)

	var compare func(a, b domain.Task) int
	switch key {
	case domain.SortByDueDate:
		compare = compareDueDate
	case domain.SortByPriority:
		compare = func(a, b domain.Task) int {
			return cmp.Compare(a.Priority.Weight(), b.Priority.Weight())
		}
	case domain.SortByCreated:
		compare = func(a, b domain.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case domain.SortByTitle:
		compare = func(a, b domain.Task) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	default:
		return sorted
	}

	if order == domain.SortDesc {
		asc := compare
		compare = func(a, b domain.Task) int { return asc(b, a) }
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

// Stats counts tasks using the same predicates as FilterByStatus.
func Stats(tasks []domain.Task, now time.Time) domain.TaskStats {
	var s domain.TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.IsOverdue(now) {
			s.Overdue++
		}
		if t.IsDueToday(now) {
			s.Today++
		}
		if t.IsUpcoming(now) {
			s.Upcoming++
		}
	}
	return s
}

// TasksOnDate returns every task, completed or not, due on day's calendar date.
func TasksOnDate(tasks []domain.Task, day time.Time) []domain.Task {
	return where(tasks, func(t domain.Task) bool { return t.DueOn(day) })
}

func compareDueDate(a, b domain.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	default:
		return a.DueDate.Compare(*b.DueDate)
	}
}

func where(tasks []domain.Task, keep func(domain.Task) bool) []domain.Task {
	result := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// containsFold expects needle already lower-cased.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
