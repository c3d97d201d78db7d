// Package advisor produces short human-readable guidance from a task
// collection. It is purely advisory and never mutates tasks.
package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/rezkam/taskmind/internal/domain"
	"github.com/rezkam/taskmind/internal/query"
)

// Suggestion is one scheduling recommendation with the time and reason behind it.
type Suggestion struct {
	Message       string
	SuggestedTime time.Time
	Reason        string
}

// SuggestOptimalScheduling recommends what to work on next. Overdue work
// wins over high-priority work, which wins over work due today.
func SuggestOptimalScheduling(tasks []domain.Task, now time.Time) Suggestion {
	var overdue, high, today int
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if t.IsOverdue(now) {
			overdue++
		}
		if t.Priority == domain.PriorityHigh {
			high++
		}
		if t.DueOn(now) {
			today++
		}
	}

	switch {
	case overdue > 0:
		return Suggestion{
			Message:       fmt.Sprintf("You have %d overdue task(s). Consider prioritizing these first.", overdue),
			SuggestedTime: now,
			Reason:        "Overdue tasks should be completed immediately",
		}
	case high > 0:
		return Suggestion{
			Message:       fmt.Sprintf("Focus on %d high priority task(s) first.", high),
			SuggestedTime: now,
			Reason:        "High priority tasks require immediate attention",
		}
	case today > 0:
		return Suggestion{
			Message:       fmt.Sprintf("You have %d task(s) due today. Plan your day accordingly.", today),
			SuggestedTime: now,
			Reason:        "Tasks due today should be completed soon",
		}
	default:
		return Suggestion{
			Message:       "Great job! You're on top of your tasks. Consider planning ahead for upcoming deadlines.",
			SuggestedTime: now,
			Reason:        "Maintain current productivity",
		}
	}
}

// GenerateSmartReminder describes how soon task is due, in whole hours
// rounded down. Only a due date at or before now is overdue; anything later
// but under an hour away is "within the next hour".
func GenerateSmartReminder(task domain.Task, now time.Time) string {
	if task.DueDate == nil {
		return "No due date set for this task."
	}

	remaining := task.DueDate.Sub(now)
	hours := floorHours(remaining)
	switch {
	case remaining <= 0:
		return "This task is overdue!"
	case hours <= 1:
		return "This task is due within the next hour."
	case hours <= 24:
		return fmt.Sprintf("This task is due in %d hours.", hours)
	default:
		return fmt.Sprintf("This task is due in %d day(s).", hours/24)
	}
}

// GenerateDailySummary renders the day's counts, completion rate and a
// closing remark.
func GenerateDailySummary(tasks []domain.Task, now time.Time) string {
	stats := query.Stats(tasks, now)
	rate := stats.CompletionRate()

	var b strings.Builder
	b.WriteString("Daily Summary:\n")
	fmt.Fprintf(&b, "• Total tasks: %d\n", stats.Total)
	fmt.Fprintf(&b, "• Completed: %d\n", stats.Completed)
	fmt.Fprintf(&b, "• Pending: %d\n", stats.Pending)
	fmt.Fprintf(&b, "• Overdue: %d\n", stats.Overdue)
	fmt.Fprintf(&b, "• Completion rate: %d%%\n", rate)

	switch {
	case stats.Overdue > 0:
		fmt.Fprintf(&b, "\n⚠️ You have %d overdue task(s). Consider prioritizing these.", stats.Overdue)
	case rate >= 80:
		b.WriteString("\n🎉 Great job! You're doing excellent work.")
	case rate >= 60:
		b.WriteString("\n👍 Good progress! Keep it up.")
	default:
		b.WriteString("\n💪 You can do better! Focus on completing more tasks.")
	}

	return b.String()
}

// floorHours rounds toward negative infinity, matching whole elapsed hours
// for both future and past due dates.
func floorHours(d time.Duration) int {
	h := d / time.Hour
	if d < 0 && d%time.Hour != 0 {
		h--
	}
	return int(h)
}
