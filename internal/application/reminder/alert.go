package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/rezkam/taskmind/internal/domain"
)

// Condition is the reason a task is surfaced.
type Condition string

const (
	// ConditionReminder fires once the task's reminder time has been reached.
	ConditionReminder Condition = "reminder"
	// ConditionOverdue fires once the task's due date has passed.
	ConditionOverdue Condition = "overdue"
)

// Alert is a notification surfaced for one (task, condition) pair.
type Alert struct {
	TaskID    string
	Condition Condition
	Title     string
	Body      string

	// Hint is advisory text about the due date, e.g. "This task is due in 3 hours."
	Hint       string
	SurfacedAt time.Time
}

func newAlert(task domain.Task, cond Condition, hint string, now time.Time) Alert {
	a := Alert{
		TaskID:     task.ID,
		Condition:  cond,
		Hint:       hint,
		SurfacedAt: now,
	}
	switch cond {
	case ConditionReminder:
		a.Title = "Task Reminder"
		a.Body = "Don't forget: " + task.Title
	case ConditionOverdue:
		a.Title = "Task Overdue"
		a.Body = fmt.Sprintf("Task %q is overdue", task.Title)
	}
	return a
}

// TaskSource supplies the tasks to scan.
type TaskSource interface {
	Tasks() []domain.Task
}

// Notifier delivers alerts to the user.
// Returning domain.ErrCapabilityUnavailable disables delivery for the
// remainder of the monitor's lifetime.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}
