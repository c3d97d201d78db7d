package domain

import (
	"slices"
	"time"

	"github.com/rezkam/taskmind/internal/ptr"
)

// Task is a user-created to-do item with scheduling and classification metadata.
//
// ID and CreatedAt are stamped by the store on creation and never change.
// UpdatedAt is refreshed on every mutation and is never before CreatedAt.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Clone returns a copy that shares no mutable state with t.
func (t Task) Clone() Task {
	c := t
	c.Tags = slices.Clone(t.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	c.Description = ptr.Copy(t.Description)
	c.DueDate = ptr.Copy(t.DueDate)
	c.Reminder = ptr.Copy(t.Reminder)
	return c
}

// IsPending reports whether the task is not completed.
func (t Task) IsPending() bool {
	return !t.Completed
}

// IsOverdue reports whether a pending task's due date is before now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// IsDueToday reports whether a pending task is due within now's calendar day.
func (t Task) IsDueToday(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	start := StartOfDay(now)
	end := start.AddDate(0, 0, 1)
	return !t.DueDate.Before(start) && t.DueDate.Before(end)
}

// IsUpcoming reports whether a pending task is due on or after tomorrow.
func (t Task) IsUpcoming(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return !t.DueDate.Before(StartOfDay(now).AddDate(0, 0, 1))
}

// ReminderDue reports whether a pending task's reminder time has been reached.
func (t Task) ReminderDue(now time.Time) bool {
	return !t.Completed && t.Reminder != nil && !t.Reminder.After(now)
}

// DueOn reports whether the task's due date falls on day's calendar date,
// regardless of completion.
func (t Task) DueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	due := t.DueDate.In(day.Location())
	y1, m1, d1 := due.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// TaskInput carries the caller-supplied fields of a new task.
// Zero values are replaced by defaults when the task is created.
type TaskInput struct {
	Title       string
	Description *string
	Completed   bool
	Priority    Priority
	Category    string
	Tags        []string
	DueDate     *time.Time
	Reminder    *time.Time
}

// NewTask builds a task from input, applying defaults.
// The caller supplies the id and creation time.
func NewTask(id string, in TaskInput, now time.Time) Task {
	t := Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Priority:    in.Priority,
		Category:    in.Category,
		Tags:        in.Tags,
		DueDate:     in.DueDate,
		Reminder:    in.Reminder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = DefaultPriority
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	return t.Clone()
}

// TaskPatch is a shallow update. Nil fields are left unchanged.
// The Clear* flags unset optional fields and win over the matching value.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	Category    *string
	Tags        *[]string
	DueDate     *time.Time
	Reminder    *time.Time

	ClearDescription bool
	ClearDueDate     bool
	ClearReminder    bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.Category == nil && p.Tags == nil &&
		p.DueDate == nil && p.Reminder == nil &&
		!p.ClearDescription && !p.ClearDueDate && !p.ClearReminder
}

// Apply merges the patch into t. It never touches ID, CreatedAt or UpdatedAt.
func (p TaskPatch) Apply(t *Task) {
	t.Title = ptr.Deref(p.Title, t.Title)
	if p.Description != nil {
		t.Description = ptr.Copy(p.Description)
	}
	if p.ClearDescription {
		t.Description = nil
	}
	t.Completed = ptr.Deref(p.Completed, t.Completed)
	t.Priority = ptr.Deref(p.Priority, t.Priority)
	t.Category = ptr.Deref(p.Category, t.Category)
	if p.Tags != nil {
		t.Tags = slices.Clone(*p.Tags)
		if t.Tags == nil {
			t.Tags = []string{}
		}
	}
	if p.DueDate != nil {
		t.DueDate = ptr.Copy(p.DueDate)
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.Reminder != nil {
		t.Reminder = ptr.Copy(p.Reminder)
	}
	if p.ClearReminder {
		t.Reminder = nil
	}
}

// TaskStats holds aggregate counts over a task collection.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Today     int `json:"today"`
	Upcoming  int `json:"upcoming"`
}

// CompletionRate returns the completed share as a rounded percentage.
func (s TaskStats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Completed*200 + s.Total) / (s.Total * 2)
}
