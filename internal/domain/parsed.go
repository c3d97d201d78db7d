package domain

import (
	"time"

	"github.com/rezkam/taskmind/internal/ptr"
)

// ParsedTask holds the fields a free-text parse could determine.
// Nil fields were not determined and leave caller defaults intact.
type ParsedTask struct {
	Title    *string
	Priority *Priority
	Category *string
	DueDate  *time.Time
	Tags     []string
}

// Merge overlays the determined fields onto in.
func (p ParsedTask) Merge(in *TaskInput) {
	in.Title = ptr.Deref(p.Title, in.Title)
	in.Priority = ptr.Deref(p.Priority, in.Priority)
	in.Category = ptr.Deref(p.Category, in.Category)
	if p.DueDate != nil {
		in.DueDate = ptr.Copy(p.DueDate)
	}
	if len(p.Tags) > 0 {
		in.Tags = append(in.Tags, p.Tags...)
	}
}
