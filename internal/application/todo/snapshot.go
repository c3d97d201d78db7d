package todo

import (
	"encoding/json"
	"fmt"

	"github.com/rezkam/taskmind/internal/domain"
)

// Snapshot keys under which the store persists its state.
const (
	KeyTasks    = "ai-todo-tasks"
	KeyTheme    = "ai-todo-theme"
	KeyViewMode = "ai-todo-view"
)

// EncodeTasks serializes tasks to the persisted JSON form.
// Timestamps are written as RFC 3339 strings.
func EncodeTasks(tasks []domain.Task) (string, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return string(data), nil
}

// DecodeTasks parses a blob produced by EncodeTasks.
// Missing defaults are filled in; failures wrap domain.ErrCorruptSnapshot.
func DecodeTasks(blob string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := json.Unmarshal([]byte(blob), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptSnapshot, err)
	}

	out := make([]domain.Task, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: task %d has no id", domain.ErrCorruptSnapshot, i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate task id %s", domain.ErrCorruptSnapshot, t.ID)
		}
		seen[t.ID] = struct{}{}

		if p, err := domain.NewPriority(string(t.Priority)); err == nil {
			t.Priority = p
		} else {
			t.Priority = domain.DefaultPriority
		}
		if t.Category == "" {
			t.Category = domain.DefaultCategory
		}
		if t.UpdatedAt.Before(t.CreatedAt) {
			t.UpdatedAt = t.CreatedAt
		}
		out = append(out, t.Clone())
	}
	return out, nil
}
