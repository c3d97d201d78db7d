// Package notify provides reminder.Notifier implementations for hosts
// without a native notification surface.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rezkam/taskmind/internal/application/reminder"
	"github.com/rezkam/taskmind/internal/domain"
)

// Logger writes each alert as a structured log record.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a notifier that logs through logger, or slog.Default when nil.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Notify logs the alert at warn level for overdue tasks and info otherwise.
func (n *Logger) Notify(ctx context.Context, a reminder.Alert) error {
	level := slog.LevelInfo
	if a.Condition == reminder.ConditionOverdue {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, a.Title,
		"task_id", a.TaskID,
		"condition", string(a.Condition),
		"body", a.Body,
		"hint", a.Hint,
	)
	return nil
}

// Console prints alerts as single lines to a writer, such as a terminal.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a notifier writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Notify writes "[title] body (hint)".
func (n *Console) Notify(_ context.Context, a reminder.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", a.Title, a.Body)
	if a.Hint != "" {
		line += " (" + a.Hint + ")"
	}
	if _, err := fmt.Fprintln(n.w, line); err != nil {
		return fmt.Errorf("failed to write alert: %w", err)
	}
	return nil
}

// Unavailable reports that notifications are not supported. Monitors
// receiving it stop delivering for the rest of the session.
type Unavailable struct{}

// Notify always fails with domain.ErrCapabilityUnavailable.
func (Unavailable) Notify(context.Context, reminder.Alert) error {
	return fmt.Errorf("notifications: %w", domain.ErrCapabilityUnavailable)
}

// Multi fans an alert out to several notifiers. Capability errors are
// reported only when every notifier returns one, so a single unavailable
// surface does not silence the others.
type Multi []reminder.Notifier

// Notify delivers to every notifier.
func (m Multi) Notify(ctx context.Context, a reminder.Alert) error {
	var firstErr error
	unavailable := 0
	for _, n := range m {
		err := n.Notify(ctx, a)
		if err == nil {
			continue
		}
		if errors.Is(err, domain.ErrCapabilityUnavailable) {
			unavailable++
			if unavailable < len(m) {
				continue
			}
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
