// Package reminder periodically scans tasks and surfaces reminder and
// overdue alerts, each (task, condition) pair at most once.
package reminder

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/rezkam/taskmind/internal/advisor"
	"github.com/rezkam/taskmind/internal/domain"
)

// DefaultInterval is how often the monitor rescans when not configured.
const DefaultInterval = time.Minute

type alertKey struct {
	taskID string
	cond   Condition
}

// Monitor scans a TaskSource on a fixed interval and hands new alerts to a Notifier.
type Monitor struct {
	source   TaskSource
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu       sync.Mutex
	surfaced map[alertKey]struct{}
	history  []Alert
	disabled bool
}

// Option is a functional option for configuring Monitor.
type Option func(*Monitor)

// WithInterval sets how often the monitor rescans.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// New creates a Monitor over source delivering to notifier.
func New(source TaskSource, notifier Notifier, opts ...Option) *Monitor {
	m := &Monitor{
		source:   source,
		notifier: notifier,
		interval: DefaultInterval,
		now:      time.Now,
		logger:   slog.Default(),
		surfaced: make(map[alertKey]struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start scans immediately and then on every tick until ctx is cancelled.
// Scans never overlap.
func (m *Monitor) Start(ctx context.Context) error {
	m.logger.InfoContext(ctx, "Reminder monitor started", "interval", m.interval)

	m.RunOnce(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.RunOnce(ctx)
		case <-ctx.Done():
			m.logger.InfoContext(ctx, "Reminder monitor stopped")
			return nil
		}
	}
}

// RunOnce performs a single scan and returns the alerts surfaced by it.
// Alerts are recorded as surfaced whether or not delivery succeeds.
func (m *Monitor) RunOnce(ctx context.Context) []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var alerts []Alert
	for _, task := range m.source.Tasks() {
		if task.Completed {
			continue
		}
		if task.ReminderDue(now) {
			alerts = m.surface(task, ConditionReminder, now, alerts)
		}
		if task.IsOverdue(now) {
			alerts = m.surface(task, ConditionOverdue, now, alerts)
		}
	}

	for _, a := range alerts {
		m.deliver(ctx, a)
	}
	return alerts
}

// surface must be called with mu held.
func (m *Monitor) surface(task domain.Task, cond Condition, now time.Time, alerts []Alert) []Alert {
	key := alertKey{taskID: task.ID, cond: cond}
	if _, seen := m.surfaced[key]; seen {
		return alerts
	}
	m.surfaced[key] = struct{}{}

	a := newAlert(task, cond, advisor.GenerateSmartReminder(task, now), now)
	m.history = append(m.history, a)
	return append(alerts, a)
}

// deliver must be called with mu held.
func (m *Monitor) deliver(ctx context.Context, a Alert) {
	if m.disabled {
		return
	}
	err := m.notifier.Notify(ctx, a)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCapabilityUnavailable):
		m.disabled = true
		m.logger.WarnContext(ctx, "Notifications unavailable, delivery disabled", "error", err)
	default:
		m.logger.ErrorContext(ctx, "Failed to deliver alert",
			"task_id", a.TaskID, "condition", a.Condition, "error", err)
	}
}

// Surfaced returns the alerts surfaced so far that have not been dismissed,
// oldest first.
func (m *Monitor) Surfaced() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.history)
}

// Dismiss removes one alert from the history. The pair stays surfaced, so
// it will not fire again.
func (m *Monitor) Dismiss(taskID string, cond Condition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = slices.DeleteFunc(m.history, func(a Alert) bool {
		return a.TaskID == taskID && a.Condition == cond
	})
}

// Clear empties the history without re-arming any alert.
func (m *Monitor) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
}
