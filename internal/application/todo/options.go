package todo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rezkam/taskmind/internal/domain"
)

// Default configuration values.
const (
	DefaultPersistTimeout = 5 * time.Second
)

// ThemeApplier reflects the active theme onto the presentation surface.
// It is called after every mutation and once after Load.
type ThemeApplier interface {
	ApplyTheme(theme domain.Theme)
}

// ThemeApplierFunc adapts a function to ThemeApplier.
type ThemeApplierFunc func(domain.Theme)

// ApplyTheme calls f(theme).
func (f ThemeApplierFunc) ApplyTheme(theme domain.Theme) { f(theme) }

// Metrics receives store telemetry.
type Metrics interface {
	// RecordMutation counts a successful mutation named op.
	RecordMutation(ctx context.Context, op string)

	// RecordPersistFailure counts a snapshot key that could not be written.
	RecordPersistFailure(ctx context.Context, key string)

	// TracePersist runs persist inside whatever instrumentation the
	// implementation provides and returns its error.
	TracePersist(ctx context.Context, persist func(context.Context) error) error
}

type noopMetrics struct{}

func (noopMetrics) RecordMutation(context.Context, string)       {}
func (noopMetrics) RecordPersistFailure(context.Context, string) {}
func (noopMetrics) TracePersist(ctx context.Context, persist func(context.Context) error) error {
	return persist(ctx)
}

type noopThemeApplier struct{}

func (noopThemeApplier) ApplyTheme(domain.Theme) {}

// Option is a functional option for configuring Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps and date filters.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the task id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithThemeApplier sets the hook that reflects the theme after mutations.
func WithThemeApplier(applier ThemeApplier) Option {
	return func(s *Store) {
		s.themeApplier = applier
	}
}

// WithMetrics sets the telemetry sink.
func WithMetrics(m Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithInitialFilter sets the filter the store starts with. Filters are not
// persisted, so this is how a host restores a preferred default.
func WithInitialFilter(f domain.Filter) Option {
	return func(s *Store) {
		s.filter = f
	}
}

// WithPersistTimeout bounds each snapshot write to the sink.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.persistTimeout = d
	}
}

// newUUIDv7 returns a time-ordered id so tasks sort by creation when listed raw.
func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
