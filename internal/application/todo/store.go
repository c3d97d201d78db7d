// Package todo holds the task store: the authoritative in-memory task
// collection plus view state, change notification and persistence.
package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rezkam/taskmind/internal/core"
	"github.com/rezkam/taskmind/internal/domain"
	"github.com/rezkam/taskmind/internal/parser"
	"github.com/rezkam/taskmind/internal/query"
)

type listener struct {
	id uint64
	fn func()
}

// Store owns the task collection and view state.
//
// Every successful mutation, in order: notifies listeners synchronously in
// registration order, persists the full snapshot to the sink, and applies
// the theme. Persistence failures are logged and never undo the mutation.
// Listeners run without the store lock held and may read or mutate the store.
type Store struct {
	mu       sync.RWMutex
	tasks    []domain.Task
	theme    domain.Theme
	viewMode domain.ViewMode
	filter   domain.Filter

	listenersMu    sync.Mutex
	listeners      []listener
	nextListenerID uint64

	// persistMu serializes sink writes so an older snapshot never lands after a newer one.
	persistMu sync.Mutex

	sink           core.KeyValueStore
	now            func() time.Time
	newID          func() string
	logger         *slog.Logger
	themeApplier   ThemeApplier
	metrics        Metrics
	persistTimeout time.Duration
}

// NewStore creates an empty store backed by sink. Call Load to restore
// previously persisted state.
func NewStore(sink core.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		tasks:          []domain.Task{},
		theme:          domain.DefaultTheme,
		viewMode:       domain.DefaultViewMode,
		filter:         domain.DefaultFilter,
		sink:           sink,
		now:            time.Now,
		newID:          newUUIDv7,
		logger:         slog.Default(),
		themeApplier:   noopThemeApplier{},
		metrics:        noopMetrics{},
		persistTimeout: DefaultPersistTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load restores tasks, theme and view mode from the sink. Absent keys keep
// their defaults; unreadable or malformed values are logged and replaced by
// defaults. Load never fails and does not notify listeners.
func (s *Store) Load(ctx context.Context) {
	tasks := s.loadTasks(ctx)
	theme := loadValue(ctx, s, KeyTheme, domain.DefaultTheme, domain.NewTheme)
	viewMode := loadValue(ctx, s, KeyViewMode, domain.DefaultViewMode, domain.NewViewMode)

	s.mu.Lock()
	s.tasks = tasks
	s.theme = theme
	s.viewMode = viewMode
	s.mu.Unlock()

	s.themeApplier.ApplyTheme(theme)
}

func (s *Store) loadTasks(ctx context.Context) []domain.Task {
	blob, ok := s.read(ctx, KeyTasks)
	if !ok {
		return []domain.Task{}
	}
	tasks, err := DecodeTasks(blob)
	if err != nil {
		s.logger.ErrorContext(ctx, "Discarding persisted tasks", "key", KeyTasks, "error", err)
		return []domain.Task{}
	}
	return tasks
}

func loadValue[T any](ctx context.Context, s *Store, key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := s.read(ctx, key)
	if !ok {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "Ignoring persisted value", "key", key, "error", err)
		return fallback
	}
	return v
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	v, err := s.sink.Get(ctx, key)
	if errors.Is(err, core.ErrKeyNotFound) {
		return "", false
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read persisted state", "key", key, "error", err)
		return "", false
	}
	return v, true
}

// AddTask creates a task from input with a fresh id and timestamps,
// applying default priority, category and tags.
func (s *Store) AddTask(input domain.TaskInput) domain.Task {
	s.mu.Lock()
	task := domain.NewTask(s.newID(), input, s.now())
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.commit("add")
	return task.Clone()
}

// AddFromText parses free text and adds the resulting task. Fields the
// parser cannot determine take the usual defaults; the raw text becomes the
// title when nothing else remains.
func (s *Store) AddFromText(text string) domain.Task {
	var input domain.TaskInput
	parser.Parse(text, s.now()).Merge(&input)
	if strings.TrimSpace(input.Title) == "" {
		input.Title = strings.TrimSpace(text)
	}
	return s.AddTask(input)
}

// UpdateTask merges patch into the task with id. It returns false, without
// notifying, when no such task exists.
func (s *Store) UpdateTask(id string, patch domain.TaskPatch) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.applyLocked(i, patch)
	s.mu.Unlock()

	s.commit("update")
	return true
}

// applyLocked must be called with mu held for writing.
func (s *Store) applyLocked(i int, patch domain.TaskPatch) {
	t := &s.tasks[i]
	patch.Apply(t)
	t.UpdatedAt = s.now()
	if t.UpdatedAt.Before(t.CreatedAt) {
		t.UpdatedAt = t.CreatedAt
	}
}

// DeleteTask removes the task with id. It notifies only when a task was removed.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.mu.Unlock()

	s.commit("delete")
	return true
}

// ToggleTask flips the completion flag of the task with id, as an update
// patching Completed.
func (s *Store) ToggleTask(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	flipped := !s.tasks[i].Completed
	s.applyLocked(i, domain.TaskPatch{Completed: &flipped})
	s.mu.Unlock()

	s.commit("toggle")
	return true
}

// SetTheme replaces the theme.
func (s *Store) SetTheme(theme domain.Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	s.commit("set_theme")
}

// SetViewMode replaces the view mode.
func (s *Store) SetViewMode(mode domain.ViewMode) {
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()

	s.commit("set_view_mode")
}

// SetCurrentFilter replaces the active filter. The filter is not persisted.
func (s *Store) SetCurrentFilter(filter domain.Filter) {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()

	s.commit("set_filter")
}

// Subscribe registers fn to be called after every successful mutation.
// The returned function unregisters it and is safe to call more than once.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.listenersMu.Lock()
	s.nextListenerID++
	id := s.nextListenerID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool {
				return l.id == id
			})
		})
	}
}

// Tasks returns a copy of all tasks in insertion order.
func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Task returns the task with id.
func (s *Store) Task(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// FindByPrefix resolves a full id or a unique id prefix to a task.
func (s *Store) FindByPrefix(prefix string) (domain.Task, error) {
	if prefix == "" {
		return domain.Task{}, fmt.Errorf("%w: empty id", domain.ErrTaskNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(prefix); i >= 0 {
		return s.tasks[i].Clone(), nil
	}

	var match *domain.Task
	for i := range s.tasks {
		if !strings.HasPrefix(s.tasks[i].ID, prefix) {
			continue
		}
		if match != nil {
			return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrAmbiguousTaskID, prefix)
		}
		match = &s.tasks[i]
	}
	if match == nil {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, prefix)
	}
	return match.Clone(), nil
}

// TaskStats returns counters over all tasks at the current time.
func (s *Store) TaskStats() domain.TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return query.Stats(s.tasks, s.now())
}

// FilteredTasks returns the tasks matching the current filter.
func (s *Store) FilteredTasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(query.FilterByStatus(s.tasks, s.filter, s.now()))
}

// View runs the search, filter and sort pipeline over all tasks.
func (s *Store) View(q query.Query) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(query.Apply(s.tasks, q, s.now()))
}

// Theme returns the active theme.
func (s *Store) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ViewMode returns the active view mode.
func (s *Store) ViewMode() domain.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// CurrentFilter returns the active filter.
func (s *Store) CurrentFilter() domain.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

func (s *Store) commit(op string) {
	ctx := context.Background()
	s.metrics.RecordMutation(ctx, op)

	s.notify()
	s.persist(ctx)
	s.themeApplier.ApplyTheme(s.Theme())
}

func (s *Store) notify() {
	s.listenersMu.Lock()
	snapshot := slices.Clone(s.listeners)
	s.listenersMu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}

// persist writes the state as of the moment the write lock is acquired, so
// concurrent commits converge on the latest snapshot.
func (s *Store) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	blob, encodeErr := EncodeTasks(s.tasks)
	theme, viewMode := s.theme, s.viewMode
	s.mu.RUnlock()

	if encodeErr != nil {
		s.logger.ErrorContext(ctx, "Failed to encode tasks", "error", encodeErr)
		s.metrics.RecordPersistFailure(ctx, KeyTasks)
		return
	}

	entries := []struct{ key, value string }{
		{KeyTasks, blob},
		{KeyTheme, string(theme)},
		{KeyViewMode, string(viewMode)},
	}

	_ = s.metrics.TracePersist(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.persistTimeout)
		defer cancel()

		var errs []error
		for _, e := range entries {
			if err := s.sink.Set(ctx, e.key, e.value); err != nil {
				s.logger.ErrorContext(ctx, "Failed to persist state", "key", e.key, "error", err)
				s.metrics.RecordPersistFailure(ctx, e.key)
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
