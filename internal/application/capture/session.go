// Package capture turns one activation of an input producer (voice, a
// console line) into at most one new task.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rezkam/taskmind/internal/domain"
)

// ErrNoTranscript reports an activation that ended without producing text.
var ErrNoTranscript = errors.New("no transcript")

// Producer yields exactly one outcome per Capture call: a transcript, an
// error, or ErrNoTranscript. Producers that cannot run in the current
// environment return an error wrapping domain.ErrCapabilityUnavailable.
type Producer interface {
	Capture(ctx context.Context) (string, error)
}

// TaskAdder creates a task from free text.
type TaskAdder interface {
	AddFromText(text string) domain.Task
}

// Session connects a Producer to the task store.
type Session struct {
	producer Producer
	store    TaskAdder
	logger   *slog.Logger
}

// Option is a functional option for configuring Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a capture session.
func NewSession(producer Producer, store TaskAdder, opts ...Option) *Session {
	s := &Session{
		producer: producer,
		store:    store,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Activate runs the producer once. A transcript becomes a task through the
// store's free-text path. Cancellation, an empty result or a blank transcript
// yield (nil, nil). Any other producer error is returned wrapped and leaves
// the store untouched.
func (s *Session) Activate(ctx context.Context) (*domain.Task, error) {
	transcript, err := s.producer.Capture(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoTranscript), errors.Is(err, context.Canceled):
		s.logger.DebugContext(ctx, "Capture ended without transcript", "reason", err)
		return nil, nil
	default:
		return nil, fmt.Errorf("capture failed: %w", err)
	}

	return s.Submit(ctx, transcript), nil
}

// Submit adds a task from an already captured transcript. Blank input is a no-op.
func (s *Session) Submit(ctx context.Context, transcript string) *domain.Task {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}

	task := s.store.AddFromText(transcript)
	s.logger.InfoContext(ctx, "Task captured", "task_id", task.ID, "title", task.Title)
	return &task
}
