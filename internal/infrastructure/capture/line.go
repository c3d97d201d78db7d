// Package capture provides capture.Producer implementations for terminals
// and environments without speech input.
package capture

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	appcapture "github.com/rezkam/taskmind/internal/application/capture"
	"github.com/rezkam/taskmind/internal/domain"
)

// CommandHandler inspects a line before it is treated as a transcript.
// It returns true when it consumed the line.
type CommandHandler func(ctx context.Context, line string) bool

// LineProducer reads one line per activation from a reader.
type LineProducer struct {
	mu       sync.Mutex
	scanner  *bufio.Scanner
	commands CommandHandler
}

// LineOption is a functional option for configuring LineProducer.
type LineOption func(*LineProducer)

// WithCommandHandler lets the host intercept lines (for example slash
// commands) so they never become tasks.
func WithCommandHandler(h CommandHandler) LineOption {
	return func(p *LineProducer) {
		p.commands = h
	}
}

// NewLineProducer creates a producer reading from r.
func NewLineProducer(r io.Reader, opts ...LineOption) *LineProducer {
	p := &LineProducer{scanner: bufio.NewScanner(r)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Capture returns the next line that is not consumed by the command handler.
// A blank line yields appcapture.ErrNoTranscript; end of input yields io.EOF.
func (p *LineProducer) Capture(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", io.EOF
		}

		line := strings.TrimSpace(p.scanner.Text())
		if line == "" {
			return "", appcapture.ErrNoTranscript
		}
		if p.commands != nil && p.commands(ctx, line) {
			continue
		}
		return line, nil
	}
}

// Unavailable is the producer for environments without speech input.
type Unavailable struct{}

// Capture always fails with domain.ErrCapabilityUnavailable.
func (Unavailable) Capture(context.Context) (string, error) {
	return "", fmt.Errorf("speech input: %w", domain.ErrCapabilityUnavailable)
}
