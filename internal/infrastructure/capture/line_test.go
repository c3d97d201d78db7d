package capture

import (
	"context"
	"io"
	"strings"
	"testing"

	appcapture "github.com/rezkam/taskmind/internal/application/capture"
	"github.com/rezkam/taskmind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineProducer_Capture(t *testing.T) {
	ctx := context.Background()
	p := NewLineProducer(strings.NewReader("  Buy milk  \n\nCall mom\n"))

	line, err := p.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", line)

	_, err = p.Capture(ctx)
	assert.ErrorIs(t, err, appcapture.ErrNoTranscript)

	line, err = p.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Call mom", line)

	_, err = p.Capture(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineProducer_CommandHandler(t *testing.T) {
	var handled []string
	p := NewLineProducer(strings.NewReader("/list\n/done 1\nWrite tests\n"),
		WithCommandHandler(func(_ context.Context, line string) bool {
			if strings.HasPrefix(line, "/") {
				handled = append(handled, line)
				return true
			}
			return false
		}))

	line, err := p.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Write tests", line)
	assert.Equal(t, []string{"/list", "/done 1"}, handled)
}

func TestLineProducer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLineProducer(strings.NewReader("ignored\n")).Capture(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnavailable_Capture(t *testing.T) {
	_, err := Unavailable{}.Capture(context.Background())
	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
}
