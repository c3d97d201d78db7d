package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/rezkam/taskmind/internal/application/todo"
	"github.com/rezkam/taskmind/internal/domain"
	"github.com/rezkam/taskmind/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var _ todo.Metrics = (*StoreMetrics)(nil)

func newTestMetrics(t *testing.T) (*StoreMetrics, *sdkmetric.ManualReader, *tracetest.SpanRecorder) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	m, err := NewStoreMetrics(mp, tp)
	require.NoError(t, err)
	return m, reader, recorder
}

func counterValues(t *testing.T, reader *sdkmetric.ManualReader, name, attr string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(attr))
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestStoreMetrics_WithStore(t *testing.T) {
	m, reader, recorder := newTestMetrics(t)
	store := todo.NewStore(memory.NewStore(), todo.WithMetrics(m))

	task := store.AddTask(domain.TaskInput{Title: "t"})
	store.ToggleTask(task.ID)
	store.ToggleTask(task.ID)
	store.SetTheme(domain.ThemeDark)

	assert.Equal(t, map[string]int64{"add": 1, "toggle": 2, "set_theme": 1},
		counterValues(t, reader, "taskmind.store.mutations", "op"))

	spans := recorder.Ended()
	require.Len(t, spans, 4)
	for _, s := range spans {
		assert.Equal(t, "todo.persist", s.Name())
		assert.Equal(t, codes.Unset, s.Status().Code)
	}
}

func TestStoreMetrics_PersistFailure(t *testing.T) {
	m, reader, recorder := newTestMetrics(t)
	ctx := context.Background()

	m.RecordPersistFailure(ctx, todo.KeyTasks)
	m.RecordPersistFailure(ctx, todo.KeyTasks)
	err := m.TracePersist(ctx, func(context.Context) error { return errors.New("disk full") })

	assert.EqualError(t, err, "disk full")
	assert.Equal(t, map[string]int64{todo.KeyTasks: 2},
		counterValues(t, reader, "taskmind.store.persist_failures", "key"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "disk full", spans[0].Status().Description)
}
