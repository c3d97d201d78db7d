package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/rezkam/taskmind/internal/application/todo"

// StoreMetrics records task store activity as OpenTelemetry counters and spans.
type StoreMetrics struct {
	mutations       metric.Int64Counter
	persistFailures metric.Int64Counter
	tracer          trace.Tracer
}

// NewStoreMetrics creates the store instruments from the given providers.
func NewStoreMetrics(mp metric.MeterProvider, tp trace.TracerProvider) (*StoreMetrics, error) {
	meter := mp.Meter(instrumentationName)

	mutations, err := meter.Int64Counter("taskmind.store.mutations",
		metric.WithDescription("Successful task store mutations"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mutations counter: %w", err)
	}

	persistFailures, err := meter.Int64Counter("taskmind.store.persist_failures",
		metric.WithDescription("Snapshot keys that could not be written to the sink"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create persist failures counter: %w", err)
	}

	return &StoreMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		tracer:          tp.Tracer(instrumentationName),
	}, nil
}

// RecordMutation counts one mutation labelled by op.
func (m *StoreMetrics) RecordMutation(ctx context.Context, op string) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordPersistFailure counts one failed key write.
func (m *StoreMetrics) RecordPersistFailure(ctx context.Context, key string) {
	m.persistFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
}

// TracePersist wraps persist in a "todo.persist" span.
func (m *StoreMetrics) TracePersist(ctx context.Context, persist func(context.Context) error) error {
	ctx, span := m.tracer.Start(ctx, "todo.persist")
	defer span.End()

	err := persist(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
