package messaging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
)

type mockPublisher struct {
	err       error
	published []event.DomainEvent
}

func (m *mockPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	m.published = append(m.published, events...)
	return m.err
}

var at = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func sums(t *testing.T, reader *sdkmetric.ManualReader, name string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key("event_type"))
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestMeteredPublisher_CountsByEventType(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	next := &mockPublisher{}
	pub, err := NewMeteredPublisher(next, meter)
	require.NoError(t, err)

	err = pub.Publish(context.Background(),
		event.NewObligationOriginated("ob-1", "c", "WORKING_CAPITAL", decimal.NewFromInt(1), decimal.NewFromInt(2), 700, at),
		event.NewPaymentRecorded("ob-1", "c", "p1", "WORKING_CAPITAL", decimal.NewFromInt(1), decimal.NewFromInt(1), at),
		event.NewPaymentRecorded("ob-1", "c", "p2", "WORKING_CAPITAL", decimal.NewFromInt(1), decimal.Zero, at),
	)

	require.NoError(t, err)
	assert.Len(t, next.published, 3)
	counts := sums(t, reader, "aura_credit_events")
	assert.Equal(t, int64(1), counts[event.TypeObligationOriginated])
	assert.Equal(t, int64(2), counts[event.TypePaymentRecorded])
}

func TestMeteredPublisher_CountsFailures(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	pub, err := NewMeteredPublisher(&mockPublisher{err: errors.New("broker down")}, meter)
	require.NoError(t, err)

	err = pub.Publish(context.Background(), event.NewSupplierPaid("ob-1", "c", "s", decimal.NewFromInt(1), at))

	assert.Error(t, err)
	assert.Equal(t, int64(1), sums(t, reader, "aura_credit_events")[event.TypeSupplierPaid])
	assert.Equal(t, int64(1), sums(t, reader, "aura_credit_event_publish_failures")[""])
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, pub.Publish(context.Background(), event.NewSupplierPaid("ob-9", "c", "s", decimal.NewFromInt(1), at)))

	assert.Contains(t, buf.String(), "event_type="+event.TypeSupplierPaid)
	assert.Contains(t, buf.String(), "aggregate_id=ob-9")
}
