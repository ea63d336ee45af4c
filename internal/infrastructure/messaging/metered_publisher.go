package messaging

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
)

var _ port.EventPublisher = (*MeteredPublisher)(nil)

// MeteredPublisher counts every domain event handed to it before
// delegating. Counting happens even when the delegate fails, because the
// state change behind the event has already been committed.
type MeteredPublisher struct {
	next     port.EventPublisher
	events   metric.Int64Counter
	failures metric.Int64Counter
}

// NewMeteredPublisher registers the credit event counters on meter.
func NewMeteredPublisher(next port.EventPublisher, meter metric.Meter) (*MeteredPublisher, error) {
	events, err := meter.Int64Counter("aura_credit_events",
		metric.WithDescription("Domain events emitted by the credit engine, by event type"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("aura_credit_event_publish_failures",
		metric.WithDescription("Event batches the broker did not accept"))
	if err != nil {
		return nil, err
	}
	return &MeteredPublisher{next: next, events: events, failures: failures}, nil
}

func (p *MeteredPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		attrs := []attribute.KeyValue{attribute.String("event_type", evt.EventType())}
		if pt, ok := productType(evt); ok {
			attrs = append(attrs, attribute.String("product_type", pt))
		}
		p.events.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	if err := p.next.Publish(ctx, events...); err != nil {
		p.failures.Add(ctx, 1)
		return err
	}
	return nil
}

func productType(evt event.DomainEvent) (string, bool) {
	switch e := evt.(type) {
	case event.ObligationOriginated:
		return e.ProductType, true
	case event.PaymentRecorded:
		return e.ProductType, true
	case event.ObligationCompleted:
		return e.ProductType, true
	case event.PaymentDue:
		return e.ProductType, true
	default:
		return "", false
	}
}
