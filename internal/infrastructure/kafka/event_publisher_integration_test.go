//go:build integration

package kafka

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/event"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/testutil"
	pkgkafka "github.com/aurasystemsai/aura-core-monolith-sub005/pkg/kafka"
)

func TestEventPublisher_RoundTripThroughBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brokers := testutil.NewKafkaBrokers(ctx, t)
	cfg := pkgkafka.Config{Brokers: brokers, ConsumerGroup: "aura-credit-it"}

	producer, err := pkgkafka.NewProducer(cfg)
	require.NoError(t, err)
	defer producer.Close()

	pub := NewEventPublisher(producer, "aura.credit.events.it", slog.Default())
	evt := event.NewSupplierPaid("ob-1", "cust-1", "sup-1", decimal.NewFromInt(500), at)
	require.NoError(t, pub.Publish(ctx, evt))

	received := make(chan pkgkafka.Message, 1)
	consumeCtx, stop := context.WithCancel(ctx)
	defer stop()
	consumer, err := pkgkafka.NewConsumer(cfg, "aura.credit.events.it", func(_ context.Context, msg pkgkafka.Message) error {
		received <- msg
		stop()
		return nil
	}, slog.Default())
	require.NoError(t, err)
	defer consumer.Close()

	go func() { _ = consumer.Start(consumeCtx) }()

	select {
	case msg := <-received:
		assert.Equal(t, evt.EventID(), msg.Headers["event_id"])
	case <-ctx.Done():
		t.Fatal("no message consumed")
	}
}
