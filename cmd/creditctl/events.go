package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	pkgkafka "github.com/aurasystemsai/aura-core-monolith-sub005/pkg/kafka"
)

func eventsCmd() *cobra.Command {
	var (
		brokers []string
		topic   string
		group   string
		filter  string
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail credit domain events from Kafka",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			out := cmd.OutOrStdout()
			handler := func(_ context.Context, msg pkgkafka.Message) error {
				eventType := msg.Headers["event_type"]
				if filter != "" && eventType != filter {
					return nil
				}
				_, err := fmt.Fprintf(out, "%s %s %s\n", eventType, msg.Key, msg.Value)
				return err
			}
			consumer, err := pkgkafka.NewConsumer(pkgkafka.Config{Brokers: brokers, ConsumerGroup: group},
				topic, handler, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				return err
			}
			defer consumer.Close()

			err = consumer.Start(ctx)
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringSliceVar(&brokers, "brokers", []string{"localhost:9092"}, "Kafka brokers")
	cmd.Flags().StringVar(&topic, "topic", "aura.credit.events", "Event topic")
	cmd.Flags().StringVar(&group, "group", "", "Consumer group (empty tails from the newest offset)")
	cmd.Flags().StringVar(&filter, "type", "", "Only print events of this type, e.g. credit.payment_recorded")
	return cmd
}
