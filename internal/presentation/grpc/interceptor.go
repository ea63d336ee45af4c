package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const instrumentationName = "github.com/aurasystemsai/aura-core-monolith-sub005/internal/presentation/grpc"

// ObservabilityInterceptor records a span, a request counter, a latency
// histogram and one log line per unary call.
func ObservabilityInterceptor(meter metric.Meter, logger *slog.Logger) (grpclib.UnaryServerInterceptor, error) {
	requests, err := meter.Int64Counter("aura_credit_grpc_requests",
		metric.WithDescription("CreditService calls by method and status code"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}
	latency, err := meter.Float64Histogram("aura_credit_grpc_duration_seconds",
		metric.WithDescription("CreditService call latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create latency histogram: %w", err)
	}
	tracer := otel.Tracer(instrumentationName)

	return func(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (any, error) {
		ctx, span := tracer.Start(ctx, info.FullMethod, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		attrs := metric.WithAttributes(
			attribute.String("method", info.FullMethod),
			attribute.String("code", code.String()),
		)
		requests.Add(ctx, 1, attrs)
		latency.Record(ctx, elapsed.Seconds(), attrs)

		span.SetAttributes(attribute.String("rpc.grpc.status_code", code.String()))
		level := slog.LevelInfo
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unknown, codes.Unavailable, codes.DataLoss:
			level = slog.LevelError
			span.SetStatus(otelcodes.Error, err.Error())
		default:
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "grpc request",
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", elapsed.Milliseconds(),
		)
		return resp, err
	}, nil
}
