package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const plannerTracerName = "github.com/efes-rota/rota-planner/sim/planner"

func PlannerTracer() trace.Tracer {
	return otel.Tracer(plannerTracerName)
}

func StartPassSpan(ctx context.Context, operation string, today time.Time) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner."+operation,
		trace.WithAttributes(
			attribute.String("planner.today", today.Format(time.DateOnly)),
		),
	)
}

func StartSimulationSpan(ctx context.Context, orders, horizon int) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.simulate",
		trace.WithAttributes(
			attribute.Int("simulation.orders", orders),
			attribute.Int("simulation.horizon_days", horizon),
		),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPassResult(span trace.Span, orders, processed, skipped int, err error) {
	span.SetAttributes(
		attribute.Int("pass.orders", orders),
		attribute.Int("pass.processed", processed),
		attribute.Int("pass.skipped", skipped),
	)
	RecordError(span, err)
}

func RecordImpactResult(span trace.Span, finishDay float64, delayed int) {
	span.SetAttributes(
		attribute.Float64("impact.finish_day", finishDay),
		attribute.Int("impact.delayed_orders", delayed),
	)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
