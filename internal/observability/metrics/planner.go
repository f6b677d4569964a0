package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	plannerMeterName = "rota.planner"
)

type PlannerMetrics struct {
	passes            metric.Int64Counter
	ordersSimulated   metric.Int64Counter
	ordersSkipped     metric.Int64Counter
	alarms            metric.Int64Counter
	passDuration      metric.Float64Histogram
	impactDelayedDays metric.Float64Histogram
}

func NewPlannerMetrics() (*PlannerMetrics, error) {
	meter := otel.Meter(plannerMeterName)

	passes, err := meter.Int64Counter(
		"planner_passes_total",
		metric.WithDescription("Total number of planning passes"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, err
	}

	ordersSimulated, err := meter.Int64Counter(
		"planner_orders_simulated_total",
		metric.WithDescription("Total number of orders placed on the forecast grid"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	ordersSkipped, err := meter.Int64Counter(
		"planner_orders_skipped_total",
		metric.WithDescription("Total number of orders skipped for lack of area"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	alarms, err := meter.Int64Counter(
		"planner_cr_alarms_total",
		metric.WithDescription("Critical ratio alarms raised, by status"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	passDuration, err := meter.Float64Histogram(
		"planner_pass_duration_seconds",
		metric.WithDescription("Planning pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	impactDelayedDays, err := meter.Float64Histogram(
		"planner_impact_delay_days",
		metric.WithDescription("Delay imposed on existing orders by a hypothetical insertion"),
		metric.WithUnit("d"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 20,
		),
	)
	if err != nil {
		return nil, err
	}

	return &PlannerMetrics{
		passes:            passes,
		ordersSimulated:   ordersSimulated,
		ordersSkipped:     ordersSkipped,
		alarms:            alarms,
		passDuration:      passDuration,
		impactDelayedDays: impactDelayedDays,
	}, nil
}

func (m *PlannerMetrics) RecordPass(ctx context.Context, operation string, duration time.Duration, processed, skipped int) {
	opt := metric.WithAttributes(attribute.String("operation", operation))
	m.passes.Add(ctx, 1, opt)
	m.passDuration.Record(ctx, duration.Seconds(), opt)
	m.ordersSimulated.Add(ctx, int64(processed), opt)
	m.ordersSkipped.Add(ctx, int64(skipped), opt)
}

func (m *PlannerMetrics) RecordAlarm(ctx context.Context, status string) {
	m.alarms.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *PlannerMetrics) RecordImpactDelay(ctx context.Context, delayDays float64) {
	m.impactDelayedDays.Record(ctx, delayDays)
}
