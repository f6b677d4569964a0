package planner

import (
	"context"
	"time"

	"github.com/efes-rota/rota-planner/internal/observability/tracing"
	"github.com/efes-rota/rota-planner/sim"
	"github.com/google/uuid"
)

// Forecast is the capacity view of one simulation pass over the active orders.
type Forecast struct {
	RunID       string                       `json:"run_id"`
	Today       time.Time                    `json:"today"`
	Horizon     int                          `json:"horizon"`
	Stations    []string                     `json:"stations"`
	LoadPercent map[string][]float64         `json:"load_percent"`
	LoadArea    map[string][]float64         `json:"load_m2"`
	Details     map[string][][]sim.JobDetail `json:"details"`
	Segments    []sim.Segment                `json:"segments"`
	FinishDays  map[string]float64           `json:"finish_days"`
	Sequence    []string                     `json:"sequence"`
	Metrics     sim.PassMetrics              `json:"metrics"`
}

// Forecast sequences and simulates the active orders.
func (e *Engine) Forecast(ctx context.Context) (*Forecast, error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx, span := tracing.StartPassSpan(ctx, "forecast", e.Today())
	defer span.End()

	p, err := e.begin(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	plan := e.sequencer(p.trace).Sequence(p.orders, p.today)
	res, err := e.simulate(ctx, p, plan.Sequence)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	e.record(ctx, "forecast", started, res)
	metrics := sim.NewPassMetrics(res, p.stations.Names())
	metrics.Log(runID)
	tracing.RecordPassResult(span, len(p.orders), len(res.Processed), len(res.Skipped), nil)

	return &Forecast{
		RunID:       runID,
		Today:       p.today,
		Horizon:     e.cfg.Horizon,
		Stations:    res.Grid.RowOrder(p.stations.Names()),
		LoadPercent: res.Grid.LoadPercent(),
		LoadArea:    res.Grid.LoadArea(),
		Details:     res.Grid.Details(),
		Segments:    res.Segments,
		FinishDays:  res.FinishDays,
		Sequence:    codesOf(plan.Sequence),
		Metrics:     metrics,
	}, nil
}

func codesOf(orders []*sim.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.Code
	}
	return out
}
