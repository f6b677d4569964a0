package planner

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/efes-rota/rota-planner/internal/observability/tracing"
	"github.com/efes-rota/rota-planner/sim"
	"github.com/efes-rota/rota-planner/sim/trace"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DelayThresholdDays is the finish-day increase below which an existing
	// order does not count as delayed.
	DelayThresholdDays = 0.1
	// HypotheticalCode labels the candidate order when the caller gave none.
	HypotheticalCode = "HYPOTHETICAL"
)

// DelayedOrder is an existing order pushed back by the hypothetical order.
type DelayedOrder struct {
	Code      string  `json:"code"`
	OldDay    int     `json:"old_day"` // ceil of the baseline finish
	NewDay    int     `json:"new_day"` // ceil of the new finish
	Delay     int     `json:"delay"`   // ceil of the increase
	OldFinish float64 `json:"old_finish"`
	NewFinish float64 `json:"new_finish"`
}

// ImpactResult answers "if we accepted this order today, when would it be
// delivered and whom would it push back?".
type ImpactResult struct {
	RunID         string              `json:"run_id"`
	Code          string              `json:"code"` // candidate code used in the run
	NoOp          bool                `json:"no_op"` // the candidate consumes no capacity
	DeliveryDate  time.Time           `json:"delivery_date"`
	EstimatedDays int                 `json:"estimated_days"`
	FinishDay     float64             `json:"finish_day"`
	Delayed       []DelayedOrder      `json:"delayed"`
	Summary       *trace.TraceSummary `json:"summary,omitempty"`
}

// Impact simulates the active orders twice, without and with candidate, and
// diffs the finish days. A candidate without route or area is a no-op.
func (e *Engine) Impact(ctx context.Context, candidate sim.Order) (*ImpactResult, error) {
	started := time.Now()
	ctx, span := tracing.StartPassSpan(ctx, "impact", e.Today())
	defer span.End()

	p, err := e.begin(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	result := &ImpactResult{RunID: uuid.NewString(), DeliveryDate: p.today}

	hypo := hypothetical(candidate)
	hypo.Code = p.freeCode(hypo.Code)
	result.Code = hypo.Code
	if len(hypo.Route) == 0 || hypo.EffectiveArea() <= 0 {
		logrus.Infof("impact %s: candidate %s consumes no capacity, nothing to do", result.RunID, hypo.Code)
		result.NoOp = true
		tracing.RecordError(span, nil)
		return result, nil
	}

	// Only the run with the candidate is traced.
	baseline := e.sequencer(nil).Sequence(p.orders, p.today).Sequence
	base, err := e.simulate(ctx, p, baseline)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	// The candidate takes the slot the sequencer gives it, while existing
	// orders keep their baseline relative order. Adding work ahead of an
	// order can then only delay it.
	withCandidate := e.sequencer(p.trace).Sequence(append(slices.Clone(p.orders), hypo), p.today).Sequence
	sequence := insertAfterPredecessor(baseline, withCandidate, hypo)

	next, err := e.simulate(ctx, p, sequence)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	e.record(ctx, "impact", started, next)

	result.FinishDay = next.HypotheticalFinish
	result.EstimatedDays = int(math.Ceil(next.HypotheticalFinish))
	result.DeliveryDate = p.today.AddDate(0, 0, result.EstimatedDays)
	result.Delayed = diffFinishDays(baseline, base.FinishDays, next.FinishDays)

	for _, d := range result.Delayed {
		p.trace.RecordImpact(trace.ImpactRecord{
			OrderCode: d.Code,
			OldFinish: d.OldFinish,
			NewFinish: d.NewFinish,
			Delay:     d.NewFinish - d.OldFinish,
		})
		if e.metrics != nil {
			e.metrics.RecordImpactDelay(ctx, d.NewFinish-d.OldFinish)
		}
	}
	if p.trace.Enabled() {
		result.Summary = trace.Summarize(p.trace)
	}

	logrus.Infof("impact %s: candidate finishes day %.2f, %d orders delayed", result.RunID, result.FinishDay, len(result.Delayed))
	tracing.RecordImpactResult(span, result.FinishDay, len(result.Delayed))
	tracing.RecordError(span, nil)
	return result, nil
}

// hypothetical returns a copy of candidate marked as hypothetical.
func hypothetical(candidate sim.Order) *sim.Order {
	o := candidate
	o.ID = 0
	o.Hypothetical = true
	o.Route = slices.Clone(candidate.Route)
	if o.Code == "" {
		o.Code = HypotheticalCode
	}
	if o.Priority == "" {
		o.Priority = sim.PriorityNormal
	}
	o.Status = sim.StatusPending
	return &o
}

// freeCode returns code when no active order uses it. Otherwise the
// candidate becomes HypotheticalCode, suffixed until it is unique too.
func (p *pass) freeCode(code string) string {
	if p.activeOrder(code) == nil {
		return code
	}
	code = HypotheticalCode
	for n := 2; p.activeOrder(code) != nil; n++ {
		code = fmt.Sprintf("%s-%d", HypotheticalCode, n)
	}
	return code
}

// insertAfterPredecessor places hypo into baseline right after the existing
// order that precedes it in withCandidate, or first when nothing does.
func insertAfterPredecessor(baseline, withCandidate []*sim.Order, hypo *sim.Order) []*sim.Order {
	idx := slices.Index(withCandidate, hypo)
	at := 0
	if idx > 0 {
		pred := withCandidate[idx-1]
		at = slices.Index(baseline, pred) + 1
	}
	out := make([]*sim.Order, 0, len(baseline)+1)
	out = append(out, baseline[:at]...)
	out = append(out, hypo)
	return append(out, baseline[at:]...)
}

// diffFinishDays lists orders whose finish moved later by more than
// DelayThresholdDays, in baseline processing order.
func diffFinishDays(baseline []*sim.Order, before, after map[string]float64) []DelayedOrder {
	var delayed []DelayedOrder
	for _, o := range baseline {
		old, ok := before[o.Code]
		if !ok {
			continue
		}
		cur, ok := after[o.Code]
		if !ok || cur-old <= DelayThresholdDays {
			continue
		}
		delayed = append(delayed, DelayedOrder{
			Code:      o.Code,
			OldDay:    int(math.Ceil(old)),
			NewDay:    int(math.Ceil(cur)),
			Delay:     int(math.Ceil(cur - old)),
			OldFinish: old,
			NewFinish: cur,
		})
	}
	return delayed
}
