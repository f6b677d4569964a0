// Package planner wires the sequencing, simulation and risk layers into the
// engine the CLI and the dashboard talk to. Every call runs a fresh pass
// against a snapshot of the data source; nothing is kept between calls
// except the station capacity memo.
package planner

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/efes-rota/rota-planner/internal/observability/metrics"
	"github.com/efes-rota/rota-planner/internal/observability/tracing"
	"github.com/efes-rota/rota-planner/sim"
	"github.com/efes-rota/rota-planner/sim/risk"
	"github.com/efes-rota/rota-planner/sim/trace"
	"github.com/sirupsen/logrus"
)

// EngineConfig groups the planning tunables.
type EngineConfig struct {
	Horizon        int     // forecast days
	LookaheadDays  int     // near-term batching window
	BatchBonus     float64 // score per batch member
	Sequencer      string  // see sim.ValidSequencerNames
	ActiveStatuses []sim.OrderStatus
	TraceLevel     trace.TraceLevel
	// Today pins the planning date. Zero means the wall clock at each call.
	Today time.Time
}

// DefaultEngineConfig returns the production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Horizon:        sim.DefaultHorizonDays,
		LookaheadDays:  sim.DefaultLookaheadDays,
		BatchBonus:     sim.DefaultBatchBonus,
		Sequencer:      "tiered",
		ActiveStatuses: slices.Clone(sim.ActiveStatuses),
		TraceLevel:     trace.TraceLevelNone,
	}
}

// Engine runs planning passes. Safe for concurrent use.
type Engine struct {
	source   sim.DataSource
	registry *sim.StationRegistry
	cfg      EngineConfig
	metrics  *metrics.PlannerMetrics
}

// NewEngine creates an engine over source. Panics on an unknown sequencer name.
func NewEngine(source sim.DataSource, registry *sim.StationRegistry, cfg EngineConfig) *Engine {
	if !sim.IsValidSequencer(cfg.Sequencer) {
		panic(fmt.Sprintf("unknown sequencer %q", cfg.Sequencer))
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = sim.DefaultHorizonDays
	}
	if len(cfg.ActiveStatuses) == 0 {
		cfg.ActiveStatuses = slices.Clone(sim.ActiveStatuses)
	}
	return &Engine{source: source, registry: registry, cfg: cfg}
}

// WithMetrics attaches pass metrics. A nil value disables recording.
func (e *Engine) WithMetrics(m *metrics.PlannerMetrics) *Engine {
	e.metrics = m
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Today returns the planning date of the next pass.
func (e *Engine) Today() time.Time {
	if !e.cfg.Today.IsZero() {
		return sim.CivilDate(e.cfg.Today)
	}
	return sim.CivilDate(time.Now())
}

// InvalidateCapacities forces the next pass to re-read station capacities.
func (e *Engine) InvalidateCapacities() {
	e.registry.Invalidate()
}

// pass is the state of one pipeline run.
type pass struct {
	today    time.Time
	stations *sim.Stations
	progress *sim.ProgressView
	orders   []*sim.Order
	trace    *trace.SequenceTrace
}

// begin snapshots capacities and active orders. A failed order listing is
// logged and yields an empty pass.
func (e *Engine) begin(ctx context.Context) (*pass, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.registry.EnsureFresh(ctx, e.source)
	orders, err := e.source.ListActiveOrders(ctx, e.cfg.ActiveStatuses)
	if err != nil {
		logrus.Warnf("listing active orders failed, planning with none: %v", err)
		orders = nil
	}
	p := &pass{
		today:    e.Today(),
		stations: e.registry.Snapshot(),
		progress: sim.NewProgressView(e.source),
		orders:   orders,
	}
	if e.cfg.TraceLevel == trace.TraceLevelDecisions {
		p.trace = trace.NewSequenceTrace(trace.TraceConfig{Level: e.cfg.TraceLevel})
	}
	return p, nil
}

func (e *Engine) sequencer(tr *trace.SequenceTrace) sim.Sequencer {
	return sim.NewSequencer(e.cfg.Sequencer, sim.SequencerConfig{
		LookaheadDays: e.cfg.LookaheadDays,
		BatchBonus:    e.cfg.BatchBonus,
		Trace:         tr,
	})
}

func (e *Engine) simulator(p *pass) *sim.Simulator {
	return &sim.Simulator{Stations: p.stations, Progress: p.progress, Horizon: e.cfg.Horizon}
}

func (e *Engine) simulate(ctx context.Context, p *pass, sequence []*sim.Order) (*sim.SimulationResult, error) {
	ctx, span := tracing.StartSimulationSpan(ctx, len(sequence), e.cfg.Horizon)
	defer span.End()
	res, err := e.simulator(p).Run(ctx, sequence)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	tracing.RecordPassResult(span, len(sequence), len(res.Processed), len(res.Skipped), nil)
	return res, nil
}

func (e *Engine) record(ctx context.Context, operation string, started time.Time, res *sim.SimulationResult) {
	if e.metrics == nil || res == nil {
		return
	}
	e.metrics.RecordPass(ctx, operation, time.Since(started), len(res.Processed), len(res.Skipped))
}

// ComputeSequence returns the global processing order of orders as of today.
func (e *Engine) ComputeSequence(orders []*sim.Order) []*sim.Order {
	return e.sequencer(nil).Sequence(orders, e.Today()).Sequence
}

// SequenceResult is the sequencing decision over the active orders.
type SequenceResult struct {
	Today   time.Time
	Plan    sim.Plan
	Summary *trace.TraceSummary // nil unless decision tracing is on
}

// Sequence sequences the active orders.
func (e *Engine) Sequence(ctx context.Context) (*SequenceResult, error) {
	ctx, span := tracing.StartPassSpan(ctx, "sequence", e.Today())
	defer span.End()
	p, err := e.begin(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	plan := e.sequencer(p.trace).Sequence(p.orders, p.today)
	res := &SequenceResult{Today: p.today, Plan: plan}
	if p.trace.Enabled() {
		res.Summary = trace.Summarize(p.trace)
	}
	tracing.RecordError(span, nil)
	return res, nil
}

// activeOrder returns the active order with code, or nil.
func (p *pass) activeOrder(code string) *sim.Order {
	for _, o := range p.orders {
		if o.Code == code {
			return o
		}
	}
	return nil
}

// CriticalRatio computes the CR of o against the current queues. o may or
// may not be one of the active orders.
func (e *Engine) CriticalRatio(ctx context.Context, o *sim.Order) (risk.Ratio, error) {
	p, err := e.begin(ctx)
	if err != nil {
		return risk.Ratio{}, err
	}
	q := risk.BuildQueueSnapshot(ctx, p.orders, p.stations, p.progress)
	return q.CriticalRatio(ctx, o, p.today), nil
}

// CriticalRatioByCode computes the CR of the active order with code. The
// boolean is false when no active order has that code.
func (e *Engine) CriticalRatioByCode(ctx context.Context, code string) (risk.Ratio, bool, error) {
	p, err := e.begin(ctx)
	if err != nil {
		return risk.Ratio{}, false, err
	}
	o := p.activeOrder(code)
	if o == nil {
		return risk.Ratio{}, false, nil
	}
	q := risk.BuildQueueSnapshot(ctx, p.orders, p.stations, p.progress)
	return q.CriticalRatio(ctx, o, p.today), true, nil
}

// Analyze produces the full recommendation report. Orders are analyzed in
// processing order.
func (e *Engine) Analyze(ctx context.Context) (*risk.Report, error) {
	ctx, span := tracing.StartPassSpan(ctx, "analyze", e.Today())
	defer span.End()
	p, err := e.begin(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	sequence := e.sequencer(nil).Sequence(p.orders, p.today).Sequence
	rep := risk.Analyze(ctx, sequence, p.stations, p.progress, p.today)
	if e.metrics != nil {
		for _, r := range rep.Alarms() {
			e.metrics.RecordAlarm(ctx, string(r.Status))
		}
	}
	logrus.Infof("analysis: %d orders, %d recommendations, %d bottlenecks", len(sequence), len(rep.Recommendations), len(rep.Bottlenecks))
	tracing.RecordError(span, nil)
	return rep, nil
}

// StationStatuses returns the queue status of every station.
func (e *Engine) StationStatuses(ctx context.Context) ([]risk.StationStatus, error) {
	p, err := e.begin(ctx)
	if err != nil {
		return nil, err
	}
	return risk.BuildQueueSnapshot(ctx, p.orders, p.stations, p.progress).Statuses(), nil
}

// CanPullForward reports whether the active order with code may be moved ahead.
func (e *Engine) CanPullForward(ctx context.Context, code string) (bool, string, error) {
	p, err := e.begin(ctx)
	if err != nil {
		return false, "", err
	}
	o := p.activeOrder(code)
	if o == nil {
		return false, fmt.Sprintf("order %s is not active", code), nil
	}
	ok, reason := risk.CanPullForward(ctx, o, p.stations, p.progress)
	return ok, reason, nil
}

// FixRouteOrder sorts a user-entered station list into factory order.
func (e *Engine) FixRouteOrder(selected []string) []string {
	return e.registry.Snapshot().FixRouteOrder(selected)
}
