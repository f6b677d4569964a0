package sim

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/efes-rota/rota-planner/sim/trace"
)

// Plan is the outcome of one sequencing decision.
type Plan struct {
	// Sequence is the global processing order handed to the Simulator.
	Sequence []*Order
	// Tiers and Batches are populated by the tiered sequencer only.
	Tiers   Tiers
	Batches []Batch
}

// Sequencer turns a pending order set into a single global processing order.
// Implementations MUST NOT modify the orders, and MUST return every input
// order exactly once.
type Sequencer interface {
	Sequence(orders []*Order, today time.Time) Plan
}

// SequencerConfig holds tunables shared by the sequencers.
type SequencerConfig struct {
	LookaheadDays int
	BatchBonus    float64
	Trace         *trace.SequenceTrace // optional
}

// DefaultSequencerConfig returns the production defaults.
func DefaultSequencerConfig() SequencerConfig {
	return SequencerConfig{
		LookaheadDays: DefaultLookaheadDays,
		BatchBonus:    DefaultBatchBonus,
	}
}

// TieredSequencer is the production sequencer: urgent orders first (priority
// rank, then due date), then near-term batches by score, then far-term orders
// by due date. Far-future orders are never batched so they cannot starve
// near-term work.
type TieredSequencer struct {
	LookaheadDays int
	BatchBonus    float64
	Trace         *trace.SequenceTrace
}

func (s *TieredSequencer) Sequence(orders []*Order, today time.Time) Plan {
	tiers := Classify(orders, today, s.LookaheadDays, s.Trace)

	urgent := slices.Clone(tiers.Urgent)
	sortByPriorityThenDue(urgent)

	batches := FormBatches(tiers.NearTerm, today, s.BatchBonus, s.Trace)

	far := slices.Clone(tiers.FarTerm)
	sortByDue(far)

	sequence := make([]*Order, 0, len(orders))
	sequence = append(sequence, urgent...)
	for _, b := range batches {
		sequence = append(sequence, b.Orders...)
	}
	sequence = append(sequence, far...)

	return Plan{
		Sequence: sequence,
		Tiers:    Tiers{Urgent: urgent, NearTerm: tiers.NearTerm, FarTerm: far},
		Batches:  batches,
	}
}

// EDDSequencer sorts purely by due date (earliest first). Diagnostic baseline.
type EDDSequencer struct{}

func (e *EDDSequencer) Sequence(orders []*Order, _ time.Time) Plan {
	sequence := slices.Clone(orders)
	sortByDue(sequence)
	return Plan{Sequence: sequence}
}

// PriorityEDDSequencer sorts by priority rank, then due date, without tiers or
// batching. Diagnostic baseline.
type PriorityEDDSequencer struct{}

func (p *PriorityEDDSequencer) Sequence(orders []*Order, _ time.Time) Plan {
	sequence := slices.Clone(orders)
	sortByPriorityThenDue(sequence)
	return Plan{Sequence: sequence}
}

// sortByPriorityThenDue sorts by (rank asc, due asc); unknown dates last.
func sortByPriorityThenDue(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		ri, rj := orders[i].Priority.Rank(), orders[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return dueBefore(orders[i], orders[j])
	})
}

func sortByDue(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return dueBefore(orders[i], orders[j])
	})
}

// validSequencers is the set of recognized sequencer names.
var validSequencers = map[string]bool{"": true, "tiered": true, "edd": true, "priority-edd": true}

// IsValidSequencer reports whether name is a recognized sequencer.
func IsValidSequencer(name string) bool {
	return validSequencers[name]
}

// ValidSequencerNames returns the non-empty sequencer names, sorted.
func ValidSequencerNames() []string {
	names := make([]string, 0, len(validSequencers))
	for n := range validSequencers {
		if n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// NewSequencer creates a Sequencer by name.
// Empty string defaults to TieredSequencer (for CLI flag default compatibility).
// Panics on unrecognized names.
func NewSequencer(name string, cfg SequencerConfig) Sequencer {
	if !IsValidSequencer(name) {
		panic(fmt.Sprintf("unknown sequencer %q", name))
	}
	switch name {
	case "", "tiered":
		return &TieredSequencer{
			LookaheadDays: cfg.LookaheadDays,
			BatchBonus:    cfg.BatchBonus,
			Trace:         cfg.Trace,
		}
	case "edd":
		return &EDDSequencer{}
	case "priority-edd":
		return &PriorityEDDSequencer{}
	default:
		panic(fmt.Sprintf("unhandled sequencer %q", name))
	}
}
