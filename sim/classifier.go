package sim

import (
	"fmt"
	"time"

	"github.com/efes-rota/rota-planner/sim/trace"
)

// Tier is the urgency class an order is sequenced in.
type Tier string

const (
	// TierUrgent holds overdue, nearly due and escalated orders. Never reordered for batching.
	TierUrgent Tier = "urgent"
	// TierNearTerm holds normal orders due inside the lookahead window. Batched.
	TierNearTerm Tier = "near-term"
	// TierFarTerm holds everything else, including orders without a due date.
	TierFarTerm Tier = "far-term"
)

const (
	// DefaultLookaheadDays is the window within which normal orders are batched.
	DefaultLookaheadDays = 30
	// UrgentDueDays: orders due in fewer days than this are urgent regardless of priority.
	UrgentDueDays = 2
)

// Tiers is the disjoint partition of a pending order set.
// Each slice preserves the input order of its members.
type Tiers struct {
	Urgent   []*Order
	NearTerm []*Order
	FarTerm  []*Order
}

// Len returns the total number of classified orders.
func (t Tiers) Len() int {
	return len(t.Urgent) + len(t.NearTerm) + len(t.FarTerm)
}

// ClassifyOrder returns the tier of o and a short human-readable reason.
// Rules are evaluated in fixed priority: urgent, then near-term, then far-term.
func ClassifyOrder(o *Order, today time.Time, lookaheadDays int) (Tier, string) {
	days, known := o.DaysUntilDue(today)
	switch {
	case known && days < UrgentDueDays:
		if days < 0 {
			return TierUrgent, fmt.Sprintf("overdue by %d days", -days)
		}
		return TierUrgent, fmt.Sprintf("due in %d days", days)
	case o.Priority.IsEscalated():
		return TierUrgent, fmt.Sprintf("priority %s", o.Priority)
	case known && days <= lookaheadDays:
		return TierNearTerm, fmt.Sprintf("due within %d-day window", lookaheadDays)
	case !known:
		return TierFarTerm, "no due date"
	default:
		return TierFarTerm, fmt.Sprintf("due beyond %d-day window", lookaheadDays)
	}
}

// Classify partitions orders into urgent, near-term and far-term tiers.
// Every order lands in exactly one tier. Decisions are recorded into tr when
// tracing is enabled; tr may be nil.
func Classify(orders []*Order, today time.Time, lookaheadDays int, tr *trace.SequenceTrace) Tiers {
	var tiers Tiers
	for _, o := range orders {
		tier, reason := ClassifyOrder(o, today, lookaheadDays)
		switch tier {
		case TierUrgent:
			tiers.Urgent = append(tiers.Urgent, o)
		case TierNearTerm:
			tiers.NearTerm = append(tiers.NearTerm, o)
		default:
			tiers.FarTerm = append(tiers.FarTerm, o)
		}
		if tr.Enabled() {
			days, known := o.DaysUntilDue(today)
			tr.RecordTier(trace.TierRecord{
				OrderCode:    o.Code,
				Tier:         string(tier),
				Priority:     string(o.Priority),
				DaysUntilDue: days,
				KnownDue:     known,
				Reason:       reason,
			})
		}
	}
	return tiers
}
