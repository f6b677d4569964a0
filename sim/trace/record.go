// Package trace provides decision-trace recording for sequencing analysis.
// This package has no dependencies on sim/ or sim/planner/; it stores pure data types.
package trace

// TierRecord captures the urgency tier assigned to one order.
type TierRecord struct {
	OrderCode    string
	Tier         string
	Priority     string
	DaysUntilDue int // meaningless when KnownDue is false
	KnownDue     bool
	Reason       string
}

// BatchRecord captures one scored near-term batch.
type BatchRecord struct {
	Key             string
	Rank            int // position after sorting by score desc (0-based)
	Score           float64
	AvgDaysUntilDue float64
	Members         []string // order codes, due date ascending
}

// ImpactRecord captures one existing order pushed back by a hypothetical insertion.
type ImpactRecord struct {
	OrderCode string
	OldFinish float64
	NewFinish float64
	Delay     float64 // NewFinish - OldFinish, > 0
}
