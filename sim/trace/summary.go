package trace

// TraceSummary aggregates statistics from a SequenceTrace.
type TraceSummary struct {
	TotalOrders      int
	TierDistribution map[string]int // tier -> number of orders
	BatchCount       int
	LargestBatch     int
	LargestBatchKey  string
	DelayedOrders    int
	MeanDelay        float64
	MaxDelay         float64
}

// Summarize computes aggregate statistics from a SequenceTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SequenceTrace) *TraceSummary {
	summary := &TraceSummary{
		TierDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalOrders = len(st.Tiers)
	for _, t := range st.Tiers {
		summary.TierDistribution[t.Tier]++
	}

	summary.BatchCount = len(st.Batches)
	for _, b := range st.Batches {
		if len(b.Members) > summary.LargestBatch {
			summary.LargestBatch = len(b.Members)
			summary.LargestBatchKey = b.Key
		}
	}

	if len(st.Impacts) > 0 {
		totalDelay := 0.0
		for _, r := range st.Impacts {
			totalDelay += r.Delay
			if r.Delay > summary.MaxDelay {
				summary.MaxDelay = r.Delay
			}
		}
		summary.DelayedOrders = len(st.Impacts)
		summary.MeanDelay = totalDelay / float64(len(st.Impacts))
	}

	return summary
}
