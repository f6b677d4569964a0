package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSequenceTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalOrders != 0 {
		t.Errorf("expected 0 orders, got %d", summary.TotalOrders)
	}
	if summary.BatchCount != 0 || summary.LargestBatch != 0 {
		t.Error("expected no batches")
	}
	if summary.MeanDelay != 0 || summary.MaxDelay != 0 || summary.DelayedOrders != 0 {
		t.Error("expected zero delay values")
	}
	if len(summary.TierDistribution) != 0 {
		t.Error("expected empty tier distribution")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with three tier records, two batches and two impacts
	st := NewSequenceTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordTier(TierRecord{OrderCode: "A", Tier: "urgent"})
	st.RecordTier(TierRecord{OrderCode: "B", Tier: "near-term"})
	st.RecordTier(TierRecord{OrderCode: "C", Tier: "near-term"})
	st.RecordBatch(BatchRecord{Key: "8mm Clear", Members: []string{"B"}})
	st.RecordBatch(BatchRecord{Key: "6mm Clear", Members: []string{"C", "D"}})
	st.RecordImpact(ImpactRecord{OrderCode: "B", Delay: 1})
	st.RecordImpact(ImpactRecord{OrderCode: "C", Delay: 3})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts reflect the records
	if summary.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", summary.TotalOrders)
	}
	if summary.TierDistribution["near-term"] != 2 {
		t.Errorf("expected 2 near-term orders, got %d", summary.TierDistribution["near-term"])
	}
	if summary.BatchCount != 2 {
		t.Errorf("expected 2 batches, got %d", summary.BatchCount)
	}
	if summary.LargestBatch != 2 || summary.LargestBatchKey != "6mm Clear" {
		t.Errorf("expected largest batch 6mm Clear with 2 members, got %s with %d", summary.LargestBatchKey, summary.LargestBatch)
	}
	if summary.DelayedOrders != 2 {
		t.Errorf("expected 2 delayed orders, got %d", summary.DelayedOrders)
	}
	if summary.MeanDelay != 2 {
		t.Errorf("expected mean delay 2, got %f", summary.MeanDelay)
	}
	if summary.MaxDelay != 3 {
		t.Errorf("expected max delay 3, got %f", summary.MaxDelay)
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("expected non-nil summary")
	}
	if summary.TotalOrders != 0 {
		t.Errorf("expected 0 orders, got %d", summary.TotalOrders)
	}
}
