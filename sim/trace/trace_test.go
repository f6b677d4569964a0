package trace

import (
	"testing"
)

func TestSequenceTrace_RecordTier_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSequenceTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a tier record is recorded
	st.RecordTier(TierRecord{
		OrderCode:    "ORD-1",
		Tier:         "urgent",
		Priority:     "Critical",
		DaysUntilDue: 12,
		KnownDue:     true,
		Reason:       "priority Critical",
	})

	// THEN the trace contains one tier record with correct data
	if len(st.Tiers) != 1 {
		t.Fatalf("expected 1 tier record, got %d", len(st.Tiers))
	}
	if st.Tiers[0].OrderCode != "ORD-1" {
		t.Errorf("expected order ORD-1, got %s", st.Tiers[0].OrderCode)
	}
	if st.Tiers[0].Tier != "urgent" {
		t.Errorf("expected tier urgent, got %s", st.Tiers[0].Tier)
	}
}

func TestSequenceTrace_RecordBatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSequenceTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a batch record is recorded
	st.RecordBatch(BatchRecord{
		Key:             "6mm Clear",
		Rank:            0,
		Score:           -5,
		AvgDaysUntilDue: 7.5,
		Members:         []string{"A", "B"},
	})

	// THEN the record is stored with its members
	if len(st.Batches) != 1 {
		t.Fatalf("expected 1 batch record, got %d", len(st.Batches))
	}
	if len(st.Batches[0].Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(st.Batches[0].Members))
	}
}

func TestSequenceTrace_RecordImpact_AppendsRecord(t *testing.T) {
	st := NewSequenceTrace(TraceConfig{Level: TraceLevelDecisions})

	st.RecordImpact(ImpactRecord{OrderCode: "A", OldFinish: 2, NewFinish: 3.5, Delay: 1.5})

	if len(st.Impacts) != 1 {
		t.Fatalf("expected 1 impact record, got %d", len(st.Impacts))
	}
	if st.Impacts[0].Delay != 1.5 {
		t.Errorf("expected delay 1.5, got %f", st.Impacts[0].Delay)
	}
}

func TestSequenceTrace_LevelNone_RecordsNothing(t *testing.T) {
	// GIVEN a trace with tracing disabled
	st := NewSequenceTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN records are offered
	st.RecordTier(TierRecord{OrderCode: "A"})
	st.RecordBatch(BatchRecord{Key: "k"})
	st.RecordImpact(ImpactRecord{OrderCode: "A"})

	// THEN nothing is kept
	if len(st.Tiers)+len(st.Batches)+len(st.Impacts) != 0 {
		t.Error("expected no records when tracing is disabled")
	}
}

func TestSequenceTrace_NilIsSafe(t *testing.T) {
	var st *SequenceTrace
	if st.Enabled() {
		t.Error("nil trace must not be enabled")
	}
	st.RecordTier(TierRecord{OrderCode: "A"})
	st.RecordBatch(BatchRecord{Key: "k"})
	st.RecordImpact(ImpactRecord{OrderCode: "A"})
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"detailed", false},
		{"invalid", false},
	}
	for _, tc := range tests {
		if got := IsValidTraceLevel(tc.level); got != tc.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}
