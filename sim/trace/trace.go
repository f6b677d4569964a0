package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures tier, batch and impact decisions.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SequenceTrace collects decision records during one planning pass.
// A nil *SequenceTrace is valid and records nothing.
type SequenceTrace struct {
	Config  TraceConfig
	Tiers   []TierRecord
	Batches []BatchRecord
	Impacts []ImpactRecord
}

// NewSequenceTrace creates a SequenceTrace ready for recording.
func NewSequenceTrace(config TraceConfig) *SequenceTrace {
	return &SequenceTrace{
		Config:  config,
		Tiers:   make([]TierRecord, 0),
		Batches: make([]BatchRecord, 0),
		Impacts: make([]ImpactRecord, 0),
	}
}

// Enabled reports whether records should be collected.
func (st *SequenceTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordTier appends a tier decision record.
func (st *SequenceTrace) RecordTier(record TierRecord) {
	if !st.Enabled() {
		return
	}
	st.Tiers = append(st.Tiers, record)
}

// RecordBatch appends a batch scoring record.
func (st *SequenceTrace) RecordBatch(record BatchRecord) {
	if !st.Enabled() {
		return
	}
	st.Batches = append(st.Batches, record)
}

// RecordImpact appends an impact record.
func (st *SequenceTrace) RecordImpact(record ImpactRecord) {
	if !st.Enabled() {
		return
	}
	st.Impacts = append(st.Impacts, record)
}
