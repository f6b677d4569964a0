package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriority_Rank_OrdersCriticalFirst(t *testing.T) {
	assert.Equal(t, 0, PriorityCritical.Rank())
	assert.Equal(t, 1, PriorityVeryUrgent.Rank())
	assert.Equal(t, 2, PriorityUrgent.Rank())
	assert.Equal(t, 3, PriorityNormal.Rank())
	assert.Equal(t, 3, Priority("whatever").Rank(), "unknown priorities rank as Normal")
}

func TestParsePriority_AcceptsCanonicalAndLegacyLabels(t *testing.T) {
	tests := []struct {
		label string
		want  Priority
	}{
		{"Critical", PriorityCritical},
		{"VeryUrgent", PriorityVeryUrgent},
		{" Urgent ", PriorityUrgent},
		{"Kritik", PriorityCritical},
		{"Çok Acil", PriorityVeryUrgent},
		{"acil", PriorityUrgent},
		{"", PriorityNormal},
		{"???", PriorityNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePriority(tt.label), "label %q", tt.label)
	}
}

func TestParseDueDate_MalformedIsUnknown(t *testing.T) {
	assert.True(t, ParseDueDate("").IsZero())
	assert.True(t, ParseDueDate("01/02/2025").IsZero())
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), ParseDueDate("2025-02-01"))
}

func TestOrder_EffectiveArea_FallsBackToDimensions(t *testing.T) {
	// GIVEN an order without declared area but with dimensions
	o := &Order{Width: 100, Height: 50, Quantity: 4}

	// THEN area is w × h × q / 10000
	assert.InDelta(t, 2.0, o.EffectiveArea(), 1e-9)

	o.Area = 7.5
	assert.Equal(t, 7.5, o.EffectiveArea(), "declared area wins")

	assert.Equal(t, 0.0, (&Order{}).EffectiveArea())
}

func TestOrder_DaysUntilDue_IgnoresTimeOfDay(t *testing.T) {
	// GIVEN a due date two days out and a "today" late in the evening
	o := &Order{DueDate: dueIn(2)}
	evening := testToday.Add(23 * time.Hour)

	// WHEN days until due are computed
	days, known := o.DaysUntilDue(evening)

	// THEN calendar days are counted
	assert.True(t, known)
	assert.Equal(t, 2, days)

	_, known = (&Order{}).DaysUntilDue(testToday)
	assert.False(t, known)
}

func TestDueBefore_UnknownDatesSortLast(t *testing.T) {
	known := &Order{DueDate: dueIn(50)}
	unknown := &Order{}
	assert.True(t, dueBefore(known, unknown))
	assert.False(t, dueBefore(unknown, known))
	assert.False(t, dueBefore(unknown, unknown))
}

func TestOrder_BatchKey(t *testing.T) {
	o := &Order{Thickness: 8, ProductType: "Laminated"}
	assert.Equal(t, BatchKey{Thickness: 8, ProductType: "Laminated"}, o.BatchKey())
	assert.Equal(t, "8mm Laminated", o.BatchKey().String())
	assert.Equal(t, "8mm", o.BatchTag())
}
