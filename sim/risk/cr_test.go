package risk

import (
	"context"
	"math"
	"testing"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/stretchr/testify/assert"
)

func TestCriticalRatio_SingleOrderTwoStations(t *testing.T) {
	// GIVEN one 100 m² order through CUT and TEMPER at 50 m²/day, due in 3 days
	stations := simpleStations(map[string]float64{"CUT": 50, "TEMPER": 50})
	o := order(1, "O1", 100, 3, "CUT", "TEMPER")
	ctx := context.Background()
	q := BuildQueueSnapshot(ctx, []*sim.Order{o}, stations, sim.NewProgressView(nil))

	// WHEN the critical ratio is computed
	r := q.CriticalRatio(ctx, o, testToday)

	// THEN CR = 3 / 4 = 0.75, critical
	assert.True(t, r.HasValue)
	assert.Equal(t, 0.75, r.Value)
	assert.Equal(t, StatusCritical, r.Status)
	assert.InDelta(t, 4.0, r.RemainingDays, 1e-9)
}

func TestCriticalRatio_DueTodayIsZeroAndCritical(t *testing.T) {
	stations := simpleStations(map[string]float64{"CUT": 50})
	o := order(1, "O1", 50, 0, "CUT")
	ctx := context.Background()
	q := BuildQueueSnapshot(ctx, []*sim.Order{o}, stations, sim.NewProgressView(nil))

	r := q.CriticalRatio(ctx, o, testToday)

	assert.InDelta(t, 1.0, r.RemainingDays, 1e-9)
	assert.Equal(t, 0.0, r.Value)
	assert.Equal(t, StatusCritical, r.Status)
}

func TestCriticalRatio_QueueAheadCounts(t *testing.T) {
	// GIVEN two orders sharing CUT (50 m²/day): 100 m² and 50 m²
	stations := simpleStations(map[string]float64{"CUT": 50})
	a := order(1, "A", 100, 10, "CUT")
	b := order(2, "B", 50, 6, "CUT")
	ctx := context.Background()
	q := BuildQueueSnapshot(ctx, []*sim.Order{a, b}, stations, sim.NewProgressView(nil))

	// WHEN B's ratio is computed
	r := q.CriticalRatio(ctx, b, testToday)

	// THEN B waits 2 days for A's load and needs 1 of its own: 6/3 = 2
	assert.InDelta(t, 3.0, r.RemainingDays, 1e-9)
	assert.Equal(t, 2.0, r.Value)
	assert.Equal(t, StatusSafe, r.Status)
}

func TestCriticalRatio_OverdueIsLate(t *testing.T) {
	stations := simpleStations(map[string]float64{"CUT": 50})
	o := order(1, "O1", 50, -2, "CUT")
	ctx := context.Background()
	q := BuildQueueSnapshot(ctx, []*sim.Order{o}, stations, sim.NewProgressView(nil))

	r := q.CriticalRatio(ctx, o, testToday)

	assert.Equal(t, -2.0, r.Value)
	assert.Equal(t, StatusLate, r.Status)
	assert.True(t, r.Status.IsAlarm())
}

func TestCriticalRatio_NoDueDateIsUnknown(t *testing.T) {
	stations := simpleStations(map[string]float64{"CUT": 50})
	o := order(1, "O1", 50, 0, "CUT")
	o.DueDate = sim.ParseDueDate("")
	ctx := context.Background()
	q := BuildQueueSnapshot(ctx, []*sim.Order{o}, stations, sim.NewProgressView(nil))

	r := q.CriticalRatio(ctx, o, testToday)

	assert.False(t, r.HasValue)
	assert.Equal(t, StatusUnknown, r.Status)
	assert.False(t, r.Status.IsAlarm())
}

func TestRemainingProcessingDays_FlooredWhenNothingLeft(t *testing.T) {
	// GIVEN an order whose only station is completed
	stations := simpleStations(map[string]float64{"CUT": 50})
	o := order(1, "O1", 50, 1, "CUT")
	progress := sim.NewProgressView(&fakeReader{completed: map[int64][]string{1: {"CUT"}}})
	ctx := context.Background()
	q := BuildQueueSnapshot(ctx, []*sim.Order{o}, stations, progress)

	// THEN remaining days floor at MinRemainingDays and CR = 1 / 0.1
	assert.Equal(t, MinRemainingDays, q.RemainingProcessingDays(ctx, o))
	assert.Equal(t, 10.0, q.CriticalRatio(ctx, o, testToday).Value)
}

func TestRemainingProcessingDays_OrderOutsideSnapshotWaitsForFullQueue(t *testing.T) {
	stations := simpleStations(map[string]float64{"CUT": 50})
	queued := order(1, "A", 100, 10, "CUT")
	ctx := context.Background()
	q := BuildQueueSnapshot(ctx, []*sim.Order{queued}, stations, sim.NewProgressView(nil))

	outsider := order(0, "NEW", 50, 10, "CUT")
	outsider.Hypothetical = true

	assert.InDelta(t, 3.0, q.RemainingProcessingDays(ctx, outsider), 1e-9)
}

func TestClassifyRatio_Boundaries(t *testing.T) {
	tests := []struct {
		cr   float64
		want Status
	}{
		{-0.01, StatusLate},
		{0, StatusCritical},
		{0.79, StatusCritical},
		{0.8, StatusRisk},
		{0.99, StatusRisk},
		{1.0, StatusTight},
		{1.49, StatusTight},
		{1.5, StatusSafe},
		{12, StatusSafe},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRatio(tt.cr), "cr=%v", tt.cr)
	}
}

func TestCriticalRatio_StatusUsesUnroundedRatio(t *testing.T) {
	tests := []struct {
		name       string
		area       float64
		capacity   float64
		dueDays    int
		wantValue  float64
		wantStatus Status
	}{
		// -1/300 rounds to zero but is still overdue
		{name: "overdue with long queue", area: 300, capacity: 1, dueDays: -1, wantValue: 0, wantStatus: StatusLate},
		// 4/5.03 = 0.7952 rounds to 0.80 but stays critical
		{name: "just below risk band", area: 503, capacity: 100, dueDays: 4, wantValue: 0.8, wantStatus: StatusCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a single order on CUT
			stations := simpleStations(map[string]float64{"CUT": tt.capacity})
			o := order(1, "O1", tt.area, tt.dueDays, "CUT")
			ctx := context.Background()
			q := BuildQueueSnapshot(ctx, []*sim.Order{o}, stations, sim.NewProgressView(nil))

			// WHEN the critical ratio is computed
			r := q.CriticalRatio(ctx, o, testToday)

			// THEN the value is rounded but the status follows the raw ratio
			assert.InDelta(t, tt.wantValue, r.Value, 1e-9)
			assert.False(t, math.Signbit(r.Value))
			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}
