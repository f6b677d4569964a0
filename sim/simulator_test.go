package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_Run_TwoStationRoute(t *testing.T) {
	// GIVEN one 100 m² order through CUT then TEMPER, both at 50 m²/day
	stations := testStations(map[string]float64{"CUT": 50, "TEMPER": 50})
	o := newTestOrder("A", 100, "CUT", "TEMPER")
	simulator := NewSimulator(stations, nil, 10)

	// WHEN simulated
	res, err := simulator.Run(context.Background(), []*Order{o})
	require.NoError(t, err)

	// THEN CUT occupies [0,2), TEMPER [2,4), and the order finishes on day 4
	require.Len(t, res.Segments, 2)
	assert.Equal(t, Segment{OrderCode: "A", Station: "CUT", Start: 0, End: 2}, res.Segments[0])
	assert.Equal(t, Segment{OrderCode: "A", Station: "TEMPER", Start: 2, End: 4}, res.Segments[1])
	assert.Equal(t, 4.0, res.FinishDays["A"])

	// AND both stations show two full days of load
	pct := res.Grid.LoadPercent()
	assert.Equal(t, []float64{100, 100, 0, 0}, pct["CUT"][:4])
	assert.Equal(t, []float64{0, 0, 100, 100}, pct["TEMPER"][:4])
}

func TestSimulator_Run_StationsNeverOverlap(t *testing.T) {
	// GIVEN three orders sharing a station
	stations := testStations(map[string]float64{"CUT": 40, "EDGE": 25})
	orders := []*Order{
		newTestOrder("A", 30, "CUT", "EDGE"),
		newTestOrder("B", 70, "CUT"),
		newTestOrder("C", 10, "EDGE", "CUT"),
	}

	res, err := NewSimulator(stations, nil, 30).Run(context.Background(), orders)
	require.NoError(t, err)

	// THEN segments on the same station are disjoint and in processing order
	byStation := map[string][]Segment{}
	for _, s := range res.Segments {
		byStation[s.Station] = append(byStation[s.Station], s)
	}
	for station, segs := range byStation {
		for i := 1; i < len(segs); i++ {
			assert.GreaterOrEqual(t, segs[i].Start, segs[i-1].End-1e-9, "station %s segments %d/%d overlap", station, i-1, i)
		}
	}
}

func TestSimulator_Run_DailyLoadNeverExceedsCapacity(t *testing.T) {
	// GIVEN orders with fractional durations crossing day boundaries
	stations := testStations(map[string]float64{"CUT": 40, "EDGE": 25, "TEMPER": 60})
	orders := []*Order{
		newTestOrder("A", 33, "CUT", "EDGE", "TEMPER"),
		newTestOrder("B", 71, "CUT", "TEMPER"),
		newTestOrder("C", 12.5, "EDGE", "TEMPER"),
		newTestOrder("D", 58, "CUT", "EDGE"),
		newTestOrder("E", 140, "TEMPER"),
	}

	// WHEN simulated
	res, err := NewSimulator(stations, nil, 30).Run(context.Background(), orders)
	require.NoError(t, err)

	// THEN no station carries more than one day of capacity on any day
	pct := res.Grid.LoadPercent()
	for station, days := range res.Grid.LoadArea() {
		capacity := stations.Capacity(station)
		for d, area := range days {
			assert.LessOrEqual(t, area, capacity+1e-9, "station %s day %d", station, d)
			assert.LessOrEqual(t, pct[station][d], 100+1e-9, "station %s day %d", station, d)
		}
	}
}

func TestSimulator_Run_RouteStepsRespectPrecedence(t *testing.T) {
	stations := testStations(map[string]float64{"CUT": 40, "EDGE": 25, "TEMPER": 60})
	orders := []*Order{
		newTestOrder("A", 30, "CUT", "EDGE", "TEMPER"),
		newTestOrder("B", 70, "EDGE", "TEMPER"),
		newTestOrder("C", 10, "CUT", "TEMPER"),
	}

	res, err := NewSimulator(stations, nil, 30).Run(context.Background(), orders)
	require.NoError(t, err)

	last := map[string]float64{}
	for _, s := range res.Segments {
		assert.GreaterOrEqual(t, s.Start, last[s.OrderCode]-1e-9, "order %s starts %s before finishing its previous step", s.OrderCode, s.Station)
		assert.Greater(t, s.End, s.Start)
		last[s.OrderCode] = s.End
	}
	for code, end := range last {
		assert.Equal(t, end, res.FinishDays[code])
	}
}

func TestSimulator_Run_SecondOrderWaitsForMachine(t *testing.T) {
	stations := testStations(map[string]float64{"CUT": 50})
	res, err := NewSimulator(stations, nil, 10).Run(context.Background(), []*Order{
		newTestOrder("A", 100, "CUT"),
		newTestOrder("B", 25, "CUT"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, res.FinishDays["A"])
	assert.Equal(t, 2.5, res.FinishDays["B"])
	assert.Equal(t, []string{"A", "B"}, res.Processed)
	assert.Equal(t, 2.5, res.StationFreeTime["CUT"])
}

func TestSimulator_Run_SkipsCompletedAndScalesPartialProgress(t *testing.T) {
	// GIVEN an order with CUT completed and half of TEMPER done
	stations := testStations(map[string]float64{"CUT": 50, "TEMPER": 50})
	o := newTestOrder("A", 100, "CUT", "TEMPER")
	o.ID = 7
	o.Quantity = 10
	progress := &fakeProgress{
		completed: map[int64][]string{7: {"CUT"}},
		done:      map[int64]map[string]int{7: {"TEMPER": 5}},
	}

	res, err := NewSimulator(stations, progress, 10).Run(context.Background(), []*Order{o})
	require.NoError(t, err)

	// THEN only 50 m² remain at TEMPER: one day
	require.Len(t, res.Segments, 1)
	assert.Equal(t, Segment{OrderCode: "A", Station: "TEMPER", Start: 0, End: 1}, res.Segments[0])
	assert.Equal(t, 50.0, res.Grid.TotalArea("TEMPER"))
}

func TestSimulator_Run_FullyDoneStationConsumesNothing(t *testing.T) {
	stations := testStations(map[string]float64{"CUT": 50})
	o := newTestOrder("A", 100, "CUT")
	o.ID = 1
	progress := &fakeProgress{done: map[int64]map[string]int{1: {"CUT": 10}}}

	res, err := NewSimulator(stations, progress, 10).Run(context.Background(), []*Order{o})
	require.NoError(t, err)

	assert.Empty(t, res.Segments)
	assert.Equal(t, 0.0, res.FinishDays["A"])
}

func TestSimulator_Run_SkipsOrdersWithoutArea(t *testing.T) {
	stations := testStations(map[string]float64{"CUT": 50})
	o := newTestOrder("EMPTY", 0, "CUT")
	o.Quantity = 0

	res, err := NewSimulator(stations, nil, 10).Run(context.Background(), []*Order{o})
	require.NoError(t, err)

	assert.Equal(t, []string{"EMPTY"}, res.Skipped)
	assert.Empty(t, res.Segments)
	_, ok := res.FinishDays["EMPTY"]
	assert.False(t, ok)
}

func TestSimulator_Run_UnknownStationUsesFallbackCapacity(t *testing.T) {
	// GIVEN a route through a station with no configured capacity
	stations := testStations(map[string]float64{"CUT": 50})
	o := newTestOrder("A", 2, "POLISH")

	res, err := NewSimulator(stations, nil, 10).Run(context.Background(), []*Order{o})
	require.NoError(t, err)

	// THEN it runs at FallbackCapacity and gets a grid row
	assert.Equal(t, 2.0, res.FinishDays["A"])
	assert.Contains(t, res.Grid.Stations, "POLISH")
	assert.Equal(t, 100.0, res.Grid.Stations["POLISH"][0].LoadPercent)
}

func TestSimulator_Run_LoadBeyondHorizonIsDropped(t *testing.T) {
	stations := testStations(map[string]float64{"CUT": 10})
	o := newTestOrder("A", 50, "CUT")

	res, err := NewSimulator(stations, nil, 3).Run(context.Background(), []*Order{o})
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.FinishDays["A"], "finish is not clipped to the horizon")
	assert.Len(t, res.Grid.Stations["CUT"], 3)
	assert.Equal(t, 30.0, res.Grid.TotalArea("CUT"))
}

func TestSimulator_Run_HypotheticalOrderNeverReadsProgress(t *testing.T) {
	stations := testStations(map[string]float64{"CUT": 50})
	progress := &fakeProgress{}
	o := newTestOrder("NEW", 50, "CUT")
	o.Hypothetical = true

	res, err := NewSimulator(stations, progress, 10).Run(context.Background(), []*Order{o})
	require.NoError(t, err)

	assert.True(t, res.HasHypothetical)
	assert.Equal(t, 1.0, res.HypotheticalFinish)
	assert.Equal(t, 0, progress.calls)
}

func TestSimulator_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(testStations(nil), nil, 10).Run(ctx, []*Order{newTestOrder("A", 1, "CUT")})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_Run_IsDeterministic(t *testing.T) {
	stations := testStations(map[string]float64{"CUT": 33, "EDGE": 17})
	orders := []*Order{
		newTestOrder("A", 41, "CUT", "EDGE"),
		newTestOrder("B", 13, "EDGE"),
		newTestOrder("C", 77, "CUT", "EDGE"),
	}
	first, err := NewSimulator(stations, nil, 10).Run(context.Background(), orders)
	require.NoError(t, err)
	second, err := NewSimulator(stations, nil, 10).Run(context.Background(), orders)
	require.NoError(t, err)

	assert.Equal(t, first.Segments, second.Segments)
	assert.Equal(t, first.Grid.LoadArea(), second.Grid.LoadArea())
}

func TestNewSimulator_DefaultHorizon(t *testing.T) {
	assert.Equal(t, DefaultHorizonDays, NewSimulator(testStations(nil), nil, 0).Horizon)
}
