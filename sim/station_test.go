package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStationConfig_IsValid(t *testing.T) {
	cfg := DefaultStationConfig()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Order, 18)
	for _, s := range cfg.Order {
		assert.Greater(t, cfg.Capacities[s], 0.0, "station %s needs a capacity", s)
	}
}

func TestStationConfig_Validate_RejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StationConfig)
	}{
		{"empty order", func(c *StationConfig) { c.Order = nil }},
		{"duplicate station", func(c *StationConfig) { c.Order = append(c.Order, "INTERMAC") }},
		{"negative capacity", func(c *StationConfig) { c.Capacities["OYGU"] = -1 }},
		{"unknown alternative", func(c *StationConfig) { c.Alternatives["INTERMAC"] = []string{"NOPE"} }},
		{"unknown batch station", func(c *StationConfig) { c.BatchStations = []string{"NOPE"} }},
		{"unknown shipping", func(c *StationConfig) { c.ShippingStation = "NOPE" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultStationConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestStations_Capacity_FallsBackForMissingAndNonPositive(t *testing.T) {
	s := testStations(map[string]float64{"CUT": 50, "ZERO": 0, "NEG": -5})

	assert.Equal(t, 50.0, s.Capacity("CUT"))
	assert.Equal(t, FallbackCapacity, s.Capacity("ZERO"))
	assert.Equal(t, FallbackCapacity, s.Capacity("NEG"))
	assert.Equal(t, FallbackCapacity, s.Capacity("MISSING"))
	assert.True(t, s.HasCapacity("CUT"))
	assert.False(t, s.HasCapacity("ZERO"))
	assert.False(t, s.HasCapacity("MISSING"))
}

func TestStations_Names_CanonicalThenExtras(t *testing.T) {
	cfg := StationConfig{Order: []string{"B", "A"}}
	s := NewStations(cfg, map[string]float64{"A": 1, "B": 1, "Z": 1, "X": 1})
	assert.Equal(t, []string{"B", "A", "X", "Z"}, s.Names())
}

func TestStations_FixRouteOrder_SortsIntoFactoryFlow(t *testing.T) {
	// GIVEN a route entered out of order with a duplicate and an unknown station
	s := NewStations(DefaultStationConfig(), DefaultStationConfig().Capacities)
	entered := []string{"TEMPER A1", "INTERMAC", " CNC RODAJ", "INTERMAC", "POLISH", "SEVKİYAT"}

	// WHEN the order is fixed
	got := s.FixRouteOrder(entered)

	// THEN known stations follow canonical order and unknown ones are kept at the end
	assert.Equal(t, []string{"INTERMAC", "CNC RODAJ", "TEMPER A1", "SEVKİYAT", "POLISH"}, got)
}

func TestStations_FixRouteOrder_Idempotent(t *testing.T) {
	s := NewStations(DefaultStationConfig(), nil)
	once := s.FixRouteOrder([]string{"ISICAM B1", "DELİK", "LIVA KESIM"})
	assert.Equal(t, once, s.FixRouteOrder(once))
}

func TestStations_GroupsAndAlternatives(t *testing.T) {
	s := NewStations(DefaultStationConfig(), nil)
	assert.Equal(t, GroupCutting, s.Group("INTERMAC"))
	assert.Equal(t, GroupTempering, s.Group("TEMPER BOMBE"))
	assert.Equal(t, "", s.Group("POLISH"))
	assert.Equal(t, []string{"TEMPER B1"}, s.Alternatives("TEMPER A1"))
	assert.True(t, s.IsBatchStation("TEMPER B1"))
	assert.False(t, s.IsBatchStation("INTERMAC"))
	assert.Equal(t, "SEVKİYAT", s.ShippingStation())
	assert.Equal(t, 0, s.Position("INTERMAC"))
	assert.Equal(t, -1, s.Position("POLISH"))
}

type fakeCapacitySource struct {
	caps  map[string]float64
	err   error
	calls int
}

func (f *fakeCapacitySource) StationCapacities(context.Context) (map[string]float64, error) {
	f.calls++
	return f.caps, f.err
}

func TestStationRegistry_MemoizesUntilInvalidated(t *testing.T) {
	// GIVEN a registry and a source overriding one capacity
	reg := NewStationRegistry(DefaultStationConfig())
	src := &fakeCapacitySource{caps: map[string]float64{"INTERMAC": 1000}}
	ctx := context.Background()

	// WHEN two passes ensure freshness
	reg.EnsureFresh(ctx, src)
	reg.EnsureFresh(ctx, src)

	// THEN the source was read once and fetched values override the config
	assert.Equal(t, 1, src.calls)
	snap := reg.Snapshot()
	assert.Equal(t, 1000.0, snap.Capacity("INTERMAC"))
	assert.Equal(t, 800.0, snap.Capacity("LIVA KESIM"))

	// WHEN invalidated
	reg.Invalidate()
	assert.True(t, reg.Stale())
	src.caps = map[string]float64{"INTERMAC": 200}
	reg.EnsureFresh(ctx, src)

	// THEN the next pass sees new values
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 200.0, reg.Snapshot().Capacity("INTERMAC"))
}

func TestStationRegistry_RefreshFailureKeepsLastKnown(t *testing.T) {
	reg := NewStationRegistry(DefaultStationConfig())
	ctx := context.Background()
	require.NoError(t, reg.Refresh(ctx, &fakeCapacitySource{caps: map[string]float64{"OYGU": 999}}))

	reg.Invalidate()
	err := reg.Refresh(ctx, &fakeCapacitySource{err: errors.New("db down")})

	assert.Error(t, err)
	assert.True(t, reg.Stale())
	assert.Equal(t, 999.0, reg.Snapshot().Capacity("OYGU"))
}

func TestStationRegistry_SnapshotIsIsolated(t *testing.T) {
	reg := NewStationRegistry(DefaultStationConfig())
	snap := reg.Snapshot()

	require.NoError(t, reg.Refresh(context.Background(), &fakeCapacitySource{caps: map[string]float64{"OYGU": 1}}))

	assert.Equal(t, 200.0, snap.Capacity("OYGU"), "earlier snapshot must not change")
}
