package risk

import (
	"context"
	"testing"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueSnapshot_LoadsUseRemainingArea(t *testing.T) {
	// GIVEN an order with CUT done and 4 of 10 pieces through EDGE
	stations := simpleStations(map[string]float64{"CUT": 100, "EDGE": 50})
	o := order(1, "A", 100, 5, "CUT", "EDGE")
	progress := sim.NewProgressView(&fakeReader{
		completed: map[int64][]string{1: {"CUT"}},
		done:      map[int64]map[string]int{1: {"EDGE": 4}},
	})

	q := BuildQueueSnapshot(context.Background(), []*sim.Order{o}, stations, progress)

	assert.Equal(t, 0.0, q.Load("CUT"))
	assert.InDelta(t, 60.0, q.Load("EDGE"), 1e-9)
}

func TestQueueSnapshot_StatusBands(t *testing.T) {
	stations := simpleStations(map[string]float64{"IDLE": 10, "NORMAL": 100, "BUSY": 50, "OVER": 10})
	orders := []*sim.Order{
		order(1, "A", 100, 5, "NORMAL", "BUSY", "OVER"),
	}
	q := BuildQueueSnapshot(context.Background(), orders, stations, sim.NewProgressView(nil))

	assert.Equal(t, LoadIdle, q.Status("IDLE").Status)
	assert.Equal(t, LoadNormal, q.Status("NORMAL").Status)
	assert.Equal(t, LoadBusy, q.Status("BUSY").Status)
	over := q.Status("OVER")
	assert.Equal(t, LoadOverload, over.Status)
	assert.Equal(t, 100, over.LoadPercent, "percent is capped")
	assert.Equal(t, 1, over.QueueCount)
	assert.InDelta(t, 10.0, over.QueueDays, 1e-9)
}

func TestQueueSnapshot_BottlenecksSortedByRatio(t *testing.T) {
	stations := simpleStations(map[string]float64{"A": 10, "B": 20, "C": 100})
	orders := []*sim.Order{order(1, "X", 100, 5, "A", "B", "C")}
	q := BuildQueueSnapshot(context.Background(), orders, stations, sim.NewProgressView(nil))

	bn := q.Bottlenecks()

	require.Len(t, bn, 2)
	assert.Equal(t, "A", bn[0].Station)
	assert.Equal(t, "B", bn[1].Station)
}

func TestQueueSnapshot_IdleStationsExcludeShipping(t *testing.T) {
	cfg := sim.DefaultStationConfig()
	stations := sim.NewStations(cfg, cfg.Capacities)
	orders := []*sim.Order{order(1, "X", 10, 5, "INTERMAC")}
	q := BuildQueueSnapshot(context.Background(), orders, stations, sim.NewProgressView(nil))

	idle := q.IdleStations()

	assert.NotContains(t, idle, "SEVKİYAT")
	assert.NotContains(t, idle, "INTERMAC")
	assert.Contains(t, idle, "TEMPER A1")
	assert.Len(t, idle, len(cfg.Order)-2)
}
