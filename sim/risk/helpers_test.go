package risk

import (
	"context"
	"time"

	"github.com/efes-rota/rota-planner/sim"
)

var testToday = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeReader struct {
	completed map[int64][]string
	done      map[int64]map[string]int
}

func (f *fakeReader) CompletedStations(_ context.Context, id int64) ([]string, error) {
	return f.completed[id], nil
}

func (f *fakeReader) StationProgress(_ context.Context, id int64, station string) (int, error) {
	return f.done[id][station], nil
}

func order(id int64, code string, area float64, dueDays int, route ...string) *sim.Order {
	return &sim.Order{
		ID:          id,
		Code:        code,
		ProductType: "Clear",
		Thickness:   6,
		Quantity:    10,
		Area:        area,
		Route:       route,
		Priority:    sim.PriorityNormal,
		DueDate:     testToday.AddDate(0, 0, dueDays),
		Status:      sim.StatusPending,
	}
}

func simpleStations(caps map[string]float64) *sim.Stations {
	names := make([]string, 0, len(caps))
	for n := range caps {
		names = append(names, n)
	}
	return sim.NewStations(sim.StationConfig{Order: names}, caps)
}
