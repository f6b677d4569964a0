package sim

import (
	"context"
	"errors"
	"time"
)

var testToday = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// dueIn returns a due date n days after testToday.
func dueIn(n int) time.Time {
	return testToday.AddDate(0, 0, n)
}

func newTestOrder(code string, area float64, route ...string) *Order {
	return &Order{
		Code:        code,
		ProductType: "Clear",
		Thickness:   6,
		Quantity:    10,
		Area:        area,
		Route:       route,
		Priority:    PriorityNormal,
		Status:      StatusPending,
	}
}

func codes(orders []*Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.Code
	}
	return out
}

// fakeProgress is an in-memory ProgressReader keyed by order id.
type fakeProgress struct {
	completed map[int64][]string
	done      map[int64]map[string]int
	err       error
	calls     int
}

func (f *fakeProgress) CompletedStations(_ context.Context, id int64) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.completed[id], nil
}

func (f *fakeProgress) StationProgress(_ context.Context, id int64, station string) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.done[id][station], nil
}

var errReadFailed = errors.New("read failed")

func testStations(caps map[string]float64) *Stations {
	return NewStations(StationConfig{}, caps)
}
