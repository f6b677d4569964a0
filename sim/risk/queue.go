// Package risk implements the closed-form schedule-risk model: per-station
// queue snapshots, critical ratios, bottlenecks and the recommendations built
// from them.
//
// This model is deliberately cheaper than the day-by-day simulator in package
// sim: it treats every station's queued area as a single backlog instead of
// placing work on a calendar. The two models can disagree about an order's
// finish; the simulator is the reference for delivery dates, the critical
// ratio is only a dashboard risk proxy.
package risk

import (
	"context"
	"sort"

	"github.com/efes-rota/rota-planner/sim"
)

const (
	// BottleneckRatio is the queued-load/capacity ratio above which a station
	// is a bottleneck (more than two days of backlog).
	BottleneckRatio = 2.0
)

// LoadStatus classifies a station's backlog.
type LoadStatus string

const (
	LoadIdle     LoadStatus = "idle"     // nothing queued
	LoadNormal   LoadStatus = "normal"   // at most one day of backlog
	LoadBusy     LoadStatus = "busy"     // at most two days
	LoadOverload LoadStatus = "overload" // more than two days
)

// StationStatus is a point-in-time view of one station's queue.
type StationStatus struct {
	Station     string     `json:"station"`
	LoadArea    float64    `json:"load_m2"`
	Capacity    float64    `json:"capacity"`
	Ratio       float64    `json:"ratio"`
	QueueDays   float64    `json:"queue_days"`
	QueueCount  int        `json:"queue_count"`
	LoadPercent int        `json:"load_percent"` // capped at 100
	Status      LoadStatus `json:"status"`
}

// QueueSnapshot is the queued remaining area per station across a set of
// orders, taken once and then queried by the risk calculations.
type QueueSnapshot struct {
	stations *sim.Stations
	progress *sim.ProgressView

	loads  map[string]float64
	queues map[string][]string
	// own maps order code -> station -> remaining area contributed.
	own map[string]map[string]float64
}

// BuildQueueSnapshot queues every order's remaining area at each of its not
// yet completed stations.
func BuildQueueSnapshot(ctx context.Context, orders []*sim.Order, stations *sim.Stations, progress *sim.ProgressView) *QueueSnapshot {
	q := &QueueSnapshot{
		stations: stations,
		progress: progress,
		loads:    make(map[string]float64),
		queues:   make(map[string][]string),
		own:      make(map[string]map[string]float64, len(orders)),
	}
	for _, o := range orders {
		if len(o.Route) == 0 {
			continue
		}
		contrib := q.remainingByStation(ctx, o)
		for _, station := range o.Route {
			area, ok := contrib[station]
			if !ok {
				continue
			}
			q.loads[station] += area
			q.queues[station] = append(q.queues[station], o.Code)
		}
		q.own[o.Code] = contrib
	}
	return q
}

// remainingByStation returns the remaining area of o at each pending station.
func (q *QueueSnapshot) remainingByStation(ctx context.Context, o *sim.Order) map[string]float64 {
	out := make(map[string]float64)
	area := o.EffectiveArea()
	completed := q.progress.Completed(ctx, o)
	for _, station := range sim.RemainingRoute(o.Route, completed) {
		ratio := q.progress.RemainingRatio(ctx, o, station)
		if ratio <= 0 {
			continue
		}
		out[station] = area * ratio
	}
	return out
}

// Load returns the queued area at station.
func (q *QueueSnapshot) Load(station string) float64 {
	return q.loads[station]
}

// Status returns the queue status of station.
func (q *QueueSnapshot) Status(station string) StationStatus {
	capacity := q.stations.Capacity(station)
	load := q.loads[station]
	ratio := load / capacity

	status := LoadOverload
	switch {
	case load == 0:
		status = LoadIdle
	case ratio <= 1:
		status = LoadNormal
	case ratio <= BottleneckRatio:
		status = LoadBusy
	}

	return StationStatus{
		Station:     station,
		LoadArea:    load,
		Capacity:    capacity,
		Ratio:       ratio,
		QueueDays:   ratio,
		QueueCount:  len(q.queues[station]),
		LoadPercent: min(int(ratio*100), 100),
		Status:      status,
	}
}

// Statuses returns the status of every station in canonical order.
func (q *QueueSnapshot) Statuses() []StationStatus {
	names := q.stations.Names()
	out := make([]StationStatus, 0, len(names))
	for _, s := range names {
		out = append(out, q.Status(s))
	}
	return out
}

// Bottlenecks returns stations whose ratio exceeds BottleneckRatio, highest
// ratio first. Ties keep canonical station order.
func (q *QueueSnapshot) Bottlenecks() []StationStatus {
	var out []StationStatus
	for _, st := range q.Statuses() {
		if st.Ratio > BottleneckRatio {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratio > out[j].Ratio
	})
	return out
}

// IdleStations returns stations with nothing queued, excluding shipping.
func (q *QueueSnapshot) IdleStations() []string {
	var idle []string
	shipping := q.stations.ShippingStation()
	for _, st := range q.Statuses() {
		if st.Station == shipping {
			continue
		}
		if st.Status == LoadIdle {
			idle = append(idle, st.Station)
		}
	}
	return idle
}
