// sim/simulator.go
package sim

import (
	"context"

	"github.com/sirupsen/logrus"
)

// SimulationResult holds everything one pass produced. Nothing in it is
// persisted; it is rebuilt on every run.
type SimulationResult struct {
	Grid     *ForecastGrid
	Segments []Segment
	// FinishDays maps order code -> simulated finish day (fractional).
	FinishDays map[string]float64
	// Processed lists the codes of orders that consumed capacity, in processing order.
	Processed []string
	// Skipped lists the codes of orders with no positive area.
	Skipped []string
	// StationFreeTime is the final machine free time per touched station.
	StationFreeTime map[string]float64
	// HypotheticalFinish is the finish day of the hypothetical order, if one was simulated.
	HypotheticalFinish float64
	HasHypothetical    bool
}

// Simulator walks an ordered order list through each order's route, allocating
// daily station capacity. It is a pure, order-preserving allocator: the
// processing order is the sequencing decision, the simulator never reorders.
type Simulator struct {
	Stations *Stations
	Progress *ProgressView
	Horizon  int
}

// NewSimulator creates a simulator for one pass. A non-positive horizon uses
// DefaultHorizonDays. reader may be nil (no progress logged).
func NewSimulator(stations *Stations, reader ProgressReader, horizon int) *Simulator {
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	return &Simulator{
		Stations: stations,
		Progress: NewProgressView(reader),
		Horizon:  horizon,
	}
}

// Run simulates sequence in the given order. The only error is ctx cancellation.
func (sim *Simulator) Run(ctx context.Context, sequence []*Order) (*SimulationResult, error) {
	res := &SimulationResult{
		Grid:            NewForecastGrid(sim.Stations.Names(), sim.Horizon),
		FinishDays:      make(map[string]float64, len(sequence)),
		StationFreeTime: make(map[string]float64),
	}
	// Machine free time per station, created fresh for every run.
	machineFree := res.StationFreeTime
	warned := make(map[string]bool)

	for _, o := range sequence {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		area := o.EffectiveArea()
		if area <= 0 {
			logrus.Debugf("order %s: no positive area, skipped", o.Code)
			res.Skipped = append(res.Skipped, o.Code)
			continue
		}

		completed := sim.Progress.Completed(ctx, o)
		ready := 0.0
		for _, station := range RemainingRoute(o.Route, completed) {
			if !sim.Stations.HasCapacity(station) && !warned[station] {
				logrus.Warnf("station %s has no usable capacity, assuming %.0f m²/day", station, FallbackCapacity)
				warned[station] = true
			}
			capacity := sim.Stations.Capacity(station)

			ratio := sim.Progress.RemainingRatio(ctx, o, station)
			if ratio <= 0 {
				continue
			}
			remainingArea := area * ratio
			duration := remainingArea / capacity

			start := max(ready, machineFree[station])
			end := start + duration

			res.Grid.occupy(station, start, end, capacity, JobDetail{
				Code:     o.Code,
				Customer: o.Customer,
				Area:     remainingArea,
				Batch:    o.BatchTag(),
				Notes:    o.Notes,
			})
			res.Segments = append(res.Segments, Segment{OrderCode: o.Code, Station: station, Start: start, End: end})
			logrus.Debugf("order %s @ %s: [%.2f, %.2f) %.1f m²", o.Code, station, start, end, remainingArea)

			machineFree[station] = end
			ready = end
		}

		res.FinishDays[o.Code] = ready
		res.Processed = append(res.Processed, o.Code)
		if o.Hypothetical {
			res.HypotheticalFinish = ready
			res.HasHypothetical = true
		}
	}
	return res, nil
}
