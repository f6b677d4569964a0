// Aggregates one simulation pass into dashboard figures: finish-day
// distribution and per-station utilization over the horizon.

package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// StationUtilization is the projected load of one station over the horizon.
type StationUtilization struct {
	Station     string  `json:"station"`
	MeanPercent float64 `json:"mean_percent"` // average daily load percent
	PeakPercent float64 `json:"peak_percent"`
	BusyDays    int     `json:"busy_days"` // days with any load
	TotalArea   float64 `json:"total_m2"`
}

// PassMetrics aggregates statistics about one simulation pass.
type PassMetrics struct {
	Processed  int     `json:"processed"`
	Skipped    int     `json:"skipped"`
	Makespan   float64 `json:"makespan"` // latest finish day
	MeanFinish float64 `json:"mean_finish"`
	P50Finish  float64 `json:"p50_finish"`
	P90Finish  float64 `json:"p90_finish"`
	// BeyondHorizon counts orders finishing after the forecast horizon.
	BeyondHorizon int                  `json:"beyond_horizon"`
	Stations      []StationUtilization `json:"stations"`
}

// NewPassMetrics computes the metrics of res. stations fixes the row order;
// rows of stations not listed follow in name order.
func NewPassMetrics(res *SimulationResult, stations []string) PassMetrics {
	m := PassMetrics{
		Processed: len(res.Processed),
		Skipped:   len(res.Skipped),
	}

	finishes := make([]float64, 0, len(res.FinishDays))
	for _, code := range res.Processed {
		f := res.FinishDays[code]
		finishes = append(finishes, f)
		if f > float64(res.Grid.Horizon) {
			m.BeyondHorizon++
		}
	}
	sort.Float64s(finishes)
	if len(finishes) > 0 {
		m.Makespan = finishes[len(finishes)-1]
	}
	m.MeanFinish = CalculateMean(finishes)
	m.P50Finish = CalculatePercentile(finishes, 50)
	m.P90Finish = CalculatePercentile(finishes, 90)

	for _, s := range res.Grid.RowOrder(stations) {
		m.Stations = append(m.Stations, utilization(s, res.Grid.Stations[s]))
	}
	return m
}

func utilization(station string, row []DayCell) StationUtilization {
	u := StationUtilization{Station: station}
	loads := make([]float64, 0, len(row))
	for _, c := range row {
		loads = append(loads, c.LoadPercent)
		u.PeakPercent = max(u.PeakPercent, c.LoadPercent)
		u.TotalArea += c.LoadArea
		if c.LoadPercent > 0 {
			u.BusyDays++
		}
	}
	u.MeanPercent = CalculateMean(loads)
	return u
}

// Log writes the headline figures at info level.
func (m PassMetrics) Log(runID string) {
	logrus.Infof("run %s: %d orders simulated, %d skipped, makespan %.2f days, p90 finish %.2f, %d beyond horizon",
		runID, m.Processed, m.Skipped, m.Makespan, m.P90Finish, m.BeyondHorizon)
}
