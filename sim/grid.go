package sim

import "sort"

// DefaultHorizonDays is the default forecast horizon.
const DefaultHorizonDays = 30

// JobDetail summarizes one order occupying a station on a given day.
type JobDetail struct {
	Code     string  `json:"code"`
	Customer string  `json:"customer"`
	Area     float64 `json:"m2"` // remaining area at the station
	Batch    string  `json:"batch"`
	Notes    string  `json:"notes,omitempty"`
}

// DayCell is the projected load of one station on one day.
type DayCell struct {
	LoadPercent float64     `json:"load_percent"` // share of the day occupied × 100
	LoadArea    float64     `json:"load_m2"`      // share of the day occupied × capacity
	Jobs        []JobDetail `json:"jobs"`
}

// Segment is one order's occupation of one station, in fractional days from
// the start of the simulation. End may lie beyond the horizon.
type Segment struct {
	OrderCode string  `json:"order"`
	Station   string  `json:"station"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// ForecastGrid maps station -> per-day load over a fixed horizon.
type ForecastGrid struct {
	Horizon  int
	Stations map[string][]DayCell
}

// NewForecastGrid creates an empty grid with one row per station.
func NewForecastGrid(stations []string, horizon int) *ForecastGrid {
	g := &ForecastGrid{
		Horizon:  horizon,
		Stations: make(map[string][]DayCell, len(stations)),
	}
	for _, s := range stations {
		g.Stations[s] = make([]DayCell, horizon)
	}
	return g
}

func (g *ForecastGrid) row(station string) []DayCell {
	r, ok := g.Stations[station]
	if !ok {
		r = make([]DayCell, g.Horizon)
		g.Stations[station] = r
	}
	return r
}

// occupy spreads the span [start, end) over the day buckets of station.
// Each touched bucket accumulates fraction × capacity as area and
// fraction × 100 as percent. Buckets at or beyond the horizon are dropped.
func (g *ForecastGrid) occupy(station string, start, end, capacity float64, job JobDetail) {
	row := g.row(station)
	t := start
	for t < end {
		day := int(t)
		if day >= g.Horizon {
			break
		}
		chunkEnd := min(end, float64(day+1))
		fraction := chunkEnd - t

		cell := &row[day]
		cell.LoadPercent += fraction * 100
		cell.LoadArea += fraction * capacity
		if !hasJob(cell.Jobs, job.Code) {
			cell.Jobs = append(cell.Jobs, job)
		}
		t = chunkEnd
	}
}

func hasJob(jobs []JobDetail, code string) bool {
	for _, j := range jobs {
		if j.Code == code {
			return true
		}
	}
	return false
}

// RowOrder lists the rows of g: stations first, then rows created lazily for
// unknown stations, sorted by name.
func (g *ForecastGrid) RowOrder(stations []string) []string {
	seen := make(map[string]bool, len(stations))
	var out, extra []string
	for _, s := range stations {
		if _, ok := g.Stations[s]; ok && !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	for s := range g.Stations {
		if !seen[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// LoadPercent returns station -> daily load percentages.
func (g *ForecastGrid) LoadPercent() map[string][]float64 {
	out := make(map[string][]float64, len(g.Stations))
	for s, row := range g.Stations {
		vals := make([]float64, len(row))
		for i, c := range row {
			vals[i] = c.LoadPercent
		}
		out[s] = vals
	}
	return out
}

// LoadArea returns station -> daily load area (m²).
func (g *ForecastGrid) LoadArea() map[string][]float64 {
	out := make(map[string][]float64, len(g.Stations))
	for s, row := range g.Stations {
		vals := make([]float64, len(row))
		for i, c := range row {
			vals[i] = c.LoadArea
		}
		out[s] = vals
	}
	return out
}

// Details returns station -> per-day job detail lists.
func (g *ForecastGrid) Details() map[string][][]JobDetail {
	out := make(map[string][][]JobDetail, len(g.Stations))
	for s, row := range g.Stations {
		days := make([][]JobDetail, len(row))
		for i, c := range row {
			days[i] = c.Jobs
		}
		out[s] = days
	}
	return out
}

// TotalArea returns the load area summed over the horizon for station.
func (g *ForecastGrid) TotalArea(station string) float64 {
	total := 0.0
	for _, c := range g.Stations[station] {
		total += c.LoadArea
	}
	return total
}
