package risk

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/efes-rota/rota-planner/sim"
)

// Kind is the severity of a recommendation.
type Kind string

const (
	KindCritical Kind = "critical"
	KindWarning  Kind = "warning"
	KindInfo     Kind = "info"
)

// Recommendation priorities, lowest first.
const (
	PriorityLateOrder   = 1
	PriorityRiskOrder   = 2
	PriorityBottleneck  = 3
	PriorityAlternative = 4
	PriorityBatch       = 5
	PriorityIdle        = 6
)

const (
	maxReportedBottlenecks = 3
	alternativeScanOrders  = 10
)

// Recommendation is one actionable line of the decision report.
type Recommendation struct {
	Kind      Kind   `json:"type"`
	Priority  int    `json:"priority"`
	OrderCode string `json:"order,omitempty"`
	Station   string `json:"station,omitempty"`
	Message   string `json:"message"`
}

// Report is the full output of one risk analysis.
type Report struct {
	Recommendations []Recommendation        `json:"recommendations"`
	Ratios          []Ratio                 `json:"ratios"`
	Stations        []StationStatus         `json:"stations"`
	Bottlenecks     []StationStatus         `json:"bottlenecks"`
	IdleStations    []string                `json:"idle_stations"`
	Alternatives    []AlternativeSuggestion `json:"alternatives"`
	Opportunities   []BatchOpportunity      `json:"batch_opportunities"`
}

// Analyze builds the queue snapshot for orders and derives every
// recommendation from it. orders should be in processing order: alternatives
// are only searched for the first few.
func Analyze(ctx context.Context, orders []*sim.Order, stations *sim.Stations, progress *sim.ProgressView, today time.Time) *Report {
	q := BuildQueueSnapshot(ctx, orders, stations, progress)
	rep := &Report{
		Stations:     q.Statuses(),
		Bottlenecks:  q.Bottlenecks(),
		IdleStations: q.IdleStations(),
	}

	for _, o := range orders {
		r := q.CriticalRatio(ctx, o, today)
		rep.Ratios = append(rep.Ratios, r)
		switch r.Status {
		case StatusLate, StatusCritical:
			rep.add(Recommendation{
				Kind:      KindCritical,
				Priority:  PriorityLateOrder,
				OrderCode: o.Code,
				Message:   fmt.Sprintf("%s: CR=%.2f, high risk of missing the due date, pull forward now", o.Code, r.Value),
			})
		case StatusRisk:
			rep.add(Recommendation{
				Kind:      KindWarning,
				Priority:  PriorityRiskOrder,
				OrderCode: o.Code,
				Message:   fmt.Sprintf("%s: CR=%.2f, close to the due date", o.Code, r.Value),
			})
		}
	}

	for i, bn := range rep.Bottlenecks {
		if i == maxReportedBottlenecks {
			break
		}
		rep.add(Recommendation{
			Kind:     KindWarning,
			Priority: PriorityBottleneck,
			Station:  bn.Station,
			Message:  fmt.Sprintf("bottleneck: %s has %.0f m² queued, %.1f days of backlog", bn.Station, bn.LoadArea, bn.QueueDays),
		})
	}

	for i, o := range orders {
		if i == alternativeScanOrders {
			break
		}
		for _, alt := range q.Alternatives(ctx, o) {
			rep.Alternatives = append(rep.Alternatives, alt)
			if alt.TimeSavedDays < MinTimeSavedDays {
				continue
			}
			rep.add(Recommendation{
				Kind:      KindInfo,
				Priority:  PriorityAlternative,
				OrderCode: alt.OrderCode,
				Station:   alt.CurrentStation,
				Message:   alt.String(),
			})
		}
	}

	rep.Opportunities = q.BatchOpportunities(ctx, orders)
	for _, b := range rep.Opportunities {
		rep.add(Recommendation{
			Kind:     KindInfo,
			Priority: PriorityBatch,
			Message:  b.String(),
		})
	}

	if len(rep.IdleStations) > 0 {
		rep.add(Recommendation{
			Kind:     KindInfo,
			Priority: PriorityIdle,
			Message:  "idle stations: " + strings.Join(rep.IdleStations, ", "),
		})
	}

	sort.SliceStable(rep.Recommendations, func(i, j int) bool {
		return rep.Recommendations[i].Priority < rep.Recommendations[j].Priority
	})
	return rep
}

func (r *Report) add(rec Recommendation) {
	r.Recommendations = append(r.Recommendations, rec)
}

// Alarms returns the ratios whose status is an alarm, in report order.
func (r *Report) Alarms() []Ratio {
	var out []Ratio
	for _, cr := range r.Ratios {
		if cr.Status.IsAlarm() {
			out = append(out, cr)
		}
	}
	return out
}

// CanPullForward reports whether o may be moved ahead in the processing order.
// Pending orders can always move. An order whose next station is a cutting
// station has glass on the cutting table and cannot.
func CanPullForward(ctx context.Context, o *sim.Order, stations *sim.Stations, progress *sim.ProgressView) (bool, string) {
	if o.Status == sim.StatusPending {
		return true, ""
	}
	current := sim.CurrentStation(o.Route, progress.Completed(ctx, o))
	if current != "" && stations.Group(current) == sim.GroupCutting {
		return false, fmt.Sprintf("order is at %s and cannot be pulled forward", current)
	}
	return true, ""
}
