package risk

import (
	"context"
	"fmt"
	"math"

	"github.com/efes-rota/rota-planner/sim"
)

const (
	// AlternativeMargin is how much less backlog (in days) an alternative
	// station needs before it is suggested.
	AlternativeMargin = 0.5
	// MinTimeSavedDays is the smallest saving worth a recommendation.
	MinTimeSavedDays = 0.5
)

// AlternativeSuggestion proposes running one pending step of an order on a
// less loaded equivalent station.
type AlternativeSuggestion struct {
	OrderCode          string  `json:"order"`
	CurrentStation     string  `json:"current_station"`
	AlternativeStation string  `json:"alternative_station"`
	CurrentQueueDays   float64 `json:"current_queue_days"`
	AltQueueDays       float64 `json:"alt_queue_days"`
	TimeSavedDays      float64 `json:"time_saved_days"`
}

func (a AlternativeSuggestion) String() string {
	return fmt.Sprintf("%s: %s could run on %s (%.1f days saved)", a.OrderCode, a.CurrentStation, a.AlternativeStation, a.TimeSavedDays)
}

// Alternatives returns suggestions for every pending station of o that has an
// alternative with a backlog at least AlternativeMargin days shorter.
func (q *QueueSnapshot) Alternatives(ctx context.Context, o *sim.Order) []AlternativeSuggestion {
	if len(o.Route) == 0 {
		return nil
	}
	var out []AlternativeSuggestion
	completed := q.progress.Completed(ctx, o)
	for _, station := range sim.RemainingRoute(o.Route, completed) {
		current := q.Status(station)
		for _, alt := range q.stations.Alternatives(station) {
			candidate := q.Status(alt)
			if candidate.Ratio >= current.Ratio-AlternativeMargin {
				continue
			}
			out = append(out, AlternativeSuggestion{
				OrderCode:          o.Code,
				CurrentStation:     station,
				AlternativeStation: alt,
				CurrentQueueDays:   round1(current.QueueDays),
				AltQueueDays:       round1(candidate.QueueDays),
				TimeSavedDays:      round1(current.QueueDays - candidate.QueueDays),
			})
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
