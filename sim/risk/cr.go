package risk

import (
	"context"
	"math"
	"time"

	"github.com/efes-rota/rota-planner/sim"
)

// MinRemainingDays floors the remaining processing time so the ratio stays finite.
const MinRemainingDays = 0.1

// Status is the risk class of a critical ratio.
type Status string

const (
	StatusLate     Status = "late"     // due date has passed
	StatusCritical Status = "critical" // 0 ≤ CR < 0.8
	StatusRisk     Status = "risk"     // 0.8 ≤ CR < 1
	StatusTight    Status = "tight"    // 1 ≤ CR < 1.5
	StatusSafe     Status = "safe"     // CR ≥ 1.5
	StatusUnknown  Status = "unknown"  // no due date
)

// IsAlarm reports whether s should surface as a warning on the dashboard.
func (s Status) IsAlarm() bool {
	return s == StatusLate || s == StatusCritical || s == StatusRisk
}

// ClassifyRatio maps a critical ratio to its Status.
func ClassifyRatio(cr float64) Status {
	switch {
	case cr < 0:
		return StatusLate
	case cr < 0.8:
		return StatusCritical
	case cr < 1.0:
		return StatusRisk
	case cr < 1.5:
		return StatusTight
	default:
		return StatusSafe
	}
}

// Ratio is the critical ratio of one order.
type Ratio struct {
	OrderCode     string  `json:"order"`
	Value         float64 `json:"cr"` // rounded to 2 decimals, valid only when HasValue
	HasValue      bool    `json:"has_value"`
	Status        Status  `json:"status"`
	DaysUntilDue  int     `json:"days_until_due"`
	RemainingDays float64 `json:"remaining_days"`
}

// RemainingProcessingDays estimates the days o still needs: for every pending
// station, the queue ahead of it plus its own processing time. The queue is
// the station's load excluding o's own contribution. Floored at MinRemainingDays.
func (q *QueueSnapshot) RemainingProcessingDays(ctx context.Context, o *sim.Order) float64 {
	own, queued := q.own[o.Code]
	if !queued {
		own = q.remainingByStation(ctx, o)
	}
	total := 0.0
	for _, station := range o.Route {
		area, ok := own[station]
		if !ok {
			continue
		}
		capacity := q.stations.Capacity(station)
		ahead := q.loads[station]
		if queued {
			ahead = max(ahead-area, 0)
		}
		total += ahead/capacity + area/capacity
	}
	return max(total, MinRemainingDays)
}

// CriticalRatio returns the CR of o as of today. Orders without a due date
// have no value and Status unknown.
func (q *QueueSnapshot) CriticalRatio(ctx context.Context, o *sim.Order, today time.Time) Ratio {
	r := Ratio{OrderCode: o.Code, Status: StatusUnknown}
	days, known := o.DaysUntilDue(today)
	if !known {
		return r
	}
	remaining := q.RemainingProcessingDays(ctx, o)
	cr := float64(days) / remaining
	r.Value = math.Round(cr*100) / 100
	if r.Value == 0 {
		r.Value = 0 // drop the sign of -0
	}
	r.HasValue = true
	r.DaysUntilDue = days
	r.RemainingDays = remaining
	// Classified on the unrounded ratio: 0.795 is still critical.
	r.Status = ClassifyRatio(cr)
	return r
}
