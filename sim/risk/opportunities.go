package risk

import (
	"context"
	"fmt"
	"sort"

	"github.com/efes-rota/rota-planner/sim"
)

// BatchOpportunity is a set of orders waiting for a batch station (tempering)
// that share a thickness and could be run together.
type BatchOpportunity struct {
	Thickness  int      `json:"thickness"`
	Count      int      `json:"count"`
	TotalArea  float64  `json:"total_m2"`
	OrderCodes []string `json:"orders"` // at most maxOpportunityCodes
}

func (b BatchOpportunity) String() string {
	return fmt.Sprintf("temper batch: %d orders at %dmm (%.0f m²) should run together", b.Count, b.Thickness, b.TotalArea)
}

const maxOpportunityCodes = 5

// BatchOpportunities groups orders with a pending batch station by thickness.
// Groups of fewer than two orders are dropped. Results are sorted by thickness.
func (q *QueueSnapshot) BatchOpportunities(ctx context.Context, orders []*sim.Order) []BatchOpportunity {
	groups := make(map[int][]*sim.Order)
	for _, o := range orders {
		if o.Thickness <= 0 || !q.batchPending(ctx, o) {
			continue
		}
		groups[o.Thickness] = append(groups[o.Thickness], o)
	}

	var out []BatchOpportunity
	for thickness, members := range groups {
		if len(members) < 2 {
			continue
		}
		total := 0.0
		codes := make([]string, 0, maxOpportunityCodes)
		for i, o := range members {
			total += o.EffectiveArea()
			if i < maxOpportunityCodes {
				codes = append(codes, o.Code)
			}
		}
		out = append(out, BatchOpportunity{
			Thickness:  thickness,
			Count:      len(members),
			TotalArea:  round1(total),
			OrderCodes: codes,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Thickness < out[j].Thickness
	})
	return out
}

// batchPending reports whether o still has a batch station ahead of it.
func (q *QueueSnapshot) batchPending(ctx context.Context, o *sim.Order) bool {
	onRoute := false
	for _, s := range o.Route {
		if q.stations.IsBatchStation(s) {
			onRoute = true
			break
		}
	}
	if !onRoute {
		return false
	}
	for _, s := range sim.RemainingRoute(o.Route, q.progress.Completed(ctx, o)) {
		if q.stations.IsBatchStation(s) {
			return true
		}
	}
	return false
}
