package handler

import (
	"time"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/efes-rota/rota-planner/sim/trace"
)

// orderView is the dashboard row of one sequenced order.
type orderView struct {
	Position int      `json:"position"`
	Code     string   `json:"code"`
	Customer string   `json:"customer"`
	Priority string   `json:"priority"`
	DueDate  string   `json:"due_date,omitempty"`
	Area     float64  `json:"m2"`
	Batch    string   `json:"batch"`
	Tier     string   `json:"tier,omitempty"`
	Route    []string `json:"route"`
	Status   string   `json:"status"`
}

type sequenceResponse struct {
	Today   string              `json:"today"`
	Orders  []orderView         `json:"orders"`
	Summary *trace.TraceSummary `json:"summary,omitempty"`
}

func tierOf(plan sim.Plan) map[string]string {
	tiers := make(map[string]string, plan.Tiers.Len())
	for _, o := range plan.Tiers.Urgent {
		tiers[o.Code] = "urgent"
	}
	for _, o := range plan.Tiers.NearTerm {
		tiers[o.Code] = "near_term"
	}
	for _, o := range plan.Tiers.FarTerm {
		tiers[o.Code] = "far_term"
	}
	return tiers
}

func newSequenceResponse(today time.Time, plan sim.Plan, summary *trace.TraceSummary) sequenceResponse {
	tiers := tierOf(plan)
	rows := make([]orderView, 0, len(plan.Sequence))
	for i, o := range plan.Sequence {
		due := ""
		if o.HasDueDate() {
			due = o.DueDate.Format(sim.DateLayout)
		}
		rows = append(rows, orderView{
			Position: i + 1,
			Code:     o.Code,
			Customer: o.Customer,
			Priority: string(o.Priority),
			DueDate:  due,
			Area:     o.EffectiveArea(),
			Batch:    o.BatchKey().String(),
			Tier:     tiers[o.Code],
			Route:    o.Route,
			Status:   string(o.Status),
		})
	}
	return sequenceResponse{
		Today:   today.Format(sim.DateLayout),
		Orders:  rows,
		Summary: summary,
	}
}
