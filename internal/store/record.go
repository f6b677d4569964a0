package store

import (
	"github.com/efes-rota/rota-planner/sim"
)

// OrderRecord is the stored form of an order, shared by the YAML snapshot
// and the redis store.
type OrderRecord struct {
	ID          int64   `json:"id" yaml:"id"`
	Code        string  `json:"code" yaml:"code"`
	Customer    string  `json:"customer" yaml:"customer"`
	ProductType string  `json:"product_type" yaml:"product_type"`
	Thickness   int     `json:"thickness" yaml:"thickness"`
	Width       float64 `json:"width" yaml:"width"`
	Height      float64 `json:"height" yaml:"height"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Area        float64 `json:"m2" yaml:"m2"`
	Route       string  `json:"route" yaml:"route"`
	Priority    string  `json:"priority" yaml:"priority"`
	DueDate     string  `json:"due_date" yaml:"due_date"`
	Status      string  `json:"status" yaml:"status"`
	Notes       string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewOrderRecord converts an order into its stored form.
func NewOrderRecord(o *sim.Order) OrderRecord {
	due := ""
	if o.HasDueDate() {
		due = o.DueDate.Format(sim.DateLayout)
	}
	return OrderRecord{
		ID:          o.ID,
		Code:        o.Code,
		Customer:    o.Customer,
		ProductType: o.ProductType,
		Thickness:   o.Thickness,
		Width:       o.Width,
		Height:      o.Height,
		Quantity:    o.Quantity,
		Area:        o.Area,
		Route:       sim.FormatRoute(o.Route),
		Priority:    string(o.Priority),
		DueDate:     due,
		Status:      string(o.Status),
		Notes:       o.Notes,
	}
}

// Order converts the record back into an order. Unknown priorities become
// Normal, malformed dates become unknown, an empty status becomes Pending.
func (r OrderRecord) Order() *sim.Order {
	status := sim.OrderStatus(r.Status)
	if status == "" {
		status = sim.StatusPending
	}
	return &sim.Order{
		ID:          r.ID,
		Code:        r.Code,
		Customer:    r.Customer,
		ProductType: r.ProductType,
		Thickness:   r.Thickness,
		Width:       r.Width,
		Height:      r.Height,
		Quantity:    r.Quantity,
		Area:        r.Area,
		Route:       sim.ParseRoute(r.Route),
		Priority:    sim.ParsePriority(r.Priority),
		DueDate:     sim.ParseDueDate(r.DueDate),
		Status:      status,
		Notes:       r.Notes,
	}
}
