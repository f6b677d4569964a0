// Package store holds the order record stores the planner reads from: an
// in-memory store loaded from a YAML snapshot and a redis-backed store.
// Both record production progress the same way: a station is completed once
// its logged quantity reaches the order quantity.
package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/efes-rota/rota-planner/sim"
)

// Store is a sim.DataSource that also accepts production events.
type Store interface {
	sim.DataSource

	AddOrder(ctx context.Context, o *sim.Order) (*sim.Order, error)
	OrderByCode(ctx context.Context, code string) (*sim.Order, error)
	RecordProduction(ctx context.Context, orderID int64, station string, qty int) error
	CompleteStation(ctx context.Context, orderID int64, station string) error
	ReportBreakage(ctx context.Context, orderID int64, station string, qty int) (*sim.Order, error)
	SetCapacity(ctx context.Context, station string, capacity float64) error
	UpdateStatus(ctx context.Context, orderID int64, status sim.OrderStatus) error
}

// validateNew checks an order before it is stored.
func validateNew(o *sim.Order) error {
	if o == nil || strings.TrimSpace(o.Code) == "" {
		return fmt.Errorf("%w: order code is required", ErrInvalidRecord)
	}
	if o.Quantity < 0 || o.Area < 0 {
		return fmt.Errorf("%w: negative quantity or area on %s", ErrInvalidRecord, o.Code)
	}
	return nil
}

// completedFrom returns the route stations whose logged quantity reaches quantity.
func completedFrom(route []string, quantity int, done map[string]int) []string {
	var completed []string
	for _, s := range route {
		if d, ok := done[s]; ok && d >= quantity {
			completed = append(completed, s)
		}
	}
	return completed
}

// statusAfterProgress returns the order status once production was logged.
func statusAfterProgress(o *sim.Order, done map[string]int) sim.OrderStatus {
	if len(o.Route) > 0 && len(completedFrom(o.Route, o.Quantity, done)) == len(o.Route) {
		return sim.StatusCompleted
	}
	if o.Status == sim.StatusCompleted || o.Status == sim.StatusShipped {
		return o.Status
	}
	return sim.StatusInProduction
}

func checkStation(o *sim.Order, station string) error {
	if !slices.Contains(o.Route, station) {
		return fmt.Errorf("%w: %s on %s", ErrUnknownStation, station, o.Code)
	}
	return nil
}

// ReworkCode returns the code of the next rework order: ABC -> ABC-R1,
// ABC-R1 -> ABC-R2.
func ReworkCode(code string) string {
	if i := strings.LastIndex(code, "-R"); i >= 0 {
		if n, err := strconv.Atoi(code[i+2:]); err == nil {
			return fmt.Sprintf("%s-R%d", code[:i], n+1)
		}
	}
	return code + "-R1"
}

// checkBreakage rejects breakage at a station off the route or on an order
// with no pieces left.
func checkBreakage(o *sim.Order, station string) error {
	if err := checkStation(o, station); err != nil {
		return err
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: %s has no pieces left", ErrInvalidQuantity, o.Code)
	}
	return nil
}

// splitBreakage reduces o by qty broken pieces, capped at its quantity, and
// returns the rework order that replaces them. The rework order has no ID yet.
func splitBreakage(o *sim.Order, qty int) *sim.Order {
	unitArea := 0.0
	if o.Quantity > 0 {
		unitArea = o.EffectiveArea() / float64(o.Quantity)
	}
	broken := min(qty, o.Quantity)
	o.Quantity -= broken
	o.Area = unitArea * float64(o.Quantity)

	return &sim.Order{
		Code:        ReworkCode(o.Code),
		Customer:    o.Customer,
		ProductType: o.ProductType,
		Thickness:   o.Thickness,
		Width:       o.Width,
		Height:      o.Height,
		Quantity:    broken,
		Area:        unitArea * float64(broken),
		Route:       slices.Clone(o.Route),
		Priority:    sim.PriorityCritical,
		DueDate:     o.DueDate,
		Status:      sim.StatusPending,
		Notes:       fmt.Sprintf("rework of %s", o.Code),
	}
}

func cloneOrder(o *sim.Order) *sim.Order {
	c := *o
	c.Route = slices.Clone(o.Route)
	return &c
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
