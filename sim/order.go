// Defines the Order struct that models a customer order moving through the factory.
// Tracks route, quantity/area, priority and due date; progress is read from the data source.

package sim

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the customer-facing urgency label of an order.
type Priority string

const (
	PriorityNormal     Priority = "Normal"
	PriorityUrgent     Priority = "Urgent"
	PriorityVeryUrgent Priority = "VeryUrgent"
	PriorityCritical   Priority = "Critical"
)

// priorityRanks maps priorities to their ordinal rank. Lower rank is more important.
var priorityRanks = map[Priority]int{
	PriorityCritical:   0,
	PriorityVeryUrgent: 1,
	PriorityUrgent:     2,
	PriorityNormal:     3,
}

// legacyPriorities maps labels written by the original order-entry screens.
var legacyPriorities = map[string]Priority{
	"kritik":   PriorityCritical,
	"çok acil": PriorityVeryUrgent,
	"cok acil": PriorityVeryUrgent,
	"acil":     PriorityUrgent,
	"normal":   PriorityNormal,
}

// Rank returns the ordinal rank of p (Critical = 0, Normal = 3).
// Unknown or empty priorities rank as Normal.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return priorityRanks[PriorityNormal]
}

// IsEscalated reports whether p alone places an order in the urgent tier.
func (p Priority) IsEscalated() bool {
	return p == PriorityCritical || p == PriorityVeryUrgent
}

// ParsePriority converts a stored label into a Priority. Empty and unrecognized
// labels default to PriorityNormal.
func ParsePriority(label string) Priority {
	trimmed := strings.TrimSpace(label)
	if _, ok := priorityRanks[Priority(trimmed)]; ok {
		return Priority(trimmed)
	}
	if p, ok := legacyPriorities[strings.ToLower(trimmed)]; ok {
		return p
	}
	return PriorityNormal
}

// OrderStatus represents the lifecycle state of an order in the record store.
type OrderStatus string

const (
	StatusPending      OrderStatus = "Pending"
	StatusInProduction OrderStatus = "InProduction"
	StatusCompleted    OrderStatus = "Completed"
	StatusShipped      OrderStatus = "Shipped"
)

// ActiveStatuses are the statuses whose orders still occupy station capacity.
var ActiveStatuses = []OrderStatus{StatusPending, StatusInProduction}

// DateLayout is the calendar-date format used for due dates everywhere.
const DateLayout = "2006-01-02"

// ParseDueDate parses a YYYY-MM-DD due date. Empty or malformed input returns
// the zero time, which means "unknown" and sorts after every real date.
func ParseDueDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CivilDate truncates t to its calendar date in UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from `from` to `to`.
func DaysBetween(from, to time.Time) int {
	return int(CivilDate(to).Sub(CivilDate(from)).Hours() / 24)
}

// Order is a customer order as read by the engine. The engine never mutates
// persisted fields; derived values are computed per call.
type Order struct {
	ID       int64  // Internal record id (0 for hypothetical orders)
	Code     string // Unique within the active set
	Customer string

	ProductType string  // Glass product, part of the batching key
	Thickness   int     // Millimetres, part of the batching key
	Width       float64 // Centimetres, used when no declared area exists
	Height      float64 // Centimetres
	Quantity    int     // Pieces
	Area        float64 // Declared total m²

	Route    []string // Stations in canonical factory order
	Priority Priority
	DueDate  time.Time // Zero value = unknown
	Status   OrderStatus
	Notes    string

	// Hypothetical marks the synthetic order of an impact query. Progress is
	// never read for it.
	Hypothetical bool
}

// EffectiveArea returns the declared area, falling back to width × height ×
// quantity when no area was declared.
func (o *Order) EffectiveArea() float64 {
	if o.Area > 0 {
		return o.Area
	}
	if o.Width > 0 && o.Height > 0 && o.Quantity > 0 {
		return o.Width * o.Height * float64(o.Quantity) / 10000.0
	}
	return 0
}

// HasDueDate reports whether the order carries a known due date.
func (o *Order) HasDueDate() bool {
	return !o.DueDate.IsZero()
}

// DaysUntilDue returns whole calendar days from today to the due date.
// The boolean is false when the due date is unknown.
func (o *Order) DaysUntilDue(today time.Time) (int, bool) {
	if !o.HasDueDate() {
		return 0, false
	}
	return DaysBetween(today, o.DueDate), true
}

// BatchKey identifies orders that can run back-to-back without changeover.
type BatchKey struct {
	Thickness   int
	ProductType string
}

func (k BatchKey) String() string {
	return fmt.Sprintf("%dmm %s", k.Thickness, k.ProductType)
}

// BatchKey returns the (thickness, product type) batching key.
func (o *Order) BatchKey() BatchKey {
	return BatchKey{Thickness: o.Thickness, ProductType: o.ProductType}
}

// BatchTag is the short label shown next to an order in forecast details.
func (o *Order) BatchTag() string {
	return fmt.Sprintf("%dmm", o.Thickness)
}

func (o Order) String() string {
	due := "unknown"
	if o.HasDueDate() {
		due = o.DueDate.Format(DateLayout)
	}
	return fmt.Sprintf("Order: (Code: %s, Priority: %s, Due: %s, Area: %.1f)", o.Code, o.Priority, due, o.EffectiveArea())
}

// dueBefore orders known due dates ascending and unknown dates last.
func dueBefore(a, b *Order) bool {
	if a.HasDueDate() != b.HasDueDate() {
		return a.HasDueDate()
	}
	return a.DueDate.Before(b.DueDate)
}
