package sim

import "context"

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// OrderLister lists orders currently in the given statuses.
type OrderLister interface {
	ListActiveOrders(ctx context.Context, statuses []OrderStatus) ([]*Order, error)
}

// ProgressReader exposes production-log aggregates for an order.
type ProgressReader interface {
	// CompletedStations returns stations where logged completed quantity is at
	// least the order quantity.
	CompletedStations(ctx context.Context, orderID int64) ([]string, error)
	// StationProgress returns the cumulative completed quantity at station.
	StationProgress(ctx context.Context, orderID int64, station string) (int, error)
}

// CapacitySource returns the current daily capacity configuration.
type CapacitySource interface {
	StationCapacities(ctx context.Context) (map[string]float64, error)
}

// DataSource is the record store the engine reads from. The engine only ever
// reads; it never writes simulation results back.
type DataSource interface {
	OrderLister
	ProgressReader
	CapacitySource
}
