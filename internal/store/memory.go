package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ProductionRecord is one production log line of a snapshot.
type ProductionRecord struct {
	Order    string `yaml:"order"`
	Station  string `yaml:"station"`
	Quantity int    `yaml:"quantity"`
}

// Snapshot is the YAML form of a MemoryStore.
type Snapshot struct {
	Capacities map[string]float64 `yaml:"capacities"`
	Orders     []OrderRecord      `yaml:"orders"`
	Production []ProductionRecord `yaml:"production"`
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	orders     map[int64]*sim.Order
	byCode     map[string]int64
	progress   map[int64]map[string]int
	capacities map[string]float64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:     make(map[int64]*sim.Order),
		byCode:     make(map[string]int64),
		progress:   make(map[int64]map[string]int),
		capacities: make(map[string]float64),
	}
}

// LoadSnapshotFile reads a YAML snapshot into a new MemoryStore.
func LoadSnapshotFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return LoadSnapshot(data)
}

// LoadSnapshot parses a YAML snapshot. Unknown fields are rejected.
func LoadSnapshot(data []byte) (*MemoryStore, error) {
	var snap Snapshot
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	ctx := context.Background()
	s := NewMemoryStore()
	for station, capacity := range snap.Capacities {
		s.capacities[station] = capacity
	}
	for i, rec := range snap.Orders {
		if _, err := s.AddOrder(ctx, rec.Order()); err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
	}
	for i, p := range snap.Production {
		id, ok := s.byCode[p.Order]
		if !ok {
			return nil, fmt.Errorf("production[%d]: %w: %s", i, ErrOrderNotFound, p.Order)
		}
		if err := s.RecordProduction(ctx, id, p.Station, p.Quantity); err != nil {
			return nil, fmt.Errorf("production[%d]: %w", i, err)
		}
	}
	logrus.Infof("loaded snapshot: %d orders, %d production records, %d capacities",
		len(snap.Orders), len(snap.Production), len(snap.Capacities))
	return s, nil
}

// AddOrder stores a copy of o. A zero ID is assigned, an empty status
// becomes Pending and an empty priority Normal.
func (s *MemoryStore) AddOrder(_ context.Context, o *sim.Order) (*sim.Order, error) {
	if err := validateNew(o); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(o)
}

func (s *MemoryStore) addLocked(o *sim.Order) (*sim.Order, error) {
	if _, ok := s.byCode[o.Code]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateOrder, o.Code)
	}
	stored := cloneOrder(o)
	if stored.ID == 0 {
		s.nextID++
		stored.ID = s.nextID
	} else if _, taken := s.orders[stored.ID]; taken {
		return nil, fmt.Errorf("%w: id %d for %s", ErrOrderIDTaken, stored.ID, stored.Code)
	}
	s.nextID = max(s.nextID, stored.ID)
	if stored.Status == "" {
		stored.Status = sim.StatusPending
	}
	if stored.Priority == "" {
		stored.Priority = sim.PriorityNormal
	}
	stored.Hypothetical = false

	s.orders[stored.ID] = stored
	s.byCode[stored.Code] = stored.ID
	return cloneOrder(stored), nil
}

// OrderByCode returns a copy of the order with code.
func (s *MemoryStore) OrderByCode(_ context.Context, code string) (*sim.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, code)
	}
	return cloneOrder(s.orders[id]), nil
}

// ListActiveOrders returns copies of the orders in statuses, by ID.
func (s *MemoryStore) ListActiveOrders(_ context.Context, statuses []sim.OrderStatus) ([]*sim.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*sim.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if slices.Contains(statuses, o.Status) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CompletedStations(_ context.Context, orderID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}
	return completedFrom(o.Route, o.Quantity, s.progress[orderID]), nil
}

func (s *MemoryStore) StationProgress(_ context.Context, orderID int64, station string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.orders[orderID]; !ok {
		return 0, fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}
	return s.progress[orderID][station], nil
}

func (s *MemoryStore) StationCapacities(_ context.Context) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.capacities))
	for k, v := range s.capacities {
		out[k] = v
	}
	return out, nil
}

// SetCapacity sets the daily capacity of station.
func (s *MemoryStore) SetCapacity(_ context.Context, station string, capacity float64) error {
	if capacity <= 0 {
		return fmt.Errorf("capacity of %s must be positive, got %v", station, capacity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capacities[station] = capacity
	return nil
}

// RecordProduction logs qty completed pieces of an order at station and
// moves the order to InProduction, or Completed once every route station is done.
func (s *MemoryStore) RecordProduction(_ context.Context, orderID int64, station string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}
	if err := checkStation(o, station); err != nil {
		return err
	}
	s.logLocked(o, station, qty)
	return nil
}

// CompleteStation logs whatever quantity is still missing at station.
func (s *MemoryStore) CompleteStation(_ context.Context, orderID int64, station string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}
	if err := checkStation(o, station); err != nil {
		return err
	}
	if missing := o.Quantity - s.progress[orderID][station]; missing > 0 {
		s.logLocked(o, station, missing)
	}
	return nil
}

func (s *MemoryStore) logLocked(o *sim.Order, station string, qty int) {
	done, ok := s.progress[o.ID]
	if !ok {
		done = make(map[string]int)
		s.progress[o.ID] = done
	}
	done[station] += qty
	o.Status = statusAfterProgress(o, done)
}

// ReportBreakage removes qty broken pieces from an order and stores a
// Critical rework order for them, which is returned.
func (s *MemoryStore) ReportBreakage(_ context.Context, orderID int64, station string, qty int) (*sim.Order, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}
	if err := checkBreakage(o, station); err != nil {
		return nil, err
	}
	rework := splitBreakage(o, qty)
	for {
		if _, taken := s.byCode[rework.Code]; !taken {
			break
		}
		rework.Code = ReworkCode(rework.Code)
	}
	logrus.Infof("order %s: %d pieces broken at %s, rework %s created", o.Code, rework.Quantity, station, rework.Code)
	return s.addLocked(rework)
}

// UpdateStatus sets the status of an order, e.g. to Shipped.
func (s *MemoryStore) UpdateStatus(_ context.Context, orderID int64, status sim.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}
	o.Status = status
	return nil
}
