package sim

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FallbackCapacity is used for stations with a missing, zero or negative daily
// capacity. It keeps the simulation moving instead of producing infinite durations.
const FallbackCapacity = 1.0

// Station group names used by the pull-forward and idle-station rules.
const (
	GroupCutting   = "cutting"
	GroupEdging    = "edging"
	GroupSurface   = "surface"
	GroupTempering = "tempering"
	GroupAssembly  = "assembly"
	GroupShipping  = "shipping"
)

// StationConfig describes the factory floor: canonical station order, daily
// capacities (m²/day) and the groupings used by the analysis layer.
type StationConfig struct {
	Order           []string            // Canonical factory flow order
	Capacities      map[string]float64  // Configured m²/day per station
	Groups          map[string][]string // Group name -> stations
	Alternatives    map[string][]string // Station -> stations that can do the same work
	BatchStations   []string            // Stations where same-thickness batching pays off
	ShippingStation string              // Never reported as idle
}

// DefaultStationConfig returns the factory layout the planner ships with.
func DefaultStationConfig() StationConfig {
	return StationConfig{
		Order: []string{
			"INTERMAC", "LIVA KESIM", "LAMINE KESIM",
			"CNC RODAJ", "DOUBLEDGER", "ZIMPARA",
			"TESIR A1", "TESIR B1", "TESIR B1-1", "TESIR B1-2", "DELİK", "OYGU",
			"TEMPER A1", "TEMPER B1", "TEMPER BOMBE",
			"LAMINE A1", "ISICAM B1",
			"SEVKİYAT",
		},
		Capacities: map[string]float64{
			"INTERMAC": 800, "LIVA KESIM": 800, "LAMINE KESIM": 600,
			"CNC RODAJ": 100, "DOUBLEDGER": 400, "ZIMPARA": 300,
			"TESIR A1": 400, "TESIR B1": 400, "TESIR B1-1": 400, "TESIR B1-2": 400,
			"DELİK": 200, "OYGU": 200,
			"TEMPER A1": 550, "TEMPER B1": 750, "TEMPER BOMBE": 300,
			"LAMINE A1": 250, "ISICAM B1": 500, "SEVKİYAT": 5000,
		},
		Groups: map[string][]string{
			GroupCutting:   {"INTERMAC", "LIVA KESIM", "LAMINE KESIM"},
			GroupEdging:    {"CNC RODAJ", "DOUBLEDGER", "ZIMPARA"},
			GroupSurface:   {"TESIR A1", "TESIR B1", "TESIR B1-1", "TESIR B1-2", "DELİK", "OYGU"},
			GroupTempering: {"TEMPER A1", "TEMPER B1", "TEMPER BOMBE"},
			GroupAssembly:  {"LAMINE A1", "ISICAM B1"},
			GroupShipping:  {"SEVKİYAT"},
		},
		Alternatives: map[string][]string{
			"INTERMAC":   {"LIVA KESIM"},
			"LIVA KESIM": {"INTERMAC"},
			"TEMPER A1":  {"TEMPER B1"},
			"TEMPER B1":  {"TEMPER A1"},
			"TESIR A1":   {"TESIR B1", "TESIR B1-1", "TESIR B1-2"},
			"TESIR B1":   {"TESIR A1", "TESIR B1-1", "TESIR B1-2"},
			"TESIR B1-1": {"TESIR A1", "TESIR B1", "TESIR B1-2"},
			"TESIR B1-2": {"TESIR A1", "TESIR B1", "TESIR B1-1"},
		},
		BatchStations:   []string{"TEMPER A1", "TEMPER B1", "TEMPER BOMBE"},
		ShippingStation: "SEVKİYAT",
	}
}

// Validate checks the station layout for duplicates and dangling references.
func (c StationConfig) Validate() error {
	if len(c.Order) == 0 {
		return fmt.Errorf("station order must not be empty")
	}
	seen := make(map[string]bool, len(c.Order))
	for _, s := range c.Order {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("station order contains an empty name")
		}
		if seen[s] {
			return fmt.Errorf("station %q listed twice in station order", s)
		}
		seen[s] = true
	}
	for name, capacity := range c.Capacities {
		if capacity < 0 {
			return fmt.Errorf("capacity for station %q must be non-negative, got %f", name, capacity)
		}
	}
	for station, alts := range c.Alternatives {
		if !seen[station] {
			return fmt.Errorf("alternatives defined for unknown station %q", station)
		}
		for _, alt := range alts {
			if !seen[alt] {
				return fmt.Errorf("station %q lists unknown alternative %q", station, alt)
			}
		}
	}
	for _, s := range c.BatchStations {
		if !seen[s] {
			return fmt.Errorf("unknown batch station %q", s)
		}
	}
	if c.ShippingStation != "" && !seen[c.ShippingStation] {
		return fmt.Errorf("unknown shipping station %q", c.ShippingStation)
	}
	return nil
}

// Stations is an immutable view of the station layout and capacities used for
// exactly one pipeline pass.
type Stations struct {
	order      []string
	position   map[string]int
	capacities map[string]float64
	groupOf    map[string]string
	cfg        StationConfig
}

// NewStations builds a snapshot from cfg with the given capacities.
// Capacities for stations missing from cfg.Order are kept so the simulator can
// still place work on them.
func NewStations(cfg StationConfig, capacities map[string]float64) *Stations {
	s := &Stations{
		order:      slices.Clone(cfg.Order),
		position:   make(map[string]int, len(cfg.Order)),
		capacities: maps.Clone(capacities),
		groupOf:    make(map[string]string),
		cfg:        cfg,
	}
	if s.capacities == nil {
		s.capacities = make(map[string]float64)
	}
	for i, name := range s.order {
		s.position[name] = i
	}
	for group, members := range cfg.Groups {
		for _, m := range members {
			s.groupOf[m] = group
		}
	}
	return s
}

// Names returns the canonical station order followed by any extra stations
// that only appear in the capacity table (sorted by name).
func (s *Stations) Names() []string {
	names := slices.Clone(s.order)
	var extra []string
	for name := range s.capacities {
		if _, ok := s.position[name]; !ok {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

// Capacity returns the daily capacity (m²/day) of station. Missing, zero and
// negative values resolve to FallbackCapacity.
func (s *Stations) Capacity(station string) float64 {
	c, ok := s.capacities[station]
	if !ok || c <= 0 {
		return FallbackCapacity
	}
	return c
}

// HasCapacity reports whether station has a usable configured capacity.
func (s *Stations) HasCapacity(station string) bool {
	c, ok := s.capacities[station]
	return ok && c > 0
}

// Capacities returns a copy of the configured capacity table.
func (s *Stations) Capacities() map[string]float64 {
	return maps.Clone(s.capacities)
}

// Position returns the canonical index of station, or -1 if unknown.
func (s *Stations) Position(station string) int {
	if p, ok := s.position[station]; ok {
		return p
	}
	return -1
}

// Group returns the group a station belongs to, or "".
func (s *Stations) Group(station string) string {
	return s.groupOf[station]
}

// Alternatives returns stations that can take over work from station.
func (s *Stations) Alternatives(station string) []string {
	return s.cfg.Alternatives[station]
}

// IsBatchStation reports whether station benefits from same-thickness batches.
func (s *Stations) IsBatchStation(station string) bool {
	return slices.Contains(s.cfg.BatchStations, station)
}

// ShippingStation returns the name of the dispatch station.
func (s *Stations) ShippingStation() string {
	return s.cfg.ShippingStation
}

// FixRouteOrder re-sorts a user-entered station list into canonical factory
// order. Names are trimmed and de-duplicated. Stations unknown to the canonical
// order are kept after the known ones, in the order they were entered.
func (s *Stations) FixRouteOrder(selected []string) []string {
	seen := make(map[string]bool, len(selected))
	var known, unknown []string
	for _, raw := range selected {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := s.position[name]; ok {
			known = append(known, name)
		} else {
			unknown = append(unknown, name)
		}
	}
	slices.SortStableFunc(known, func(a, b string) int {
		return s.position[a] - s.position[b]
	})
	if len(unknown) > 0 {
		logrus.Warnf("route contains stations outside the factory layout: %v", unknown)
	}
	return append(known, unknown...)
}

// StationRegistry memoizes station capacities between pipeline passes.
// Capacities are fetched from a CapacitySource on first use and after every
// Invalidate. Safe for concurrent use.
type StationRegistry struct {
	mu         sync.RWMutex
	cfg        StationConfig
	capacities map[string]float64
	stale      bool
}

// NewStationRegistry creates a registry seeded with the configured capacities.
// The registry starts stale so the first pass fetches live values.
func NewStationRegistry(cfg StationConfig) *StationRegistry {
	return &StationRegistry{
		cfg:        cfg,
		capacities: maps.Clone(cfg.Capacities),
		stale:      true,
	}
}

// Refresh re-fetches capacities from src. On error the previous values are
// kept and the registry stays stale.
func (r *StationRegistry) Refresh(ctx context.Context, src CapacitySource) error {
	fetched, err := src.StationCapacities(ctx)
	if err != nil {
		return fmt.Errorf("fetching station capacities: %w", err)
	}
	merged := maps.Clone(r.cfg.Capacities)
	if merged == nil {
		merged = make(map[string]float64, len(fetched))
	}
	maps.Copy(merged, fetched)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacities = merged
	r.stale = false
	return nil
}

// EnsureFresh refreshes only when the memo is stale. Refresh failures are
// logged and the last known capacities stay in use.
func (r *StationRegistry) EnsureFresh(ctx context.Context, src CapacitySource) {
	if !r.Stale() {
		return
	}
	if err := r.Refresh(ctx, src); err != nil {
		logrus.Warnf("using cached station capacities: %v", err)
	}
}

// Invalidate marks the memo stale. Call it whenever capacities change.
func (r *StationRegistry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = true
}

// Stale reports whether the next pass must re-fetch capacities.
func (r *StationRegistry) Stale() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stale
}

// Snapshot returns the immutable station view for one pipeline pass.
func (r *StationRegistry) Snapshot() *Stations {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return NewStations(r.cfg, r.capacities)
}

// Config returns the station layout the registry was built from.
func (r *StationRegistry) Config() StationConfig {
	return r.cfg
}
