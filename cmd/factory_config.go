package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/efes-rota/rota-planner/sim/planner"
	"github.com/efes-rota/rota-planner/sim/trace"
	"gopkg.in/yaml.v3"
)

// StationEntry is one station of factory.yaml, listed in flow order.
type StationEntry struct {
	Name         string   `yaml:"name"`
	Capacity     float64  `yaml:"capacity"` // m²/day
	Group        string   `yaml:"group"`
	Alternatives []string `yaml:"alternatives"`
}

// PlanningConfig holds the sequencing tunables of factory.yaml.
type PlanningConfig struct {
	HorizonDays    int      `yaml:"horizon_days"`
	LookaheadDays  int      `yaml:"lookahead_days"`
	BatchBonus     float64  `yaml:"batch_bonus"`
	Sequencer      string   `yaml:"sequencer"`
	ActiveStatuses []string `yaml:"active_statuses"`
	Trace          string   `yaml:"trace"`
}

// FactoryConfig represents the full factory.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type FactoryConfig struct {
	Stations        []StationEntry `yaml:"stations"`
	BatchStations   []string       `yaml:"batch_stations"`
	ShippingStation string         `yaml:"shipping_station"`
	Planning        PlanningConfig `yaml:"planning"`
}

// defaultFactoryConfig mirrors sim.DefaultStationConfig and the engine defaults.
func defaultFactoryConfig() FactoryConfig {
	stations := sim.DefaultStationConfig()
	groupOf := make(map[string]string)
	for group, names := range stations.Groups {
		for _, n := range names {
			groupOf[n] = group
		}
	}
	cfg := FactoryConfig{
		BatchStations:   stations.BatchStations,
		ShippingStation: stations.ShippingStation,
		Planning: PlanningConfig{
			HorizonDays:   sim.DefaultHorizonDays,
			LookaheadDays: sim.DefaultLookaheadDays,
			BatchBonus:    sim.DefaultBatchBonus,
			Sequencer:     "tiered",
		},
	}
	for _, name := range stations.Order {
		cfg.Stations = append(cfg.Stations, StationEntry{
			Name:         name,
			Capacity:     stations.Capacities[name],
			Group:        groupOf[name],
			Alternatives: stations.Alternatives[name],
		})
	}
	return cfg
}

// loadFactoryConfig parses factory.yaml with strict field checking. An empty
// path returns the built-in layout.
func loadFactoryConfig(path string) (FactoryConfig, error) {
	if path == "" {
		return defaultFactoryConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FactoryConfig{}, fmt.Errorf("reading factory config: %w", err)
	}
	var cfg FactoryConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return FactoryConfig{}, fmt.Errorf("parsing factory config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return FactoryConfig{}, fmt.Errorf("invalid factory config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks planning ranges and the station layout.
func (c FactoryConfig) Validate() error {
	p := c.Planning
	if p.HorizonDays < 0 {
		return fmt.Errorf("planning.horizon_days must be non-negative, got %d", p.HorizonDays)
	}
	if p.LookaheadDays < 0 {
		return fmt.Errorf("planning.lookahead_days must be non-negative, got %d", p.LookaheadDays)
	}
	if p.BatchBonus < 0 {
		return fmt.Errorf("planning.batch_bonus must be non-negative, got %f", p.BatchBonus)
	}
	if !sim.IsValidSequencer(p.Sequencer) {
		return fmt.Errorf("unknown planning.sequencer %q; valid options: %v", p.Sequencer, sim.ValidSequencerNames())
	}
	if !trace.IsValidTraceLevel(p.Trace) {
		return fmt.Errorf("unknown planning.trace %q", p.Trace)
	}
	for _, s := range p.ActiveStatuses {
		switch sim.OrderStatus(s) {
		case sim.StatusPending, sim.StatusInProduction, sim.StatusCompleted, sim.StatusShipped:
		default:
			return fmt.Errorf("unknown order status %q in planning.active_statuses", s)
		}
	}
	return c.StationConfig().Validate()
}

// StationConfig converts the station list into the simulator layout.
func (c FactoryConfig) StationConfig() sim.StationConfig {
	out := sim.StationConfig{
		Capacities:      make(map[string]float64, len(c.Stations)),
		Groups:          make(map[string][]string),
		Alternatives:    make(map[string][]string),
		BatchStations:   c.BatchStations,
		ShippingStation: c.ShippingStation,
	}
	for _, s := range c.Stations {
		out.Order = append(out.Order, s.Name)
		out.Capacities[s.Name] = s.Capacity
		if s.Group != "" {
			out.Groups[s.Group] = append(out.Groups[s.Group], s.Name)
		}
		if len(s.Alternatives) > 0 {
			out.Alternatives[s.Name] = s.Alternatives
		}
	}
	return out
}

// EngineConfig converts the planning section. Zero values keep the defaults.
func (c FactoryConfig) EngineConfig() planner.EngineConfig {
	cfg := planner.DefaultEngineConfig()
	p := c.Planning
	if p.HorizonDays > 0 {
		cfg.Horizon = p.HorizonDays
	}
	if p.LookaheadDays > 0 {
		cfg.LookaheadDays = p.LookaheadDays
	}
	if p.BatchBonus > 0 {
		cfg.BatchBonus = p.BatchBonus
	}
	if p.Sequencer != "" {
		cfg.Sequencer = p.Sequencer
	}
	if p.Trace != "" {
		cfg.TraceLevel = trace.TraceLevel(p.Trace)
	}
	if len(p.ActiveStatuses) > 0 {
		cfg.ActiveStatuses = nil
		for _, s := range p.ActiveStatuses {
			cfg.ActiveStatuses = append(cfg.ActiveStatuses, sim.OrderStatus(s))
		}
	}
	return cfg
}
