package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/efes-rota/rota-planner/internal/config"
	"github.com/efes-rota/rota-planner/internal/store"
	"github.com/efes-rota/rota-planner/sim"
	"github.com/efes-rota/rota-planner/sim/planner"
	"github.com/efes-rota/rota-planner/sim/trace"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Persistent CLI flags shared by every subcommand
	configPath    string // factory.yaml with station layout and planning tunables
	ordersPath    string // YAML orders snapshot for the in-memory store
	redisAddr     string // Redis address; takes precedence over --orders
	todayFlag     string // Planning date (YYYY-MM-DD), defaults to the wall clock
	logLevel      string // Log verbosity level
	horizonDays   int    // Forecast horizon in days
	lookaheadDays int    // Near-term batching window in days
	sequencerName string // Sequencer name (tiered, edd, priority-edd)
	traceLevel    string // Decision trace level (none, decisions)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "rota-planner",
	Short:         "Production sequencing and capacity forecast for the glass factory",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// plannerRuntime is the engine and store one command works with.
type plannerRuntime struct {
	engine  *planner.Engine
	store   store.Store
	client  *redis.Client // nil for the in-memory store
	factory FactoryConfig
}

func (r *plannerRuntime) Close() {
	if r.client == nil {
		return
	}
	if err := r.client.Close(); err != nil {
		logrus.Warnf("failed to close redis client: %v", err)
	}
}

// openRuntime loads factory.yaml, applies flag overrides and opens the order store.
func openRuntime(ctx context.Context, cmd *cobra.Command) (*plannerRuntime, error) {
	factory, err := loadFactoryConfig(configPath)
	if err != nil {
		return nil, err
	}
	engineCfg, err := engineConfigFromFlags(cmd, factory)
	if err != nil {
		return nil, err
	}

	rt := &plannerRuntime{factory: factory}
	switch {
	case redisAddr != "":
		redisCfg, err := config.LoadRedisConfig()
		if err != nil {
			return nil, err
		}
		redisCfg.Addr = redisAddr
		rt.client, err = newRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		rt.store = store.NewRedisStore(rt.client)
	case ordersPath != "":
		mem, err := store.LoadSnapshotFile(ordersPath)
		if err != nil {
			return nil, err
		}
		rt.store = mem
	default:
		return nil, fmt.Errorf("no order source: pass --orders or --redis-addr")
	}

	registry := sim.NewStationRegistry(factory.StationConfig())
	rt.engine = planner.NewEngine(rt.store, registry, engineCfg)
	logrus.Infof("planner ready: %d stations, sequencer=%s, horizon=%dd, today=%s",
		len(factory.Stations), engineCfg.Sequencer, engineCfg.Horizon, rt.engine.Today().Format(sim.DateLayout))
	return rt, nil
}

// engineConfigFromFlags overlays explicitly set flags on the factory.yaml
// planning section.
func engineConfigFromFlags(cmd *cobra.Command, factory FactoryConfig) (planner.EngineConfig, error) {
	cfg := factory.EngineConfig()
	flags := cmd.Flags()
	if flags.Changed("horizon") {
		if horizonDays <= 0 {
			return cfg, fmt.Errorf("--horizon must be > 0, got %d", horizonDays)
		}
		cfg.Horizon = horizonDays
	}
	if flags.Changed("lookahead") {
		if lookaheadDays < 0 {
			return cfg, fmt.Errorf("--lookahead must be >= 0, got %d", lookaheadDays)
		}
		cfg.LookaheadDays = lookaheadDays
	}
	if flags.Changed("sequencer") {
		if !sim.IsValidSequencer(sequencerName) {
			return cfg, fmt.Errorf("unknown sequencer %q; valid options: %v", sequencerName, sim.ValidSequencerNames())
		}
		cfg.Sequencer = sequencerName
	}
	if flags.Changed("trace") {
		if !trace.IsValidTraceLevel(traceLevel) {
			return cfg, fmt.Errorf("unknown trace level %q", traceLevel)
		}
		cfg.TraceLevel = trace.TraceLevel(traceLevel)
	}
	if todayFlag != "" {
		today, err := time.Parse(sim.DateLayout, todayFlag)
		if err != nil {
			return cfg, fmt.Errorf("--today must be YYYY-MM-DD: %w", err)
		}
		cfg.Today = today
	}
	return cfg, nil
}

// writeJSON prints v as indented JSON on the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to factory.yaml (station layout, capacities, planning tunables)")
	pf.StringVar(&ordersPath, "orders", "", "Path to a YAML orders snapshot")
	pf.StringVar(&redisAddr, "redis-addr", "", "Redis address of the order store (overrides --orders)")
	pf.StringVar(&todayFlag, "today", "", "Planning date YYYY-MM-DD (default: today)")
	pf.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	pf.IntVar(&horizonDays, "horizon", sim.DefaultHorizonDays, "Forecast horizon in days")
	pf.IntVar(&lookaheadDays, "lookahead", sim.DefaultLookaheadDays, "Near-term batching window in days")
	pf.StringVar(&sequencerName, "sequencer", "tiered", "Sequencer (tiered, edd, priority-edd)")
	pf.StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")

	rootCmd.AddCommand(sequenceCmd, forecastCmd, impactCmd, riskCmd, fixRouteCmd, serveCmd, importCmd)
}
