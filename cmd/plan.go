package cmd

import (
	"fmt"
	"strings"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Print the global processing sequence of the active orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := openRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.engine.Sequence(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sequence for %s (%d orders)\n", res.Today.Format(sim.DateLayout), len(res.Plan.Sequence))
		for i, o := range res.Plan.Sequence {
			due := "-"
			if o.HasDueDate() {
				due = o.DueDate.Format(sim.DateLayout)
			}
			fmt.Fprintf(out, "%3d  %-14s %-10s %-10s %8.1f m²  %-14s %s\n",
				i+1, o.Code, o.Priority, due, o.EffectiveArea(), o.BatchKey(), strings.Join(o.Route, " > "))
		}
		if res.Summary != nil {
			s := res.Summary
			fmt.Fprintf(out, "\nTiers: %v  Batches: %d (largest %d, %s)\n",
				s.TierDistribution, s.BatchCount, s.LargestBatch, s.LargestBatchKey)
		}
		return nil
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Simulate the active orders and print the station load forecast as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := openRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		f, err := rt.engine.Forecast(ctx)
		if err != nil {
			return err
		}
		return writeJSON(cmd, f)
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Print critical ratios, bottlenecks and recommendations as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := openRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		rep, err := rt.engine.Analyze(ctx)
		if err != nil {
			return err
		}
		return writeJSON(cmd, rep)
	},
}

var fixRouteCmd = &cobra.Command{
	Use:   "fix-route STATION...",
	Short: "Sort stations into factory flow order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		factory, err := loadFactoryConfig(configPath)
		if err != nil {
			return err
		}
		var selected []string
		for _, a := range args {
			selected = append(selected, sim.ParseRoute(a)...)
		}
		route := sim.NewStations(factory.StationConfig(), nil).FixRouteOrder(selected)
		fmt.Fprintln(cmd.OutOrStdout(), sim.FormatRoute(route))
		return nil
	},
}
