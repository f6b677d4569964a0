package cmd

import (
	"fmt"

	"github.com/efes-rota/rota-planner/sim"
	"github.com/spf13/cobra"
)

var (
	// Candidate order of an impact query
	impactCode      string
	impactCustomer  string
	impactProduct   string
	impactThickness int
	impactQuantity  int
	impactArea      float64
	impactRoute     string
	impactPriority  string
	impactDue       string
)

// candidateFromFlags builds the hypothetical order. Route stations are put
// into factory order.
func candidateFromFlags(factory FactoryConfig) (sim.Order, error) {
	due := sim.ParseDueDate(impactDue)
	if impactDue != "" && due.IsZero() {
		return sim.Order{}, fmt.Errorf("--due must be YYYY-MM-DD, got %q", impactDue)
	}
	route := sim.NewStations(factory.StationConfig(), nil).FixRouteOrder(sim.ParseRoute(impactRoute))
	return sim.Order{
		Code:        impactCode,
		Customer:    impactCustomer,
		ProductType: impactProduct,
		Thickness:   impactThickness,
		Quantity:    impactQuantity,
		Area:        impactArea,
		Route:       route,
		Priority:    sim.ParsePriority(impactPriority),
		DueDate:     due,
	}, nil
}

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Estimate the delivery date of a candidate order and the orders it delays",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := openRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		candidate, err := candidateFromFlags(rt.factory)
		if err != nil {
			return err
		}
		res, err := rt.engine.Impact(ctx, candidate)
		if err != nil {
			return err
		}
		return writeJSON(cmd, res)
	},
}

func init() {
	f := impactCmd.Flags()
	f.StringVar(&impactCode, "code", "", "Candidate order code")
	f.StringVar(&impactCustomer, "customer", "", "Customer name")
	f.StringVar(&impactProduct, "product", "", "Product type")
	f.IntVar(&impactThickness, "thickness", 0, "Glass thickness in mm")
	f.IntVar(&impactQuantity, "quantity", 0, "Number of pieces")
	f.Float64Var(&impactArea, "m2", 0, "Total area in m²")
	f.StringVar(&impactRoute, "route", "", "Comma-separated stations")
	f.StringVar(&impactPriority, "priority", "Normal", "Priority (Normal, Urgent, VeryUrgent, Critical)")
	f.StringVar(&impactDue, "due", "", "Due date YYYY-MM-DD")
}
