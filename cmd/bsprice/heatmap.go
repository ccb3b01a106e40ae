package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/grid"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/report"
)

type heatmapOptions struct {
	params           pricing.Parameters
	spotMin, spotMax float64
	volMin, volMax   float64
	count            int
	mode             string
	callCost         float64
	putCost          float64
	format           string
	outDir           string
}

func newHeatmapCmd(a *app) *cobra.Command {
	var o heatmapOptions

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Sweep call and put prices or PnL over spot and volatility",
		Long: `heatmap re-prices the option over a spot x volatility grid. Rows are
volatilities, columns are spots. Unset ranges default to 80%-120% of the
spot and 50%-150% of the volatility (clamped to [0.01, 1]).`,
		Example: `  bsprice heatmap -S 100 -K 100 -r 0.05 --vol 0.2 -T 1
  bsprice heatmap -S 100 -K 100 --vol 0.2 -T 1 --mode pnl --call-cost 8 --format csv --out ./out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHeatmap(cmd, &o)
		},
	}

	addParameterFlags(cmd, &o.params)
	flags := cmd.Flags()
	flags.Float64Var(&o.spotMin, "spot-min", 0, "lowest spot (default 0.8 x spot)")
	flags.Float64Var(&o.spotMax, "spot-max", 0, "highest spot (default 1.2 x spot)")
	flags.Float64Var(&o.volMin, "vol-min", 0, "lowest volatility (default 0.5 x vol)")
	flags.Float64Var(&o.volMax, "vol-max", 0, "highest volatility (default 1.5 x vol)")
	flags.IntVar(&o.count, "count", grid.DefaultCount, "points per axis")
	flags.StringVar(&o.mode, "mode", string(grid.MetricPrice), "price|pnl")
	flags.Float64Var(&o.callCost, "call-cost", 10, "call purchase price (pnl mode)")
	flags.Float64Var(&o.putCost, "put-cost", 10, "put purchase price (pnl mode)")
	flags.StringVar(&o.format, "format", formatTable, "output format (table|csv|json)")
	flags.StringVar(&o.outDir, "out", ".", "output directory for csv and json")
	return cmd
}

// resolve fills unset flags from the configuration and the dashboard
// defaults.
func (a *app) resolve(cmd *cobra.Command, o *heatmapOptions) (spotAxis, volAxis grid.Axis) {
	flags := cmd.Flags()
	if !flags.Changed("count") {
		o.count = a.cfg.Heatmap.Count
	}
	if !flags.Changed("call-cost") {
		o.callCost = a.cfg.Heatmap.CallCost
	}
	if !flags.Changed("put-cost") {
		o.putCost = a.cfg.Heatmap.PutCost
	}

	spotAxis = grid.DefaultSpotAxis(o.params.Spot)
	if flags.Changed("spot-min") {
		spotAxis.Min = o.spotMin
	}
	if flags.Changed("spot-max") {
		spotAxis.Max = o.spotMax
	}
	volAxis = grid.DefaultVolAxis(o.params.Volatility)
	if flags.Changed("vol-min") {
		volAxis.Min = o.volMin
	}
	if flags.Changed("vol-max") {
		volAxis.Max = o.volMax
	}
	spotAxis.Count, volAxis.Count = o.count, o.count
	return spotAxis, volAxis
}

func (a *app) runHeatmap(cmd *cobra.Command, o *heatmapOptions) error {
	spotAxis, volAxis := a.resolve(cmd, o)

	spots, err := spotAxis.Values()
	if err != nil {
		return fmt.Errorf("spot axis: %w", err)
	}
	vols, err := volAxis.Values()
	if err != nil {
		return fmt.Errorf("volatility axis: %w", err)
	}

	ev, err := grid.NewEvaluator(o.params, grid.WithWorkers(a.cfg.Workers))
	if err != nil {
		return err
	}

	var g *grid.Grid
	switch grid.Metric(o.mode) {
	case grid.MetricPrice:
		g, err = ev.PriceGrid(spots, vols, o.params.Strike)
	case grid.MetricPnL:
		g, err = ev.PnLGrid(spots, vols, o.params.Strike, o.callCost, o.putCost)
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", o.mode, grid.MetricPrice, grid.MetricPnL)
	}
	if err != nil {
		return err
	}
	logger.Debugf("%s grid %dx%d computed", g.Metric, g.Rows(), g.Cols())

	out := cmd.OutOrStdout()
	switch o.format {
	case formatTable:
		f := a.formatter()
		f.Parameters(out, o.params)
		f.Heatmap(out, g, pricing.Call)
		f.Heatmap(out, g, pricing.Put)
		return nil
	case formatCSV:
		paths, err := report.WriteGridCSV(g, o.outDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
		return nil
	case formatJSON:
		path, err := report.WriteJSON(g, o.outDir, string(g.Metric)+"_grid")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		return nil
	}
	return fmt.Errorf("unknown format %q (want %s, %s or %s)", o.format, formatTable, formatCSV, formatJSON)
}
