package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

// addParameterFlags registers the five model inputs on cmd.
func addParameterFlags(cmd *cobra.Command, p *pricing.Parameters) {
	flags := cmd.Flags()
	flags.Float64VarP(&p.Spot, "spot", "S", 0, "underlying spot price (> 0)")
	flags.Float64VarP(&p.Strike, "strike", "K", 0, "strike price (> 0)")
	flags.Float64VarP(&p.RiskFreeRate, "rate", "r", 0, "annual risk-free rate, e.g. 0.03")
	flags.Float64Var(&p.Volatility, "vol", 0, "annual volatility, e.g. 0.25 (>= 0)")
	flags.Float64VarP(&p.TimeToMaturity, "maturity", "T", 0, "time to maturity in years (>= 0)")
	_ = cmd.MarkFlagRequired("spot")
	_ = cmd.MarkFlagRequired("strike")
	_ = cmd.MarkFlagRequired("vol")
	_ = cmd.MarkFlagRequired("maturity")
}

func newPriceCmd(a *app) *cobra.Command {
	var (
		p      pricing.Parameters
		format string
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a call and a put and print their Greeks",
		Example: `  bsprice price -S 100 -K 100 -r 0.05 --vol 0.2 -T 1
  bsprice price -S 100 -K 95 --vol 0.25 -T 0.5 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := a.formatter()
			out := cmd.OutOrStdout()

			res, err := pricing.Price(p, pricing.WithObserver(logger.PricingObserver()))
			if err != nil {
				if format == formatTable {
					f.Error(out, err, errors.Is(err, pricing.ErrInvalidParameters))
				}
				return err
			}

			switch format {
			case formatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case formatTable:
				f.Parameters(out, p)
				f.Result(out, res)
				return nil
			}
			return fmt.Errorf("unknown format %q (want %s or %s)", format, formatTable, formatJSON)
		},
	}

	addParameterFlags(cmd, &p)
	cmd.Flags().StringVar(&format, "format", formatTable, "output format (table|json)")
	return cmd
}
