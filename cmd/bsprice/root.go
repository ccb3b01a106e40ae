package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/contactkeval/option-pricer/internal/config"
	"github.com/contactkeval/option-pricer/internal/display"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/server"
)

// app carries what every subcommand shares once the configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	noColor bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "bsprice",
		Short: "Black-Scholes European option pricer",
		Long: `bsprice prices European calls and puts with the Black-Scholes model,
reports their Greeks and sweeps price or PnL heatmaps over spot and volatility.

Without a subcommand it starts the interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.Int("verbosity", 1, "0=errors, 1=info, 2=debug, 3=trace")
	flags.String("locale", "fr", "output language (fr|en)")
	flags.Int("workers", 1, "goroutines used by heatmap sweeps")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	_ = a.v.BindPFlag("verbosity", flags.Lookup("verbosity"))
	_ = a.v.BindPFlag("display.locale", flags.Lookup("locale"))
	_ = a.v.BindPFlag("workers", flags.Lookup("workers"))

	root.AddCommand(
		newInteractiveCmd(a),
		newPriceCmd(a),
		newHeatmapCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if a.noColor {
		cfg.Display.Color = false
	}
	a.cfg = cfg

	logger.SetVerbosity(cfg.Verbosity)
	logger.Debugf("config loaded: %+v", *cfg)
	return nil
}

func (a *app) formatter() *display.Formatter {
	d := a.cfg.Display
	return display.NewFormatter(display.Config{
		Locale:         d.Locale,
		CurrencySymbol: d.CurrencySymbol,
		Decimals:       d.Decimals,
		Color:          d.Color,
		Moneyness:      display.Thresholds{ITM: d.Moneyness.ITM, OTM: d.Moneyness.OTM},
	})
}

func (a *app) serverConfig() server.Config {
	return server.Config{
		Addr:         a.cfg.Server.Addr,
		Mode:         a.cfg.Server.Mode,
		MaxCount:     a.cfg.Server.MaxCount,
		DefaultCount: a.cfg.Heatmap.Count,
		CallCost:     a.cfg.Heatmap.CallCost,
		PutCost:      a.cfg.Heatmap.PutCost,
		Workers:      a.cfg.Workers,
		Decimals:     a.cfg.Display.Decimals,
		Moneyness:    display.Thresholds{ITM: a.cfg.Display.Moneyness.ITM, OTM: a.cfg.Display.Moneyness.OTM},
	}
}
