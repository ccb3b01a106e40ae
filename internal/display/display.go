// Package display renders pricing results, moneyness status and heatmaps for
// a terminal. Everything here is presentation: locale, currency symbol,
// rounding and colour thresholds come from Config and never reach the engine.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

const ruleWidth = 60

// Config is the presentation configuration.
type Config struct {
	Locale         string
	CurrencySymbol string
	Decimals       int
	Color          bool
	Moneyness      Thresholds
}

// DefaultConfig is the French terminal layout.
func DefaultConfig() Config {
	return Config{
		Locale:         "fr",
		CurrencySymbol: "€",
		Decimals:       4,
		Color:          true,
		Moneyness:      DefaultThresholds,
	}
}

// Formatter formats numbers and writes reports for one Config.
type Formatter struct {
	cfg     Config
	msgs    Messages
	printer *message.Printer

	good, warn, bad *color.Color
}

// NewFormatter builds a formatter. Unknown locales fall back to French.
func NewFormatter(cfg Config) *Formatter {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.French
	}
	f := &Formatter{
		cfg:     cfg,
		msgs:    MessagesFor(cfg.Locale),
		printer: message.NewPrinter(tag),
		good:    color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed),
	}
	if !cfg.Color {
		f.good.DisableColor()
		f.warn.DisableColor()
		f.bad.DisableColor()
	}
	return f
}

// Messages returns the active catalog.
func (f *Formatter) Messages() Messages { return f.msgs }

// Config returns the presentation configuration.
func (f *Formatter) Config() Config { return f.cfg }

// Number formats v with the locale's decimal separator.
func (f *Formatter) Number(v float64, decimals int) string {
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// Round rounds half away from zero to the given number of places.
func Round(v float64, places int) float64 {
	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
}

// Money rounds v and appends (fr) or prepends (en) the currency symbol.
func (f *Formatter) Money(v float64, decimals int) string {
	s := f.Number(Round(v, decimals), decimals)
	if f.cfg.Locale == "en" {
		return f.cfg.CurrencySymbol + s
	}
	return s + " " + f.cfg.CurrencySymbol
}

// StatusText returns the localized moneyness status.
func (f *Formatter) StatusText(m Moneyness) string {
	switch m {
	case ITM:
		return f.msgs.StatusITM
	case OTM:
		return f.msgs.StatusOTM
	}
	return f.msgs.StatusATM
}

func (f *Formatter) rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, ruleWidth))
}

// Header prints the session banner.
func (f *Formatter) Header(w io.Writer) {
	fmt.Fprintln(w)
	f.rule(w, "=")
	fmt.Fprintf(w, "     %s\n", f.msgs.Header)
	f.rule(w, "=")
}

// Farewell prints the closing banner.
func (f *Formatter) Farewell(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", f.msgs.Farewell)
	f.rule(w, "=")
	fmt.Fprintln(w)
}

// Result prints prices, both sets of Greeks and the moneyness status.
func (f *Formatter) Result(w io.Writer, res *pricing.Result) {
	d := f.cfg.Decimals

	fmt.Fprintln(w)
	f.rule(w, "=")
	fmt.Fprintf(w, "%20s%s\n", "", f.msgs.Results)
	f.rule(w, "=")

	fmt.Fprintf(w, "\n%s\n", f.msgs.Prices)
	f.rule(w, "-")
	fmt.Fprintf(w, "   %-10s : %14s\n", f.msgs.CallPrice, f.Money(res.CallPrice, d))
	fmt.Fprintf(w, "   %-10s : %14s\n", f.msgs.PutPrice, f.Money(res.PutPrice, d))

	f.greeks(w, f.msgs.CallGrk, res.Call)
	f.greeks(w, f.msgs.PutGrk, res.Put)

	fmt.Fprintln(w)
	f.rule(w, "=")

	p := res.Parameters
	m := Classify(p.Spot, p.Strike, f.cfg.Moneyness)
	fmt.Fprintf(w, "\n%s : %s\n", f.msgs.Status, f.colorFor(m).Sprint(f.StatusText(m)))
	fmt.Fprintf(w, "   %s : %s\n", f.msgs.MoneynessRatio, f.Number(p.Moneyness(), 4))
}

func (f *Formatter) greeks(w io.Writer, title string, g pricing.Greeks) {
	d := f.cfg.Decimals
	fmt.Fprintf(w, "\n%s\n", title)
	f.rule(w, "-")
	fmt.Fprintf(w, "   %-10s : %10s\n", f.msgs.Delta, f.Number(g.Delta, d))
	fmt.Fprintf(w, "   %-10s : %10s\n", f.msgs.Gamma, f.Number(g.Gamma, d))
	fmt.Fprintf(w, "   %-10s : %10s\n", f.msgs.Vega, f.Number(g.Vega, d))
	fmt.Fprintf(w, "   %-10s : %10s %s\n", f.msgs.Theta, f.Number(g.Theta, d), f.msgs.PerDay)
	fmt.Fprintf(w, "   %-10s : %10s\n", f.msgs.Rho, f.Number(g.Rho, d))
}

func (f *Formatter) colorFor(m Moneyness) *color.Color {
	switch m {
	case ITM:
		return f.good
	case OTM:
		return f.bad
	}
	return f.warn
}

// Parameters echoes the inputs as a two-column table.
func (f *Formatter) Parameters(w io.Writer, p pricing.Parameters) {
	rows := []struct {
		label string
		value float64
	}{
		{f.msgs.SpotLabel, p.Spot},
		{f.msgs.StrikeLabel, p.Strike},
		{f.msgs.MaturityLabel, p.TimeToMaturity},
		{f.msgs.VolLabel, p.Volatility},
		{f.msgs.RateLabel, p.RiskFreeRate},
	}
	fmt.Fprintf(w, "%s\n", f.msgs.Parameters)
	f.rule(w, "-")
	for _, r := range rows {
		fmt.Fprintf(w, "   %-34s %12s\n", r.label, f.Number(r.value, 4))
	}
}

// Error prints an engine or validation failure without aborting the session.
func (f *Formatter) Error(w io.Writer, err error, validation bool) {
	if validation {
		fmt.Fprintf(w, "\n%s : %v\n%s\n", f.bad.Sprint(f.msgs.ValidationError), err, f.msgs.CheckParameters)
		return
	}
	fmt.Fprintf(w, "\n%s : %v\n%s\n", f.bad.Sprint(f.msgs.UnexpectedError), err, f.msgs.ContactSupport)
}
