package display

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/contactkeval/option-pricer/internal/grid"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

const cellWidth = 9

// Band is the colour bucket of a heatmap cell (red, yellow, green).
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// BandOf buckets v. With centered set (PnL), values within 5% of the largest
// magnitude around zero are mid, negatives low and positives high. Otherwise
// the matrix range is split into thirds.
func BandOf(v, lo, hi float64, centered bool) Band {
	if centered {
		span := math.Max(math.Abs(lo), math.Abs(hi))
		switch {
		case math.Abs(v) <= 0.05*span:
			return BandMid
		case v < 0:
			return BandLow
		}
		return BandHigh
	}

	if hi == lo {
		return BandMid
	}
	x := (v - lo) / (hi - lo)
	switch {
	case x < 1.0/3:
		return BandLow
	case x < 2.0/3:
		return BandMid
	}
	return BandHigh
}

// HeatmapTitle returns the localized title of one side of a grid.
func (f *Formatter) HeatmapTitle(g *grid.Grid, side pricing.Side) string {
	if g.Metric == grid.MetricPnL {
		title, cost := f.msgs.CallPnLTitle, g.CallCost
		if side == pricing.Put {
			title, cost = f.msgs.PutPnLTitle, g.PutCost
		}
		return fmt.Sprintf("%s (%s : %s)", title, f.msgs.PurchasePrice, f.Money(cost, 2))
	}
	if side == pricing.Put {
		return f.msgs.PutPriceTitle
	}
	return f.msgs.CallPriceTitle
}

// Heatmap draws one matrix of g: spot across, volatility down, two decimals
// per cell, coloured by band.
func (f *Formatter) Heatmap(w io.Writer, g *grid.Grid, side pricing.Side) {
	m := g.Matrix(side)
	lo, hi := bounds(m)
	centered := g.Metric == grid.MetricPnL

	fmt.Fprintf(w, "\n%s\n", f.HeatmapTitle(g, side))
	fmt.Fprintf(w, "%s \\ %s\n", f.msgs.VolLabel, f.msgs.SpotLabel)

	var b strings.Builder
	b.WriteString(pad("", cellWidth))
	for _, s := range g.SpotAxis {
		b.WriteString(pad(f.Number(s, 2), cellWidth))
	}
	fmt.Fprintln(w, b.String())

	for i, vol := range g.VolAxis {
		b.Reset()
		b.WriteString(pad(f.Number(vol, 2), cellWidth))
		for _, v := range m[i] {
			cell := pad(f.Number(v, 2), cellWidth)
			b.WriteString(f.bandColor(BandOf(v, lo, hi, centered)).Sprint(cell))
		}
		fmt.Fprintln(w, b.String())
	}
}

func (f *Formatter) bandColor(b Band) *color.Color {
	switch b {
	case BandLow:
		return f.bad
	case BandMid:
		return f.warn
	}
	return f.good
}

// pad right-aligns s in width runes. Padding happens before colouring so
// escape codes do not skew the columns.
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return " " + s
	}
	return strings.Repeat(" ", width-n) + s
}

func bounds(m [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range m {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}
