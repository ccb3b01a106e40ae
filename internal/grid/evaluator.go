// Package grid re-prices the Black-Scholes engine over a Cartesian product of
// spot and volatility values, producing the matrices behind the price and PnL
// heatmaps.
//
// Matrices are indexed [volIndex][spotIndex]. Every cell is a pure function of
// its own coordinates, so rows may be evaluated concurrently without changing
// the result.
package grid

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Metric names what a grid holds.
type Metric string

const (
	MetricPrice Metric = "price"
	MetricPnL   Metric = "pnl"
)

// Grid is the result of one sweep. The caller owns it.
type Grid struct {
	Metric   Metric      `json:"metric"`
	Strike   float64     `json:"strike"`
	SpotAxis []float64   `json:"spot_axis"`
	VolAxis  []float64   `json:"vol_axis"`
	Call     [][]float64 `json:"call"`
	Put      [][]float64 `json:"put"`
	CallCost float64     `json:"call_cost,omitempty"`
	PutCost  float64     `json:"put_cost,omitempty"`
}

// Rows returns len(VolAxis).
func (g *Grid) Rows() int { return len(g.VolAxis) }

// Cols returns len(SpotAxis).
func (g *Grid) Cols() int { return len(g.SpotAxis) }

// Matrix returns the call or put matrix.
func (g *Grid) Matrix(side pricing.Side) [][]float64 {
	if side == pricing.Put {
		return g.Put
	}
	return g.Call
}

// Evaluator holds the fixed rate and maturity of a sweep.
type Evaluator struct {
	base     pricing.Parameters
	workers  int
	observer pricing.Observer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWorkers evaluates rows on up to n goroutines. n <= 1 is sequential.
func WithWorkers(n int) Option {
	return func(ev *Evaluator) { ev.workers = n }
}

// WithObserver forwards an observer to every cell's engine.
func WithObserver(o pricing.Observer) Option {
	return func(ev *Evaluator) { ev.observer = o }
}

// NewEvaluator validates the base parameters. Only their rate and maturity
// are used by the sweep; spot, volatility and strike come from the axes.
func NewEvaluator(base pricing.Parameters, opts ...Option) (*Evaluator, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	ev := &Evaluator{base: base, workers: 1}
	for _, opt := range opts {
		opt(ev)
	}
	return ev, nil
}

// Base returns the parameters the evaluator was built with.
func (ev *Evaluator) Base() pricing.Parameters { return ev.base }

// PriceGrid stores the call and put price of every (vol, spot) cell.
func (ev *Evaluator) PriceGrid(spotAxis, volAxis []float64, strike float64) (*Grid, error) {
	g, err := ev.sweep(spotAxis, volAxis, strike, 0, 0)
	if err != nil {
		return nil, err
	}
	g.Metric = MetricPrice
	return g, nil
}

// PnLGrid stores price minus purchase cost for every cell.
func (ev *Evaluator) PnLGrid(spotAxis, volAxis []float64, strike, callCost, putCost float64) (*Grid, error) {
	if math.IsNaN(callCost) || math.IsInf(callCost, 0) || math.IsNaN(putCost) || math.IsInf(putCost, 0) {
		return nil, fmt.Errorf("%w: purchase costs must be finite (call=%g put=%g)", pricing.ErrInvalidParameters, callCost, putCost)
	}
	g, err := ev.sweep(spotAxis, volAxis, strike, callCost, putCost)
	if err != nil {
		return nil, err
	}
	g.Metric = MetricPnL
	g.CallCost, g.PutCost = callCost, putCost
	return g, nil
}

// validateAxes rejects the sweep up front so that no cell can fail
// half-way. Zero volatility is a valid cell (the engine's limiting case).
func validateAxes(spotAxis, volAxis []float64, strike float64) error {
	if len(spotAxis) == 0 {
		return fmt.Errorf("%w: spot axis is empty", pricing.ErrInvalidParameters)
	}
	if len(volAxis) == 0 {
		return fmt.Errorf("%w: volatility axis is empty", pricing.ErrInvalidParameters)
	}
	if err := pricing.ValidateField(pricing.FieldStrike, strike); err != nil {
		return err
	}
	for j, s := range spotAxis {
		if err := pricing.ValidateField(pricing.FieldSpot, s); err != nil {
			return fmt.Errorf("spot axis[%d]: %w", j, err)
		}
	}
	for i, v := range volAxis {
		if err := pricing.ValidateField(pricing.FieldVolatility, v); err != nil {
			return fmt.Errorf("volatility axis[%d]: %w", i, err)
		}
	}
	return nil
}

func (ev *Evaluator) sweep(spotAxis, volAxis []float64, strike, callCost, putCost float64) (*Grid, error) {
	if err := validateAxes(spotAxis, volAxis, strike); err != nil {
		return nil, err
	}

	g := &Grid{
		Strike:   strike,
		SpotAxis: append([]float64(nil), spotAxis...),
		VolAxis:  append([]float64(nil), volAxis...),
		Call:     newMatrix(len(volAxis), len(spotAxis)),
		Put:      newMatrix(len(volAxis), len(spotAxis)),
	}

	var eg errgroup.Group
	if ev.workers > 1 {
		eg.SetLimit(ev.workers)
	}
	for i := range g.VolAxis {
		row := func() error { return ev.fillRow(g, i, callCost, putCost) }
		if ev.workers <= 1 {
			if err := row(); err != nil {
				return nil, err
			}
			continue
		}
		eg.Go(row)
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

func (ev *Evaluator) fillRow(g *Grid, i int, callCost, putCost float64) error {
	var opts []pricing.Option
	if ev.observer != nil {
		opts = append(opts, pricing.WithObserver(ev.observer))
	}

	for j, spot := range g.SpotAxis {
		p := pricing.Parameters{
			Spot:           spot,
			Strike:         g.Strike,
			RiskFreeRate:   ev.base.RiskFreeRate,
			Volatility:     g.VolAxis[i],
			TimeToMaturity: ev.base.TimeToMaturity,
		}
		res, err := pricing.Price(p, opts...)
		if err != nil {
			return fmt.Errorf("cell [%d][%d]: %w", i, j, err)
		}
		g.Call[i][j] = res.CallPrice - callCost
		g.Put[i][j] = res.PutPrice - putCost
	}
	return nil
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}
