package grid

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

var base = pricing.Parameters{Spot: 100, Strike: 100, RiskFreeRate: 0.05, Volatility: 0.2, TimeToMaturity: 1}

func axes(t *testing.T) (spots, vols []float64) {
	t.Helper()
	spots, err := DefaultSpotAxis(base.Spot).Values()
	require.NoError(t, err)
	vols, err = Axis{Min: 0.1, Max: 0.4, Count: 4}.Values()
	require.NoError(t, err)
	return spots, vols
}

func TestPriceGridShapeAndCells(t *testing.T) {
	ev, err := NewEvaluator(base)
	require.NoError(t, err)

	spots, vols := axes(t)
	g, err := ev.PriceGrid(spots, vols, 105)
	require.NoError(t, err)

	assert.Equal(t, MetricPrice, g.Metric)
	require.Len(t, g.Call, len(vols))
	require.Len(t, g.Put, len(vols))
	assert.Equal(t, len(vols), g.Rows())
	assert.Equal(t, len(spots), g.Cols())

	for i, vol := range vols {
		require.Len(t, g.Call[i], len(spots))
		for j, spot := range spots {
			e, err := pricing.New(pricing.Parameters{
				Spot: spot, Strike: 105, RiskFreeRate: base.RiskFreeRate,
				Volatility: vol, TimeToMaturity: base.TimeToMaturity,
			})
			require.NoError(t, err)
			assert.Equal(t, e.CallPrice(), g.Call[i][j], "call[%d][%d]", i, j)
			assert.Equal(t, e.PutPrice(), g.Put[i][j], "put[%d][%d]", i, j)
		}
	}
}

func TestPnLIdentity(t *testing.T) {
	ev, err := NewEvaluator(base)
	require.NoError(t, err)

	spots, vols := axes(t)
	prices, err := ev.PriceGrid(spots, vols, base.Strike)
	require.NoError(t, err)
	pnl, err := ev.PnLGrid(spots, vols, base.Strike, 10, 7.5)
	require.NoError(t, err)

	assert.Equal(t, MetricPnL, pnl.Metric)
	assert.Equal(t, 10.0, pnl.CallCost)
	assert.Equal(t, 7.5, pnl.PutCost)
	for i := range vols {
		for j := range spots {
			assert.Equal(t, prices.Call[i][j]-10, pnl.Call[i][j])
			assert.Equal(t, prices.Put[i][j]-7.5, pnl.Put[i][j])
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq, err := NewEvaluator(base)
	require.NoError(t, err)
	par, err := NewEvaluator(base, WithWorkers(4))
	require.NoError(t, err)

	spots, err := Axis{Min: 50, Max: 150, Count: 21}.Values()
	require.NoError(t, err)
	vols, err := Axis{Min: 0.05, Max: 0.9, Count: 17}.Values()
	require.NoError(t, err)

	a, err := seq.PnLGrid(spots, vols, 100, 3, 4)
	require.NoError(t, err)
	b, err := par.PnLGrid(spots, vols, 100, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestZeroVolatilityCellUsesLimit(t *testing.T) {
	ev, err := NewEvaluator(base)
	require.NoError(t, err)

	g, err := ev.PriceGrid([]float64{80, 120}, []float64{0, 0.2}, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.0, g.Call[0][0])
	assert.InDelta(t, 120-100*0.951229424500714, g.Call[0][1], 1e-12)
	assert.Greater(t, g.Call[1][0], 0.0)
}

func TestVanishingVolatilityDoesNotAbortSweep(t *testing.T) {
	ev, err := NewEvaluator(base)
	require.NoError(t, err)

	g, err := ev.PriceGrid([]float64{90, 100, 110}, []float64{1e-320, 0.2}, 100)
	require.NoError(t, err)

	zero, err := ev.PriceGrid([]float64{90, 100, 110}, []float64{0}, 100)
	require.NoError(t, err)
	assert.Equal(t, zero.Call[0], g.Call[0])
	assert.Equal(t, zero.Put[0], g.Put[0])
	for _, v := range g.Call[1] {
		assert.Greater(t, v, 0.0)
	}
}

func TestPnLRejectsNonFiniteCosts(t *testing.T) {
	ev, err := NewEvaluator(base)
	require.NoError(t, err)

	for _, cost := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		g, err := ev.PnLGrid([]float64{100}, []float64{0.2}, 100, cost, 10)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, pricing.ErrInvalidParameters, "call cost %g", cost)

		g, err = ev.PnLGrid([]float64{100}, []float64{0.2}, 100, 10, cost)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, pricing.ErrInvalidParameters, "put cost %g", cost)
	}
}

func TestRejectsInvalidAxes(t *testing.T) {
	ev, err := NewEvaluator(base)
	require.NoError(t, err)

	tests := []struct {
		name   string
		spots  []float64
		vols   []float64
		strike float64
	}{
		{"empty spot", nil, []float64{0.2}, 100},
		{"empty vol", []float64{100}, nil, 100},
		{"negative vol", []float64{100}, []float64{0.2, -0.1}, 100},
		{"zero spot", []float64{0, 100}, []float64{0.2}, 100},
		{"zero strike", []float64{100}, []float64{0.2}, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := ev.PriceGrid(test.spots, test.vols, test.strike)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, pricing.ErrInvalidParameters), "got %v", err)
		})
	}
}

func TestRejectsInvalidBase(t *testing.T) {
	_, err := NewEvaluator(pricing.Parameters{Spot: 100, Strike: 100, Volatility: 0.2, TimeToMaturity: -1})
	assert.ErrorIs(t, err, pricing.ErrInvalidParameters)
}

func TestObserverSeesEveryCell(t *testing.T) {
	var n int64
	obs := pricing.ObserverFunc(func(pricing.Parameters, *pricing.Result, error) {
		atomic.AddInt64(&n, 1)
	})
	ev, err := NewEvaluator(base, WithObserver(obs), WithWorkers(3))
	require.NoError(t, err)

	spots, vols := axes(t)
	_, err = ev.PriceGrid(spots, vols, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(len(spots)*len(vols)), atomic.LoadInt64(&n))
}

func TestGridDoesNotAliasAxes(t *testing.T) {
	ev, err := NewEvaluator(base)
	require.NoError(t, err)

	spots := []float64{90, 100, 110}
	g, err := ev.PriceGrid(spots, []float64{0.2}, 100)
	require.NoError(t, err)

	spots[0] = 1
	assert.Equal(t, 90.0, g.SpotAxis[0])
}
