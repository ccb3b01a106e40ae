package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

// DefaultCount is the number of samples per axis when none is given.
const DefaultCount = 10

// Sweep bounds used by the default axes.
const (
	MinSweepVolatility = 0.01
	MaxSweepVolatility = 1.0
	MinSweepSpot       = 0.01
)

// Axis is a closed range sampled linearly into Count points.
type Axis struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Validate checks Min <= Max, finite bounds and Count >= 1.
func (a Axis) Validate() error {
	if math.IsNaN(a.Min) || math.IsNaN(a.Max) || math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) {
		return fmt.Errorf("%w: axis bounds must be finite (min=%g max=%g)", pricing.ErrInvalidParameters, a.Min, a.Max)
	}
	if a.Min > a.Max {
		return fmt.Errorf("%w: axis min %g is greater than max %g", pricing.ErrInvalidParameters, a.Min, a.Max)
	}
	if a.Count < 1 {
		return fmt.Errorf("%w: axis count must be at least 1, got %d", pricing.ErrInvalidParameters, a.Count)
	}
	return nil
}

// Values returns Count evenly spaced points from Min to Max inclusive.
// A single-point axis is [Min].
func (a Axis) Values() ([]float64, error) {
	if a.Count == 0 {
		a.Count = DefaultCount
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.Count == 1 {
		return []float64{a.Min}, nil
	}
	return floats.Span(make([]float64, a.Count), a.Min, a.Max), nil
}

// DefaultSpotAxis spans 80% to 120% of spot.
func DefaultSpotAxis(spot float64) Axis {
	return Axis{
		Min:   math.Max(MinSweepSpot, spot*0.8),
		Max:   math.Max(MinSweepSpot, spot*1.2),
		Count: DefaultCount,
	}
}

// DefaultVolAxis spans 50% to 150% of vol, clamped to the sweep bounds.
func DefaultVolAxis(vol float64) Axis {
	return Axis{
		Min:   clamp(vol*0.5, MinSweepVolatility, MaxSweepVolatility),
		Max:   clamp(vol*1.5, MinSweepVolatility, MaxSweepVolatility),
		Count: DefaultCount,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
