package pricing

import (
	"math"
)

// Field names used when reporting invalid parameters.
const (
	FieldSpot           = "spot"
	FieldStrike         = "strike"
	FieldRiskFreeRate   = "risk_free_rate"
	FieldVolatility     = "volatility"
	FieldTimeToMaturity = "time_to_maturity"
)

// Parameters holds the market and contract inputs of the Black-Scholes model.
//
// Fields:
//   - Spot: current price of the underlying (S), must be > 0
//   - Strike: exercise price (K), must be > 0
//   - RiskFreeRate: annualized, continuously compounded rate (r), any sign
//   - Volatility: annualized volatility as a decimal (sigma), must be >= 0
//   - TimeToMaturity: years remaining (T), must be >= 0
type Parameters struct {
	Spot           float64 `json:"spot"`
	Strike         float64 `json:"strike"`
	RiskFreeRate   float64 `json:"risk_free_rate"`
	Volatility     float64 `json:"volatility"`
	TimeToMaturity float64 `json:"time_to_maturity"`
}

// Validate checks every field against its domain and returns the first
// violation as an *InvalidParameterError.
func (p Parameters) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{FieldSpot, p.Spot},
		{FieldStrike, p.Strike},
		{FieldRiskFreeRate, p.RiskFreeRate},
		{FieldVolatility, p.Volatility},
		{FieldTimeToMaturity, p.TimeToMaturity},
	}
	for _, c := range checks {
		if err := ValidateField(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateField applies the domain rule of a single field. Collection layers
// (prompts, request binding) use it to reject a value before a full
// Parameters exists.
func ValidateField(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidParameterError{Field: field, Value: v, Reason: "must be a finite number"}
	}

	switch field {
	case FieldSpot, FieldStrike:
		if v <= 0 {
			return &InvalidParameterError{Field: field, Value: v, Reason: "must be strictly positive"}
		}
	case FieldVolatility, FieldTimeToMaturity:
		if v < 0 {
			return &InvalidParameterError{Field: field, Value: v, Reason: "must not be negative"}
		}
	case FieldRiskFreeRate:
		// unconstrained
	default:
		return &InvalidParameterError{Field: field, Value: v, Reason: "unknown field"}
	}
	return nil
}

// Degenerate reports whether the closed form cannot be evaluated for these
// parameters: zero volatility, zero time to maturity, or S*sigma*sqrt(T) so
// small that 1/(S*sigma*sqrt(T)) overflows and gamma would not be finite.
func (p Parameters) Degenerate() bool {
	if p.Volatility == 0 || p.TimeToMaturity == 0 {
		return true
	}
	volSqrtT := p.Volatility * math.Sqrt(p.TimeToMaturity)
	if volSqrtT == 0 {
		return true
	}
	return math.IsInf(1/(p.Spot*volSqrtT), 0)
}

// Moneyness returns S/K.
func (p Parameters) Moneyness() float64 {
	return p.Spot / p.Strike
}

// discountFactor returns e^(-rT).
func (p Parameters) discountFactor() float64 {
	return math.Exp(-p.RiskFreeRate * p.TimeToMaturity)
}
