package pricing

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DaysPerYear converts annualized theta into a per-calendar-day figure.
	DaysPerYear = 365.0

	// RatePercent expresses rho per 1% change in the risk-free rate.
	RatePercent = 100.0
)

// Side selects the call or the put leg of a pricing result.
type Side int

const (
	Call Side = iota
	Put
)

func (s Side) String() string {
	if s == Put {
		return "put"
	}
	return "call"
}

// ParseSide accepts "call"/"c" and "put"/"p", case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return Call, fmt.Errorf("unknown option side %q", s)
}

// Greeks are the first-order sensitivities of one side plus gamma.
//
// Units:
//   - Vega is per unit of volatility (divide by 100 for "per 1% vol")
//   - Theta is per calendar day
//   - Rho is per 1% change in the rate
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// Result is the full output of one evaluation. It is rebuilt on every call.
type Result struct {
	Parameters Parameters `json:"parameters"`
	CallPrice  float64    `json:"call_price"`
	PutPrice   float64    `json:"put_price"`
	Call       Greeks     `json:"call_greeks"`
	Put        Greeks     `json:"put_greeks"`
}

// GreeksFor returns the Greeks of the requested side.
func (r *Result) GreeksFor(side Side) Greeks {
	if side == Put {
		return r.Put
	}
	return r.Call
}

// Engine prices European options on a non-dividend-paying underlying with the
// Black-Scholes closed form. It holds nothing but its parameters.
//
// When volatility or time to maturity is zero, or S*sigma*sqrt(T) is too small
// for gamma to stay finite, the engine uses the limiting case of the formulas
// instead of d1/d2: N(d1) and N(d2) become a step on the
// sign of S - K*e^(-rT) (one half on equality) and every n(d1) term vanishes.
// Prices reduce to max(S - K*e^(-rT), 0) and max(K*e^(-rT) - S, 0), gamma and
// vega are zero.
type Engine struct {
	params   Parameters
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers an observer notified after every Evaluate.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// New validates p and returns an engine bound to it.
func New(p Parameters, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{params: p}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Price is a one-shot New + Evaluate.
func Price(p Parameters, opts ...Option) (*Result, error) {
	e, err := New(p, opts...)
	if err != nil {
		return nil, err
	}
	return e.Evaluate()
}

// Parameters returns the engine inputs.
func (e *Engine) Parameters() Parameters { return e.params }

// terms holds N(±d1), N(±d2), n(d1) and the shared factors.
type terms struct {
	nd1, nd2       float64 // N(d1), N(d2)
	nMinusD1       float64 // N(-d1)
	nMinusD2       float64 // N(-d2)
	pdfD1          float64 // n(d1)
	sqrtT          float64
	discount       float64 // e^(-rT)
	degenerateCase bool
}

func (e *Engine) terms() terms {
	p := e.params
	t := terms{
		sqrtT:    math.Sqrt(p.TimeToMaturity),
		discount: p.discountFactor(),
	}

	if p.Degenerate() {
		step := limitCDF(p.Spot - p.Strike*t.discount)
		t.nd1, t.nd2 = step, step
		t.nMinusD1, t.nMinusD2 = 1-step, 1-step
		t.degenerateCase = true
		return t
	}

	volSqrtT := p.Volatility * t.sqrtT
	d1 := (math.Log(p.Spot/p.Strike) + (p.RiskFreeRate+0.5*p.Volatility*p.Volatility)*p.TimeToMaturity) / volSqrtT
	d2 := d1 - volSqrtT

	t.nd1 = normCDF(d1)
	t.nd2 = normCDF(d2)
	t.nMinusD1 = normCDF(-d1)
	t.nMinusD2 = normCDF(-d2)
	t.pdfD1 = normPDF(d1)
	return t
}

// limitCDF is the limit of N(d) as sigma*sqrt(T) goes to zero, where the
// sign of d is the sign of forwardGap = S - K*e^(-rT).
func limitCDF(forwardGap float64) float64 {
	switch {
	case forwardGap > 0:
		return 1
	case forwardGap < 0:
		return 0
	}
	return 0.5
}

// CallPrice returns S*N(d1) - K*e^(-rT)*N(d2).
func (e *Engine) CallPrice() float64 {
	t := e.terms()
	return e.callPrice(t)
}

// PutPrice returns K*e^(-rT)*N(-d2) - S*N(-d1).
func (e *Engine) PutPrice() float64 {
	t := e.terms()
	return e.putPrice(t)
}

// callPrice and putPrice floor at zero: for deep out-of-the-money legs the
// difference of the two products can cancel to a tiny negative number.
func (e *Engine) callPrice(t terms) float64 {
	return math.Max(0, e.params.Spot*t.nd1-e.params.Strike*t.discount*t.nd2)
}

func (e *Engine) putPrice(t terms) float64 {
	return math.Max(0, e.params.Strike*t.discount*t.nMinusD2-e.params.Spot*t.nMinusD1)
}

// Greeks returns delta, gamma, vega, theta (per day) and rho (per 1%) for one
// side.
func (e *Engine) Greeks(side Side) Greeks {
	return e.greeks(side, e.terms())
}

func (e *Engine) greeks(side Side, t terms) Greeks {
	p := e.params
	S, K, r, sigma, T := p.Spot, p.Strike, p.RiskFreeRate, p.Volatility, p.TimeToMaturity

	var gamma, vega, decay float64
	if !t.degenerateCase {
		gamma = t.pdfD1 / (S * sigma * t.sqrtT)
		vega = S * t.pdfD1 * t.sqrtT
		decay = -S * t.pdfD1 * sigma / (2 * t.sqrtT)
	}

	g := Greeks{Gamma: gamma, Vega: vega}
	if side == Put {
		g.Delta = t.nd1 - 1
		g.Theta = (decay + r*K*t.discount*t.nMinusD2) / DaysPerYear
		g.Rho = -K * T * t.discount * t.nMinusD2 / RatePercent
		return g
	}

	g.Delta = t.nd1
	g.Theta = (decay - r*K*t.discount*t.nd2) / DaysPerYear
	g.Rho = K * T * t.discount * t.nd2 / RatePercent
	return g
}

// Evaluate computes both prices and both sets of Greeks. It never returns a
// partially populated result: any non-finite output yields ErrNumerical.
func (e *Engine) Evaluate() (*Result, error) {
	t := e.terms()
	res := &Result{
		Parameters: e.params,
		CallPrice:  e.callPrice(t),
		PutPrice:   e.putPrice(t),
		Call:       e.greeks(Call, t),
		Put:        e.greeks(Put, t),
	}

	var err error
	if field, ok := res.firstNonFinite(); ok {
		res = nil
		err = fmt.Errorf("%w: %s is not finite for %+v", ErrNumerical, field, e.params)
	}

	if e.observer != nil {
		e.observer.Observe(e.params, res, err)
	}
	return res, err
}

func (r *Result) firstNonFinite() (string, bool) {
	values := []struct {
		name string
		v    float64
	}{
		{"call_price", r.CallPrice},
		{"put_price", r.PutPrice},
		{"call_delta", r.Call.Delta},
		{"call_gamma", r.Call.Gamma},
		{"call_vega", r.Call.Vega},
		{"call_theta", r.Call.Theta},
		{"call_rho", r.Call.Rho},
		{"put_delta", r.Put.Delta},
		{"put_theta", r.Put.Theta},
		{"put_rho", r.Put.Rho},
	}
	for _, x := range values {
		if math.IsNaN(x.v) || math.IsInf(x.v, 0) {
			return x.name, true
		}
	}
	return "", false
}
