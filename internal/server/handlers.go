package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/display"
	"github.com/contactkeval/option-pricer/internal/grid"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// ParametersRequest carries the five model inputs. The rate is unconstrained.
type ParametersRequest struct {
	Spot           float64 `json:"spot" binding:"gt=0"`
	Strike         float64 `json:"strike" binding:"gt=0"`
	RiskFreeRate   float64 `json:"risk_free_rate"`
	Volatility     float64 `json:"volatility" binding:"gte=0"`
	TimeToMaturity float64 `json:"time_to_maturity" binding:"gte=0"`
}

// Parameters converts the request to engine inputs.
func (r ParametersRequest) Parameters() pricing.Parameters {
	return pricing.Parameters{
		Spot:           r.Spot,
		Strike:         r.Strike,
		RiskFreeRate:   r.RiskFreeRate,
		Volatility:     r.Volatility,
		TimeToMaturity: r.TimeToMaturity,
	}
}

// HeatmapRequest adds axis ranges and purchase costs. Missing bounds fall
// back to 80%-120% of spot and 50%-150% of volatility.
type HeatmapRequest struct {
	ParametersRequest
	SpotMin  *float64 `json:"spot_min" binding:"omitempty,gt=0"`
	SpotMax  *float64 `json:"spot_max" binding:"omitempty,gt=0"`
	VolMin   *float64 `json:"vol_min" binding:"omitempty,gte=0"`
	VolMax   *float64 `json:"vol_max" binding:"omitempty,gte=0"`
	Count    int      `json:"count" binding:"omitempty,min=1"`
	CallCost *float64 `json:"call_cost"`
	PutCost  *float64 `json:"put_cost"`
}

// GreeksResponse is a rounded pricing.Greeks.
type GreeksResponse struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Vega  decimal.Decimal `json:"vega"`
	Theta decimal.Decimal `json:"theta"`
	Rho   decimal.Decimal `json:"rho"`
}

// PriceResponse is the body of POST /api/v1/price.
type PriceResponse struct {
	Parameters     pricing.Parameters `json:"parameters"`
	CallPrice      decimal.Decimal    `json:"call_price"`
	PutPrice       decimal.Decimal    `json:"put_price"`
	CallGreeks     GreeksResponse     `json:"call_greeks"`
	PutGreeks      GreeksResponse     `json:"put_greeks"`
	Moneyness      display.Moneyness  `json:"moneyness"`
	MoneynessRatio decimal.Decimal    `json:"moneyness_ratio"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) price(c *gin.Context) {
	var req ParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	p := req.Parameters()
	res, err := pricing.Price(p, pricing.WithObserver(pricing.Observers{
		s.metrics.Observer(),
		logger.PricingObserver(),
	}))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, PriceResponse{
		Parameters:     p,
		CallPrice:      s.round(res.CallPrice),
		PutPrice:       s.round(res.PutPrice),
		CallGreeks:     s.greeks(res.Call),
		PutGreeks:      s.greeks(res.Put),
		Moneyness:      display.Classify(p.Spot, p.Strike, s.cfg.Moneyness),
		MoneynessRatio: s.round(p.Moneyness()),
	})
}

func (s *Server) priceHeatmap(c *gin.Context) {
	s.heatmap(c, grid.MetricPrice)
}

func (s *Server) pnlHeatmap(c *gin.Context) {
	s.heatmap(c, grid.MetricPnL)
}

func (s *Server) heatmap(c *gin.Context, metric grid.Metric) {
	var req HeatmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	spots, vols, err := s.axes(req)
	if err != nil {
		s.fail(c, err)
		return
	}

	ev, err := grid.NewEvaluator(req.Parameters(),
		grid.WithWorkers(s.cfg.Workers),
		grid.WithObserver(s.metrics.Observer()),
	)
	if err != nil {
		s.fail(c, err)
		return
	}

	var g *grid.Grid
	if metric == grid.MetricPnL {
		g, err = ev.PnLGrid(spots, vols, req.Strike, orDefault(req.CallCost, s.cfg.CallCost), orDefault(req.PutCost, s.cfg.PutCost))
	} else {
		g, err = ev.PriceGrid(spots, vols, req.Strike)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	logger.Debugf("%s heatmap %dx%d for K=%g", metric, g.Rows(), g.Cols(), g.Strike)
	c.JSON(http.StatusOK, g)
}

// axes resolves the request's ranges against the dashboard defaults.
func (s *Server) axes(req HeatmapRequest) (spots, vols []float64, err error) {
	count := req.Count
	if count == 0 {
		count = s.cfg.DefaultCount
	}
	if count > s.cfg.MaxCount {
		return nil, nil, fmt.Errorf("%w: count %d exceeds the maximum of %d", pricing.ErrInvalidParameters, count, s.cfg.MaxCount)
	}

	spotAxis := grid.DefaultSpotAxis(req.Spot)
	spotAxis.Min = orDefault(req.SpotMin, spotAxis.Min)
	spotAxis.Max = orDefault(req.SpotMax, spotAxis.Max)
	spotAxis.Count = count

	volAxis := grid.DefaultVolAxis(req.Volatility)
	volAxis.Min = orDefault(req.VolMin, volAxis.Min)
	volAxis.Max = orDefault(req.VolMax, volAxis.Max)
	volAxis.Count = count

	if spots, err = spotAxis.Values(); err != nil {
		return nil, nil, fmt.Errorf("spot axis: %w", err)
	}
	if vols, err = volAxis.Values(); err != nil {
		return nil, nil, fmt.Errorf("volatility axis: %w", err)
	}
	return spots, vols, nil
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pricing.ErrInvalidParameters):
		status = http.StatusBadRequest
	case errors.Is(err, pricing.ErrNumerical):
		status = http.StatusUnprocessableEntity
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func (s *Server) round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(int32(s.cfg.Decimals))
}

func (s *Server) greeks(g pricing.Greeks) GreeksResponse {
	return GreeksResponse{
		Delta: s.round(g.Delta),
		Gamma: s.round(g.Gamma),
		Vega:  s.round(g.Vega),
		Theta: s.round(g.Theta),
		Rho:   s.round(g.Rho),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
