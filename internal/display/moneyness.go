package display

// Moneyness classifies S/K from the call holder's point of view.
type Moneyness string

const (
	ITM Moneyness = "ITM"
	ATM Moneyness = "ATM"
	OTM Moneyness = "OTM"
)

// Thresholds are the S/K bounds of the ATM band.
type Thresholds struct {
	ITM float64 `json:"itm"`
	OTM float64 `json:"otm"`
}

// DefaultThresholds is the ±5% band.
var DefaultThresholds = Thresholds{ITM: 1.05, OTM: 0.95}

// Classify returns ITM when S/K > th.ITM, OTM when S/K < th.OTM, ATM otherwise.
func Classify(spot, strike float64, th Thresholds) Moneyness {
	ratio := spot / strike
	switch {
	case ratio > th.ITM:
		return ITM
	case ratio < th.OTM:
		return OTM
	}
	return ATM
}
