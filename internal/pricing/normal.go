package pricing

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// normCDF is the cumulative distribution function of the standard normal
// distribution.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
