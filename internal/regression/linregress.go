package regression

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// tiny keeps the t statistic finite when |r| is exactly 1.
const tiny = 1.0e-20

// Fit is an ordinary least-squares line through (x, y).
type Fit struct {
	Slope     float64
	Intercept float64
	R         float64
	PValue    float64
	StdErr    float64
}

// Linregress fits y = Intercept + Slope*x. Degenerate input is not an error:
// a zero-variance column gives r = 0, and non-finite samples propagate NaN or
// Inf into the statistics. Linregress panics if x and y differ in length;
// FitAll checks that first.
func Linregress(x, y []float64) Fit {
	n := len(x)
	xmean, varX := stat.MeanVariance(x, nil)
	ymean, varY := stat.MeanVariance(y, nil)
	cov := stat.Covariance(x, y, nil)

	var r float64
	if den := math.Sqrt(varX * varY); den != 0 {
		r = cov / den
		// rounding can push |r| past one
		if r > 1 {
			r = 1
		} else if r < -1 {
			r = -1
		}
	}

	slope := cov / varX
	df := float64(n - 2)
	t := r * math.Sqrt(df/((1-r+tiny)*(1+r+tiny)))

	return Fit{
		Slope:     slope,
		Intercept: ymean - slope*xmean,
		R:         r,
		PValue:    twoSidedP(t, df),
		StdErr:    math.Sqrt((1 - r*r) * varY / varX / df),
	}
}

// twoSidedP is the two-sided Student-t tail probability of t.
func twoSidedP(t, df float64) float64 {
	switch {
	case math.IsNaN(t) || !(df > 0):
		return math.NaN()
	case math.IsInf(t, 0):
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t))
}
