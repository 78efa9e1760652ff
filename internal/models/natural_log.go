package models

import "math"

type naturalLog struct{}

func (naturalLog) Kind() Kind      { return NaturalLog }
func (naturalLog) Name() string    { return "Nat. log." }
func (naturalLog) Formula() string { return "y = a + b*ln(x)" }

func (naturalLog) Transform(x, y []float64) ([]float64, []float64) { return logAll(x), y }

func (naturalLog) Intercept(fitted float64) float64 { return fitted }

func (naturalLog) Eval(x, intercept, slope float64) float64 {
	return intercept + slope*math.Log(x)
}

func (naturalLog) Equation(intercept, slope float64) string {
	return "y = " + sum(Round(intercept, 3), Round(slope, 3)+"·ln(x)")
}
