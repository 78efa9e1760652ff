package models

import "math"

type exponential struct{}

func (exponential) Kind() Kind      { return Exponential }
func (exponential) Name() string    { return "Exponential" }
func (exponential) Formula() string { return "y = a*exp(b*x)" }

func (exponential) Transform(x, y []float64) ([]float64, []float64) { return x, logAll(y) }

// Intercept undoes the log taken on y: ln(y) = ln(a) + b*x.
func (exponential) Intercept(fitted float64) float64 { return math.Exp(fitted) }

func (exponential) Eval(x, intercept, slope float64) float64 {
	return intercept * math.Exp(slope*x)
}

func (exponential) Equation(intercept, slope float64) string {
	return "y = " + Round(intercept, 3) + "·e^(" + Round(slope, 5) + "x)"
}
