package models

import "math"

type power struct{}

func (power) Kind() Kind      { return Power }
func (power) Name() string    { return "Power" }
func (power) Formula() string { return "y = a*x^b" }

func (power) Transform(x, y []float64) ([]float64, []float64) { return logAll(x), logAll(y) }

// Intercept undoes the log taken on y: ln(y) = ln(a) + b*ln(x).
func (power) Intercept(fitted float64) float64 { return math.Exp(fitted) }

func (power) Eval(x, intercept, slope float64) float64 {
	return intercept * math.Pow(x, slope)
}

func (power) Equation(intercept, slope float64) string {
	return "y = " + Round(intercept, 3) + "·x^" + Round(slope, 5)
}
