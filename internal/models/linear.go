package models

type linear struct{}

func (linear) Kind() Kind      { return Linear }
func (linear) Name() string    { return "Linear" }
func (linear) Formula() string { return "y = a + b*x" }

func (linear) Transform(x, y []float64) ([]float64, []float64) { return x, y }

func (linear) Intercept(fitted float64) float64 { return fitted }

func (linear) Eval(x, intercept, slope float64) float64 { return intercept + slope*x }

func (linear) Equation(intercept, slope float64) string {
	return "y = " + sum(Round(intercept, 3), Round(slope, 3)+"·x")
}
