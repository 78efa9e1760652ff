package render

import (
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/plotter"

	"rasterfit/internal/data"
	"rasterfit/internal/models"
	"rasterfit/internal/regression"
)

const (
	Title        = "Best fit regression"
	DefaultXAxis = "Axis X"
	DefaultYAxis = "Axis Y"
)

// Figure is everything a renderer needs.
type Figure struct {
	Samples data.SamplePair
	Choice  regression.Choice
	// XSource and YSource identify the layers, usually file paths. Empty
	// means the generic axis names are used.
	XSource string
	YSource string
	// CurvePoints defaults to DefaultCurvePoints.
	CurvePoints int
}

func (f Figure) XLabel() string { return AxisLabel(f.XSource, DefaultXAxis) }
func (f Figure) YLabel() string { return AxisLabel(f.YSource, DefaultYAxis) }

// curve is the drawable part of the fitted curve.
func (f Figure) curve() plotter.XYs {
	return finiteXYs(Curve(f.Choice.Result, f.Samples.X, f.CurvePoints))
}

// AxisLabel strips directory and extension from source, or returns fallback
// when source is empty.
func AxisLabel(source, fallback string) string {
	if strings.TrimSpace(source) == "" {
		return fallback
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// R2Label renders r². An r² of exactly zero marks an undefined fit and shows
// as a dash.
func R2Label(r2 float64) string {
	if r2 == 0 {
		return "r² = -"
	}
	return "r² = " + models.Round(r2, 3)
}

// ModelLabel is the legend entry of the fitted curve.
func ModelLabel(c regression.Choice) string {
	m := c.Model()
	return "Regression model (" + m.Name() + "): " + m.Equation(c.Intercept, c.Slope) + "; " + R2Label(c.RSquared)
}
