// Package render draws the samples with the selected regression curve.
package render

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"

	"rasterfit/internal/regression"
)

// DefaultCurvePoints is the resolution of the fitted curve.
const DefaultCurvePoints = 300

// Curve evaluates r at n evenly spaced x over [min(xs), max(xs)], ignoring
// non-finite samples when finding the domain. Points where the model is
// undefined (e.g. ln of a non-positive x) come back as NaN; Curve is nil when
// xs has no finite value.
func Curve(r regression.Result, xs []float64, n int) plotter.XYs {
	lo, hi, ok := domain(xs)
	if !ok {
		return nil
	}
	if n < 2 {
		n = DefaultCurvePoints
	}
	ts := floats.Span(make([]float64, n), lo, hi)
	pts := make(plotter.XYs, n)
	for i, t := range ts {
		pts[i].X = t
		pts[i].Y = r.Eval(t)
	}
	return pts
}

func domain(xs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if !finite(x) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
		ok = true
	}
	return lo, hi, ok
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// finiteXYs drops points with a non-finite coordinate; gonum/plot rejects them.
func finiteXYs(pts plotter.XYs) plotter.XYs {
	out := make(plotter.XYs, 0, len(pts))
	for _, p := range pts {
		if finite(p.X) && finite(p.Y) {
			out = append(out, p)
		}
	}
	return out
}

// samplePoints pairs xs and ys, dropping non-finite pairs.
func samplePoints(xs, ys []float64) plotter.XYs {
	n := min(len(xs), len(ys))
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	return finiteXYs(pts)
}
