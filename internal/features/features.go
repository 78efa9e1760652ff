// Package features turns decoded rasters into the aligned sample pair the
// regression runs on.
package features

import (
	"errors"
	"fmt"
	"math"

	"rasterfit/internal/data"
	"rasterfit/internal/raster"
)

var ErrMaskShape = errors.New("mask shape differs from raster")

// Options controls extraction.
type Options struct {
	// Mask restricts the samples; nil uses every cell.
	Mask *raster.Grid
	// MaskValue selects cells equal to it. When nil a mask cell is selected
	// when it is not NoData and its 8-bit integer value is non-zero.
	MaskValue *float64
	// SkipNoData drops pairs where either side is NoData. It only applies
	// when both layers yield the same number of samples.
	SkipNoData bool
}

// Selected reports whether mask cell v includes its raster cell.
func (o Options) Selected(v float64) bool {
	if o.Mask != nil && o.Mask.IsNoData(v) {
		return false
	}
	if o.MaskValue != nil {
		return v == *o.MaskValue
	}
	return maskByte(v) != 0
}

// maskByte reads a mask cell as an 8-bit integer: the fraction is truncated
// and the value wraps modulo 256, so 0.4 and 256 both read as 0.
func maskByte(v float64) int8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int8(int64(math.Mod(math.Trunc(v), 256)))
}

// Flatten returns the cells of g kept by the mask, in row-major order.
func Flatten(g *raster.Grid, opts Options) ([]float64, error) {
	if opts.Mask == nil {
		out := make([]float64, len(g.Values))
		copy(out, g.Values)
		return out, nil
	}
	if !g.SameShape(opts.Mask) {
		return nil, fmt.Errorf("%w: raster %dx%d, mask %dx%d",
			ErrMaskShape, g.Width, g.Height, opts.Mask.Width, opts.Mask.Height)
	}
	out := make([]float64, 0, len(g.Values))
	for i, v := range g.Values {
		if opts.Selected(opts.Mask.Values[i]) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Extract flattens both layers independently. The pair may come back with
// unequal lengths when the rasters differ in size; the regression rejects
// that before fitting.
func Extract(x, y *raster.Grid, opts Options) (data.SamplePair, error) {
	xs, err := Flatten(x, opts)
	if err != nil {
		return data.SamplePair{}, fmt.Errorf("x raster: %w", err)
	}
	ys, err := Flatten(y, opts)
	if err != nil {
		return data.SamplePair{}, fmt.Errorf("y raster: %w", err)
	}
	pair := data.SamplePair{X: xs, Y: ys}
	if opts.SkipNoData && pair.Aligned() {
		pair = dropNoData(pair, x, y)
	}
	return pair, nil
}

func dropNoData(p data.SamplePair, x, y *raster.Grid) data.SamplePair {
	out := data.SamplePair{X: p.X[:0:0], Y: p.Y[:0:0]}
	for i := range p.X {
		if x.IsNoData(p.X[i]) || y.IsNoData(p.Y[i]) {
			continue
		}
		out.X = append(out.X, p.X[i])
		out.Y = append(out.Y, p.Y[i])
	}
	return out
}
