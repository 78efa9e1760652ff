package data

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	"rasterfit/internal/models"
	"rasterfit/internal/raster"
)

// SyntheticSpec describes a generated raster pair where Y follows one model
// kind of X plus Gaussian noise.
type SyntheticSpec struct {
	Width     int
	Height    int
	Kind      models.Kind
	Intercept float64
	Slope     float64
	// Noise is the standard deviation of the additive noise, relative to the
	// noiseless value.
	Noise float64
	// XMin and XMax bound the uniform X values. Keep XMin > 0 so every model
	// kind stays defined.
	XMin float64
	XMax float64
	// NoDataRate is the share of X cells replaced by NoData.
	NoDataRate float64
	Seed       int64
}

// SyntheticPaths are the files written by GenerateSyntheticRasters.
type SyntheticPaths struct {
	X    string
	Y    string
	Mask string
}

const syntheticNoData = -9999

func DefaultSyntheticSpec() SyntheticSpec {
	return SyntheticSpec{
		Width: 120, Height: 80,
		Kind:      models.Linear,
		Intercept: 0.2, Slope: 0.8,
		Noise: 0.05,
		XMin:  0.05, XMax: 0.9,
		NoDataRate: 0.01,
		Seed:       1,
	}
}

// GenerateSyntheticRasters writes x.asc, y.asc and mask.asc into dir. The
// mask selects an ellipse centred in the grid.
func GenerateSyntheticRasters(spec SyntheticSpec, dir string) (SyntheticPaths, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return SyntheticPaths{}, fmt.Errorf("synthetic raster: invalid size %dx%d", spec.Width, spec.Height)
	}
	if !spec.Kind.Valid() {
		return SyntheticPaths{}, fmt.Errorf("synthetic raster: invalid model kind %d", spec.Kind)
	}
	if spec.XMax <= spec.XMin {
		return SyntheticPaths{}, fmt.Errorf("synthetic raster: empty x range [%g, %g]", spec.XMin, spec.XMax)
	}
	x, y, mask := SyntheticGrids(spec)
	paths := SyntheticPaths{
		X:    filepath.Join(dir, "x.asc"),
		Y:    filepath.Join(dir, "y.asc"),
		Mask: filepath.Join(dir, "mask.asc"),
	}
	for path, g := range map[string]*raster.Grid{paths.X: x, paths.Y: y, paths.Mask: mask} {
		if err := raster.WriteASCIIFile(path, g); err != nil {
			return SyntheticPaths{}, err
		}
	}
	return paths, nil
}

// SyntheticGrids builds the grids without touching the filesystem.
func SyntheticGrids(spec SyntheticSpec) (x, y, mask *raster.Grid) {
	rng := rand.New(rand.NewSource(spec.Seed))
	m := models.For(spec.Kind)
	n := spec.Width * spec.Height
	nd := float64(syntheticNoData)

	newGrid := func() *raster.Grid {
		return &raster.Grid{Width: spec.Width, Height: spec.Height, Values: make([]float64, n), CellSize: 1}
	}
	x, y, mask = newGrid(), newGrid(), newGrid()
	x.NoData, y.NoData = &nd, &nd

	cx, cy := float64(spec.Width-1)/2, float64(spec.Height-1)/2
	rx, ry := math.Max(cx*0.8, 0.5), math.Max(cy*0.8, 0.5)
	for row := 0; row < spec.Height; row++ {
		for col := 0; col < spec.Width; col++ {
			i := row*spec.Width + col
			xv := spec.XMin + rng.Float64()*(spec.XMax-spec.XMin)
			yv := m.Eval(xv, spec.Intercept, spec.Slope)
			yv += rng.NormFloat64() * spec.Noise * math.Abs(yv)
			x.Values[i], y.Values[i] = xv, yv
			if rng.Float64() < spec.NoDataRate {
				x.Values[i] = nd
			}
			dx, dy := (float64(col)-cx)/rx, (float64(row)-cy)/ry
			if dx*dx+dy*dy <= 1 {
				mask.Values[i] = 1
			}
		}
	}
	return x, y, mask
}
