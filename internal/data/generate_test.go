package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasterfit/internal/models"
	"rasterfit/internal/raster"
)

func TestSyntheticGridsAreDeterministic(t *testing.T) {
	spec := DefaultSyntheticSpec()
	spec.Width, spec.Height = 10, 6

	x1, y1, m1 := SyntheticGrids(spec)
	x2, y2, m2 := SyntheticGrids(spec)

	assert.Equal(t, x1.Values, x2.Values)
	assert.Equal(t, y1.Values, y2.Values)
	assert.Equal(t, m1.Values, m2.Values)
	assert.Len(t, x1.Values, 60)
}

func TestSyntheticGridsFollowModel(t *testing.T) {
	spec := SyntheticSpec{
		Width: 8, Height: 8,
		Kind:      models.Exponential,
		Intercept: 2, Slope: 0.3,
		XMin: 1, XMax: 5,
		Seed: 7,
	}
	x, y, mask := SyntheticGrids(spec)

	selected := 0
	for i := range x.Values {
		assert.InDelta(t, 2*math.Exp(0.3*x.Values[i]), y.Values[i], 1e-9)
		if mask.Values[i] == 1 {
			selected++
		}
	}
	assert.Greater(t, selected, 0)
	assert.Less(t, selected, 64)
}

func TestGenerateSyntheticRasters(t *testing.T) {
	spec := DefaultSyntheticSpec()
	spec.Width, spec.Height = 12, 9
	dir := t.TempDir()

	paths, err := GenerateSyntheticRasters(spec, dir)
	require.NoError(t, err)

	for _, p := range []string{paths.X, paths.Y, paths.Mask} {
		g, err := raster.Open(p)
		require.NoError(t, err)
		assert.Equal(t, 12, g.Width)
		assert.Equal(t, 9, g.Height)
	}
}

func TestGenerateSyntheticRastersValidates(t *testing.T) {
	bad := []SyntheticSpec{
		{Width: 0, Height: 3, XMin: 1, XMax: 2},
		{Width: 3, Height: 3, Kind: models.Kind(9), XMin: 1, XMax: 2},
		{Width: 3, Height: 3, XMin: 2, XMax: 2},
	}
	for _, spec := range bad {
		_, err := GenerateSyntheticRasters(spec, t.TempDir())
		require.Error(t, err)
	}
}
