package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"rasterfit/internal/config"
	"rasterfit/internal/data"
	"rasterfit/internal/models"
	"rasterfit/internal/raster"
)

func testConfig(dir string, paths data.SyntheticPaths) *config.Config {
	out := filepath.Join(dir, "out")
	return &config.Config{
		Input: config.InputConfig{X: paths.X, Y: paths.Y, SkipNoData: true},
		Mask:  config.MaskConfig{Path: paths.Mask, Use: true},
		Fit:   config.FitConfig{Significance: 0.05},
		Render: config.RenderConfig{
			Out:      filepath.Join(out, "fit.png"),
			HTML:     filepath.Join(out, "fit.html"),
			Points:   100,
			WidthIn:  4,
			HeightIn: 3,
		},
		Report: config.ReportConfig{
			CSV:  filepath.Join(out, "fit.csv"),
			JSON: filepath.Join(out, "fit.json"),
		},
	}
}

func generate(t *testing.T, spec data.SyntheticSpec) (string, data.SyntheticPaths) {
	t.Helper()
	dir := t.TempDir()
	paths, err := data.GenerateSyntheticRasters(spec, filepath.Join(dir, "in"))
	require.NoError(t, err)
	return dir, paths
}

func TestRunEndToEnd(t *testing.T) {
	spec := data.DefaultSyntheticSpec()
	dir, paths := generate(t, spec)
	cfg := testConfig(dir, paths)
	core, logs := observer.New(zap.InfoLevel)

	out, err := NewAnalyzer(cfg, zap.New(core)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.Linear, out.Choice.Kind)
	assert.True(t, out.Choice.Significant)
	assert.InDelta(t, spec.Slope, out.Choice.Slope, 0.05)
	assert.InDelta(t, spec.Intercept, out.Choice.Intercept, 0.05)

	require.True(t, out.Samples.Aligned())
	assert.Positive(t, out.Samples.Len())
	assert.Less(t, out.Samples.Len(), spec.Width*spec.Height)
	assert.NotContains(t, out.Samples.X, -9999.0)

	require.Len(t, out.Files, 4)
	for _, f := range out.Files {
		info, err := os.Stat(f)
		require.NoError(t, err, f)
		assert.Positive(t, info.Size(), f)
	}
	assert.Equal(t, paths.X, out.Report.XSource)

	finished := logs.FilterMessage("analysis finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, out.RunID, finished[0].ContextMap()["run_id"])
}

func TestRunParallelMatchesSequential(t *testing.T) {
	dir, paths := generate(t, data.DefaultSyntheticSpec())
	cfg := testConfig(dir, paths)
	cfg.Render = config.RenderConfig{Points: 100, WidthIn: 4, HeightIn: 3}
	cfg.Report = config.ReportConfig{}

	seq, err := NewAnalyzer(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	cfg.Fit.Parallel = true
	par, err := NewAnalyzer(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seq.Results, par.Results)
	assert.Empty(t, par.Files)
}

func TestRunRejectsDifferentSizes(t *testing.T) {
	dir := t.TempDir()
	x := &raster.Grid{Width: 3, Height: 2, Values: []float64{1, 2, 3, 4, 5, 6}, CellSize: 1}
	y := &raster.Grid{Width: 2, Height: 2, Values: []float64{1, 2, 3, 4}, CellSize: 1}
	paths := data.SyntheticPaths{X: filepath.Join(dir, "x.asc"), Y: filepath.Join(dir, "y.asc")}
	require.NoError(t, raster.WriteASCIIFile(paths.X, x))
	require.NoError(t, raster.WriteASCIIFile(paths.Y, y))
	cfg := testConfig(dir, paths)
	cfg.Mask.Use = false

	_, err := NewAnalyzer(cfg, nil).Run(context.Background())

	require.Error(t, err)
	assert.True(t, IsInputError(err))
	assert.Contains(t, err.Error(), "size of the rasters differs")
	_, statErr := os.Stat(cfg.Render.Out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunInputErrors(t *testing.T) {
	dir, paths := generate(t, data.DefaultSyntheticSpec())

	missing := testConfig(dir, paths)
	missing.Input.Y = filepath.Join(dir, "nope.asc")
	_, err := NewAnalyzer(missing, nil).Run(context.Background())
	assert.True(t, IsInputError(err))

	small := data.DefaultSyntheticSpec()
	small.Width, small.Height = 4, 4
	smallPaths, err := data.GenerateSyntheticRasters(small, filepath.Join(dir, "small"))
	require.NoError(t, err)
	badMask := testConfig(dir, paths)
	badMask.Mask.Path = smallPaths.Mask
	_, err = NewAnalyzer(badMask, nil).Run(context.Background())
	assert.True(t, IsInputError(err))
}

func TestRunInvalidConfig(t *testing.T) {
	_, err := NewAnalyzer(&config.Config{}, nil).Run(context.Background())
	require.Error(t, err)
	assert.False(t, IsInputError(err))
}

func TestRunCancelled(t *testing.T) {
	dir, paths := generate(t, data.DefaultSyntheticSpec())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAnalyzer(testConfig(dir, paths), nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
