package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"rasterfit/pkg/utils"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.Input.SkipNoData)
	assert.Equal(t, 0.05, cfg.Fit.Significance)
	assert.Equal(t, 300, cfg.Render.Points)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Nil(t, cfg.Mask.Value)
	assert.Equal(t, "", cfg.MaskPath())
}

func TestLoadFileEnvAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rasterfit.yaml")
	yaml := `
input:
  x: ndvi.tif
  y: evi.tif
mask:
  path: roi.asc
  use: true
  value: 3
fit:
  significance: 0.01
render:
  points: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("RASTERFIT_INPUT_Y", "savi.tif")
	t.Setenv("RASTERFIT_FIT_PARALLEL", "true")

	cfg, err := Load(path, map[string]any{"render.points": 120})
	require.NoError(t, err)

	assert.Equal(t, "ndvi.tif", cfg.Input.X)
	assert.Equal(t, "savi.tif", cfg.Input.Y)
	assert.True(t, cfg.Fit.Parallel)
	assert.Equal(t, 0.01, cfg.Fit.Significance)
	assert.Equal(t, 120, cfg.Render.Points)
	require.NotNil(t, cfg.Mask.Value)
	assert.Equal(t, 3.0, *cfg.Mask.Value)
	assert.Equal(t, "roi.asc", cfg.MaskPath())
	require.NoError(t, cfg.ValidateAnalysis())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestValidateAnalysisCollectsAllErrors(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	cfg.Mask.Use = true
	cfg.Fit.Significance = 1
	cfg.Render.Points = 1

	err = cfg.ValidateAnalysis()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
}

func TestValidateServer(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateServer())

	cfg.Server.GinMode = "verbose"
	cfg.Server.Port = ""
	assert.Len(t, multierr.Errors(cfg.ValidateServer()), 2)
}

func TestFlagOverridesOnlySetFlags(t *testing.T) {
	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.String("x", "", "")
	fs.String("y", "", "")
	fs.Int("points", 300, "")
	fs.Bool("parallel", false, "")
	fs.String("unmapped", "", "")
	require.NoError(t, fs.Parse([]string{"-x", "a.asc", "-points", "120", "-parallel", "-unmapped", "z"}))

	overrides := FlagOverrides(fs, map[string]string{
		"x": "input.x", "y": "input.y", "points": "render.points", "parallel": "fit.parallel",
	})
	assert.Equal(t, map[string]any{
		"input.x":       "a.asc",
		"render.points": "120",
		"fit.parallel":  "true",
	}, overrides)

	cfg, err := Load("", overrides)
	require.NoError(t, err)
	assert.Equal(t, "a.asc", cfg.Input.X)
	assert.Equal(t, 120, cfg.Render.Points)
	assert.True(t, cfg.Fit.Parallel)
}

func TestLogOptionsFallBackToProcessEnv(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "run.log")
	t.Setenv("LOG_FILE", logFile)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.False(t, cfg.LogConfigured())
	assert.Equal(t, utils.LogOptions{File: logFile, Level: "debug"}, cfg.LogOptions())

	t.Setenv("RASTERFIT_LOG_LEVEL", "warn")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.True(t, cfg.LogConfigured())
	assert.Equal(t, utils.LogOptions{File: logFile, Level: "warn"}, cfg.LogOptions())

	cfg, err = Load("", map[string]any{"log.file": "cli.log"})
	require.NoError(t, err)
	assert.Equal(t, utils.LogOptions{File: "cli.log", Level: "warn"}, cfg.LogOptions())
}
