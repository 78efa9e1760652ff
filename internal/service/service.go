// Package service runs a complete raster comparison: decode, extract, fit,
// select, render and report.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"rasterfit/internal/config"
	"rasterfit/internal/data"
	"rasterfit/internal/features"
	"rasterfit/internal/raster"
	"rasterfit/internal/regression"
	"rasterfit/internal/render"
	"rasterfit/internal/report"
)

// ErrInput marks failures caused by the rasters or the mask rather than by
// the environment.
var ErrInput = errors.New("invalid input")

// IsInputError reports whether err is a precondition failure on the input
// data, e.g. rasters of different size or a mask of the wrong shape.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInput) || regression.IsInputError(err) || errors.Is(err, features.ErrMaskShape)
}

// Outcome is everything one analysis produced.
type Outcome struct {
	RunID   string
	Samples data.SamplePair
	Results regression.Results
	Choice  regression.Choice
	Report  report.Report
	// Files lists the outputs written, in order.
	Files []string
}

type Analyzer struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewAnalyzer(cfg *config.Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{cfg: cfg, logger: logger}
}

// Run executes the configured analysis. Input errors abort before anything
// is written.
func (a *Analyzer) Run(ctx context.Context) (*Outcome, error) {
	if err := a.cfg.ValidateAnalysis(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	runID := report.NewRunID()
	log := a.logger.With(zap.String("run_id", runID))

	pair, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("samples extracted",
		zap.String("x", a.cfg.Input.X),
		zap.String("y", a.cfg.Input.Y),
		zap.String("mask", a.cfg.MaskPath()),
		zap.Int("n_x", len(pair.X)),
		zap.Int("n_y", len(pair.Y)),
	)

	results, choice, err := a.fit(log, pair)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Outcome{
		RunID:   runID,
		Samples: pair,
		Results: results,
		Choice:  choice,
		Report:  report.New(runID, pair, results, choice, a.cfg.Fit.Significance),
	}
	out.Report.XSource = a.cfg.Input.X
	out.Report.YSource = a.cfg.Input.Y

	if err := a.write(out); err != nil {
		return nil, err
	}
	log.Info("analysis finished",
		zap.String("selected", choice.Kind.String()),
		zap.String("equation", out.Report.Equation),
		zap.Float64("r2", choice.RSquared),
		zap.Float64("p", choice.PValue),
		zap.Bool("significant", choice.Significant),
		zap.Strings("files", out.Files),
	)
	return out, nil
}

// Load decodes the rasters (and the mask when enabled) concurrently and
// extracts the sample pair.
func (a *Analyzer) Load(ctx context.Context) (data.SamplePair, error) {
	var x, y, mask *raster.Grid
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		x, err = openGrid(ctx, a.cfg.Input.X)
		return err
	})
	g.Go(func() (err error) {
		y, err = openGrid(ctx, a.cfg.Input.Y)
		return err
	})
	if path := a.cfg.MaskPath(); path != "" {
		g.Go(func() (err error) {
			mask, err = openGrid(ctx, path)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return data.SamplePair{}, err
	}
	return features.Extract(x, y, features.Options{
		Mask:       mask,
		MaskValue:  a.cfg.Mask.Value,
		SkipNoData: a.cfg.Input.SkipNoData,
	})
}

func openGrid(ctx context.Context, path string) (*raster.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err := raster.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: raster %s: %w", ErrInput, path, err)
	}
	return g, nil
}

// Fit runs the four candidate fits over pair and selects the best one.
func (a *Analyzer) Fit(pair data.SamplePair) (regression.Results, regression.Choice, error) {
	return a.fit(a.logger, pair)
}

func (a *Analyzer) fit(log *zap.Logger, pair data.SamplePair) (regression.Results, regression.Choice, error) {
	engine := regression.NewEngine(log)
	engine.Parallel = a.cfg.Fit.Parallel
	results, err := engine.FitAll(pair.X, pair.Y)
	if err != nil {
		return results, regression.Choice{}, err
	}
	choice := regression.NewSelector(log, a.cfg.Fit.Significance).Select(results)
	return results, choice, nil
}

// Figure is the render input for an outcome.
func (a *Analyzer) Figure(out *Outcome) render.Figure {
	return render.Figure{
		Samples:     out.Samples,
		Choice:      out.Choice,
		XSource:     a.cfg.Input.X,
		YSource:     a.cfg.Input.Y,
		CurvePoints: a.cfg.Render.Points,
	}
}

func (a *Analyzer) write(out *Outcome) error {
	rc := a.cfg.Render
	fig := a.Figure(out)
	if rc.Out != "" {
		w, h := vg.Length(rc.WidthIn)*vg.Inch, vg.Length(rc.HeightIn)*vg.Inch
		if err := render.SavePlot(fig, rc.Out, w, h); err != nil {
			return fmt.Errorf("saving plot: %w", err)
		}
		out.Files = append(out.Files, rc.Out)
	}
	if rc.HTML != "" {
		if err := render.SaveHTML(fig, rc.HTML); err != nil {
			return fmt.Errorf("saving html: %w", err)
		}
		out.Files = append(out.Files, rc.HTML)
	}
	if p := a.cfg.Report.CSV; p != "" {
		if err := report.SaveCSV(p, out.Report); err != nil {
			return fmt.Errorf("saving csv report: %w", err)
		}
		out.Files = append(out.Files, p)
	}
	if p := a.cfg.Report.JSON; p != "" {
		if err := report.SaveJSON(p, out.Report); err != nil {
			return fmt.Errorf("saving json report: %w", err)
		}
		out.Files = append(out.Files, p)
	}
	return nil
}
