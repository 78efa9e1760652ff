// Package regression fits the four candidate models over a sample pair and
// picks the best one.
package regression

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rasterfit/internal/models"
	"rasterfit/internal/numeric"
)

// Result is one candidate fit. Intercept is on the original scale, i.e.
// already back-transformed for the exponential and power models.
type Result struct {
	Kind      models.Kind
	Slope     float64
	Intercept float64
	R         float64
	RSquared  float64
	PValue    float64
	StdErr    float64
}

// Model returns the descriptor of the fitted family.
func (r Result) Model() models.Model { return models.For(r.Kind) }

// Eval evaluates the fitted curve at x.
func (r Result) Eval(x float64) float64 {
	return models.For(r.Kind).Eval(x, r.Intercept, r.Slope)
}

// Results holds one Result per model kind, indexed by kind.
type Results [models.NumKinds]Result

type Engine struct {
	// Parallel runs the four fits concurrently, each with its own error state.
	Parallel bool

	logger *zap.Logger
	errs   *numeric.ErrState
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, errs: numeric.NewErrState(numeric.Raise)}
}

// ErrState exposes the floating-point state so callers can read the counts
// gathered by the last FitAll.
func (e *Engine) ErrState() *numeric.ErrState { return e.errs }

// FitAll fits every model kind in order. The only errors are the input
// preconditions; numerically degenerate fits come back as NaN/Inf statistics.
func (e *Engine) FitAll(x, y []float64) (Results, error) {
	var out Results
	if err := validate(x, y); err != nil {
		return out, err
	}

	restore := e.errs.Scope(numeric.Ignore)
	defer restore()
	e.errs.Reset()

	if e.Parallel {
		if err := e.fitParallel(x, y, &out); err != nil {
			return out, err
		}
	} else {
		for i, m := range models.All() {
			res, err := fitOne(m, x, y, e.errs)
			if err != nil {
				return out, err
			}
			out[i] = res
		}
	}

	for _, r := range out {
		e.logger.Debug("candidate fitted",
			zap.String("model", r.Kind.String()),
			zap.Float64("slope", r.Slope),
			zap.Float64("intercept", r.Intercept),
			zap.Float64("r2", r.RSquared),
			zap.Float64("p", r.PValue),
		)
	}
	if n := e.errs.Count(numeric.Invalid) + e.errs.Count(numeric.Divide); n > 0 {
		e.logger.Debug("non-finite values absorbed while fitting",
			zap.Int("invalid", e.errs.Count(numeric.Invalid)),
			zap.Int("divide", e.errs.Count(numeric.Divide)),
		)
	}
	return out, nil
}

func (e *Engine) fitParallel(x, y []float64, out *Results) error {
	var g errgroup.Group
	var states [models.NumKinds]*numeric.ErrState
	for i, m := range models.All() {
		states[i] = e.errs.Child()
		g.Go(func() error {
			res, err := fitOne(m, x, y, states[i])
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	err := g.Wait()
	for _, s := range states {
		e.errs.Merge(s)
	}
	return err
}

func fitOne(m models.Model, x, y []float64, st *numeric.ErrState) (Result, error) {
	tx, ty := m.Transform(x, y)
	op := m.Kind().String()
	if err := st.CheckAll(op+" x", tx); err != nil {
		return Result{}, err
	}
	if err := st.CheckAll(op+" y", ty); err != nil {
		return Result{}, err
	}
	f := Linregress(tx, ty)
	res := Result{
		Kind:      m.Kind(),
		Slope:     f.Slope,
		Intercept: m.Intercept(f.Intercept),
		R:         f.R,
		RSquared:  f.R * f.R,
		PValue:    f.PValue,
		StdErr:    f.StdErr,
	}
	for _, v := range []float64{res.Slope, res.Intercept, res.R, res.PValue, res.StdErr} {
		if err := st.Check(op+" fit", v); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// FitAll runs a sequential Engine without logging.
func FitAll(x, y []float64) (Results, error) {
	return NewEngine(nil).FitAll(x, y)
}
