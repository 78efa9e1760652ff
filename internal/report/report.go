// Package report serializes an analysis: the four candidate fits, the
// selected model and a summary of the samples.
package report

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"rasterfit/internal/data"
	"rasterfit/internal/regression"
)

// Candidate is one fitted model.
type Candidate struct {
	Model     string `json:"model"`
	Name      string `json:"name"`
	Equation  string `json:"equation"`
	Slope     Float  `json:"slope"`
	Intercept Float  `json:"intercept"`
	R         Float  `json:"r"`
	RSquared  Float  `json:"r_squared"`
	PValue    Float  `json:"p_value"`
	StdErr    Float  `json:"std_err"`
	Selected  bool   `json:"selected"`
}

// Summary describes the finite values of one sample vector. Statistics of an
// empty vector are NaN.
type Summary struct {
	Count  int   `json:"count"`
	Min    Float `json:"min"`
	Max    Float `json:"max"`
	Mean   Float `json:"mean"`
	Median Float `json:"median"`
	StdDev Float `json:"std_dev"`
}

type Report struct {
	RunID       string      `json:"run_id"`
	CreatedAt   time.Time   `json:"created_at"`
	XSource     string      `json:"x_source,omitempty"`
	YSource     string      `json:"y_source,omitempty"`
	Samples     int         `json:"samples"`
	X           Summary     `json:"x"`
	Y           Summary     `json:"y"`
	Alpha       Float       `json:"alpha"`
	Significant bool        `json:"significant"`
	Selected    string      `json:"selected"`
	Equation    string      `json:"equation"`
	Candidates  []Candidate `json:"candidates"`
}

func NewRunID() string { return uuid.NewString() }

// New assembles a report. An empty runID gets a fresh one.
func New(runID string, pair data.SamplePair, results regression.Results, choice regression.Choice, alpha float64) Report {
	if runID == "" {
		runID = NewRunID()
	}
	r := Report{
		RunID:       runID,
		CreatedAt:   time.Now().UTC(),
		Samples:     pair.Len(),
		X:           Summarize(pair.X),
		Y:           Summarize(pair.Y),
		Alpha:       Float(alpha),
		Significant: choice.Significant,
		Selected:    choice.Kind.String(),
		Equation:    choice.Model().Equation(choice.Intercept, choice.Slope),
		Candidates:  make([]Candidate, 0, len(results)),
	}
	for i, res := range results {
		m := res.Model()
		r.Candidates = append(r.Candidates, Candidate{
			Model:     res.Kind.String(),
			Name:      m.Name(),
			Equation:  m.Equation(res.Intercept, res.Slope),
			Slope:     Float(res.Slope),
			Intercept: Float(res.Intercept),
			R:         Float(res.R),
			RSquared:  Float(res.RSquared),
			PValue:    Float(res.PValue),
			StdErr:    Float(res.StdErr),
			Selected:  i == choice.Index,
		})
	}
	return r
}

// Summarize computes the summary over the finite values of xs.
func Summarize(xs []float64) Summary {
	finite := make(stats.Float64Data, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	s := Summary{Count: len(finite)}
	s.Min = stat(stats.Min, finite)
	s.Max = stat(stats.Max, finite)
	s.Mean = stat(stats.Mean, finite)
	s.Median = stat(stats.Median, finite)
	s.StdDev = stat(stats.StandardDeviationSample, finite)
	return s
}

func stat(f func(stats.Float64Data) (float64, error), xs stats.Float64Data) Float {
	v, err := f(xs)
	if err != nil {
		return Float(math.NaN())
	}
	return Float(v)
}
