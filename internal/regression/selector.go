package regression

import (
	"math"

	"go.uber.org/zap"

	"rasterfit/internal/models"
)

// DefaultAlpha is the conventional significance level.
const DefaultAlpha = 0.05

// Choice is the selected model with its fit.
type Choice struct {
	Index int
	Result
	// Significant is false when no candidate had a p-value at or below the
	// selector's alpha.
	Significant bool
}

// SelectBest returns the index of the first maximal r² in kind order.
// NaN ranks below every number, so it never displaces a real value; when all
// four are NaN the result is 0.
func SelectBest(results Results) int {
	best := 0
	for i := 1; i < len(results); i++ {
		if greater(results[i].RSquared, results[best].RSquared) {
			best = i
		}
	}
	return best
}

func greater(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// Significant reports whether any candidate has p <= alpha.
func Significant(results Results, alpha float64) bool {
	for _, r := range results {
		if r.PValue <= alpha {
			return true
		}
	}
	return false
}

type Selector struct {
	Alpha  float64
	logger *zap.Logger
}

func NewSelector(logger *zap.Logger, alpha float64) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !(alpha > 0 && alpha < 1) {
		alpha = DefaultAlpha
	}
	return &Selector{Alpha: alpha, logger: logger}
}

// Select picks the best model and warns when none is significant. The best-r²
// model is returned either way.
func (s *Selector) Select(results Results) Choice {
	idx := SelectBest(results)
	c := Choice{
		Index:       idx,
		Result:      results[idx],
		Significant: Significant(results, s.Alpha),
	}
	if !c.Significant {
		ps := make([]float64, 0, models.NumKinds)
		for _, r := range results {
			ps = append(ps, r.PValue)
		}
		s.logger.Warn("no statistically significant regression model",
			zap.Error(ErrNoSignificantModel),
			zap.Float64("alpha", s.Alpha),
			zap.Float64s("p_values", ps),
			zap.String("selected", c.Kind.String()),
		)
	}
	return c
}
