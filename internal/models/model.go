// Package models holds the closed set of regression families the fitter
// chooses between. Each family is a descriptor: how it transforms the samples
// before ordinary least squares, how the fitted intercept maps back to the
// original scale, and how the curve is evaluated and printed.
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies a regression family. The numeric order is the selection
// order used for tie-breaking.
type Kind int

const (
	Linear Kind = iota
	NaturalLog
	Exponential
	Power
)

// NumKinds is the number of supported families.
const NumKinds = 4

type Model interface {
	Kind() Kind
	Name() string
	// Formula is the symbolic curve, e.g. "y = a + b*x".
	Formula() string
	// Transform returns the samples the least-squares fit runs on. The input
	// slices are never modified.
	Transform(x, y []float64) (tx, ty []float64)
	// Intercept maps the intercept of the transformed fit back to the
	// original scale.
	Intercept(fitted float64) float64
	Eval(x, intercept, slope float64) float64
	Equation(intercept, slope float64) string
}

var registry = [NumKinds]Model{linear{}, naturalLog{}, exponential{}, power{}}

// All returns the descriptors in selection order.
func All() [NumKinds]Model { return registry }

// For returns the descriptor for k. It panics on an unknown kind, which can
// only come from an unchecked conversion.
func For(k Kind) Model {
	if !k.Valid() {
		panic(fmt.Sprintf("models: unknown kind %d", int(k)))
	}
	return registry[k]
}

func (k Kind) Valid() bool { return k >= Linear && k <= Power }

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case NaturalLog:
		return "natural_log"
	case Exponential:
		return "exponential"
	case Power:
		return "power"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind accepts the String form, case-insensitively, plus a few aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin":
		return Linear, nil
	case "natural_log", "ln", "log", "logarithmic":
		return NaturalLog, nil
	case "exponential", "exp":
		return Exponential, nil
	case "power", "pow":
		return Power, nil
	}
	return 0, fmt.Errorf("unknown model kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func logAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Log(v)
	}
	return out
}

// Round rounds v half to even to the given number of decimals and
// formats it without trailing zeros.
func Round(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	p := math.Pow(10, float64(decimals))
	r := math.RoundToEven(v*p) / p
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// sum renders "a + b" or "a - |b|" for a pre-rounded right-hand term.
func sum(a, b string) string {
	if strings.HasPrefix(b, "-") {
		return a + " - " + strings.TrimPrefix(b, "-")
	}
	return a + " + " + b
}
