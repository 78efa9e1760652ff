package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrder(t *testing.T) {
	all := All()
	want := []Kind{Linear, NaturalLog, Exponential, Power}
	for i, m := range all {
		require.Equal(t, want[i], m.Kind())
		require.Equal(t, Kind(i), m.Kind())
	}
}

func TestForUnknownKindPanics(t *testing.T) {
	require.Panics(t, func() { For(Kind(7)) })
	require.False(t, Kind(-1).Valid())
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	x := []float64{1, math.E, 0}
	y := []float64{math.E, 1, -1}

	tx, ty := For(Power).Transform(x, y)

	assert.Equal(t, []float64{1, math.E, 0}, x)
	assert.Equal(t, []float64{math.E, 1, -1}, y)
	assert.InDelta(t, 1.0, tx[1], 1e-12)
	assert.InDelta(t, 1.0, ty[0], 1e-12)
	assert.True(t, math.IsInf(tx[2], -1))
	assert.True(t, math.IsNaN(ty[2]))
}

func TestTransformsAndBackTransforms(t *testing.T) {
	x := []float64{1, 2}
	y := []float64{3, 4}
	tests := []struct {
		kind      Kind
		logX      bool
		logY      bool
		intercept float64
	}{
		{Linear, false, false, 0.7},
		{NaturalLog, true, false, 0.7},
		{Exponential, false, true, math.Exp(0.7)},
		{Power, true, true, math.Exp(0.7)},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m := For(tt.kind)
			tx, ty := m.Transform(x, y)
			for i := range x {
				wantX, wantY := x[i], y[i]
				if tt.logX {
					wantX = math.Log(wantX)
				}
				if tt.logY {
					wantY = math.Log(wantY)
				}
				assert.Equal(t, wantX, tx[i])
				assert.Equal(t, wantY, ty[i])
			}
			assert.InDelta(t, tt.intercept, m.Intercept(0.7), 1e-12)
		})
	}
}

func TestEval(t *testing.T) {
	const a, b, x = 2.0, 0.5, 3.0
	assert.Equal(t, a+b*x, For(Linear).Eval(x, a, b))
	assert.Equal(t, a+b*math.Log(x), For(NaturalLog).Eval(x, a, b))
	assert.Equal(t, a*math.Exp(b*x), For(Exponential).Eval(x, a, b))
	assert.Equal(t, a*math.Pow(x, b), For(Power).Eval(x, a, b))
}

func TestEquation(t *testing.T) {
	tests := []struct {
		kind Kind
		a, b float64
		want string
	}{
		{Linear, 2.00049, 3.1234, "y = 2 + 3.123·x"},
		{Linear, 1.5, -0.25, "y = 1.5 - 0.25·x"},
		{NaturalLog, 0.12345, 2, "y = 0.123 + 2·ln(x)"},
		{Exponential, 5.0004, 0.123456, "y = 5·e^(0.12346x)"},
		{Power, 1.23456, -0.000001, "y = 1.235·x^0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, For(tt.kind).Equation(tt.a, tt.b))
	}
}

func TestParseKind(t *testing.T) {
	for _, m := range All() {
		k, err := ParseKind(m.Kind().String())
		require.NoError(t, err)
		require.Equal(t, m.Kind(), k)
	}
	k, err := ParseKind(" EXP ")
	require.NoError(t, err)
	require.Equal(t, Exponential, k)

	_, err = ParseKind("quadratic")
	require.Error(t, err)
}

func TestRoundNonFinite(t *testing.T) {
	assert.Equal(t, "NaN", Round(math.NaN(), 3))
	assert.Equal(t, "+Inf", Round(math.Inf(1), 3))
	assert.Equal(t, "0", Round(-0.0001, 3))
}

func TestRoundHalfToEven(t *testing.T) {
	assert.Equal(t, "0.062", Round(0.0625, 3))
	assert.Equal(t, "2", Round(2.5, 0))
	assert.Equal(t, "4", Round(3.5, 0))
	assert.Equal(t, "-0.125", Round(-0.125, 3))
	assert.Equal(t, "y = 0.062 + 0.25·x", For(Linear).Equation(0.0625, 0.25))
}
