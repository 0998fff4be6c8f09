package distribution_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klfit-ml/klfit/internal/distribution"
	"github.com/klfit-ml/klfit/internal/tensor"
)

func TestFillTriangularRowMajorOrder(t *testing.T) {
	l, err := distribution.FillTriangular([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	// Row-major fill of a 3×3 lower triangle:
	//   1 . .
	//   2 3 .
	//   4 5 6
	assert.Equal(t, 1.0, l.At(0, 0))
	assert.Equal(t, 2.0, l.At(1, 0))
	assert.Equal(t, 3.0, l.At(1, 1))
	assert.Equal(t, 4.0, l.At(2, 0))
	assert.Equal(t, 5.0, l.At(2, 1))
	assert.Equal(t, 6.0, l.At(2, 2))
	assert.Equal(t, 0.0, l.At(0, 1))
}

func TestFillTriangularRejectsNonTriangularLength(t *testing.T) {
	for _, n := range []int{0, 2, 4, 5, 7, 8, 9} {
		_, err := distribution.FillTriangular(make([]float64, n))
		assert.ErrorIs(t, err, distribution.ErrInvalidDimension, "length %d", n)
	}
}

func TestFillUnfillRoundTrip(t *testing.T) {
	for _, dim := range []int{1, 2, 3, 5} {
		u := make([]float64, tensor.TrilSize(dim))
		for i := range u {
			u[i] = float64(i)*0.7 - 2
		}
		l, err := distribution.FillTriangular(u)
		require.NoError(t, err)
		assert.Equal(t, u, distribution.UnfillTriangular(l), "dim %d", dim)
	}
}

func TestScaleTrilFromUnconstrainedDiagonalPositive(t *testing.T) {
	// Extreme raw values either way: the diagonal must stay finite and
	// strictly positive.
	for _, v := range []float64{-1e3, -35, 0, 35, 1e3} {
		l, err := distribution.ScaleTrilFromUnconstrained([]float64{v, v, v})
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			d := l.At(i, i)
			assert.True(t, d > 0, "raw %v: diag %d = %v", v, i, d)
			assert.False(t, math.IsInf(d, 0) || math.IsNaN(d), "raw %v: diag %d = %v", v, i, d)
		}
		// Off-diagonal passes through untouched.
		assert.Equal(t, v, l.At(1, 0))
	}
}

func TestUnconstrainedRoundTrip(t *testing.T) {
	u := []float64{0.4, -1.2, 0.9, 2.5, -0.3, 1.7}
	l, err := distribution.ScaleTrilFromUnconstrained(u)
	require.NoError(t, err)

	got, err := distribution.UnconstrainedFromScaleTril(l)
	require.NoError(t, err)
	require.Len(t, got, len(u))
	for i := range u {
		assert.InDelta(t, u[i], got[i], 1e-9, "entry %d", i)
	}
}

func TestUnconstrainedFromScaleTrilRejectsFlooredDiagonal(t *testing.T) {
	l, err := distribution.FillTriangular([]float64{tensor.DiagFloor / 2})
	require.NoError(t, err)
	_, err = distribution.UnconstrainedFromScaleTril(l)
	assert.ErrorIs(t, err, distribution.ErrNonPositiveDiagonal)
}
