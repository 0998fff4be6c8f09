package distribution_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/klfit-ml/klfit/internal/distribution"
)

func lower(dim int, data []float64) *mat.TriDense {
	l := mat.NewTriDense(dim, mat.Lower, nil)
	k := 0
	for i := 0; i < dim; i++ {
		for j := 0; j <= i; j++ {
			l.SetTri(i, j, data[k])
			k++
		}
	}
	return l
}

func TestNewMultivariateNormalValidation(t *testing.T) {
	t.Run("empty mean", func(t *testing.T) {
		_, err := distribution.NewMultivariateNormal(nil, mat.NewTriDense(1, mat.Lower, nil))
		assert.ErrorIs(t, err, distribution.ErrInvalidDimension)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := distribution.NewMultivariateNormal([]float64{0, 0, 0}, lower(2, []float64{1, 0, 1}))
		assert.ErrorIs(t, err, distribution.ErrDimensionMismatch)
	})

	t.Run("zero diagonal", func(t *testing.T) {
		_, err := distribution.NewMultivariateNormal([]float64{0, 0}, lower(2, []float64{1, 0.5, 0}))
		assert.ErrorIs(t, err, distribution.ErrNonPositiveDiagonal)
	})

	t.Run("negative diagonal", func(t *testing.T) {
		_, err := distribution.NewMultivariateNormal([]float64{0, 0}, lower(2, []float64{-1, 0, 1}))
		assert.ErrorIs(t, err, distribution.ErrNonPositiveDiagonal)
	})

	t.Run("non-finite mean", func(t *testing.T) {
		_, err := distribution.NewMultivariateNormal([]float64{math.NaN()}, lower(1, []float64{1}))
		assert.ErrorIs(t, err, distribution.ErrNotFinite)
	})

	t.Run("non-finite scale", func(t *testing.T) {
		_, err := distribution.NewMultivariateNormal([]float64{0}, lower(1, []float64{math.Inf(1)}))
		assert.ErrorIs(t, err, distribution.ErrNotFinite)
	})
}

func TestNewMultivariateNormalCopiesInputs(t *testing.T) {
	mean := []float64{1, 2}
	scale := lower(2, []float64{1, 0.5, 2})
	d, err := distribution.NewMultivariateNormal(mean, scale)
	require.NoError(t, err)

	mean[0] = 99
	scale.SetTri(0, 0, 99)

	assert.Equal(t, []float64{1, 2}, d.Mean())
	assert.Equal(t, 1.0, d.ScaleTril().At(0, 0))
}

func TestNewFromCovarianceRoundTrip(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{2, 0.6, 0.6, 1})
	d, err := distribution.NewFromCovariance([]float64{1, -1}, sigma)
	require.NoError(t, err)

	cov := d.Cov()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, sigma.At(i, j), cov.At(i, j), 1e-12)
		}
	}
}

func TestNewFromCovarianceRejectsIndefinite(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{1, 2, 2, 1}) // eigenvalues 3, -1
	_, err := distribution.NewFromCovariance([]float64{0, 0}, sigma)
	assert.ErrorIs(t, err, distribution.ErrNotPositiveDefinite)
}

func TestStandardLogProbMatchesClosedForm(t *testing.T) {
	d, err := distribution.Standard(2)
	require.NoError(t, err)

	// At the origin the density is (2π)^{-d/2}.
	lp, err := d.LogProb([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(2*math.Pi), lp, 1e-12)

	// One unit away in one coordinate subtracts 1/2.
	lp1, err := d.LogProb([]float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(2*math.Pi)-0.5, lp1, 1e-12)
}

func TestLogProbDimensionMismatch(t *testing.T) {
	d, _ := distribution.Standard(2)
	_, err := d.LogProb([]float64{0})
	assert.ErrorIs(t, err, distribution.ErrDimensionMismatch)
}

// The density must integrate to one; a fine Riemann sum over a wide box is
// accurate to a few decimals for well-conditioned 2D Gaussians.
func TestLogProbIntegratesToOne(t *testing.T) {
	d, err := distribution.NewMultivariateNormal(
		[]float64{0.3, -0.2},
		lower(2, []float64{1.1, 0.4, 0.7}),
	)
	require.NoError(t, err)

	const (
		lo, hi = -8.0, 8.0
		n      = 400
	)
	h := (hi - lo) / n
	total := 0.0
	for i := 0; i < n; i++ {
		x := lo + (float64(i)+0.5)*h
		for j := 0; j < n; j++ {
			y := lo + (float64(j)+0.5)*h
			lp, err := d.LogProb([]float64{x, y})
			require.NoError(t, err)
			total += math.Exp(lp) * h * h
		}
	}
	assert.InDelta(t, 1.0, total, 1e-3)
}

func TestLogDetCov(t *testing.T) {
	d, err := distribution.NewMultivariateNormal(
		[]float64{0, 0},
		lower(2, []float64{2, 0.3, 0.5}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 2*(math.Log(2)+math.Log(0.5)), d.LogDetCov(), 1e-12)
}

func TestSampleMomentsApproximateDistribution(t *testing.T) {
	d, err := distribution.NewMultivariateNormal(
		[]float64{1, -2},
		lower(2, []float64{1.5, 0.8, 0.6}),
	)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	const n = 200000
	sum := [2]float64{}
	for i := 0; i < n; i++ {
		x := d.Sample(rng)
		sum[0] += x[0]
		sum[1] += x[1]
	}
	assert.InDelta(t, 1, sum[0]/n, 0.02)
	assert.InDelta(t, -2, sum[1]/n, 0.02)
}

// KL tests

func TestKLSelfIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for dim := 1; dim <= 4; dim++ {
		d, err := distribution.NewRandom(dim, rng)
		require.NoError(t, err)

		kl, err := distribution.KL(d, d)
		require.NoError(t, err)
		assert.InDelta(t, 0, kl, 1e-10, "dim %d", dim)
	}
}

func TestKLNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 50; trial++ {
		dim := 1 + rng.Intn(4)
		q, err := distribution.NewRandom(dim, rng)
		require.NoError(t, err)
		p, err := distribution.NewRandom(dim, rng)
		require.NoError(t, err)

		kl, err := distribution.KL(q, p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, kl, -1e-12, "trial %d dim %d", trial, dim)
	}
}

func TestKLAsymmetric(t *testing.T) {
	q, err := distribution.NewMultivariateNormal([]float64{0}, lower(1, []float64{1}))
	require.NoError(t, err)
	p, err := distribution.NewMultivariateNormal([]float64{0}, lower(1, []float64{3}))
	require.NoError(t, err)

	klQP, err := distribution.KL(q, p)
	require.NoError(t, err)
	klPQ, err := distribution.KL(p, q)
	require.NoError(t, err)
	assert.Greater(t, math.Abs(klQP-klPQ), 1e-6)
}

// Univariate closed form: KL(N(μ1,σ1²)‖N(μ2,σ2²)) =
// log(σ2/σ1) + (σ1² + (μ1-μ2)²)/(2σ2²) - 1/2.
func TestKLMatchesUnivariateFormula(t *testing.T) {
	mu1, s1 := 0.7, 1.3
	mu2, s2 := -0.4, 0.9
	q, err := distribution.NewMultivariateNormal([]float64{mu1}, lower(1, []float64{s1}))
	require.NoError(t, err)
	p, err := distribution.NewMultivariateNormal([]float64{mu2}, lower(1, []float64{s2}))
	require.NoError(t, err)

	want := math.Log(s2/s1) + (s1*s1+(mu1-mu2)*(mu1-mu2))/(2*s2*s2) - 0.5
	kl, err := distribution.KL(q, p)
	require.NoError(t, err)
	assert.InDelta(t, want, kl, 1e-12)
}

func TestKLDimensionMismatch(t *testing.T) {
	q, _ := distribution.Standard(2)
	p, _ := distribution.Standard(3)
	_, err := distribution.KL(q, p)
	assert.ErrorIs(t, err, distribution.ErrDimensionMismatch)
}
