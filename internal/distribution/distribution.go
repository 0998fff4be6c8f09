// Package distribution implements the multivariate normal distribution used
// on both sides of the KL objective: the fixed target and snapshots of the
// trainable approximant.
//
// Distributions are parameterized by a mean vector and a Cholesky-style
// lower-triangular scale factor L with strictly positive diagonal, so the
// covariance Σ = L Lᵀ is positive-definite by construction. Log-densities
// and KL divergences are computed through triangular solves against L;
// the covariance is never inverted explicitly and log-determinants reduce
// to 2·Σ log diag(L).
package distribution

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/klfit-ml/klfit/internal/tensor"
)

const log2Pi = 1.8378770664093453 // log(2π)

// MultivariateNormal is an immutable multivariate normal distribution.
// Construct one with NewMultivariateNormal, NewFromCovariance, Standard or
// NewRandom; the zero value is not usable.
type MultivariateNormal struct {
	dim         int
	mean        []float64
	scale       *mat.TriDense
	logDetScale float64 // Σ log diag(L); log det Σ is twice this
}

// NewMultivariateNormal builds a distribution from a mean vector and a
// lower-triangular scale factor. The factor's diagonal must be strictly
// positive and all parameters finite.
func NewMultivariateNormal(mean []float64, scale *mat.TriDense) (*MultivariateNormal, error) {
	dim := len(mean)
	if dim == 0 {
		return nil, fmt.Errorf("empty mean vector: %w", ErrInvalidDimension)
	}
	n, kind := scale.Triangle()
	if kind != mat.Lower {
		return nil, fmt.Errorf("scale factor must be lower triangular: %w", ErrNonPositiveDiagonal)
	}
	if n != dim {
		return nil, fmt.Errorf("mean has dimension %d but scale factor is %d×%d: %w",
			dim, n, n, ErrDimensionMismatch)
	}

	logDet := 0.0
	for i := 0; i < dim; i++ {
		if !isFinite(mean[i]) {
			return nil, fmt.Errorf("mean[%d] = %v: %w", i, mean[i], ErrNotFinite)
		}
		for j := 0; j <= i; j++ {
			v := scale.At(i, j)
			if !isFinite(v) {
				return nil, fmt.Errorf("scale[%d,%d] = %v: %w", i, j, v, ErrNotFinite)
			}
			if i == j {
				if v <= 0 {
					return nil, fmt.Errorf("scale[%d,%d] = %v: %w", i, j, v, ErrNonPositiveDiagonal)
				}
				logDet += math.Log(v)
			}
		}
	}

	m := make([]float64, dim)
	copy(m, mean)
	l := mat.NewTriDense(dim, mat.Lower, nil)
	l.Copy(scale)

	return &MultivariateNormal{dim: dim, mean: m, scale: l, logDetScale: logDet}, nil
}

// NewFromCovariance builds a distribution from a mean vector and a full
// covariance matrix, factoring it with a Cholesky decomposition.
func NewFromCovariance(mean []float64, sigma mat.Symmetric) (*MultivariateNormal, error) {
	if sigma.SymmetricDim() != len(mean) {
		return nil, fmt.Errorf("mean has dimension %d but covariance is %d×%d: %w",
			len(mean), sigma.SymmetricDim(), sigma.SymmetricDim(), ErrDimensionMismatch)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		return nil, fmt.Errorf("cholesky factorization failed: %w", ErrNotPositiveDefinite)
	}
	l := mat.NewTriDense(len(mean), mat.Lower, nil)
	chol.LTo(l)
	return NewMultivariateNormal(mean, l)
}

// Standard returns the standard normal N(0, I) in dim dimensions.
func Standard(dim int) (*MultivariateNormal, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dim = %d: %w", dim, ErrInvalidDimension)
	}
	l := mat.NewTriDense(dim, mat.Lower, nil)
	for i := 0; i < dim; i++ {
		l.SetTri(i, i, 1)
	}
	return NewMultivariateNormal(make([]float64, dim), l)
}

// NewRandom draws a random distribution: the mean from N(0, 1) and the
// scale factor from unconstrained N(0, 1) parameters pushed through the
// softplus transform. Given the same source state, identical distributions
// are produced; this is how reproducible fitting targets are built.
func NewRandom(dim int, rng *rand.Rand) (*MultivariateNormal, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dim = %d: %w", dim, ErrInvalidDimension)
	}
	mean := make([]float64, dim)
	for i := range mean {
		mean[i] = rng.NormFloat64()
	}
	u := make([]float64, tensor.TrilSize(dim))
	for i := range u {
		u[i] = rng.NormFloat64()
	}
	l, err := ScaleTrilFromUnconstrained(u)
	if err != nil {
		return nil, err
	}
	return NewMultivariateNormal(mean, l)
}

// Dim returns the dimensionality.
func (d *MultivariateNormal) Dim() int {
	return d.dim
}

// Mean returns a copy of the mean vector.
func (d *MultivariateNormal) Mean() []float64 {
	m := make([]float64, d.dim)
	copy(m, d.mean)
	return m
}

// ScaleTril returns a copy of the lower-triangular scale factor.
func (d *MultivariateNormal) ScaleTril() *mat.TriDense {
	l := mat.NewTriDense(d.dim, mat.Lower, nil)
	l.Copy(d.scale)
	return l
}

// Cov returns the covariance matrix Σ = L Lᵀ.
func (d *MultivariateNormal) Cov() *mat.SymDense {
	var cov mat.SymDense
	cov.SymOuterK(1, d.scale)
	return &cov
}

// LogDetCov returns log det Σ = 2 Σ log diag(L).
func (d *MultivariateNormal) LogDetCov() float64 {
	return 2 * d.logDetScale
}

// LogProb evaluates the log-density at x:
//
//	-0.5 * (d·log 2π + 2·Σ log diag(L) + ‖L⁻¹(x-μ)‖²)
//
// The Mahalanobis term is computed by a triangular solve against L.
func (d *MultivariateNormal) LogProb(x []float64) (float64, error) {
	if len(x) != d.dim {
		return 0, fmt.Errorf("point has dimension %d, distribution has %d: %w",
			len(x), d.dim, ErrDimensionMismatch)
	}
	y := make([]float64, d.dim)
	vek.Sub_Into(y, x, d.mean)
	blas64.Trsv(blas.NoTrans, d.scale.RawTriangular(), blas64.Vector{N: d.dim, Inc: 1, Data: y})
	maha := vek.Dot(y, y)
	return -0.5 * (float64(d.dim)*log2Pi + 2*d.logDetScale + maha), nil
}

// Sample draws one sample x = μ + L z with z ~ N(0, I).
func (d *MultivariateNormal) Sample(rng *rand.Rand) []float64 {
	z := make([]float64, d.dim)
	for i := range z {
		z[i] = rng.NormFloat64()
	}
	x := make([]float64, d.dim)
	copy(x, d.mean)
	blas64.Gemv(blas.NoTrans, 1,
		blas64.General{Rows: d.dim, Cols: d.dim, Stride: d.dim, Data: denseFromTri(d.scale)},
		blas64.Vector{N: d.dim, Inc: 1, Data: z},
		1,
		blas64.Vector{N: d.dim, Inc: 1, Data: x})
	return x
}

// denseFromTri expands a lower-triangular factor into a full row-major
// buffer with explicit zeros above the diagonal.
func denseFromTri(l *mat.TriDense) []float64 {
	n, _ := l.Triangle()
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			out[i*n+j] = l.At(i, j)
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
