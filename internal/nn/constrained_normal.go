package nn

import (
	"fmt"
	"math/rand"

	"github.com/klfit-ml/klfit/internal/distribution"
	"github.com/klfit-ml/klfit/internal/tensor"
)

const log2Pi = 1.8378770664093453 // log(2π)

// ConstrainedNormal is a trainable full-covariance multivariate normal.
//
// Its two parameters are the mean vector (length d) and an unconstrained
// vector u (length d(d+1)/2) that the backend's ScaleTril operation maps to
// a lower-triangular scale factor with strictly positive diagonal. Because
// the transform is valid for any real u, the optimizer can update both
// parameters freely and the covariance L Lᵀ stays positive-definite at all
// times; there is no constrained state to violate.
//
// All forward computations go through the backend, so running the model on
// an autodiff backend records the full computation graph and gradients flow
// back to both parameters.
type ConstrainedNormal[B tensor.Backend] struct {
	dim      int
	mean     *Parameter[B]
	rawScale *Parameter[B]
	backend  B
}

// NewConstrainedNormal creates a model of the given dimension with the mean
// and unconstrained scale parameters drawn from N(0, 1) using rng.
func NewConstrainedNormal[B tensor.Backend](dim int, rng *rand.Rand, backend B) (*ConstrainedNormal[B], error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dim = %d: %w", dim, distribution.ErrInvalidDimension)
	}
	mean := tensor.RandnSource(tensor.Shape{dim}, rng, backend)
	raw := tensor.RandnSource(tensor.Shape{tensor.TrilSize(dim)}, rng, backend)
	return newConstrainedNormal(dim, mean, raw, backend), nil
}

// NewConstrainedNormalFrom creates a model with explicit initial parameter
// values. rawScale must have length dim*(dim+1)/2 where dim = len(mean).
func NewConstrainedNormalFrom[B tensor.Backend](mean, rawScale []float64, backend B) (*ConstrainedNormal[B], error) {
	dim := len(mean)
	if dim == 0 {
		return nil, fmt.Errorf("empty mean vector: %w", distribution.ErrInvalidDimension)
	}
	if len(rawScale) != tensor.TrilSize(dim) {
		return nil, fmt.Errorf("rawScale has length %d, want %d for dim %d: %w",
			len(rawScale), tensor.TrilSize(dim), dim, distribution.ErrDimensionMismatch)
	}
	m, err := tensor.FromSlice(mean, tensor.Shape{dim}, backend)
	if err != nil {
		return nil, err
	}
	u, err := tensor.FromSlice(rawScale, tensor.Shape{len(rawScale)}, backend)
	if err != nil {
		return nil, err
	}
	return newConstrainedNormal(dim, m, u, backend), nil
}

func newConstrainedNormal[B tensor.Backend](dim int, mean, raw *tensor.Tensor[B], backend B) *ConstrainedNormal[B] {
	return &ConstrainedNormal[B]{
		dim:      dim,
		mean:     NewParameter("mean", mean),
		rawScale: NewParameter("raw_scale", raw),
		backend:  backend,
	}
}

// Dim returns the dimensionality.
func (m *ConstrainedNormal[B]) Dim() int {
	return m.dim
}

// Parameters returns the trainable parameters [mean, raw_scale].
func (m *ConstrainedNormal[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{m.mean, m.rawScale}
}

// Mean returns the mean parameter.
func (m *ConstrainedNormal[B]) Mean() *Parameter[B] {
	return m.mean
}

// RawScale returns the unconstrained scale parameter.
func (m *ConstrainedNormal[B]) RawScale() *Parameter[B] {
	return m.rawScale
}

// ScaleTril computes the current lower-triangular scale factor from the
// unconstrained parameters. On an autodiff backend the transform is
// recorded, so gradients with respect to the factor reach raw_scale.
func (m *ConstrainedNormal[B]) ScaleTril() *tensor.Tensor[B] {
	return tensor.New(m.backend.ScaleTril(m.rawScale.Tensor().Raw(), m.dim), m.backend)
}

// LogProb builds the log-density of the model at point x as a scalar tensor:
//
//	-0.5 * (d·log 2π + 2·Σ log diag(L) + ‖L⁻¹(x-μ)‖²)
//
// The whole computation runs through the backend, so it is differentiable
// with respect to both parameters.
func (m *ConstrainedNormal[B]) LogProb(x []float64) (*tensor.Tensor[B], error) {
	if len(x) != m.dim {
		return nil, fmt.Errorf("point has dimension %d, model has %d: %w",
			len(x), m.dim, distribution.ErrDimensionMismatch)
	}
	b := m.backend
	xRaw, err := tensor.RawFromSlice(x, tensor.Shape{m.dim})
	if err != nil {
		return nil, err
	}

	l := b.ScaleTril(m.rawScale.Tensor().Raw(), m.dim)
	diff := b.Sub(xRaw, m.mean.Tensor().Raw())
	y := b.TriSolve(l, diff)
	maha := b.SumSquares(y)
	logDet := b.Sum(b.Log(b.Diag(l)))

	// -0.5*maha - logDet - 0.5*d*log2π
	s := b.Add(b.Scale(logDet, 2.0), maha)
	lp := b.AddScalar(b.Scale(s, -0.5), -0.5*float64(m.dim)*log2Pi)
	return tensor.New(lp, b), nil
}

// KLTo builds the KL divergence KL[q‖p] from the model q to the fixed
// target p as a scalar tensor:
//
//	0.5 * (‖Lp⁻¹Lq‖²_F + ‖Lp⁻¹(μp-μq)‖² - d) + Σ log diag(Lp) - Σ log diag(Lq)
//
// The target contributes only constants; every term involving the model's
// parameters is computed through the backend, so minimizing the returned
// tensor on an autodiff backend trains the model toward the target.
func (m *ConstrainedNormal[B]) KLTo(target *distribution.MultivariateNormal) (*tensor.Tensor[B], error) {
	if target.Dim() != m.dim {
		return nil, fmt.Errorf("target has dimension %d, model has %d: %w",
			target.Dim(), m.dim, distribution.ErrDimensionMismatch)
	}
	b := m.backend
	d := m.dim

	muP, err := tensor.RawFromSlice(target.Mean(), tensor.Shape{d})
	if err != nil {
		return nil, err
	}
	lp := trilRaw(target)
	logDetP := 0.5 * target.LogDetCov()

	lq := b.ScaleTril(m.rawScale.Tensor().Raw(), d)

	diff := b.Sub(muP, m.mean.Tensor().Raw())
	maha := b.SumSquares(b.TriSolve(lp, diff))
	trace := b.SumSquares(b.TriSolve(lp, lq))
	logDetQ := b.Sum(b.Log(b.Diag(lq)))

	s := b.Scale(b.AddScalar(b.Add(trace, maha), -float64(d)), 0.5)
	kl := b.Sub(b.AddScalar(s, logDetP), logDetQ)
	return tensor.New(kl, b), nil
}

// Distribution snapshots the current parameters into an immutable
// MultivariateNormal, for evaluation and plotting outside the tape.
func (m *ConstrainedNormal[B]) Distribution() (*distribution.MultivariateNormal, error) {
	l, err := distribution.ScaleTrilFromUnconstrained(m.rawScale.Tensor().Data())
	if err != nil {
		return nil, err
	}
	return distribution.NewMultivariateNormal(m.mean.Tensor().Data(), l)
}

// trilRaw expands the target's scale factor into a dense square RawTensor
// for use as a constant in backend computations.
func trilRaw(target *distribution.MultivariateNormal) *tensor.RawTensor {
	d := target.Dim()
	scale := target.ScaleTril()
	out := tensor.MustRaw(tensor.Shape{d, d})
	for i := 0; i < d; i++ {
		for j := 0; j <= i; j++ {
			out.Set(scale.At(i, j), i, j)
		}
	}
	return out
}
