package distribution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/klfit-ml/klfit/internal/tensor"
)

// FillTriangular places the elements of u into the lower triangle of a
// square matrix, row-major: rows top to bottom, columns left to right
// within a row. It is the positional half of the scale-factor
// parameterization; no transform is applied to any entry.
//
// The length of u must be d(d+1)/2 for some d >= 1.
func FillTriangular(u []float64) (*mat.TriDense, error) {
	d, err := trilDim(len(u))
	if err != nil {
		return nil, err
	}
	l := mat.NewTriDense(d, mat.Lower, nil)
	k := 0
	for i := 0; i < d; i++ {
		for j := 0; j <= i; j++ {
			l.SetTri(i, j, u[k])
			k++
		}
	}
	return l, nil
}

// UnfillTriangular reads the lower triangle of l back into a flat vector in
// the same row-major order used by FillTriangular. The two functions are
// exact inverses.
func UnfillTriangular(l mat.Triangular) []float64 {
	d, _ := l.Triangle()
	u := make([]float64, tensor.TrilSize(d))
	k := 0
	for i := 0; i < d; i++ {
		for j := 0; j <= i; j++ {
			u[k] = l.At(i, j)
			k++
		}
	}
	return u
}

// ScaleTrilFromUnconstrained maps an unconstrained vector to a valid scale
// factor: fill row-major, then apply softplus plus the diagonal floor to
// diagonal entries only. The result has a strictly positive diagonal for
// any real input. This is the reference (non-differentiable) twin of the
// backend ScaleTril operation.
func ScaleTrilFromUnconstrained(u []float64) (*mat.TriDense, error) {
	l, err := FillTriangular(u)
	if err != nil {
		return nil, err
	}
	d, _ := l.Triangle()
	for i := 0; i < d; i++ {
		l.SetTri(i, i, tensor.Softplus(l.At(i, i))+tensor.DiagFloor)
	}
	return l, nil
}

// UnconstrainedFromScaleTril inverts ScaleTrilFromUnconstrained: off-diagonal
// entries are read back directly and diagonal entries pass through the
// inverse softplus after the floor is removed. The diagonal of l must exceed
// the floor.
func UnconstrainedFromScaleTril(l mat.Triangular) ([]float64, error) {
	d, _ := l.Triangle()
	u := make([]float64, tensor.TrilSize(d))
	k := 0
	for i := 0; i < d; i++ {
		for j := 0; j <= i; j++ {
			v := l.At(i, j)
			if i == j {
				if v <= tensor.DiagFloor {
					return nil, fmt.Errorf("diagonal entry %d is %v, below the softplus floor: %w",
						i, v, ErrNonPositiveDiagonal)
				}
				v = tensor.InvSoftplus(v - tensor.DiagFloor)
			}
			u[k] = v
			k++
		}
	}
	return u, nil
}

// trilDim solves d(d+1)/2 = n for d, rejecting lengths that do not
// correspond to a full triangle.
func trilDim(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("triangular parameter vector is empty: %w", ErrInvalidDimension)
	}
	d := int(math.Round((math.Sqrt(float64(8*n+1)) - 1) / 2))
	if tensor.TrilSize(d) != n {
		return 0, fmt.Errorf("length %d is not a triangular number: %w", n, ErrInvalidDimension)
	}
	return d, nil
}
