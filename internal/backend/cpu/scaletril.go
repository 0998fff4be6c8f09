package cpu

import (
	"fmt"

	"github.com/klfit-ml/klfit/internal/tensor"
)

// ScaleTril maps an unconstrained parameter vector to a lower-triangular
// scale factor with a strictly positive diagonal.
//
// Entries of u fill the triangle row-major: rows top to bottom, columns
// left to right within a row. Off-diagonal entries pass through unchanged;
// diagonal entries are mapped through softplus(x) + tensor.DiagFloor. The
// map is smooth and strictly increasing on the diagonal, so gradients flow
// through it and the resulting L Lᵀ is positive-definite for any real u.
func (b *CPUBackend) ScaleTril(u *tensor.RawTensor, dim int) *tensor.RawTensor {
	if dim <= 0 {
		panic(fmt.Sprintf("cpu: ScaleTril dim must be positive, got %d", dim))
	}
	if u.NumElements() != tensor.TrilSize(dim) {
		panic(fmt.Sprintf("cpu: ScaleTril expects %d parameters for dim %d, got %d",
			tensor.TrilSize(dim), dim, u.NumElements()))
	}

	out := tensor.MustRaw(tensor.Shape{dim, dim})
	data := u.Data()
	k := 0
	for i := 0; i < dim; i++ {
		for j := 0; j <= i; j++ {
			v := data[k]
			if i == j {
				v = tensor.Softplus(v) + tensor.DiagFloor
			}
			out.Set(v, i, j)
			k++
		}
	}
	return out
}
