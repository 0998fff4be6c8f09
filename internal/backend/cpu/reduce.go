package cpu

import (
	"fmt"

	"github.com/viterin/vek"

	"github.com/klfit-ml/klfit/internal/tensor"
)

// Sum reduces x to a scalar tensor holding the sum of all elements.
func (b *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustRaw(tensor.Shape{1})
	out.Data()[0] = vek.Sum(x.Data())
	return out
}

// SumSquares reduces x to a scalar tensor holding the sum of squared
// elements (the squared Frobenius norm for matrices).
func (b *CPUBackend) SumSquares(x *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustRaw(tensor.Shape{1})
	out.Data()[0] = vek.Dot(x.Data(), x.Data())
	return out
}

// Diag extracts the diagonal of a square matrix as a vector.
func (b *CPUBackend) Diag(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if !shape.IsSquare() {
		panic(fmt.Sprintf("cpu: Diag requires a square matrix, got shape %v", shape))
	}
	n := shape[0]
	out := tensor.MustRaw(tensor.Shape{n})
	data := out.Data()
	for i := 0; i < n; i++ {
		data[i] = x.At(i, i)
	}
	return out
}
