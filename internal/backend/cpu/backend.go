package cpu

import (
	"fmt"

	"github.com/viterin/vek"

	"github.com/klfit-ml/klfit/internal/tensor"
)

// CPUBackend implements tensor.Backend with pure Go compute.
// Element-wise kernels go through vek, which dispatches to SIMD
// implementations where the CPU supports them; dense and triangular
// linear algebra goes through gonum's blas64.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (b *CPUBackend) Name() string {
	return "CPU"
}

// checkSameShape panics if a and b differ in shape. Shape mismatches are
// programmer errors at this layer; user-facing validation happens in the
// distribution and model constructors.
func checkSameShape(op string, a, b *tensor.RawTensor) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("cpu: %s shape mismatch: %v vs %v", op, a.Shape(), b.Shape()))
	}
}

// Add performs element-wise addition.
func (b *CPUBackend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	checkSameShape("Add", x, y)
	out := tensor.MustRaw(x.Shape())
	vek.Add_Into(out.Data(), x.Data(), y.Data())
	return out
}

// Sub performs element-wise subtraction.
func (b *CPUBackend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	checkSameShape("Sub", x, y)
	out := tensor.MustRaw(x.Shape())
	vek.Sub_Into(out.Data(), x.Data(), y.Data())
	return out
}

// Mul performs element-wise multiplication.
func (b *CPUBackend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	checkSameShape("Mul", x, y)
	out := tensor.MustRaw(x.Shape())
	vek.Mul_Into(out.Data(), x.Data(), y.Data())
	return out
}

// Div performs element-wise division.
func (b *CPUBackend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	checkSameShape("Div", x, y)
	out := tensor.MustRaw(x.Shape())
	vek.Div_Into(out.Data(), x.Data(), y.Data())
	return out
}

// Scale computes alpha * x element-wise.
func (b *CPUBackend) Scale(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape())
	vek.MulNumber_Into(out.Data(), x.Data(), alpha)
	return out
}

// AddScalar computes x + alpha element-wise.
func (b *CPUBackend) AddScalar(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape())
	vek.AddNumber_Into(out.Data(), x.Data(), alpha)
	return out
}
