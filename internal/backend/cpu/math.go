package cpu

import (
	"math"

	"github.com/viterin/vek"

	"github.com/klfit-ml/klfit/internal/tensor"
)

// Neg computes -x element-wise.
func (b *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape())
	vek.Neg_Into(out.Data(), x.Data())
	return out
}

// Exp computes the element-wise exponential.
func (b *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape())
	xData := x.Data()
	outData := out.Data()
	for i, v := range xData {
		outData[i] = math.Exp(v)
	}
	return out
}

// Log computes the element-wise natural logarithm.
// Input values must be positive.
func (b *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape())
	xData := x.Data()
	outData := out.Data()
	for i, v := range xData {
		outData[i] = math.Log(v)
	}
	return out
}

// Softplus computes log(1 + exp(x)) element-wise, overflow-safe.
func (b *CPUBackend) Softplus(x *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape())
	xData := x.Data()
	outData := out.Data()
	for i, v := range xData {
		outData[i] = tensor.Softplus(v)
	}
	return out
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
// Sigmoid is the derivative of Softplus; the autodiff layer uses it for
// the scale-factor backward pass.
func (b *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape())
	xData := x.Data()
	outData := out.Data()
	for i, v := range xData {
		outData[i] = tensor.Sigmoid(v)
	}
	return out
}
