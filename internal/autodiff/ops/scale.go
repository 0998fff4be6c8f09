package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// ScaleOp represents multiplication by a fixed scalar: output = alpha * x.
//
// Backward: grad_x = alpha * outputGrad.
type ScaleOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	alpha  float64
}

// NewScaleOp creates a new ScaleOp.
func NewScaleOp(x, output *tensor.RawTensor, alpha float64) *ScaleOp {
	return &ScaleOp{input: x, output: output, alpha: alpha}
}

// Backward scales the output gradient by alpha.
func (op *ScaleOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Scale(outputGrad, op.alpha)}
}

// Inputs returns the input tensor.
func (op *ScaleOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ScaleOp) Output() *tensor.RawTensor {
	return op.output
}

// AddScalarOp represents addition of a fixed scalar: output = x + alpha.
//
// Backward: grad_x = outputGrad (the constant shift has zero derivative).
type AddScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{input: x, output: output}
}

// Backward passes the output gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// Inputs returns the input tensor.
func (op *AddScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *AddScalarOp) Output() *tensor.RawTensor {
	return op.output
}
