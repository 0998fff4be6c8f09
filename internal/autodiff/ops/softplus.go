package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// SoftplusOp represents softplus(x) = log(1 + exp(x)).
//
// Backward:
//
//	d softplus(x)/dx = sigmoid(x)
//	grad_input = outputGrad * sigmoid(input)
type SoftplusOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSoftplusOp creates a new softplus operation.
func NewSoftplusOp(input, output *tensor.RawTensor) *SoftplusOp {
	return &SoftplusOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad * sigmoid(input).
func (op *SoftplusOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Sigmoid(op.input))}
}

// Inputs returns the input tensors.
func (op *SoftplusOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SoftplusOp) Output() *tensor.RawTensor {
	return op.output
}
