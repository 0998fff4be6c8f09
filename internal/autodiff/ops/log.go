package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// LogOp represents an element-wise natural logarithm: output = log(input).
//
// Backward:
//
//	∂L/∂input = ∂L/∂output * (1 / input)
//
// Input values must be positive. In this codebase LogOp is only applied to
// scale-factor diagonals, which the ScaleTril transform keeps strictly
// positive.
type LogOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewLogOp creates a new log operation.
func NewLogOp(input, output *tensor.RawTensor) *LogOp {
	return &LogOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad / input.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.input)}
}

// Inputs returns the input tensors.
func (op *LogOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *LogOp) Output() *tensor.RawTensor {
	return op.output
}
