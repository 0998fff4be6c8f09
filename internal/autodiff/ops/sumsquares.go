package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// SumSquaresOp represents the squared-norm reduction: output = Σ input[i]².
// For matrices this is the squared Frobenius norm; the KL objective uses it
// for both its trace and Mahalanobis terms.
//
// Backward:
//
//	∂L/∂input = 2 * input * ∂L/∂output
type SumSquaresOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumSquaresOp creates a new sum-of-squares reduction operation.
func NewSumSquaresOp(input, output *tensor.RawTensor) *SumSquaresOp {
	return &SumSquaresOp{input: input, output: output}
}

// Backward computes grad_input = 2 * outputGrad * input.
func (op *SumSquaresOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Scale(op.input, 2.0*outputGrad.Scalar())}
}

// Inputs returns the input tensors.
func (op *SumSquaresOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scalar output tensor.
func (op *SumSquaresOp) Output() *tensor.RawTensor {
	return op.output
}
