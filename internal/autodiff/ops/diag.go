package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// DiagOp extracts the diagonal of a square matrix as a vector.
//
// Backward: the vector gradient scatters back onto the diagonal of a
// zero matrix; off-diagonal entries receive no gradient from this op.
type DiagOp struct {
	input  *tensor.RawTensor // square matrix
	output *tensor.RawTensor // vector of diagonal entries
}

// NewDiagOp creates a new diagonal-extraction operation.
func NewDiagOp(input, output *tensor.RawTensor) *DiagOp {
	return &DiagOp{input: input, output: output}
}

// Backward scatters the output gradient onto the diagonal.
func (op *DiagOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := tensor.MustRaw(op.input.Shape())
	gradData := outputGrad.Data()
	for i, v := range gradData {
		grad.Set(v, i, i)
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensors.
func (op *DiagOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the diagonal vector.
func (op *DiagOp) Output() *tensor.RawTensor {
	return op.output
}
