package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// ScaleTrilOp represents the unconstrained-to-triangular scale transform:
// the parameter vector u fills a lower-triangular matrix row-major and the
// diagonal entries pass through softplus plus a constant floor.
//
// Backward pass, per triangle slot k at position (i, j):
//   - off-diagonal (i != j): identity map, grad_u[k] = gradL[i,j]
//   - diagonal (i == j): d(softplus(x)+c)/dx = sigmoid(x), so
//     grad_u[k] = gradL[i,i] * sigmoid(u[k])
//
// Both branches are smooth and strictly monotonic, so loss gradients always
// reach the raw parameters.
type ScaleTrilOp struct {
	input  *tensor.RawTensor // u, length dim*(dim+1)/2
	output *tensor.RawTensor // dim×dim lower-triangular factor
	dim    int
}

// NewScaleTrilOp creates a new scale-transform operation.
func NewScaleTrilOp(u, output *tensor.RawTensor, dim int) *ScaleTrilOp {
	return &ScaleTrilOp{input: u, output: output, dim: dim}
}

// Backward gathers triangle gradients back into the parameter vector.
func (op *ScaleTrilOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := tensor.MustRaw(op.input.Shape())
	gradData := grad.Data()
	sig := backend.Sigmoid(op.input).Data()

	k := 0
	for i := 0; i < op.dim; i++ {
		for j := 0; j <= i; j++ {
			g := outputGrad.At(i, j)
			if i == j {
				g *= sig[k]
			}
			gradData[k] = g
			k++
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the parameter vector.
func (op *ScaleTrilOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the triangular factor.
func (op *ScaleTrilOp) Output() *tensor.RawTensor {
	return op.output
}
