package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// TriSolveOp represents a lower-triangular solve: output X solves L X = B.
// B may be a vector or a matrix of right-hand-side columns.
//
// Backward pass, writing G for the output gradient:
//   - grad_B = L⁻ᵀ G (a transposed triangular solve)
//   - grad_L = -tril(grad_B · Xᵀ)
//
// The grad_L term matters when the factor itself is trainable, e.g. when
// evaluating the approximant's own log-density; for solves against a fixed
// target factor it is computed and then discarded by the tape because the
// constant has no parameter entry.
type TriSolveOp struct {
	inputs []*tensor.RawTensor // [l, b]
	output *tensor.RawTensor
}

// NewTriSolveOp creates a new triangular-solve operation.
func NewTriSolveOp(l, b, output *tensor.RawTensor) *TriSolveOp {
	return &TriSolveOp{
		inputs: []*tensor.RawTensor{l, b},
		output: output,
	}
}

// Backward computes gradients for the factor and the right-hand side.
func (op *TriSolveOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	l := op.inputs[0]
	n := l.Shape()[0]

	gradB := backend.TriSolveTrans(l, outputGrad)

	// grad_L = -tril(gradB · Xᵀ)
	gradL := tensor.MustRaw(l.Shape())
	x := op.output
	if len(x.Shape()) == 1 {
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				gradL.Set(-gradB.At(i)*x.At(j), i, j)
			}
		}
	} else {
		cols := x.Shape()[1]
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				var s float64
				for c := 0; c < cols; c++ {
					s += gradB.At(i, c) * x.At(j, c)
				}
				gradL.Set(-s, i, j)
			}
		}
	}

	return []*tensor.RawTensor{gradL, gradB}
}

// Inputs returns the input tensors [l, b].
func (op *TriSolveOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the solution tensor X.
func (op *TriSolveOp) Output() *tensor.RawTensor {
	return op.output
}
