// Package ops defines operation records for automatic differentiation.
//
// Each operation captures its inputs and output during the forward pass and
// knows how to compute input gradients from the output gradient:
//   - AddOp/SubOp/MulOp/DivOp: element-wise arithmetic
//   - ScaleOp/AddScalarOp: arithmetic with a fixed scalar
//   - LogOp/ExpOp/SoftplusOp/SigmoidOp: element-wise math
//   - SumOp/SumSquaresOp: reductions to a scalar
//   - MatMulOp: dense matrix product (d(A@B)/dA = grad@Bᵀ, d(A@B)/dB = Aᵀ@grad)
//   - DiagOp: diagonal extraction (gradient scatters back onto the diagonal)
//   - TriSolveOp: triangular solve (gradient uses the transposed solve)
//   - ScaleTrilOp: unconstrained-to-triangular scale transform
package ops

import "github.com/klfit-ml/klfit/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	// A nil entry means no gradient flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
