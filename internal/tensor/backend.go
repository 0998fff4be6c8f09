package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations; the autodiff
// layer wraps a Backend and records ops on a tape without changing results.
//
// Implementations:
//   - CPU: pure Go with SIMD element-wise kernels and BLAS triangular solves
//   - Autodiff: decorator over any Backend that adds gradient tracking
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string

	// Element-wise binary operations. Operands must have equal shapes.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with a fixed scalar)
	Scale(x *RawTensor, alpha float64) *RawTensor     // alpha * x
	AddScalar(x *RawTensor, alpha float64) *RawTensor // x + alpha

	// Math operations (element-wise)
	Neg(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Softplus(x *RawTensor) *RawTensor // log(1 + exp(x)), overflow-safe
	Sigmoid(x *RawTensor) *RawTensor  // 1 / (1 + exp(-x))

	// Reductions to a scalar tensor (shape {1})
	Sum(x *RawTensor) *RawTensor
	SumSquares(x *RawTensor) *RawTensor

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor
	Transpose(x *RawTensor) *RawTensor // 2D only
	Diag(x *RawTensor) *RawTensor      // diagonal of a square matrix, as a vector

	// TriSolve solves L X = B for X, where l is lower triangular with
	// non-unit diagonal and b is a vector or a matrix of right-hand sides.
	TriSolve(l, b *RawTensor) *RawTensor
	// TriSolveTrans solves Lᵀ X = B.
	TriSolveTrans(l, b *RawTensor) *RawTensor

	// ScaleTril maps an unconstrained vector u of length dim*(dim+1)/2 to a
	// dim×dim lower-triangular scale factor. Entries fill the triangle
	// row-major; the diagonal passes through softplus plus a small floor so
	// it is strictly positive for any real input.
	ScaleTril(u *RawTensor, dim int) *RawTensor
}
