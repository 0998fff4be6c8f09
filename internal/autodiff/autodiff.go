// Package autodiff implements automatic differentiation using the decorator
// pattern.
//
// Backend wraps any tensor.Backend implementation and adds gradient tracking
// through a GradientTape.
//
// Architecture:
//   - Decorator pattern: Backend[B] wraps any tensor.Backend implementation
//   - GradientTape: records operations during the forward pass
//   - ops.Operation: each op implements its own backward pass
//   - Reverse-mode AD: gradients flow by walking the tape backwards
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	// ... build a scalar loss through backend operations ...
//	grads := autodiff.Backward(loss, backend)
package autodiff

import (
	"github.com/klfit-ml/klfit/internal/autodiff/ops"
	"github.com/klfit-ml/klfit/internal/tensor"
)

// Backend wraps a tensor.Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records differentiable
// operations in a GradientTape.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return &Backend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control: starting and stopping
// recording, clearing between iterations, inspecting operation counts.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	b.tape.Record(ops.NewDivOp(x, y, result))
	return result
}

// Scale multiplies by a fixed scalar and records the operation.
func (b *Backend[B]) Scale(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	result := b.inner.Scale(x, alpha)
	b.tape.Record(ops.NewScaleOp(x, result, alpha))
	return result
}

// AddScalar adds a fixed scalar and records the operation.
func (b *Backend[B]) AddScalar(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	result := b.inner.AddScalar(x, alpha)
	b.tape.Record(ops.NewAddScalarOp(x, result))
	return result
}

// Neg computes -x. Negation appears only inside backward passes in this
// codebase, so it is not recorded on the tape.
func (b *Backend[B]) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Neg(x)
}

// Exp computes the element-wise exponential and records the operation.
func (b *Backend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Exp(x)
	b.tape.Record(ops.NewExpOp(x, result))
	return result
}

// Log computes the element-wise natural logarithm and records the operation.
func (b *Backend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Log(x)
	b.tape.Record(ops.NewLogOp(x, result))
	return result
}

// Softplus computes log(1 + exp(x)) and records the operation.
func (b *Backend[B]) Softplus(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Softplus(x)
	b.tape.Record(ops.NewSoftplusOp(x, result))
	return result
}

// Sigmoid computes 1 / (1 + exp(-x)) and records the operation.
func (b *Backend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sigmoid(x)
	b.tape.Record(ops.NewSigmoidOp(x, result))
	return result
}

// Sum reduces to a scalar and records the operation.
func (b *Backend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// SumSquares reduces to the scalar sum of squares and records the operation.
func (b *Backend[B]) SumSquares(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.SumSquares(x)
	b.tape.Record(ops.NewSumSquaresOp(x, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMulOp(x, y, result))
	return result
}

// Transpose transposes a 2D tensor. Like Neg, it is only used by backward
// computations here and is not recorded.
func (b *Backend[B]) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Transpose(x)
}

// Diag extracts the matrix diagonal and records the operation.
func (b *Backend[B]) Diag(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Diag(x)
	b.tape.Record(ops.NewDiagOp(x, result))
	return result
}

// TriSolve solves L X = B and records the operation.
func (b *Backend[B]) TriSolve(l, rhs *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.TriSolve(l, rhs)
	b.tape.Record(ops.NewTriSolveOp(l, rhs, result))
	return result
}

// TriSolveTrans solves Lᵀ X = B. It exists for backward passes and is not
// recorded on the tape.
func (b *Backend[B]) TriSolveTrans(l, rhs *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.TriSolveTrans(l, rhs)
}

// ScaleTril maps unconstrained parameters to a lower-triangular scale factor
// and records the operation.
func (b *Backend[B]) ScaleTril(u *tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.ScaleTril(u, dim)
	b.tape.Record(ops.NewScaleTrilOp(u, result, dim))
	return result
}

// BackwardCapable is the interface for backends that support backpropagation.
type BackwardCapable interface {
	tensor.Backend
	Tape() *GradientTape
}

// Backward computes gradients of a scalar loss via backpropagation.
// The loss gradient is seeded with ones.
func Backward[B BackwardCapable](loss *tensor.Tensor[B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	seed := tensor.MustRaw(loss.Shape())
	seed.Fill(1.0)
	return backend.Tape().Backward(seed, backend)
}
