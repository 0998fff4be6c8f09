package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/klfit-ml/klfit/internal/tensor"
)

// MatMul performs dense matrix multiplication a @ b via BLAS.
func (b *CPUBackend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	xs, ys := x.Shape(), y.Shape()
	if len(xs) != 2 || len(ys) != 2 || xs[1] != ys[0] {
		panic(fmt.Sprintf("cpu: MatMul shape mismatch: %v @ %v", xs, ys))
	}
	m, k, n := xs[0], xs[1], ys[1]
	out := tensor.MustRaw(tensor.Shape{m, n})
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: x.Data()},
		blas64.General{Rows: k, Cols: n, Stride: n, Data: y.Data()},
		0,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: out.Data()},
	)
	return out
}

// Transpose returns the transpose of a 2D tensor.
func (b *CPUBackend) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("cpu: Transpose requires a 2D tensor, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]
	out := tensor.MustRaw(tensor.Shape{cols, rows})
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(x.At(i, j), j, i)
		}
	}
	return out
}

// TriSolve solves L X = B where l is lower triangular with non-unit
// diagonal. B may be a vector (rank 1) or a matrix of right-hand-side
// columns (rank 2).
func (b *CPUBackend) TriSolve(l, rhs *tensor.RawTensor) *tensor.RawTensor {
	return triSolve(l, rhs, blas.NoTrans)
}

// TriSolveTrans solves Lᵀ X = B with the same shape rules as TriSolve.
func (b *CPUBackend) TriSolveTrans(l, rhs *tensor.RawTensor) *tensor.RawTensor {
	return triSolve(l, rhs, blas.Trans)
}

func triSolve(l, rhs *tensor.RawTensor, trans blas.Transpose) *tensor.RawTensor {
	ls := l.Shape()
	if !ls.IsSquare() {
		panic(fmt.Sprintf("cpu: TriSolve requires a square factor, got shape %v", ls))
	}
	n := ls[0]
	tri := blas64.Triangular{
		Uplo:   blas.Lower,
		Diag:   blas.NonUnit,
		N:      n,
		Data:   l.Data(),
		Stride: n,
	}

	out := rhs.Clone()
	rs := rhs.Shape()
	switch len(rs) {
	case 1:
		if rs[0] != n {
			panic(fmt.Sprintf("cpu: TriSolve dimension mismatch: factor %d, rhs %d", n, rs[0]))
		}
		blas64.Trsv(trans, tri, blas64.Vector{N: n, Inc: 1, Data: out.Data()})
	case 2:
		if rs[0] != n {
			panic(fmt.Sprintf("cpu: TriSolve dimension mismatch: factor %d, rhs %v", n, rs))
		}
		blas64.Trsm(blas.Left, trans, 1, tri,
			blas64.General{Rows: n, Cols: rs[1], Stride: rs[1], Data: out.Data()})
	default:
		panic(fmt.Sprintf("cpu: TriSolve rhs must be rank 1 or 2, got shape %v", rs))
	}
	return out
}
