// Package cpu implements the CPU compute backend.
//
// Element-wise kernels are delegated to vek, which uses SIMD instructions
// on amd64/arm64 and falls back to plain Go elsewhere. Dense and triangular
// linear algebra is delegated to gonum's blas64 bindings.
package cpu
