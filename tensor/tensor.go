// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/klfit-ml/klfit/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a 2×3 matrix.
type Shape = tensor.Shape

// RawTensor is the low-level dense float64 tensor with row-major strides.
//
// Most users should work with Tensor instead; RawTensor is the currency of
// Backend implementations and gradient maps.
type RawTensor = tensor.RawTensor

// Tensor is a backend-parameterized tensor.
//
// B is the backend implementation (CPU, or the autodiff decorator over it).
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	y := tensor.Ones(tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Element-wise addition
type Tensor[B Backend] = tensor.Tensor[B]

// DiagFloor is the positive floor added to softplus-transformed diagonal
// entries of triangular scale factors.
const DiagFloor = tensor.DiagFloor

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Zeros[B](shape, b)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Ones(tensor.Shape{2, 3}, backend)
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Ones[B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full(tensor.Shape{2, 3}, 3.14, backend)
func Full[B Backend](shape Shape, value float64, b B) *Tensor[B] {
	return tensor.Full[B](shape, value, b)
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	backend := cpu.New()
//	identity := tensor.Eye(3, backend)  // 3x3 identity matrix
func Eye[B Backend](n int, b B) *Tensor[B] {
	return tensor.Eye[B](n, b)
}

// Randn creates a tensor filled with random values from the standard normal
// distribution N(0, 1).
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Randn(tensor.Shape{2, 3}, backend)
func Randn[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Randn[B](shape, b)
}

// RandnSource is Randn drawing from a caller-supplied source, for
// reproducible initialization.
func RandnSource[B Backend](shape Shape, src *rand.Rand, b B) *Tensor[B] {
	return tensor.RandnSource[B](shape, src, b)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	backend := cpu.New()
//	data := []float64{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[B Backend](data []float64, shape Shape, b B) (*Tensor[B], error) {
	return tensor.FromSlice[B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Ones, or FromSlice instead.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return tensor.New[B](raw, b)
}

// NewRaw creates a new zero-filled raw tensor with the given shape.
//
// This is a low-level function. Most users should use high-level creation
// functions instead.
func NewRaw(shape Shape) (*RawTensor, error) {
	return tensor.NewRaw(shape)
}

// Utility functions

// TrilSize returns the number of entries in the lower triangle of a dim×dim
// matrix, diagonal included: dim*(dim+1)/2.
func TrilSize(dim int) int {
	return tensor.TrilSize(dim)
}

// Softplus computes log(1 + exp(x)) without overflow for large x.
func Softplus(x float64) float64 {
	return tensor.Softplus(x)
}

// InvSoftplus inverts Softplus: it returns x such that Softplus(x) = y.
// Defined for y > 0.
func InvSoftplus(y float64) float64 {
	return tensor.InvSoftplus(y)
}

// Sigmoid computes 1 / (1 + exp(-x)), the derivative of Softplus.
func Sigmoid(x float64) float64 {
	return tensor.Sigmoid(x)
}
