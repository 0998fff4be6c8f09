// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/klfit-ml/klfit/autodiff"
//	    "github.com/klfit-ml/klfit/backend/cpu"
//	    "github.com/klfit-ml/klfit/tensor"
//	)
//
//	func main() {
//	    // Wrap CPU backend with autodiff
//	    base := cpu.New()
//	    backend := autodiff.New(base)
//
//	    // Record operations on the tape
//	    backend.Tape().StartRecording()
//	    x := tensor.Ones(tensor.Shape{3}, backend)
//	    loss := x.SumSquares()
//	    backend.Tape().StopRecording()
//
//	    // Compute gradients
//	    grads := autodiff.Backward(loss, backend)
//	    _ = grads[x.Raw()]
//	}
package autodiff

import (
	"github.com/klfit-ml/klfit/internal/autodiff"
	"github.com/klfit-ml/klfit/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is the interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients of the given scalar loss via backpropagation,
// returning a map from raw input tensors to their gradients.
func Backward[B BackwardCapable](loss *tensor.Tensor[B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(loss, backend)
}
