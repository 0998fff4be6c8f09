// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides trainable model components.
//
// The central model is ConstrainedNormal, a multivariate Gaussian whose mean
// and unconstrained scale vector are trainable parameters. Its probabilistic
// operations (LogProb, KLTo) build differentiable graphs on the autodiff
// tape, so optimizers can follow gradients of closed-form divergences.
package nn

import (
	"math/rand"

	"github.com/klfit-ml/klfit/internal/nn"
	"github.com/klfit-ml/klfit/internal/tensor"
)

// Module interface defines the common interface for all trainable modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// ConstrainedNormal is a trainable multivariate Gaussian with a
// lower-triangular scale factor whose diagonal is kept strictly positive.
type ConstrainedNormal[B tensor.Backend] = nn.ConstrainedNormal[B]

// NewConstrainedNormal creates a model of the given dimension with randomly
// initialized mean and scale parameters drawn from rng.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	rng := rand.New(rand.NewSource(42))
//	model, err := nn.NewConstrainedNormal(2, rng, backend)
func NewConstrainedNormal[B tensor.Backend](dim int, rng *rand.Rand, backend B) (*ConstrainedNormal[B], error) {
	return nn.NewConstrainedNormal(dim, rng, backend)
}

// NewConstrainedNormalFrom creates a model with explicit initial mean and
// unconstrained scale vector. rawScale must have length dim*(dim+1)/2.
func NewConstrainedNormalFrom[B tensor.Backend](mean, rawScale []float64, backend B) (*ConstrainedNormal[B], error) {
	return nn.NewConstrainedNormalFrom(mean, rawScale, backend)
}

// Compile-time check that ConstrainedNormal implements Module.
var _ Module[tensor.Backend] = (*ConstrainedNormal[tensor.Backend])(nil)
