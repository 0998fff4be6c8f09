// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fit provides the training loop that fits a trainable Gaussian to a
// fixed target by gradient descent on the KL divergence.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	rng := rand.New(rand.NewSource(42))
//	model, _ := nn.NewConstrainedNormal(2, rng, backend)
//	target, _ := distribution.NewRandom(2, rng)
//
//	fitter := fit.New(backend, fit.Config{Steps: 1000, LR: 0.01})
//	result, err := fitter.Fit(model, target)
package fit

import (
	"github.com/klfit-ml/klfit/internal/autodiff"
	"github.com/klfit-ml/klfit/internal/fit"
)

// Observer is called with intermediate results during fitting.
type Observer = fit.Observer

// Config controls the fitting run.
type Config = fit.Config

// Result summarizes a completed fitting run.
type Result = fit.Result

// Fitter runs gradient descent on the KL divergence between a trainable
// model and a fixed target.
type Fitter[B autodiff.BackwardCapable] = fit.Fitter[B]

// New creates a fitter over the given autodiff-capable backend.
func New[B autodiff.BackwardCapable](backend B, config Config) *Fitter[B] {
	return fit.New(backend, config)
}
