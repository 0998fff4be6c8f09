// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package distribution provides fixed multivariate normal distributions and
// closed-form KL divergence between them.
//
// Distributions here are immutable reference values: evaluation targets,
// snapshots of trained models, and the ground truth in tests. The trainable
// counterpart lives in the nn package.
package distribution

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/klfit-ml/klfit/internal/distribution"
)

// MultivariateNormal is a fixed multivariate normal distribution
// parameterized by its mean and a lower-triangular scale factor L with
// Cov = L Lᵀ.
type MultivariateNormal = distribution.MultivariateNormal

// Validation errors returned by constructors and evaluation methods.
var (
	ErrInvalidDimension    = distribution.ErrInvalidDimension
	ErrDimensionMismatch   = distribution.ErrDimensionMismatch
	ErrNonPositiveDiagonal = distribution.ErrNonPositiveDiagonal
	ErrNotFinite           = distribution.ErrNotFinite
	ErrNotPositiveDefinite = distribution.ErrNotPositiveDefinite
)

// NewMultivariateNormal creates a distribution from a mean vector and a
// lower-triangular scale factor with strictly positive diagonal.
func NewMultivariateNormal(mean []float64, scale *mat.TriDense) (*MultivariateNormal, error) {
	return distribution.NewMultivariateNormal(mean, scale)
}

// NewFromCovariance creates a distribution from a mean vector and a
// symmetric positive definite covariance matrix, factorizing it internally.
func NewFromCovariance(mean []float64, sigma mat.Symmetric) (*MultivariateNormal, error) {
	return distribution.NewFromCovariance(mean, sigma)
}

// Standard creates the standard normal N(0, I) of the given dimension.
func Standard(dim int) (*MultivariateNormal, error) {
	return distribution.Standard(dim)
}

// NewRandom creates a distribution with mean and scale drawn from rng. The
// scale diagonal is always strictly positive.
func NewRandom(dim int, rng *rand.Rand) (*MultivariateNormal, error) {
	return distribution.NewRandom(dim, rng)
}

// KL computes the KL divergence KL(q ‖ p) between two multivariate normals
// in closed form from their triangular factors.
func KL(q, p *MultivariateNormal) (float64, error) {
	return distribution.KL(q, p)
}

// Triangular packing helpers

// FillTriangular maps a vector of length d*(d+1)/2 to a d×d lower-triangular
// matrix, filling the triangle row by row.
func FillTriangular(u []float64) (*mat.TriDense, error) {
	return distribution.FillTriangular(u)
}

// UnfillTriangular is the exact inverse of FillTriangular.
func UnfillTriangular(l mat.Triangular) []float64 {
	return distribution.UnfillTriangular(l)
}

// ScaleTrilFromUnconstrained maps an unconstrained vector to a valid scale
// factor: FillTriangular followed by a softplus-plus-floor transform of the
// diagonal.
func ScaleTrilFromUnconstrained(u []float64) (*mat.TriDense, error) {
	return distribution.ScaleTrilFromUnconstrained(u)
}

// UnconstrainedFromScaleTril inverts ScaleTrilFromUnconstrained. It fails if
// any diagonal entry is at or below the softplus floor.
func UnconstrainedFromScaleTril(l mat.Triangular) ([]float64, error) {
	return distribution.UnconstrainedFromScaleTril(l)
}
