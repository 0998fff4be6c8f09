// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package contour renders ASCII density contours of 2D distributions, for
// watching a fit converge in the terminal.
package contour

import (
	"github.com/klfit-ml/klfit/internal/contour"
)

// LogProber is any 2D distribution that can report its log density.
type LogProber = contour.LogProber

// Grid is a rectangular evaluation mesh.
type Grid = contour.Grid

// DefaultGrid covers [-5, 5] × [-5, 5] at terminal-friendly resolution.
func DefaultGrid() Grid {
	return contour.DefaultGrid()
}

// Renderer draws overlaid contours of a target and an approximant.
type Renderer = contour.Renderer

// NewRenderer creates a renderer over the given grid.
func NewRenderer(grid Grid) *Renderer {
	return contour.NewRenderer(grid)
}
