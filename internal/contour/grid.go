// Package contour renders density contours of 2D distributions as text.
//
// It is the observational half of the fitting demo: every few steps the
// trainer hands it the target and the current approximant, and it draws
// both density fields over a fixed mesh together with the iteration number
// and current KL value. Rendering has no effect on training.
package contour

import (
	"fmt"
	"math"

	"github.com/klfit-ml/klfit/internal/distribution"
)

// LogProber is the density interface the renderer needs; both
// *distribution.MultivariateNormal and model snapshots satisfy it.
type LogProber interface {
	Dim() int
	LogProb(x []float64) (float64, error)
}

// Grid is a rectangular evaluation mesh.
type Grid struct {
	XMin, XMax float64
	YMin, YMax float64
	Cols, Rows int
}

// DefaultGrid covers [-5,5]×[-5,5] at a resolution suited to terminal
// output. Cell aspect compensates for characters being taller than wide.
func DefaultGrid() Grid {
	return Grid{XMin: -5, XMax: 5, YMin: -5, YMax: 5, Cols: 72, Rows: 30}
}

// Densities evaluates exp(LogProb) at every cell center, row 0 at YMax so
// the rendered output has y increasing upward. Only 2D distributions can
// be evaluated on a planar mesh.
func (g Grid) Densities(d LogProber) ([][]float64, error) {
	if d.Dim() != 2 {
		return nil, fmt.Errorf("contour grid needs a 2D distribution, got %d: %w",
			d.Dim(), distribution.ErrDimensionMismatch)
	}
	if g.Cols < 2 || g.Rows < 2 {
		return nil, fmt.Errorf("grid resolution %dx%d too small: %w",
			g.Cols, g.Rows, distribution.ErrInvalidDimension)
	}

	dx := (g.XMax - g.XMin) / float64(g.Cols-1)
	dy := (g.YMax - g.YMin) / float64(g.Rows-1)

	out := make([][]float64, g.Rows)
	point := make([]float64, 2)
	for r := 0; r < g.Rows; r++ {
		out[r] = make([]float64, g.Cols)
		point[1] = g.YMax - float64(r)*dy
		for c := 0; c < g.Cols; c++ {
			point[0] = g.XMin + float64(c)*dx
			lp, err := d.LogProb(point)
			if err != nil {
				return nil, err
			}
			out[r][c] = math.Exp(lp)
		}
	}
	return out, nil
}
