package contour

import (
	"fmt"
	"io"
	"strings"
)

// Default density contour levels, shared by both distributions so shapes
// are visually comparable.
var defaultLevels = []float64{0.01, 0.03, 0.06, 0.1, 0.15}

// Characters per level band. Target bands render as dots, the approximant
// as solid marks drawn on top of the target.
var (
	targetChars = []rune{'.', ':', '-', '=', '%'}
	approxChars = []rune{'+', 'o', 'O', '8', '@'}
)

// Renderer draws overlaid density contours of a fixed target and a moving
// approximant.
type Renderer struct {
	grid   Grid
	levels []float64
}

// NewRenderer creates a renderer over the given grid with the default
// contour levels.
func NewRenderer(grid Grid) *Renderer {
	return &Renderer{grid: grid, levels: defaultLevels}
}

// Render writes one frame: a header with the iteration number and current
// KL, then the contour field. The approximant overdraws the target where
// they overlap, so convergence shows as solid marks swallowing the dots.
func (r *Renderer) Render(w io.Writer, step int, kl float64, target, approx LogProber) error {
	targetDensity, err := r.grid.Densities(target)
	if err != nil {
		return err
	}
	approxDensity, err := r.grid.Densities(approx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "iteration %d  KL(q‖p) = %.6f\n", step, kl)
	sb.WriteString("+" + strings.Repeat("-", r.grid.Cols) + "+\n")
	for row := 0; row < r.grid.Rows; row++ {
		sb.WriteByte('|')
		for col := 0; col < r.grid.Cols; col++ {
			sb.WriteRune(r.cell(targetDensity[row][col], approxDensity[row][col]))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", r.grid.Cols) + "+\n")

	_, err = io.WriteString(w, sb.String())
	return err
}

// cell picks the character for one mesh cell from the two density values.
func (r *Renderer) cell(target, approx float64) rune {
	if band := r.band(approx); band >= 0 {
		return approxChars[band]
	}
	if band := r.band(target); band >= 0 {
		return targetChars[band]
	}
	return ' '
}

// band returns the index of the highest level at or below v, or -1 if v is
// below every level.
func (r *Renderer) band(v float64) int {
	band := -1
	for i, level := range r.levels {
		if v >= level {
			band = i
		}
	}
	return band
}
