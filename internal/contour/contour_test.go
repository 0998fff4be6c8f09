package contour_test

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/klfit-ml/klfit/internal/contour"
	"github.com/klfit-ml/klfit/internal/distribution"
)

func TestDensitiesShapeAndOrientation(t *testing.T) {
	d, err := distribution.Standard(2)
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}

	grid := contour.Grid{XMin: -2, XMax: 2, YMin: -2, YMax: 2, Cols: 5, Rows: 5}
	densities, err := grid.Densities(d)
	if err != nil {
		t.Fatalf("Densities: %v", err)
	}

	if len(densities) != 5 || len(densities[0]) != 5 {
		t.Fatalf("got %dx%d mesh, want 5x5", len(densities), len(densities[0]))
	}

	// Center cell is the mode for a standard normal centered at the origin.
	peak := densities[2][2]
	for r := range densities {
		for c := range densities[r] {
			if densities[r][c] > peak {
				t.Errorf("cell (%d,%d) = %v exceeds center %v", r, c, densities[r][c], peak)
			}
		}
	}
	if math.Abs(peak-1/(2*math.Pi)) > 1e-12 {
		t.Errorf("center density = %v, want %v", peak, 1/(2*math.Pi))
	}

	// Row 0 is YMax: a distribution centered high up must put its peak there.
	l := mat.NewTriDense(2, mat.Lower, nil)
	l.SetTri(0, 0, 1)
	l.SetTri(1, 1, 1)
	high, err := distribution.NewMultivariateNormal([]float64{0, 2}, l)
	if err != nil {
		t.Fatalf("shifted distribution: %v", err)
	}
	shifted, err := grid.Densities(high)
	if err != nil {
		t.Fatalf("Densities: %v", err)
	}
	if shifted[0][2] <= shifted[4][2] {
		t.Errorf("top row density %v not above bottom row %v", shifted[0][2], shifted[4][2])
	}
}

func TestDensitiesRejectsNon2D(t *testing.T) {
	d, _ := distribution.Standard(3)
	_, err := contour.DefaultGrid().Densities(d)
	if err == nil {
		t.Error("3D distribution accepted")
	}
}

func TestRenderFrameLayout(t *testing.T) {
	target, _ := distribution.Standard(2)
	approx, _ := distribution.Standard(2)

	grid := contour.Grid{XMin: -3, XMax: 3, YMin: -3, YMax: 3, Cols: 20, Rows: 10}
	r := contour.NewRenderer(grid)

	var sb strings.Builder
	if err := r.Render(&sb, 40, 0.125, target, approx); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "iteration 40") {
		t.Errorf("header missing iteration: %q", firstLine(out))
	}
	if !strings.Contains(out, "0.125") {
		t.Errorf("header missing KL value: %q", firstLine(out))
	}

	// Header + top border + rows + bottom border.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+1+10+1 {
		t.Fatalf("got %d lines, want %d", len(lines), 13)
	}
	for _, line := range lines[1:] {
		if len([]rune(line)) != 22 {
			t.Errorf("line width %d, want 22: %q", len([]rune(line)), line)
		}
	}

	// Identical distributions: the approximant overdraws every cell the
	// target would mark, so only approximant characters appear.
	body := strings.Join(lines[2:12], "\n")
	if strings.ContainsAny(body, ".:%=") {
		t.Error("target marks visible under identical approximant")
	}
	if !strings.ContainsAny(body, "+oO8@") {
		t.Error("no approximant marks rendered")
	}
}

func TestRenderRejectsNon2D(t *testing.T) {
	target, _ := distribution.Standard(3)
	approx, _ := distribution.Standard(3)
	r := contour.NewRenderer(contour.DefaultGrid())
	if err := r.Render(&strings.Builder{}, 0, 0, target, approx); err == nil {
		t.Error("3D distributions accepted")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
