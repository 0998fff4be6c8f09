package distribution

import (
	"fmt"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// KL computes the Kullback-Leibler divergence KL[q‖p] between two
// multivariate normals of the same dimension, in closed form:
//
//	KL[q‖p] = 0.5 * ( tr(Σp⁻¹Σq) + (μp-μq)ᵀ Σp⁻¹ (μp-μq) - d
//	                  + log det Σp - log det Σq )
//
// via the triangular scale factors:
//
//	tr(Σp⁻¹Σq)          = ‖Lp⁻¹ Lq‖²_F
//	(μp-μq)ᵀ Σp⁻¹ (μp-μq) = ‖Lp⁻¹ (μp-μq)‖²
//	log det Σ            = 2 Σ log diag(L)
//
// so no covariance is ever inverted explicitly. The result is non-negative
// and zero exactly when q and p coincide (up to floating-point error).
func KL(q, p *MultivariateNormal) (float64, error) {
	if q.dim != p.dim {
		return 0, fmt.Errorf("q has dimension %d, p has %d: %w", q.dim, p.dim, ErrDimensionMismatch)
	}
	d := q.dim
	lp := p.scale.RawTriangular()

	// ‖Lp⁻¹ (μp - μq)‖²
	diff := make([]float64, d)
	vek.Sub_Into(diff, p.mean, q.mean)
	blas64.Trsv(blas.NoTrans, lp, blas64.Vector{N: d, Inc: 1, Data: diff})
	maha := vek.Dot(diff, diff)

	// ‖Lp⁻¹ Lq‖²_F via a triangular solve with matrix right-hand side.
	m := denseFromTri(q.scale)
	blas64.Trsm(blas.Left, blas.NoTrans, 1, lp,
		blas64.General{Rows: d, Cols: d, Stride: d, Data: m})
	trace := vek.Dot(m, m)

	return 0.5*(trace+maha-float64(d)) + p.logDetScale - q.logDetScale, nil
}
