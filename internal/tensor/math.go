package tensor

import "math"

// DiagFloor is the additive floor applied to softplus-transformed scale
// diagonals. It keeps the diagonal bounded away from zero even as the raw
// parameter goes to -inf, so L Lᵀ stays positive-definite.
const DiagFloor = 1e-5

// TrilSize returns the number of free entries in a dim×dim lower-triangular
// matrix, dim*(dim+1)/2.
func TrilSize(dim int) int {
	return dim * (dim + 1) / 2
}

// Softplus computes log(1 + exp(x)).
//
// The naive form overflows for large x, so the identity
// softplus(x) = max(x, 0) + log1p(exp(-|x|)) is used instead. The result is
// strictly positive and strictly increasing in x.
func Softplus(x float64) float64 {
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}

// InvSoftplus is the inverse of Softplus on (0, inf):
// InvSoftplus(Softplus(x)) == x up to floating-point error.
func InvSoftplus(y float64) float64 {
	// log(exp(y) - 1) rewritten to stay finite for large y.
	if y > 30 {
		return y // exp(-y) underflows; softplus is the identity to 1 ulp here
	}
	return y + math.Log(-math.Expm1(-y))
}

// Sigmoid computes 1 / (1 + exp(-x)), the derivative of Softplus.
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}
