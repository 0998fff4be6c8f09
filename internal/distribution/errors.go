package distribution

import "errors"

// Validation and numerical errors for distribution construction and KL
// evaluation. Callers can match these with errors.Is.
var (
	ErrInvalidDimension    = errors.New("dimension must be positive")
	ErrDimensionMismatch   = errors.New("dimension mismatch")
	ErrNonPositiveDiagonal = errors.New("scale factor diagonal is not strictly positive")
	ErrNotFinite           = errors.New("parameter is NaN or infinite")
	ErrNotPositiveDefinite = errors.New("covariance matrix is not positive-definite")
)
