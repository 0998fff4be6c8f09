// Package nn implements trainable probabilistic models.
//
// This package provides:
//   - Module interface: base interface for trainable components
//   - Parameter: trainable parameters with gradient tracking
//   - ConstrainedNormal: a multivariate normal whose full covariance is
//     parameterized through an unconstrained vector, so any gradient step
//     keeps it valid
//
// Models do not mutate constrained state; they are pure functions of their
// current parameter values, re-evaluated on every training step.
package nn

import (
	"github.com/klfit-ml/klfit/internal/tensor"
)

// Module is the base interface for all trainable components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Parameters returns all trainable parameters of this module.
	//
	// Optimizers consume this to apply gradient updates. Returns an empty
	// slice for modules without trainable parameters.
	Parameters() []*Parameter[B]
}
