// Package fit runs the gradient-descent loop that trains a constrained
// normal model toward a fixed target distribution by minimizing KL[q‖p].
//
// The loop is strictly sequential: each iteration evaluates the KL loss and
// its gradients on a fresh tape, applies one synchronous Adam update, and
// optionally reports to a logger and an observer. There is exactly one
// writer of the model's parameters and no concurrency.
package fit

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/klfit-ml/klfit/internal/autodiff"
	"github.com/klfit-ml/klfit/internal/distribution"
	"github.com/klfit-ml/klfit/internal/nn"
	"github.com/klfit-ml/klfit/internal/optim"
)

// Observer receives a snapshot of training progress. It is purely
// observational: it runs every ReportEvery steps and has no effect on the
// training computation. approx may be nil if the current parameters cannot
// be snapshotted (diverged values).
type Observer func(step int, kl float64, approx *distribution.MultivariateNormal)

// Config holds training-loop configuration. Zero-valued fields fall back to
// the defaults documented per field.
type Config struct {
	Steps       int          // Number of gradient steps (default: 1000)
	LR          float64      // Adam learning rate (default: 0.01)
	ReportEvery int          // Logging/observer cadence in steps (default: 10)
	Logger      *slog.Logger // Structured progress logging (default: slog.Default())
	Observer    Observer     // Optional visualization sink
}

func (c Config) withDefaults() Config {
	if c.Steps == 0 {
		c.Steps = 1000
	}
	if c.LR == 0 {
		c.LR = 0.01
	}
	if c.ReportEvery == 0 {
		c.ReportEvery = 10
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Result summarizes a completed (or halted) training run.
type Result struct {
	// FinalKL is KL[q‖p] evaluated after the last parameter update.
	// NaN when the run diverged.
	FinalKL float64

	// History holds the loss evaluated at the start of every completed
	// step, in order.
	History []float64

	// Diverged reports that the loss became NaN or infinite and the loop
	// halted early. The design surfaces divergence instead of attempting
	// recovery.
	Diverged bool

	// Steps is the number of parameter updates actually applied.
	Steps int
}

// Fitter drives the training loop on an autodiff-capable backend.
type Fitter[B autodiff.BackwardCapable] struct {
	backend B
	config  Config
}

// New creates a Fitter with the given backend and configuration.
func New[B autodiff.BackwardCapable](backend B, config Config) *Fitter[B] {
	return &Fitter[B]{backend: backend, config: config.withDefaults()}
}

// Fit minimizes KL[model‖target] with Adam for the configured number of
// steps, mutating the model's parameters in place.
//
// The loop either completes all steps or halts at the first non-finite
// loss; in the latter case Result.Diverged is true and FinalKL is NaN.
func (f *Fitter[B]) Fit(model *nn.ConstrainedNormal[B], target *distribution.MultivariateNormal) (*Result, error) {
	if model.Dim() != target.Dim() {
		return nil, fmt.Errorf("model has dimension %d, target has %d: %w",
			model.Dim(), target.Dim(), distribution.ErrDimensionMismatch)
	}

	cfg := f.config
	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.LR})
	tape := f.backend.Tape()
	defer tape.StopRecording()

	result := &Result{History: make([]float64, 0, cfg.Steps)}
	for step := 1; step <= cfg.Steps; step++ {
		tape.Clear()
		tape.StartRecording()

		loss, err := model.KLTo(target)
		if err != nil {
			return nil, err
		}
		kl := loss.Scalar()
		result.History = append(result.History, kl)

		if math.IsNaN(kl) || math.IsInf(kl, 0) {
			cfg.Logger.Warn("loss diverged, halting", "step", step, "kl", kl)
			result.Diverged = true
			result.FinalKL = math.NaN()
			return result, nil
		}

		grads := autodiff.Backward(loss, f.backend)
		tape.StopRecording()
		optimizer.Step(grads)
		optimizer.ZeroGrad()
		result.Steps = step

		if step%cfg.ReportEvery == 0 || step == cfg.Steps {
			f.report(step, kl, model)
		}
	}

	result.FinalKL = finalKL(model, target)
	return result, nil
}

// report logs progress and feeds the observer with a parameter snapshot.
func (f *Fitter[B]) report(step int, kl float64, model *nn.ConstrainedNormal[B]) {
	cfg := f.config
	cfg.Logger.Info("fit step", "step", step, "kl", kl)
	if cfg.Observer == nil {
		return
	}
	approx, err := model.Distribution()
	if err != nil {
		cfg.Logger.Warn("snapshot failed", "step", step, "error", err)
		approx = nil
	}
	cfg.Observer(step, kl, approx)
}

// finalKL evaluates the closed-form KL after the last update, outside the
// tape. Returns NaN if the parameters cannot form a valid distribution.
func finalKL[B autodiff.BackwardCapable](model *nn.ConstrainedNormal[B], target *distribution.MultivariateNormal) float64 {
	approx, err := model.Distribution()
	if err != nil {
		return math.NaN()
	}
	kl, err := distribution.KL(approx, target)
	if err != nil {
		return math.NaN()
	}
	return kl
}
