package optim_test

import (
	"math"
	"testing"

	"github.com/klfit-ml/klfit/internal/autodiff"
	"github.com/klfit-ml/klfit/internal/backend/cpu"
	"github.com/klfit-ml/klfit/internal/nn"
	"github.com/klfit-ml/klfit/internal/optim"
	"github.com/klfit-ml/klfit/internal/tensor"
)

type testBackend = *autodiff.Backend[*cpu.CPUBackend]

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func newParam(t *testing.T, backend testBackend, name string, values []float64) *nn.Parameter[testBackend] {
	t.Helper()
	x, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return nn.NewParameter(name, x)
}

func gradMap(t *testing.T, param *nn.Parameter[testBackend], values []float64) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	grad, err := tensor.RawFromSlice(values, tensor.Shape{len(values)})
	if err != nil {
		t.Fatalf("RawFromSlice: %v", err)
	}
	return map[*tensor.RawTensor]*tensor.RawTensor{param.Tensor().Raw(): grad}
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{2.0})

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1})

	optimizer.Step(gradMap(t, param, []float64{1.0}))

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	if got := param.Tensor().Data()[0]; !floatEqual(got, 1.9, 1e-12) {
		t.Errorf("SGD update: got %v, want 1.9", got)
	}
}

// TestSGD_WithMomentum tests the velocity accumulation over two steps.
func TestSGD_WithMomentum(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0})

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// Step 1: v = 1.0, x = 1.0 - 0.1*1.0 = 0.9
	optimizer.Step(gradMap(t, param, []float64{1.0}))
	if got := param.Tensor().Data()[0]; !floatEqual(got, 0.9, 1e-12) {
		t.Errorf("after step 1: got %v, want 0.9", got)
	}

	// Step 2: v = 0.9*1.0 + 1.0 = 1.9, x = 0.9 - 0.1*1.9 = 0.71
	optimizer.Step(gradMap(t, param, []float64{1.0}))
	if got := param.Tensor().Data()[0]; !floatEqual(got, 0.71, 1e-12) {
		t.Errorf("after step 2: got %v, want 0.71", got)
	}
}

// TestSGD_SkipsParameterWithoutGradient verifies untouched parameters.
func TestSGD_SkipsParameterWithoutGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	pa := newParam(t, backend, "a", []float64{1.0})
	pb := newParam(t, backend, "b", []float64{5.0})

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{pa, pb},
		optim.SGDConfig{LR: 0.5})

	optimizer.Step(gradMap(t, pa, []float64{2.0}))

	if got := pa.Tensor().Data()[0]; !floatEqual(got, 0.0, 1e-12) {
		t.Errorf("a = %v, want 0.0", got)
	}
	if got := pb.Tensor().Data()[0]; got != 5.0 {
		t.Errorf("b = %v, want unchanged 5.0", got)
	}
}

// TestSGD_StateDictRoundTrip exports and restores momentum state.
func TestSGD_StateDictRoundTrip(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0, 2.0})

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	optimizer.Step(gradMap(t, param, []float64{1.0, -1.0}))

	state := optimizer.StateDict()
	if len(state) != 1 {
		t.Fatalf("StateDict has %d entries, want 1", len(state))
	}
	v := state["velocity.0"]
	if len(v) != 2 || v[0] != 1.0 || v[1] != -1.0 {
		t.Fatalf("velocity.0 = %v, want [1 -1]", v)
	}

	// A fresh optimizer restored from state continues the same trajectory.
	fresh := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	if err := fresh.LoadStateDict(state); err != nil {
		t.Fatalf("LoadStateDict: %v", err)
	}

	before := append([]float64(nil), param.Tensor().Data()...)
	fresh.Step(gradMap(t, param, []float64{1.0, -1.0}))
	// v = 0.9*1 + 1 = 1.9 per coordinate (sign-matched)
	want0 := before[0] - 0.1*1.9
	want1 := before[1] + 0.1*1.9
	got := param.Tensor().Data()
	if !floatEqual(got[0], want0, 1e-12) || !floatEqual(got[1], want1, 1e-12) {
		t.Errorf("restored step: got %v, want [%v %v]", got, want0, want1)
	}
}

func TestSGD_LoadStateDictLengthMismatch(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0, 2.0})

	optimizer := optim.NewSGD([]*nn.Parameter[testBackend]{param},
		optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	if err := optimizer.LoadStateDict(map[string][]float64{"velocity.0": {1}}); err == nil {
		t.Error("length mismatch accepted")
	}
}

// TestAdam_FirstStep checks the bias-corrected first update.
//
// On step 1: m_hat = g, v_hat = g², so the update is -lr * g/(|g| + eps),
// roughly -lr * sign(g).
func TestAdam_FirstStep(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{2.0, -1.0})

	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param},
		optim.AdamConfig{LR: 0.1})

	optimizer.Step(gradMap(t, param, []float64{0.5, -3.0}))

	eps := 1e-8
	want0 := 2.0 - 0.1*0.5/(math.Sqrt(0.25)+eps)
	want1 := -1.0 - 0.1*(-3.0)/(math.Sqrt(9.0)+eps)
	got := param.Tensor().Data()
	if !floatEqual(got[0], want0, 1e-10) {
		t.Errorf("x[0] = %v, want %v", got[0], want0)
	}
	if !floatEqual(got[1], want1, 1e-10) {
		t.Errorf("x[1] = %v, want %v", got[1], want1)
	}
}

// TestAdam_TwoSteps verifies moment accumulation against hand-computed values.
func TestAdam_TwoSteps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0})

	lr, beta1, beta2, eps := 0.1, 0.9, 0.999, 1e-8
	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param},
		optim.AdamConfig{LR: lr})

	g1, g2 := 1.0, 0.5
	optimizer.Step(gradMap(t, param, []float64{g1}))
	optimizer.Step(gradMap(t, param, []float64{g2}))

	// Replay the update rule directly.
	m := (1 - beta1) * g1
	v := (1 - beta2) * g1 * g1
	x := 1.0 - lr*(m/(1-beta1))/(math.Sqrt(v/(1-beta2))+eps)

	m = beta1*m + (1-beta1)*g2
	v = beta2*v + (1-beta2)*g2*g2
	mHat := m / (1 - math.Pow(beta1, 2))
	vHat := v / (1 - math.Pow(beta2, 2))
	x -= lr * mHat / (math.Sqrt(vHat) + eps)

	if got := param.Tensor().Data()[0]; !floatEqual(got, x, 1e-12) {
		t.Errorf("after two steps: got %v, want %v", got, x)
	}
	if optimizer.GetTimestep() != 2 {
		t.Errorf("timestep = %d, want 2", optimizer.GetTimestep())
	}
}

// TestAdam_Defaults checks the documented default hyperparameters.
func TestAdam_Defaults(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{0.0})

	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param}, optim.AdamConfig{})
	if lr := optimizer.GetLR(); lr != 0.001 {
		t.Errorf("default LR = %v, want 0.001", lr)
	}

	optimizer.SetLR(0.05)
	if lr := optimizer.GetLR(); lr != 0.05 {
		t.Errorf("SetLR: got %v, want 0.05", lr)
	}
}

// TestAdam_MinimizesQuadratic drives a convex loss toward its minimum.
func TestAdam_MinimizesQuadratic(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	param := newParam(t, backend, "x", []float64{5.0, -4.0})

	optimizer := optim.NewAdam([]*nn.Parameter[testBackend]{param},
		optim.AdamConfig{LR: 0.1})

	for step := 0; step < 500; step++ {
		tape.Clear()
		tape.StartRecording()
		loss := tensor.New(backend.SumSquares(param.Tensor().Raw()), backend)
		tape.StopRecording()

		grads := autodiff.Backward(loss, backend)
		optimizer.Step(grads)
		optimizer.ZeroGrad()
	}

	for i, v := range param.Tensor().Data() {
		if math.Abs(v) > 1e-3 {
			t.Errorf("x[%d] = %v, want ~0", i, v)
		}
	}
}

// Both optimizers satisfy the Optimizer interface.
func TestOptimizerInterface(t *testing.T) {
	backend := autodiff.New(cpu.New())
	param := newParam(t, backend, "x", []float64{1.0})

	var _ optim.Optimizer = optim.NewSGD([]*nn.Parameter[testBackend]{param}, optim.SGDConfig{})
	var _ optim.Optimizer = optim.NewAdam([]*nn.Parameter[testBackend]{param}, optim.AdamConfig{})
}
