package autodiff_test

import (
	"testing"

	"github.com/klfit-ml/klfit/internal/autodiff"
	"github.com/klfit-ml/klfit/internal/backend/cpu"
	"github.com/klfit-ml/klfit/internal/tensor"
)

func TestTapeRecordsOnlyWhileRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	x, _ := tensor.RawFromSlice([]float64{1, 2}, tensor.Shape{2})
	y, _ := tensor.RawFromSlice([]float64{3, 4}, tensor.Shape{2})

	backend.Add(x, y)
	if tape.NumOps() != 0 {
		t.Errorf("op recorded while tape stopped: %d ops", tape.NumOps())
	}

	tape.StartRecording()
	backend.Add(x, y)
	backend.Mul(x, y)
	tape.StopRecording()

	if tape.NumOps() != 2 {
		t.Errorf("NumOps = %d, want 2", tape.NumOps())
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("NumOps after Clear = %d, want 0", tape.NumOps())
	}
}

func TestTapeUnrecordedHelpersStayOffTape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	x, _ := tensor.RawFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	tape.StartRecording()
	backend.Neg(x)
	backend.Transpose(x)
	backend.TriSolveTrans(x, x.Clone())
	tape.StopRecording()

	if tape.NumOps() != 0 {
		t.Errorf("backward-only helpers were taped: %d ops", tape.NumOps())
	}
}

func TestBackwardOnEmptyTape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	seed := tensor.MustRaw(tensor.Shape{1})
	seed.Fill(1)

	grads := backend.Tape().Backward(seed, backend)
	if len(grads) != 0 {
		t.Errorf("empty tape produced %d gradients", len(grads))
	}
}

func TestBackwardDoesNotTapeItself(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	x, _ := tensor.RawFromSlice([]float64{1, -2, 3}, tensor.Shape{3})

	tape.StartRecording()
	loss := backend.SumSquares(x)
	n := tape.NumOps()

	// Backward while recording is still on: gradient computations must not
	// append to the tape, and the recording flag must be restored.
	autodiff.Backward(tensor.New(loss, backend), backend)

	if tape.NumOps() != n {
		t.Errorf("backward pass recorded operations: %d -> %d", n, tape.NumOps())
	}
	if !tape.IsRecording() {
		t.Error("recording flag not restored after backward")
	}
	tape.StopRecording()
}

func TestBackendNameReflectsDecorator(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Name() != "Autodiff(CPU)" {
		t.Errorf("Name = %q", backend.Name())
	}
}
