package tensor

import "fmt"

// RawTensor is the low-level tensor representation: a flat float64 buffer
// plus shape and row-major strides. It carries no backend and no gradient
// state; typed wrappers and the autodiff tape are layered on top.
//
// All values in this library are float64. The closed-form KL objective is
// numerically delicate (log-determinants of near-singular factors), so a
// single wide dtype is used throughout instead of a runtime dtype tag.
type RawTensor struct {
	data   []float64
	shape  Shape
	stride []int
}

// NewRaw creates a new zero-filled RawTensor with the given shape.
func NewRaw(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// MustRaw is NewRaw that panics on invalid shapes.
// Intended for internal call sites where the shape is known to be valid.
func MustRaw(shape Shape) *RawTensor {
	r, err := NewRaw(shape)
	if err != nil {
		panic(err)
	}
	return r
}

// RawFromSlice creates a RawTensor backed by a copy of data.
func RawFromSlice(data []float64, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape)
	if err != nil {
		return nil, err
	}
	copy(r.data, data)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Data returns the underlying flat buffer. The slice aliases the tensor's
// storage: writes are visible to every holder of this RawTensor.
func (r *RawTensor) Data() []float64 {
	return r.data
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return len(r.data)
}

// At returns the element at the given indices.
// The number of indices must match the tensor's rank.
func (r *RawTensor) At(indices ...int) float64 {
	return r.data[r.flatIndex(indices)]
}

// Set stores v at the given indices.
func (r *RawTensor) Set(v float64, indices ...int) {
	r.data[r.flatIndex(indices)] = v
}

// Clone returns a deep copy with its own buffer.
func (r *RawTensor) Clone() *RawTensor {
	out := MustRaw(r.shape)
	copy(out.data, r.data)
	return out
}

// Fill sets every element to v.
func (r *RawTensor) Fill(v float64) {
	for i := range r.data {
		r.data[i] = v
	}
}

// Scalar returns the single element of a one-element tensor.
func (r *RawTensor) Scalar() float64 {
	if !r.shape.IsScalar() {
		panic(fmt.Sprintf("tensor: Scalar called on shape %v", r.shape))
	}
	return r.data[0]
}

func (r *RawTensor) flatIndex(indices []int) int {
	if len(indices) != len(r.shape) {
		panic(fmt.Sprintf("tensor: got %d indices for rank-%d tensor", len(indices), len(r.shape)))
	}
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)", idx, i, r.shape[i]))
		}
		flat += idx * r.stride[i]
	}
	return flat
}
