package tensor

// Tensor is a backend-aware wrapper around RawTensor. Operations delegate to
// the backend, which lets the same model code run on the plain CPU backend or
// on the autodiff decorator without changes.
//
// Type parameter B must satisfy the Backend interface.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros(Shape{3, 4}, backend)
//	result := t.Add(t)
type Tensor[B Backend] struct {
	raw     *RawTensor
	backend B
}

// New creates a Tensor from a RawTensor and backend.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return &Tensor[B]{raw: raw, backend: b}
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[B Backend](data []float64, shape Shape, b B) (*Tensor[B], error) {
	raw, err := RawFromSlice(data, shape)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor[B]) Shape() Shape {
	return t.raw.Shape()
}

// NumElements returns the total number of elements.
func (t *Tensor[B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
// Used by backends and the autodiff tape for low-level access.
func (t *Tensor[B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[B]) Backend() B {
	return t.backend
}

// Data returns the flat data slice, aliasing the tensor's storage.
func (t *Tensor[B]) Data() []float64 {
	return t.raw.Data()
}

// Scalar returns the single element of a one-element tensor.
func (t *Tensor[B]) Scalar() float64 {
	return t.raw.Scalar()
}

// Add returns t + other element-wise.
func (t *Tensor[B]) Add(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub returns t - other element-wise.
func (t *Tensor[B]) Sub(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul returns t * other element-wise.
func (t *Tensor[B]) Mul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div returns t / other element-wise.
func (t *Tensor[B]) Div(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Div(t.raw, other.raw), t.backend)
}

// Scale returns alpha * t.
func (t *Tensor[B]) Scale(alpha float64) *Tensor[B] {
	return New(t.backend.Scale(t.raw, alpha), t.backend)
}

// AddScalar returns t + alpha element-wise.
func (t *Tensor[B]) AddScalar(alpha float64) *Tensor[B] {
	return New(t.backend.AddScalar(t.raw, alpha), t.backend)
}

// Log returns the element-wise natural logarithm.
func (t *Tensor[B]) Log() *Tensor[B] {
	return New(t.backend.Log(t.raw), t.backend)
}

// Sum reduces the tensor to a scalar sum.
func (t *Tensor[B]) Sum() *Tensor[B] {
	return New(t.backend.Sum(t.raw), t.backend)
}

// SumSquares reduces the tensor to the scalar sum of squared elements.
func (t *Tensor[B]) SumSquares() *Tensor[B] {
	return New(t.backend.SumSquares(t.raw), t.backend)
}

// MatMul returns the matrix product t @ other.
func (t *Tensor[B]) MatMul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Diag returns the diagonal of a square matrix as a vector.
func (t *Tensor[B]) Diag() *Tensor[B] {
	return New(t.backend.Diag(t.raw), t.backend)
}
