package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros(Shape{3, 4}, backend)
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	raw, err := NewRaw(shape)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return New(raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return Full(shape, 1.0, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, 3.14, backend)
func Full[B Backend](shape Shape, value float64, b B) *Tensor[B] {
	t := Zeros(shape, b)
	t.raw.Fill(value)
	return t
}

// Eye creates an n×n identity matrix.
func Eye[B Backend](n int, b B) *Tensor[B] {
	t := Zeros(Shape{n, n}, b)
	for i := 0; i < n; i++ {
		t.raw.Set(1.0, i, i)
	}
	return t
}

// Randn creates a tensor with draws from the standard normal distribution
// using the package-global source. For reproducible draws use RandnSource
// with an explicitly seeded *rand.Rand.
func Randn[B Backend](shape Shape, b B) *Tensor[B] {
	t := Zeros(shape, b)
	fillNormal(t.raw.Data(), rand.Float64)
	return t
}

// RandnSource creates a tensor with draws from the standard normal
// distribution taken from src. Given the same seed, identical draws are
// produced.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	t := tensor.RandnSource(Shape{2}, rng, backend)
func RandnSource[B Backend](shape Shape, src *rand.Rand, b B) *Tensor[B] {
	t := Zeros(shape, b)
	fillNormal(t.raw.Data(), src.Float64)
	return t
}

// fillNormal fills data with N(0, 1) draws via the Box-Muller transform.
func fillNormal(data []float64, uniform func() float64) {
	for i := 0; i < len(data); i += 2 {
		u1 := uniform() //nolint:gosec // G404: statistical sampling, not security
		u2 := uniform() //nolint:gosec // G404: statistical sampling, not security
		r := math.Sqrt(-2.0 * math.Log(1-u1))
		data[i] = r * math.Cos(2.0*math.Pi*u2)
		if i+1 < len(data) {
			data[i+1] = r * math.Sin(2.0*math.Pi*u2)
		}
	}
}
