// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides float64 tensor operations for the KLFit library.
//
// # Overview
//
// Tensors are the fundamental data structure in KLFit. This package provides:
//   - Generic backend-parameterized tensors (Tensor[B])
//   - Raw dense storage with row-major strides (RawTensor)
//   - Device abstraction via the Backend interface
//
// # Basic Usage
//
//	import (
//	    "github.com/klfit-ml/klfit/tensor"
//	    "github.com/klfit-ml/klfit/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones(tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    s := z.Sum()
//	}
//
// # Backends
//
// All computation is delegated to a Backend implementation. The CPU backend
// (backend/cpu) uses SIMD element-wise kernels and BLAS triangular solves.
// The autodiff package wraps any Backend to record operations for
// backpropagation without changing results.
package tensor
