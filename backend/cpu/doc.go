// Copyright 2025 The KLFit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - SIMD-accelerated element-wise kernels
//   - BLAS-backed matrix products and triangular solves
//
// # Basic Usage
//
//	import (
//	    "github.com/klfit-ml/klfit/backend/cpu"
//	    "github.com/klfit-ml/klfit/tensor"
//	    "github.com/klfit-ml/klfit/nn"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones(tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// # Thread Safety
//
// The CPU backend is stateless and safe for concurrent use. Each tensor
// operation is isolated and does not share mutable state.
package cpu
