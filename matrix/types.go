// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by views, kernels and solvers.
// This file intentionally contains ONLY the type declarations (views and
// accumulation modes). Constructors live in impl_dense.go, kernels in
// impl_blas.go / impl_linear_algebra.go, errors in errors.go.
package matrix

// Vector is a strided view over a shared float64 buffer.
// Element i lives at data[off+i*inc]. A Vector never owns its buffer:
// several views (a column, a row, a diagonal) may alias the same storage.
//
// Complexity notes: element access is O(1); Clone is O(n).
type Vector struct {
	data []float64 // shared backing buffer
	off  int       // offset of element 0
	n    int       // logical length (>= 0)
	inc  int       // distance between consecutive elements (may be any non-zero value)
}

// Matrix is a strided two-dimensional view over a shared float64 buffer.
// Element (i,j) lives at data[off+i*rs+j*cs]. Freshly allocated matrices are
// column-major (rs == 1, cs == rows); sub-matrices, rows, columns and
// transposes are zero-copy views with adjusted offsets and strides.
//
// Complexity notes: element access is O(1); Clone is O(rows*cols).
type Matrix struct {
	data []float64 // shared backing buffer
	off  int       // offset of element (0,0)
	r, c int       // logical shape (>= 0)
	rs   int       // row stride: distance between (i,j) and (i+1,j)
	cs   int       // column stride: distance between (i,j) and (i,j+1)
}

// AccMode selects how sums are accumulated by the mode-aware kernels.
type AccMode int

const (
	// Robust accumulates with Neumaier compensation (error O(ε) independent of length).
	Robust AccMode = iota

	// Fast accumulates with plain floating-point addition.
	Fast
)

// String returns the mode name.
func (m AccMode) String() string {
	switch m {
	case Robust:
		return "robust"
	case Fast:
		return "fast"
	default:
		return "unknown"
	}
}
