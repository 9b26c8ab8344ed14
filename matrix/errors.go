// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Recoverable numeric conditions (singular triangle, non-finite
// input) are returned and matched via errors.Is. Shape violations on kernels
// are programmer errors and panic with a value wrapping ErrDimensionMismatch.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Call sites wrap with an operation tag through
// matrixErrorf so the sentinel stays reachable by errors.Is.

var (
	// ErrBadShape is returned when a requested shape or view window is invalid
	// (negative sizes, windows leaving the backing buffer).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row, column or element) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Dot over vectors of different length or Gemm with a.Cols != b.Rows.
	// Kernels panic with an error wrapping it; it is never returned as a value.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the requested tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Matrix or *Vector was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned by triangular solvers when a diagonal entry is
	// zero or the substitution produces a non-finite value.
	ErrSingular = errors.New("matrix: singular matrix")
)

// panicMismatch aborts a kernel whose operands do not conform.
// The panic value is an error, so recover sites can still use errors.Is.
func panicMismatch(tag string, format string, args ...any) {
	panic(fmt.Errorf("%s: %s: %w", tag, fmt.Sprintf(format, args...), ErrDimensionMismatch))
}

// panicRange aborts an element accessor called with an invalid index.
func panicRange(tag string, format string, args ...any) {
	panic(fmt.Errorf("%s: %s: %w", tag, fmt.Sprintf(format, args...), ErrOutOfRange))
}
