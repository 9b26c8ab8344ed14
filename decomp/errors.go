// SPDX-License-Identifier: MIT
// Package decomp: sentinel error set.
// Input-validation failures reuse the matrix sentinels (ErrNilMatrix,
// ErrNonSquare, ErrAsymmetry, ErrNaNInf) so callers match one taxonomy;
// this file adds only the factorization-specific conditions.

package decomp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPositiveDefinite is returned by a strict Cholesky when a pivot
	// falls at or below the positivity guard.
	ErrNotPositiveDefinite = errors.New("decomp: matrix is not positive definite")

	// ErrDegenerateShape is returned for inputs with zero rows or columns, or
	// for solves that need more rows than the factor has.
	ErrDegenerateShape = errors.New("decomp: degenerate shape")
)

// Operation name constants for unified error wrapping.
const (
	opQR           = "QR"
	opLeastSquares = "QR.LeastSquares"
	opSolveR       = "QR.SolveR"
	opCholesky     = "Cholesky"
	opCholSolve    = "Cholesky.SolveVec"
	opCholInverse  = "Cholesky.Inverse"
)

// decompErrorf wraps err with an operation tag, preserving it for errors.Is.
func decompErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
