// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep factorizations and solvers minimal by delegating nil/shape/finite/symmetry checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the strict upper triangle only.
//
// Note:
//  - Unlike kernels, validators never panic: they run on user input at API boundaries.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateVecNotNil ensures the vector reference is non-nil.
func ValidateVecNotNil(v *Vector) error {
	if v == nil {
		return validatorErrorf("ValidateVecNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrNonSquare if not square.
// Complexity: O(1).
func ValidateSquare(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.r, m.c, ErrNonSquare))
	}

	return nil
}

// ValidateVecLen checks that v is non-nil and has exactly n elements.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateVecLen(v *Vector, n int) error {
	if v == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if v.n != n {
		return validatorErrorf("ValidateVecLen", fmt.Errorf("len %d, want %d: %w", v.n, n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateFinite checks that every element of m is finite.
//
// Errors: ErrNilMatrix, ErrNaNInf (the first offending position is reported).
// Complexity: O(r*c).
func ValidateFinite(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	var i, j int
	var v float64
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			v = m.data[m.off+i*m.rs+j*m.cs]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d)=%v: %w", i, j, v, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateVecFinite checks that every element of v is finite.
func ValidateVecFinite(v *Vector) error {
	if v == nil {
		return validatorErrorf("ValidateVecFinite", ErrNilMatrix)
	}
	var i, p int
	for i, p = 0, v.off; i < v.n; i, p = i+1, p+v.inc {
		if math.IsNaN(v.data[p]) || math.IsInf(v.data[p], 0) {
			return validatorErrorf("ValidateVecFinite", fmt.Errorf("[%d]=%v: %w", i, v.data[p], ErrNaNInf))
		}
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] − A[j,i]| ≤ tol·max(1, |A[i,j]|, |A[j,i]|)
// for every off-diagonal pair.
//
// Implementation:
//   - Stage 1: nil and square guards; tol must be finite (sign is ignored).
//   - Stage 2: scan the strict upper triangle once, fail on the first violation.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (bad tol), ErrAsymmetry.
//
// Complexity:
//   - Time O(n²), Space O(1).
func ValidateSymmetric(m *Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.r
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij = m.data[m.off+i*m.rs+j*m.cs]
			aji = m.data[m.off+j*m.rs+i*m.cs]
			if math.Abs(aij-aji) > tol*math.Max(1, math.Max(math.Abs(aij), math.Abs(aji))) {
				return validatorErrorf("ValidateSymmetric",
					fmt.Errorf("(%d,%d)=%v vs (%d,%d)=%v: %w", i, j, aij, j, i, aji, ErrAsymmetry))
			}
		}
	}

	return nil
}
