// SPDX-License-Identifier: MIT
// Package matrix: in-place triangular solvers.
//
// Purpose:
//   - SolveUpper / SolveLower: strict forward/backward substitution against
//     the triangle (or its transpose) of a square view.
//   - SolveUpperTol / SolveLowerTol: generalized substitution for factors
//     with zeroed pivots (|diag| ≤ tol pins the unknown to zero).
//
// Notes:
//   - Only the referenced triangle is read; the other one may hold anything
//     (e.g. Householder vectors below the diagonal of a packed QR).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
)

const (
	opSolveUpper = "SolveUpper"
	opSolveLower = "SolveLower"
)

// SolveUpper solves op(R)·x = b in place (b ← x), R upper triangular.
// With trans == blas.Trans the system is Rᵀx = b (forward substitution).
//
// Errors:
//   - ErrSingular when a diagonal entry is zero or a quotient is non-finite.
//   - ErrNaNInf when b (or the partial sums) already carry NaN/Inf.
//   - panics (ErrDimensionMismatch) if R is not square or len(b) != rows(R).
//
// Complexity:
//   - Time O(n²), Space O(1).
func SolveUpper(r *Matrix, b *Vector, trans blas.Transpose) error {
	return triSolve(opSolveUpper, r, blas.Upper, trans, b, 0, false)
}

// SolveLower solves op(L)·x = b in place (b ← x), L lower triangular.
// With trans == blas.Trans the system is Lᵀx = b (backward substitution).
//
// Errors:
//   - Same as SolveUpper.
func SolveLower(l *Matrix, b *Vector, trans blas.Transpose) error {
	return triSolve(opSolveLower, l, blas.Lower, trans, b, 0, false)
}

// SolveUpperTol is the generalized form of SolveUpper: a diagonal entry with
// |R[i,i]| ≤ tol is treated as an exact zero and its unknown is set to 0.
// It is meant for rank-deficient factors whose dropped rows/columns are zero.
func SolveUpperTol(r *Matrix, b *Vector, trans blas.Transpose, tol float64) error {
	return triSolve(opSolveUpper, r, blas.Upper, trans, b, tol, true)
}

// SolveLowerTol is the generalized form of SolveLower (see SolveUpperTol).
func SolveLowerTol(l *Matrix, b *Vector, trans blas.Transpose, tol float64) error {
	return triSolve(opSolveLower, l, blas.Lower, trans, b, tol, true)
}

// triSolve runs substitution on the effective triangle op(t).
//
// Implementation:
//   - Stage 1: Conformance (square, len(b) == n).
//   - Stage 2: Resolve effective orientation: a transposed upper triangle is
//     lower and vice versa; use the zero-copy Transposed() view.
//   - Stage 3: Forward (lower) or backward (upper) sweep; each row's partial
//     sum is one Dot over the already-solved unknowns.
func triSolve(tag string, t *Matrix, uplo blas.Uplo, trans blas.Transpose, b *Vector, tol float64, generalized bool) error {
	n := t.r
	if t.c != n {
		panicMismatch(tag, "triangle %dx%d is not square", t.r, t.c)
	}
	if b.n != n {
		panicMismatch(tag, "triangle %dx%d, len(b)=%d", n, n, b.n)
	}
	eff := op(trans, t)
	lower := (uplo == blas.Lower) != (trans != blas.NoTrans)

	var i int
	if lower {
		for i = 0; i < n; i++ {
			if err := substitute(tag, eff, b, i, 0, i, tol, generalized); err != nil {
				return err
			}
		}
		return nil
	}
	for i = n - 1; i >= 0; i-- {
		if err := substitute(tag, eff, b, i, i+1, n-i-1, tol, generalized); err != nil {
			return err
		}
	}

	return nil
}

// substitute resolves unknown i given the solved block b[lo:lo+cnt].
func substitute(tag string, eff *Matrix, b *Vector, i, lo, cnt int, tol float64, generalized bool) error {
	d := eff.At(i, i)
	if generalized && math.Abs(d) <= tol {
		b.SetVec(i, 0)
		return nil
	}
	s := b.AtVec(i)
	if cnt > 0 {
		s -= Dot(eff.Row(i).Slice(lo, cnt), b.Slice(lo, cnt))
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return matrixErrorf(tag, fmt.Errorf("row %d: %w", i, ErrNaNInf))
	}
	if d == 0 {
		return matrixErrorf(tag, fmt.Errorf("zero pivot at %d: %w", i, ErrSingular))
	}
	x := s / d
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return matrixErrorf(tag, fmt.Errorf("non-finite quotient at %d: %w", i, ErrSingular))
	}
	b.SetVec(i, x)

	return nil
}
