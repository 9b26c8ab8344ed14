// SPDX-License-Identifier: MIT
// Package matrix: BLAS level-2/3 kernels over strided views.
//
// Purpose:
//   - Gemv, Gemm, Ger, Syrk and the compensated cross-product builders
//     (SyrkMode, CrossProduct, CrossProductVec) used by the normal-equation path.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Transposition and triangle selection reuse gonum's blas enums so that
//     call sites read the same as gonum/blas64 code.
//   - Transposed operands are handled through zero-copy Transposed() views;
//     no kernel allocates a transposed copy.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opGemv   = "Gemv"
	opGemm   = "Gemm"
	opGer    = "Ger"
	opSyrk   = "Syrk"
	opCross  = "CrossProduct"
	opMatVec = "MatVec"
	opMul    = "Mul"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// op returns a or its transposed view according to t.
func op(t blas.Transpose, a *Matrix) *Matrix {
	if t == blas.NoTrans {
		return a
	}

	return a.Transposed()
}

// Gemv computes y ← α·op(A)·x + β·y, op(A) = A or Aᵀ.
//
// Implementation:
//   - Stage 1: Conformance check on op(A) (m×n), x (n), y (m).
//   - Stage 2: β pass: β == 0 overwrites y with zeros (NaN in y is not
//     propagated), β != 1 scales y.
//   - Stage 3: NoTrans walks columns with Axpy; Trans takes one Dot per
//     column of A. Both keep unit-stride access on column-major storage.
//
// Behavior highlights:
//   - Any strided sub-view is accepted for A, x and y.
//
// Errors:
//   - panics (ErrDimensionMismatch) on non-conforming operands.
//
// Complexity:
//   - Time O(m*n), Space O(1).
func Gemv(trans blas.Transpose, alpha float64, a *Matrix, x *Vector, beta float64, y *Vector) {
	opA := op(trans, a)
	if opA.c != x.n || opA.r != y.n {
		panicMismatch(opGemv, "op(A) %dx%d, len(x)=%d, len(y)=%d", opA.r, opA.c, x.n, y.n)
	}
	switch beta {
	case 0:
		y.Fill(0)
	case 1:
	default:
		Scal(beta, y)
	}
	if alpha == 0 {
		return
	}
	var j int
	if trans == blas.NoTrans {
		for j = 0; j < a.c; j++ {
			Axpy(alpha*x.AtVec(j), a.Col(j), y)
		}
		return
	}
	for j = 0; j < a.c; j++ {
		y.SetVec(j, y.AtVec(j)+alpha*Dot(a.Col(j), x))
	}
}

// Gemm computes C ← α·op(A)·op(B) + β·C.
//
// Implementation:
//   - Stage 1: Conformance: op(A) m×k, op(B) k×n, C m×n.
//   - Stage 2: β pass on C (β == 0 overwrites).
//   - Stage 3: For each column j of C, accumulate α·op(B)[p,j]·op(A)[:,p] via Axpy.
//
// Errors:
//   - panics (ErrDimensionMismatch) on non-conforming operands.
//
// Determinism:
//   - Fixed j→p visitation order.
//
// Complexity:
//   - Time O(m*n*k), Space O(1).
func Gemm(transA, transB blas.Transpose, alpha float64, a, b *Matrix, beta float64, c *Matrix) {
	opA, opB := op(transA, a), op(transB, b)
	if opA.c != opB.r || opA.r != c.r || opB.c != c.c {
		panicMismatch(opGemm, "op(A) %dx%d, op(B) %dx%d, C %dx%d", opA.r, opA.c, opB.r, opB.c, c.r, c.c)
	}
	var j, p int
	for j = 0; j < c.c; j++ {
		cj := c.Col(j)
		switch beta {
		case 0:
			cj.Fill(0)
		case 1:
		default:
			Scal(beta, cj)
		}
		if alpha == 0 {
			continue
		}
		for p = 0; p < opA.c; p++ {
			Axpy(alpha*opB.At(p, j), opA.Col(p), cj)
		}
	}
}

// Ger performs the rank-1 update A ← A + α·x·yᵀ.
// Householder reflectors are applied to trailing blocks through this kernel.
//
// Errors:
//   - panics (ErrDimensionMismatch) unless len(x) == rows(A) and len(y) == cols(A).
func Ger(alpha float64, x, y *Vector, a *Matrix) {
	if x.n != a.r || y.n != a.c {
		panicMismatch(opGer, "A %dx%d, len(x)=%d, len(y)=%d", a.r, a.c, x.n, y.n)
	}
	if alpha == 0 {
		return
	}
	var j int
	for j = 0; j < a.c; j++ {
		Axpy(alpha*y.AtVec(j), x, a.Col(j))
	}
}

// Syrk performs the symmetric rank-1 update S ← S + α·x·xᵀ on one triangle.
// The other triangle of S is left untouched.
//
// Errors:
//   - panics (ErrDimensionMismatch) unless S is k×k with k == len(x).
func Syrk(uplo blas.Uplo, alpha float64, x *Vector, s *Matrix) {
	k := x.n
	if s.r != k || s.c != k {
		panicMismatch(opSyrk, "S %dx%d, len(x)=%d", s.r, s.c, k)
	}
	if alpha == 0 {
		return
	}
	var j int
	for j = 0; j < k; j++ {
		if uplo == blas.Upper {
			Axpy(alpha*x.AtVec(j), x.Slice(0, j+1), s.Col(j).Slice(0, j+1))
		} else {
			Axpy(alpha*x.AtVec(j), x.Slice(j, k-j), s.Col(j).Slice(j, k-j))
		}
	}
}

// SyrkMode is the accumulating form of Syrk: every product α·xᵢ·xⱼ (i ≥ j)
// is added to its own accumulator cell, so repeated updates are summed with
// the accumulator's mode rather than with plain rounding.
//
// Errors:
//   - panics (ErrDimensionMismatch) unless acc.Size() == len(x).
func SyrkMode(alpha float64, x *Vector, acc *AccumulatorMatrix) {
	k := x.n
	if acc.k != k {
		panicMismatch(opSyrk, "accumulator %dx%d, len(x)=%d", acc.k, acc.k, k)
	}
	var i, j int
	var xj float64
	for j = 0; j < k; j++ {
		xj = alpha * x.AtVec(j)
		for i = j; i < k; i++ {
			acc.cell[acc.index(i, j)].Add(xj * x.AtVec(i))
		}
	}
}

// CrossProduct returns XᵀX (m×m, both triangles filled).
//
// Implementation:
//   - One SyrkMode update per row of X into an AccumulatorMatrix, then
//     materialize. In Robust mode each entry is a compensated sum over rows.
//
// Complexity:
//   - Time O(n*m²), Space O(m²).
func CrossProduct(mode AccMode, x *Matrix) *Matrix {
	acc := NewAccumulatorMatrix(x.c, mode)
	var i int
	for i = 0; i < x.r; i++ {
		SyrkMode(1, x.Row(i), acc)
	}

	return acc.Matrix()
}

// CrossProductVec returns Xᵀy accumulated in the given mode.
//
// Errors:
//   - panics (ErrDimensionMismatch) if len(y) != rows(X).
func CrossProductVec(mode AccMode, x *Matrix, y *Vector) *Vector {
	if y.n != x.r {
		panicMismatch(opCross, "X %dx%d, len(y)=%d", x.r, x.c, y.n)
	}
	out := &Vector{data: make([]float64, x.c), n: x.c, inc: 1}
	var j int
	for j = 0; j < x.c; j++ {
		out.data[j] = DotMode(mode, x.Col(j), y)
	}

	return out
}
