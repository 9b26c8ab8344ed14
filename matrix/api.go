// SPDX-License-Identifier: MIT
// Package matrix: convenience facades over the kernels.
//
// Purpose:
//   - Allocation-returning wrappers (Identity, MatVec, Mul) for callers that
//     do not want to manage output buffers.
//   - Residual and SumSquares: the compensated building blocks every
//     least-squares solver reports from.
//   - AllClose / VecAllClose: tolerance comparisons for tests and callers.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
)

// Identity returns the n×n identity matrix.
//
// Errors: ErrBadShape if n < 0.
func Identity(n int) (*Matrix, error) {
	m, err := NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	m.Diag().Fill(1)

	return m, nil
}

// MatVec returns a fresh y = A·x.
//
// Errors: panics (ErrDimensionMismatch) if len(x) != cols(A).
func MatVec(a *Matrix, x *Vector) *Vector {
	if x.n != a.c {
		panicMismatch(opMatVec, "A %dx%d, len(x)=%d", a.r, a.c, x.n)
	}
	y := &Vector{data: make([]float64, a.r), n: a.r, inc: 1}
	Gemv(blas.NoTrans, 1, a, x, 0, y)

	return y
}

// Mul returns a fresh C = A·B.
//
// Errors: panics (ErrDimensionMismatch) if cols(A) != rows(B).
func Mul(a, b *Matrix) *Matrix {
	if a.c != b.r {
		panicMismatch(opMul, "A %dx%d, B %dx%d", a.r, a.c, b.r, b.c)
	}
	c, _ := NewMatrix(a.r, b.c)
	Gemm(blas.NoTrans, blas.NoTrans, 1, a, b, 0, c)

	return c
}

// Residual returns e = y − X·b with every row accumulated in the given mode.
//
// Implementation:
//   - Stage 1: Conformance (len(y) == rows(X), len(b) == cols(X)).
//   - Stage 2: For row i, start the accumulator at yᵢ and add −Xᵢⱼ·bⱼ for
//     every j. Robust mode keeps the cancellation between y and Xb exact to O(ε).
//
// Errors: panics (ErrDimensionMismatch) on non-conforming operands.
//
// Complexity: Time O(n*m), Space O(n).
func Residual(mode AccMode, y *Vector, x *Matrix, b *Vector) *Vector {
	if y.n != x.r || b.n != x.c {
		panicMismatch("Residual", "X %dx%d, len(y)=%d, len(b)=%d", x.r, x.c, y.n, b.n)
	}
	e := &Vector{data: make([]float64, x.r), n: x.r, inc: 1}
	acc := NewAccumulator(mode)
	var i, j int
	for i = 0; i < x.r; i++ {
		acc.Reset()
		acc.Add(y.AtVec(i))
		for j = 0; j < x.c; j++ {
			acc.AddProduct(-x.data[x.off+i*x.rs+j*x.cs], b.AtVec(j))
		}
		e.data[i] = acc.Sum()
	}

	return e
}

// SumSquares returns Σ vᵢ² accumulated in the given mode.
func SumSquares(mode AccMode, v *Vector) float64 {
	return DotMode(mode, v, v)
}

// AllClose reports whether |a−b| ≤ atol + rtol·|b| holds element-wise.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (shape), ErrNaNInf (bad tolerances).
func AllClose(a, b *Matrix, rtol, atol float64) (bool, error) {
	if a == nil || b == nil {
		return false, matrixErrorf("AllClose", ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return false, matrixErrorf("AllClose", fmt.Errorf("%dx%d vs %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	if badTol(rtol) || badTol(atol) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	var j int
	for j = 0; j < a.c; j++ {
		if !closeVec(a.Col(j), b.Col(j), rtol, atol) {
			return false, nil
		}
	}

	return true, nil
}

// VecAllClose is the vector form of AllClose.
func VecAllClose(a, b *Vector, rtol, atol float64) (bool, error) {
	if a == nil || b == nil {
		return false, matrixErrorf("VecAllClose", ErrNilMatrix)
	}
	if a.n != b.n {
		return false, matrixErrorf("VecAllClose", fmt.Errorf("len %d vs %d: %w", a.n, b.n, ErrDimensionMismatch))
	}
	if badTol(rtol) || badTol(atol) {
		return false, matrixErrorf("VecAllClose", ErrNaNInf)
	}

	return closeVec(a, b, rtol, atol), nil
}

func badTol(t float64) bool { return t < 0 || math.IsNaN(t) || math.IsInf(t, 0) }

func closeVec(a, b *Vector, rtol, atol float64) bool {
	var i int
	var x, y float64
	for i = 0; i < a.n; i++ {
		x, y = a.AtVec(i), b.AtVec(i)
		if !(math.Abs(x-y) <= atol+rtol*math.Abs(y)) {
			return false
		}
	}

	return true
}
