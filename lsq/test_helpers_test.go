// SPDX-License-Identifier: MIT
// Package lsq_test contains test helpers
//
// Purpose:
//   • Deterministic designs (random, collinear, Hilbert).
//   • Exact rational reference solutions.
//   • Shared assertions for the Solver contract.

package lsq_test

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lsqcore/lsq"
	"github.com/katalvlaran/lsqcore/matrix"
	"github.com/stretchr/testify/require"
)

// MustRows builds a matrix from a row-major literal or fails the test.
func MustRows(t testing.TB, rows [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewMatrixFromRows(rows)
	require.NoError(t, err)

	return m
}

// RandomMatrix returns an r×c matrix with deterministic entries in [-1,1).
func RandomMatrix(t testing.TB, r, c int, seed int64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewMatrix(r, c)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			m.Set(i, j, 2*rng.Float64()-1)
		}
	}

	return m
}

// RandomVec returns a deterministic vector of length n with values in [-1,1).
func RandomVec(n int, seed int64) *matrix.Vector {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = 2*rng.Float64() - 1
	}

	return matrix.NewVectorFrom(xs)
}

// Collinear returns the 4×2 design whose second column is twice the first.
func Collinear(t testing.TB) *matrix.Matrix {
	return MustRows(t, [][]float64{
		{1, 2},
		{2, 4},
		{3, 6},
		{4, 8},
	})
}

// Hilbert returns the k×k Hilbert matrix H[i,j] = 1/(i+j+1) in float64.
func Hilbert(t testing.TB, k int) *matrix.Matrix {
	t.Helper()
	h, err := matrix.NewMatrix(k, k)
	require.NoError(t, err)
	for j := 0; j < k; j++ {
		for i := 0; i < k; i++ {
			h.Set(i, j, 1/float64(i+j+1))
		}
	}

	return h
}

// ExactSolve solves the square system a·b = y exactly over the rationals,
// treating every float64 entry as the exact binary value it stores.
func ExactSolve(t testing.TB, a *matrix.Matrix, y *matrix.Vector) []float64 {
	t.Helper()
	k := a.Rows()
	aug := make([][]*big.Rat, k)
	for i := range aug {
		aug[i] = make([]*big.Rat, k+1)
		for j := 0; j < k; j++ {
			aug[i][j] = new(big.Rat).SetFloat64(a.At(i, j))
		}
		aug[i][k] = new(big.Rat).SetFloat64(y.AtVec(i))
	}

	tmp := new(big.Rat)
	for p := 0; p < k; p++ {
		piv := p
		for piv < k && aug[piv][p].Sign() == 0 {
			piv++
		}
		require.Less(t, piv, k, "singular system")
		aug[p], aug[piv] = aug[piv], aug[p]
		for i := p + 1; i < k; i++ {
			f := new(big.Rat).Quo(aug[i][p], aug[p][p])
			for j := p; j <= k; j++ {
				aug[i][j].Sub(aug[i][j], tmp.Mul(f, aug[p][j]))
			}
		}
	}

	out := make([]float64, k)
	sol := make([]*big.Rat, k)
	for i := k - 1; i >= 0; i-- {
		s := new(big.Rat).Set(aug[i][k])
		for j := i + 1; j < k; j++ {
			s.Sub(s, tmp.Mul(aug[i][j], sol[j]))
		}
		sol[i] = s.Quo(s, aug[i][i])
		out[i], _ = sol[i].Float64()
	}

	return out
}

// MaxAbsDiff returns max |a[i] − b[i]|.
func MaxAbsDiff(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}

	return d
}

// RequireReconstructs asserts X·b + (y − X·b) = y and ‖Residuals()‖² = SSQErr().
func RequireReconstructs(t *testing.T, res *lsq.Result, y *matrix.Vector, x *matrix.Matrix, tol float64) {
	t.Helper()
	fit := matrix.MatVec(x, res.Coefficients())
	matrix.Axpy(1, res.FullResiduals(), fit)
	for i := 0; i < y.Len(); i++ {
		require.InDelta(t, y.AtVec(i), fit.AtVec(i), tol, "row %d", i)
	}
	require.InDelta(t, res.SSQErr(), matrix.SumSquares(matrix.Robust, res.Residuals()), tol)
}

// RequireZeroAtDropped asserts exact zeros in b and the covariance at Dropped().
func RequireZeroAtDropped(t *testing.T, res *lsq.Result) {
	t.Helper()
	b := res.Coefficients()
	cov := res.Covariance()
	m := b.Len()
	for _, j := range res.Dropped() {
		require.Zero(t, b.AtVec(j), "coefficient %d", j)
		for k := 0; k < m; k++ {
			require.Zero(t, cov.At(j, k), "cov[%d,%d]", j, k)
			require.Zero(t, cov.At(k, j), "cov[%d,%d]", k, j)
		}
	}
}
