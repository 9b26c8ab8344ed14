// SPDX-License-Identifier: MIT
// Package decomp_test contains test helpers
//
// Purpose:
//   • Deterministic fixtures (seeded random design matrices, collinear columns).
//   • gonum conversions for cross-checks.

package decomp_test

import (
	"errors"
	"math/rand"
	"testing"

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
	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
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

// SPD returns XᵀX + shift·I for a random X (n×k), symmetric positive definite for shift > 0.
func SPD(t testing.TB, n, k int, shift float64, seed int64) *matrix.Matrix {
	t.Helper()
	s := matrix.CrossProduct(matrix.Robust, RandomMatrix(t, n, k, seed))
	for j := 0; j < k; j++ {
		s.Set(j, j, s.At(j, j)+shift)
	}

	return s
}

// RequirePanicIs asserts that fn panics with an error matching target.
func RequirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.Truef(t, ok, "panic value %T is not an error", r)
		require.Truef(t, errors.Is(err, target), "expected errors.Is(%v, %v)", err, target)
	}()
	fn()
}
