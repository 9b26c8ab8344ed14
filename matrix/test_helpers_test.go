// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures (row-major literals, seeded random fills).
//   • Provide panic matchers for the fail-fast kernel contract.

package matrix_test

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

// MustMatrix allocates an r×c zero matrix or fails the test.
func MustMatrix(t testing.TB, r, c int) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewMatrix(r, c)
	require.NoError(t, err)

	return m
}

// Vec wraps a literal as a contiguous vector.
func Vec(xs ...float64) *matrix.Vector {
	return matrix.NewVectorFrom(append([]float64(nil), xs...))
}

// RandomFill fills m with deterministic values in [-1,1) from seed.
func RandomFill(m *matrix.Matrix, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	r, c := m.Dims()
	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			m.Set(i, j, 2*rng.Float64()-1)
		}
	}
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

// RequireMatrixInDelta compares element-wise within an absolute delta.
func RequireMatrixInDelta(t *testing.T, want [][]float64, got *matrix.Matrix, delta float64) {
	t.Helper()
	r, c := got.Dims()
	require.Len(t, want, r)
	var i, j int
	for i = 0; i < r; i++ {
		require.Len(t, want[i], c)
		for j = 0; j < c; j++ {
			require.InDeltaf(t, want[i][j], got.At(i, j), delta, "element (%d,%d)", i, j)
		}
	}
}

// RequireVecInDelta compares element-wise within an absolute delta.
func RequireVecInDelta(t *testing.T, want []float64, got *matrix.Vector, delta float64) {
	t.Helper()
	require.Equal(t, len(want), got.Len())
	for i := range want {
		require.InDeltaf(t, want[i], got.AtVec(i), delta, "element %d", i)
	}
}
