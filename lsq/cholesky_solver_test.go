// SPDX-License-Identifier: MIT
// Package lsq_test contains unit tests for the normal-equations solver.
package lsq_test

import (
	"testing"

	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/katalvlaran/lsqcore/lsq"
	"github.com/katalvlaran/lsqcore/matrix"
	"github.com/stretchr/testify/require"
)

func TestCholeskySolver_SingularGram(t *testing.T) {
	t.Parallel()

	// XᵀX = [[4,8],[8,16]] has a zero eigenvalue.
	x := MustRows(t, [][]float64{
		{1, 2},
		{1, 2},
		{1, 2},
		{1, 2},
	})
	y := matrix.NewVectorFrom([]float64{1, 2, 3, 4})

	res, err := lsq.NewCholeskySolver(lsq.WithStrictCholesky()).Compute(y, x)
	require.Nil(t, res)
	require.False(t, lsq.Succeeded(err))
	require.ErrorIs(t, err, lsq.ErrComputeFailed)
	require.ErrorIs(t, err, decomp.ErrNotPositiveDefinite)
	require.Equal(t, lsq.KindNotPositiveDefinite, lsq.KindOf(err))

	res, err = lsq.NewCholeskySolver(lsq.WithCholeskyTolerance(1e-9)).Compute(y, x)
	require.True(t, lsq.Succeeded(err))
	require.Equal(t, 1, res.Rank())
	require.Equal(t, []int{0}, res.Used())
	require.Equal(t, []float64{2.5, 0}, res.Coefficients().ToSlice())
	require.Equal(t, [][]float64{{0.25, 0}, {0, 0}}, res.Covariance().ToRows())
	require.InDelta(t, 5.0, res.SSQErr(), 1e-13)
	require.Equal(t, 3, res.DoF())
	require.Len(t, res.Residuals().ToSlice(), 4)
}

func TestCholeskySolver_CollinearKeepsFirstColumn(t *testing.T) {
	t.Parallel()

	x := Collinear(t)
	y := matrix.NewVectorFrom([]float64{1, 3, 2, 5})
	res, err := lsq.NewCholeskySolver().Compute(y, x)
	require.NoError(t, err)
	require.Equal(t, 1, res.Rank())
	require.Equal(t, []int{0}, res.Used())
	require.Zero(t, res.Coefficients().AtVec(1))
	RequireZeroAtDropped(t, res)
	RequireReconstructs(t, res, y, x, 1e-13)
}

func TestCholeskySolver_StrictOnFullRank(t *testing.T) {
	t.Parallel()

	x := RandomMatrix(t, 10, 3, 41)
	y := RandomVec(10, 42)
	strict, err := lsq.NewCholeskySolver(lsq.WithStrictCholesky()).Compute(y, x)
	require.NoError(t, err)
	tolerant, err := lsq.NewCholeskySolver().Compute(y, x)
	require.NoError(t, err)
	require.Equal(t, tolerant.Coefficients().ToSlice(), strict.Coefficients().ToSlice())
	require.Equal(t, 1, strict.Iterations())
}
