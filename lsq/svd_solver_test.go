// SPDX-License-Identifier: MIT
// Package lsq_test contains unit tests for the SVD solver.
package lsq_test

import (
	"testing"

	"github.com/katalvlaran/lsqcore/lsq"
	"github.com/katalvlaran/lsqcore/matrix"
	"github.com/stretchr/testify/require"
)

func TestSVDSolver_MinimumNorm(t *testing.T) {
	t.Parallel()

	// Column 1 = 2 × column 0: the minimum-norm solution puts weight
	// (1, 2)/5 · slope on the pair.
	x := Collinear(t)
	y := matrix.NewVectorFrom([]float64{1, 3, 2, 5})
	col0 := x.Col(0)
	slope := matrix.Dot(col0, y) / matrix.Dot(col0, col0)

	res, err := lsq.NewSVDSolver().Compute(y, x)
	require.NoError(t, err)
	require.Equal(t, 1, res.Rank())
	require.Equal(t, []int{0, 1}, res.Used())
	require.Empty(t, res.Dropped())
	require.InDeltaSlice(t, []float64{slope / 5, 2 * slope / 5}, res.Coefficients().ToSlice(), 1e-14)
	require.Equal(t, 3, res.DoF())
	RequireReconstructs(t, res, y, x, 1e-13)

	// Pseudo-inverse of XᵀX = [[30,60],[60,120]]: vvᵀ/150 with v = (1,2)/√5.
	cov := res.Covariance()
	require.InDelta(t, 1.0/750, cov.At(0, 0), 1e-15)
	require.InDelta(t, 2.0/750, cov.At(0, 1), 1e-15)
	require.InDelta(t, 4.0/750, cov.At(1, 1), 1e-15)
}

func TestSVDSolver_WideDesign(t *testing.T) {
	t.Parallel()

	x := MustRows(t, [][]float64{
		{1, 0, 1},
		{0, 1, 1},
	})
	y := matrix.NewVectorFrom([]float64{2, 3})
	res, err := lsq.NewSVDSolver().Compute(y, x)
	require.NoError(t, err)
	require.Equal(t, 2, res.Rank())
	require.InDelta(t, 0, res.SSQErr(), 1e-28)
	RequireReconstructs(t, res, y, x, 1e-14)
}
