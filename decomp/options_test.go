// SPDX-License-Identifier: MIT
// Package decomp_test contains unit tests for functional options.
package decomp_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/stretchr/testify/require"
)

func TestNewOptions_Defaults(t *testing.T) {
	t.Parallel()

	o := decomp.NewOptions()
	require.Equal(t, decomp.DefaultPivoting, o.Pivoting())
	require.Equal(t, decomp.DefaultRankEpsilon, o.RankEpsilon())
	require.Equal(t, decomp.DefaultStrict, o.Strict())
	require.Equal(t, decomp.DefaultTolerance, o.Tolerance())
	require.Equal(t, decomp.DefaultSymmetryTolerance, o.SymmetryTolerance())
}

func TestNewOptions_LastWriterWins(t *testing.T) {
	t.Parallel()

	o := decomp.NewOptions(
		decomp.WithPivoting(false),
		decomp.WithRankEpsilon(1e-10),
		decomp.WithStrict(),
		decomp.WithTolerance(1e-6), // back to tolerant
		decomp.WithSymmetryTolerance(0),
	)
	require.False(t, o.Pivoting())
	require.Equal(t, 1e-10, o.RankEpsilon())
	require.False(t, o.Strict())
	require.Equal(t, 1e-6, o.Tolerance())
	require.Zero(t, o.SymmetryTolerance())

	require.True(t, decomp.NewOptions(decomp.WithTolerance(1e-6), decomp.WithStrict()).Strict())
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	for _, eps := range []float64{-1, math.NaN(), math.Inf(1)} {
		require.Panics(t, func() { decomp.WithRankEpsilon(eps) })
		require.Panics(t, func() { decomp.WithTolerance(eps) })
		require.Panics(t, func() { decomp.WithSymmetryTolerance(eps) })
	}
}
