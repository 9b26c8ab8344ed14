// SPDX-License-Identifier: MIT
// Package lsq_test contains unit tests for solver options.
package lsq_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lsqcore/lsq"
	"github.com/stretchr/testify/require"
)

func TestNewOptions_Defaults(t *testing.T) {
	t.Parallel()

	o := lsq.NewOptions()
	require.Equal(t, lsq.DefaultNormalize, o.Normalize())
	require.Equal(t, lsq.DefaultIterations, o.Iterations())
	require.Equal(t, lsq.DefaultSimpleIteration, o.SimpleIteration())
	require.Equal(t, lsq.DefaultRankEpsilon, o.RankEpsilon())
	require.Equal(t, lsq.DefaultPivoting, o.Pivoting())
	require.Equal(t, lsq.DefaultStrictCholesky, o.StrictCholesky())
	require.Equal(t, lsq.DefaultCholeskyTolerance, o.CholeskyTolerance())
}

func TestNewOptions_Overrides(t *testing.T) {
	t.Parallel()

	o := lsq.NewOptions(
		lsq.WithNormalize(true),
		lsq.WithIterations(5),
		lsq.WithSimpleIteration(true),
		lsq.WithRankEpsilon(1e-8),
		lsq.WithPivoting(false),
		lsq.WithStrictCholesky(),
	)
	require.True(t, o.Normalize())
	require.Equal(t, 5, o.Iterations())
	require.True(t, o.SimpleIteration())
	require.Equal(t, 1e-8, o.RankEpsilon())
	require.False(t, o.Pivoting())
	require.True(t, o.StrictCholesky())

	o = lsq.NewOptions(lsq.WithStrictCholesky(), lsq.WithCholeskyTolerance(1e-4))
	require.False(t, o.StrictCholesky())
	require.Equal(t, 1e-4, o.CholeskyTolerance())

	s := lsq.NewQRSolver(lsq.WithIterations(3))
	require.Equal(t, 3, s.Options().Iterations())
	require.True(t, lsq.NewCholeskySolver(lsq.WithStrictCholesky()).Options().StrictCholesky())
	require.Equal(t, 1e-6, lsq.NewSVDSolver(lsq.WithRankEpsilon(1e-6)).Options().RankEpsilon())
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { lsq.WithIterations(0) })
	require.Panics(t, func() { lsq.WithIterations(-2) })
	for _, eps := range []float64{-1e-9, math.NaN(), math.Inf(1)} {
		require.Panics(t, func() { lsq.WithRankEpsilon(eps) })
		require.Panics(t, func() { lsq.WithCholeskyTolerance(eps) })
	}
}

func TestFailureKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind lsq.FailureKind
		want string
	}{
		{lsq.KindUnknown, "unknown"},
		{lsq.KindSingular, "singular"},
		{lsq.KindNotPositiveDefinite, "not-positive-definite"},
		{lsq.KindDegenerateShape, "degenerate-shape"},
		{lsq.KindNonFinite, "non-finite"},
		{lsq.FailureKind(42), "unknown"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tc.kind.String())
	}
	require.Equal(t, lsq.KindUnknown, lsq.KindOf(nil))
	require.True(t, lsq.Succeeded(nil))
}
