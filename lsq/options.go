// SPDX-License-Identifier: MIT

// Package lsq: functional configuration shared by all solvers.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - NewOptions resolver.
//
// A solver resolves its options once at construction; the resulting value is
// immutable, so one solver may serve concurrent Compute calls.
package lsq

import (
	"math"

	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/rs/zerolog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultNormalize disables column scaling in the QR solver.
	DefaultNormalize = false

	// DefaultIterations is the total number of QR solve passes (1 = no refinement).
	DefaultIterations = 1

	// DefaultSimpleIteration selects analytic correction over simple re-solve.
	DefaultSimpleIteration = false

	// DefaultRankEpsilon is the relative rank threshold for QR and SVD.
	DefaultRankEpsilon = decomp.DefaultRankEpsilon

	// DefaultPivoting enables QR column pivoting.
	DefaultPivoting = decomp.DefaultPivoting

	// DefaultStrictCholesky selects the tolerant Cholesky factor.
	DefaultStrictCholesky = false

	// DefaultCholeskyTolerance is the tolerant pivot threshold relative to |S[j,j]|.
	DefaultCholeskyTolerance = decomp.DefaultTolerance
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicIterationsInvalid = "lsq: WithIterations: n must be >= 1"
	panicRankEpsInvalid    = "lsq: WithRankEpsilon: eps must be finite, non-negative"
	panicCholTolInvalid    = "lsq: WithCholeskyTolerance: eps must be finite, non-negative"
	panicNoSolvers         = "lsq: Chain: at least one non-nil solver is required"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective solver configuration.
type Options struct {
	normalize  bool
	iterations int
	simple     bool
	rankEps    float64
	pivoting   bool
	strictChol bool
	cholTol    float64
	logger     zerolog.Logger
}

// WithNormalize scales each column of X by its Euclidean norm before the QR
// solve; coefficients and covariance are mapped back to the original scale.
func WithNormalize(on bool) Option {
	return func(o *Options) { o.normalize = on }
}

// WithIterations sets the total number of QR solve passes; n−1 refinement
// passes follow the base solve. Panics if n < 1.
func WithIterations(n int) Option {
	if n < 1 {
		panic(panicIterationsInvalid)
	}

	return func(o *Options) { o.iterations = n }
}

// WithSimpleIteration selects the simple re-solve refinement (true) or the
// analytic correction (false).
func WithSimpleIteration(on bool) Option {
	return func(o *Options) { o.simple = on }
}

// WithRankEpsilon sets the relative rank threshold used by QR and SVD.
// Panics if eps is negative or non-finite.
func WithRankEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicRankEpsInvalid)
	}

	return func(o *Options) { o.rankEps = eps }
}

// WithPivoting toggles QR column pivoting.
func WithPivoting(on bool) Option {
	return func(o *Options) { o.pivoting = on }
}

// WithStrictCholesky makes the Cholesky solver fail on any non-positive pivot.
func WithStrictCholesky() Option {
	return func(o *Options) { o.strictChol = true }
}

// WithCholeskyTolerance selects the tolerant Cholesky with threshold eps.
// Panics if eps is negative or non-finite.
func WithCholeskyTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicCholTolInvalid)
	}

	return func(o *Options) {
		o.strictChol = false
		o.cholTol = eps
	}
}

// WithLogger routes debug diagnostics (rank deficiency, refinement stops,
// failures, chain fallbacks) to l. The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// NewOptions resolves setters over the defaults (last writer wins).
func NewOptions(opts ...Option) Options {
	o := Options{
		normalize:  DefaultNormalize,
		iterations: DefaultIterations,
		simple:     DefaultSimpleIteration,
		rankEps:    DefaultRankEpsilon,
		pivoting:   DefaultPivoting,
		strictChol: DefaultStrictCholesky,
		cholTol:    DefaultCholeskyTolerance,
		logger:     zerolog.Nop(),
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}

// Normalize reports whether the QR solver scales columns.
func (o Options) Normalize() bool { return o.normalize }

// Iterations returns the total number of QR solve passes.
func (o Options) Iterations() int { return o.iterations }

// SimpleIteration reports whether refinement uses simple re-solve.
func (o Options) SimpleIteration() bool { return o.simple }

// RankEpsilon returns the relative rank threshold.
func (o Options) RankEpsilon() float64 { return o.rankEps }

// Pivoting reports whether QR pivots columns.
func (o Options) Pivoting() bool { return o.pivoting }

// StrictCholesky reports whether the Cholesky solver is strict.
func (o Options) StrictCholesky() bool { return o.strictChol }

// CholeskyTolerance returns the tolerant Cholesky threshold.
func (o Options) CholeskyTolerance() float64 { return o.cholTol }

// Logger returns the configured logger.
func (o Options) Logger() zerolog.Logger { return o.logger }

// qrOptions translates to decomp options for the QR factor.
func (o Options) qrOptions() []decomp.Option {
	return []decomp.Option{decomp.WithPivoting(o.pivoting), decomp.WithRankEpsilon(o.rankEps)}
}

// choleskyOptions translates to decomp options for the Cholesky factor.
func (o Options) choleskyOptions() []decomp.Option {
	if o.strictChol {
		return []decomp.Option{decomp.WithStrict()}
	}

	return []decomp.Option{decomp.WithTolerance(o.cholTol)}
}
