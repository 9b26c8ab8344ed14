// SPDX-License-Identifier: MIT

// Package decomp: functional configuration for QR and Cholesky.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - NewOptions resolver.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Options fields are unexported; public APIs consume ...Option.
package decomp

import "math"

// ---------- Defaults (single source of truth) ----------

// machineEpsilon is the float64 unit roundoff 2⁻⁵².
const machineEpsilon = 0x1p-52

const (
	// DefaultPivoting enables column pivoting in QR (rank-revealing).
	DefaultPivoting = true

	// DefaultRankEpsilon is the QR rank threshold relative to |R[0,0]|:
	// 4096·ε_mach ≈ 9.1e-13.
	DefaultRankEpsilon = 4096 * machineEpsilon

	// DefaultStrict selects the tolerant Cholesky (pivots below tolerance are dropped).
	DefaultStrict = false

	// DefaultTolerance is the tolerant-Cholesky pivot threshold relative to |S[j,j]|.
	DefaultTolerance = 1e-9

	// DefaultSymmetryTolerance bounds |S[i,j] − S[j,i]| relative to max(1, |S[i,j]|, |S[j,i]|).
	DefaultSymmetryTolerance = 1e-9

	// strictGuardFactor scales ε_mach·|S[j,j]| into the strict positivity guard.
	strictGuardFactor = 16

	// tinyScale keeps the tolerant threshold positive for all-zero diagonals.
	tinyScale = 0x1p-1022
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicRankEpsilonInvalid = "decomp: WithRankEpsilon: eps must be finite, non-negative"
	panicToleranceInvalid   = "decomp: WithTolerance: eps must be finite, non-negative"
	panicSymmetryInvalid    = "decomp: WithSymmetryTolerance: eps must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	pivoting    bool    // QR: DefaultPivoting
	rankEps     float64 // QR: DefaultRankEpsilon
	strict      bool    // Cholesky: DefaultStrict
	tolerance   float64 // Cholesky (tolerant): DefaultTolerance
	symmetryTol float64 // Cholesky: DefaultSymmetryTolerance
}

func badEps(eps float64) bool { return math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 }

// WithPivoting toggles QR column pivoting. Without pivoting the rank is the
// count of leading diagonal entries above threshold, in natural column order.
func WithPivoting(on bool) Option {
	return func(o *Options) { o.pivoting = on }
}

// WithRankEpsilon sets the relative QR rank threshold ε (|R[k,k]| > ε·|R[0,0]|).
// Panics if eps is negative or non-finite.
func WithRankEpsilon(eps float64) Option {
	if badEps(eps) {
		panic(panicRankEpsilonInvalid)
	}

	return func(o *Options) { o.rankEps = eps }
}

// WithStrict makes Cholesky fail with ErrNotPositiveDefinite on the first
// pivot at or below 16·ε_mach·|S[j,j]|.
func WithStrict() Option {
	return func(o *Options) { o.strict = true }
}

// WithTolerance selects the tolerant Cholesky with relative pivot threshold eps.
// A pivot ≤ eps·max(|S[j,j]|, tiny) is treated as zero and its column dropped.
// Panics if eps is negative or non-finite.
func WithTolerance(eps float64) Option {
	if badEps(eps) {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) {
		o.strict = false
		o.tolerance = eps
	}
}

// WithSymmetryTolerance sets the relative symmetry check applied to Cholesky input.
// Panics if eps is negative or non-finite.
func WithSymmetryTolerance(eps float64) Option {
	if badEps(eps) {
		panic(panicSymmetryInvalid)
	}

	return func(o *Options) { o.symmetryTol = eps }
}

// NewOptions resolves setters over the defaults (last writer wins).
func NewOptions(opts ...Option) Options {
	o := Options{
		pivoting:    DefaultPivoting,
		rankEps:     DefaultRankEpsilon,
		strict:      DefaultStrict,
		tolerance:   DefaultTolerance,
		symmetryTol: DefaultSymmetryTolerance,
	}
	for _, set := range opts {
		set(&o)
	}

	return o
}

// Pivoting reports whether QR pivots columns.
func (o Options) Pivoting() bool { return o.pivoting }

// RankEpsilon returns the relative QR rank threshold.
func (o Options) RankEpsilon() float64 { return o.rankEps }

// Strict reports whether Cholesky runs in strict mode.
func (o Options) Strict() bool { return o.strict }

// Tolerance returns the tolerant-Cholesky relative pivot threshold.
func (o Options) Tolerance() float64 { return o.tolerance }

// SymmetryTolerance returns the relative symmetry tolerance.
func (o Options) SymmetryTolerance() float64 { return o.symmetryTol }
