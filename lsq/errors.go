// SPDX-License-Identifier: MIT
// Package lsq: error taxonomy at the Compute boundary.
//
// Numerical conditions raised by the factorizations (singular triangle,
// non-positive pivot, degenerate or non-finite input) never escape Compute
// as panics. They are returned as a *ComputeError that matches both
// ErrComputeFailed and the underlying matrix/decomp sentinel with errors.Is.
// Shape mismatch between y and X is a programming error and panics.

package lsq

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lsqcore/decomp"
	"github.com/katalvlaran/lsqcore/matrix"
)

var (
	// ErrComputeFailed is matched by every error returned from Solver.Compute.
	ErrComputeFailed = errors.New("lsq: compute failed")

	// ErrUnknownKind is returned by ParseKind and New for an unrecognized solver kind.
	ErrUnknownKind = errors.New("lsq: unknown solver kind")
)

// FailureKind classifies why Compute failed.
type FailureKind int

const (
	// KindUnknown is reported for errors that carry no recognized sentinel.
	KindUnknown FailureKind = iota
	// KindSingular: a triangular solve met a zero or overflowing pivot.
	KindSingular
	// KindNotPositiveDefinite: strict Cholesky rejected a pivot.
	KindNotPositiveDefinite
	// KindDegenerateShape: X has no rows or no columns.
	KindDegenerateShape
	// KindNonFinite: X or y holds NaN or ±Inf.
	KindNonFinite
)

// String returns a stable lowercase name.
func (k FailureKind) String() string {
	switch k {
	case KindSingular:
		return "singular"
	case KindNotPositiveDefinite:
		return "not-positive-definite"
	case KindDegenerateShape:
		return "degenerate-shape"
	case KindNonFinite:
		return "non-finite"
	default:
		return "unknown"
	}
}

// ComputeError is the error returned by Solver.Compute.
type ComputeError struct {
	Solver string      // Name() of the failing solver
	Kind   FailureKind // classification of Err
	Err    error       // underlying condition
}

// Error implements error.
func (e *ComputeError) Error() string {
	return fmt.Sprintf("lsq: %s: compute failed (%s): %v", e.Solver, e.Kind, e.Err)
}

// Unwrap exposes both ErrComputeFailed and the underlying condition.
func (e *ComputeError) Unwrap() []error { return []error{ErrComputeFailed, e.Err} }

// KindOf returns the FailureKind of the first *ComputeError in err's tree,
// or KindUnknown.
func KindOf(err error) FailureKind {
	var ce *ComputeError
	if errors.As(err, &ce) {
		return ce.Kind
	}

	return KindUnknown
}

// Succeeded reports whether a Compute call succeeded (the boolean view of
// the result).
func Succeeded(err error) bool { return err == nil }

// classify maps matrix/decomp sentinels onto a FailureKind.
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, matrix.ErrSingular):
		return KindSingular
	case errors.Is(err, decomp.ErrNotPositiveDefinite):
		return KindNotPositiveDefinite
	case errors.Is(err, decomp.ErrDegenerateShape), errors.Is(err, matrix.ErrBadShape):
		return KindDegenerateShape
	case errors.Is(err, matrix.ErrNaNInf):
		return KindNonFinite
	default:
		return KindUnknown
	}
}

// opCompute tags panics raised at the solver boundary.
const opCompute = "Compute"

// lsqErrorf wraps err with an operation tag, preserving it for errors.Is.
func lsqErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
