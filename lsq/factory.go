// SPDX-License-Identifier: MIT
// Package lsq: solver selection by kind and injectable factories.

package lsq

import (
	"fmt"
	"strings"
)

// Kind names a solver implementation.
type Kind int

const (
	// QR selects QRSolver.
	QR Kind = iota
	// Cholesky selects CholeskySolver.
	Cholesky
	// SVD selects SVDSolver.
	SVD
)

// String returns the solver name for k.
func (k Kind) String() string {
	switch k {
	case QR:
		return nameQR
	case Cholesky:
		return nameCholesky
	case SVD:
		return nameSVD
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "qr", "cholesky" or "svd" (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case nameQR:
		return QR, nil
	case nameCholesky:
		return Cholesky, nil
	case nameSVD:
		return SVD, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// New returns a solver of the given kind configured by opts.
func New(kind Kind, opts ...Option) (Solver, error) {
	switch kind {
	case QR:
		return NewQRSolver(opts...), nil
	case Cholesky:
		return NewCholeskySolver(opts...), nil
	case SVD:
		return NewSVDSolver(opts...), nil
	}

	return nil, fmt.Errorf("%v: %w", kind, ErrUnknownKind)
}

// Factory produces solvers. Callers that need a configurable default accept
// a Factory instead of consulting shared state.
type Factory func() Solver

// FactoryFor returns a Factory building solvers of one kind.
func FactoryFor(kind Kind, opts ...Option) (Factory, error) {
	if _, err := New(kind, opts...); err != nil {
		return nil, err
	}

	return func() Solver {
		s, _ := New(kind, opts...)
		return s
	}, nil
}

// DefaultFactory returns a Factory of QR-then-Cholesky chains sharing opts.
func DefaultFactory(opts ...Option) Factory {
	return func() Solver {
		return Chain(NewQRSolver(opts...), NewCholeskySolver(opts...)).
			WithLogger(NewOptions(opts...).logger)
	}
}
