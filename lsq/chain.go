// SPDX-License-Identifier: MIT
// Package lsq: ordered fallback across solvers.

package lsq

import (
	"errors"
	"strings"

	"github.com/katalvlaran/lsqcore/matrix"
	"github.com/rs/zerolog"
)

const nameChain = "chain"

// ChainSolver tries its solvers in order and returns the first success.
type ChainSolver struct {
	solvers []Solver
	logger  zerolog.Logger
}

// Chain builds a fallback chain. Panics if no solver is given or one is nil.
func Chain(solvers ...Solver) *ChainSolver {
	if len(solvers) == 0 {
		panic(panicNoSolvers)
	}
	for _, s := range solvers {
		if s == nil {
			panic(panicNoSolvers)
		}
	}

	return &ChainSolver{solvers: append([]Solver(nil), solvers...), logger: zerolog.Nop()}
}

// WithLogger returns a copy of c that logs fallbacks to l.
func (c *ChainSolver) WithLogger(l zerolog.Logger) *ChainSolver {
	out := *c
	out.logger = l

	return &out
}

// Name returns "chain(a,b,...)".
func (c *ChainSolver) Name() string {
	names := make([]string, len(c.solvers))
	for i, s := range c.solvers {
		names[i] = s.Name()
	}

	return nameChain + "(" + strings.Join(names, ",") + ")"
}

// Solvers returns the chained solvers in trial order.
func (c *ChainSolver) Solvers() []Solver { return append([]Solver(nil), c.solvers...) }

// Compute returns the first successful Result. When every solver fails the
// returned error joins all their errors (errors.Is(err, ErrComputeFailed)
// holds and KindOf reports the first failure).
func (c *ChainSolver) Compute(y *matrix.Vector, x *matrix.Matrix) (*Result, error) {
	errs := make([]error, 0, len(c.solvers))
	for i, s := range c.solvers {
		res, err := s.Compute(y, x)
		if err == nil {
			return res, nil
		}
		errs = append(errs, err)
		if i+1 < len(c.solvers) {
			c.logger.Debug().
				Str("failed", s.Name()).
				Str("next", c.solvers[i+1].Name()).
				Str("kind", KindOf(err).String()).
				Msg("solver fallback")
		}
	}

	return nil, errors.Join(errs...)
}
