// SPDX-License-Identifier: MIT
// Package decomp: Cholesky factorization with strict and tolerant pivot policies.

package decomp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lsqcore/matrix"
	"gonum.org/v1/gonum/blas"
)

// Cholesky is a lower-triangular factor L with L·Lᵀ = S over the retained pivots.
// In tolerant mode a dropped pivot j leaves column j of L identically zero,
// so L still factors the retained block exactly and solves generalize.
type Cholesky struct {
	l      *matrix.Matrix // k×k lower factor, zeros above the diagonal
	kept   []bool         // kept[j]: pivot j retained
	rank   int
	strict bool
}

// NewCholesky factors the symmetric matrix s. Only the lower triangle of s is
// read by the sweep; the upper one takes part in the symmetry check.
//
// Implementation:
//   - Stage 1: Validate (non-nil, square, non-empty, finite, symmetric within tolerance).
//   - Stage 2: Column sweep j = 0..k−1: pivot dⱼ = S[j,j] − Σₚ L[j,p]²
//     accumulated with Neumaier compensation.
//   - strict: dⱼ ≤ 16·ε_mach·|S[j,j]| fails with ErrNotPositiveDefinite.
//   - tolerant: dⱼ ≤ eps·max(|S[j,j]|, tiny) zeroes column j (pivot dropped).
//   - otherwise L[j,j] = √dⱼ and L[i,j] = (S[i,j] − Σₚ L[i,p]·L[j,p]) / L[j,j].
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrDegenerateShape,
//     matrix.ErrNaNInf, matrix.ErrAsymmetry, ErrNotPositiveDefinite (strict only).
//
// Complexity:
//   - Time O(k³), Space O(k²).
func NewCholesky(s *matrix.Matrix, opts ...Option) (*Cholesky, error) {
	c := new(Cholesky)
	if err := c.Factorize(s, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Factorize refactors c from s, discarding any previous state.
func (c *Cholesky) Factorize(s *matrix.Matrix, opts ...Option) error {
	*c = Cholesky{}
	if err := matrix.ValidateSquare(s); err != nil {
		return decompErrorf(opCholesky, err)
	}
	k := s.Rows()
	if k == 0 {
		return decompErrorf(opCholesky, fmt.Errorf("0x0: %w", ErrDegenerateShape))
	}
	if err := matrix.ValidateFinite(s); err != nil {
		return decompErrorf(opCholesky, err)
	}
	o := NewOptions(opts...)
	if err := matrix.ValidateSymmetric(s, o.symmetryTol); err != nil {
		return decompErrorf(opCholesky, err)
	}

	l, _ := matrix.NewMatrix(k, k)
	kept := make([]bool, k)
	rank := 0
	acc := matrix.NewAccumulator(matrix.Robust)

	var i, j, p int
	var sjj, d, ljj float64
	for j = 0; j < k; j++ {
		sjj = s.At(j, j)
		acc.Reset()
		acc.Add(sjj)
		for p = 0; p < j; p++ {
			acc.AddProduct(-l.At(j, p), l.At(j, p))
		}
		d = acc.Sum()

		if o.strict {
			if d <= strictGuardFactor*machineEpsilon*math.Abs(sjj) {
				return decompErrorf(opCholesky, fmt.Errorf("pivot %d = %g: %w", j, d, ErrNotPositiveDefinite))
			}
		} else if d <= o.tolerance*math.Max(math.Abs(sjj), tinyScale) {
			continue // column j of l stays zero
		}

		ljj = math.Sqrt(d)
		l.Set(j, j, ljj)
		kept[j] = true
		rank++
		for i = j + 1; i < k; i++ {
			acc.Reset()
			acc.Add(s.At(i, j))
			for p = 0; p < j; p++ {
				acc.AddProduct(-l.At(i, p), l.At(j, p))
			}
			l.Set(i, j, acc.Sum()/ljj)
		}
	}

	c.l, c.kept, c.rank, c.strict = l, kept, rank, o.strict

	return nil
}

// Size returns k, the order of the factored matrix.
func (c *Cholesky) Size() int { return len(c.kept) }

// Rank returns the number of retained pivots (k in strict mode).
func (c *Cholesky) Rank() int { return c.rank }

// Strict reports whether the factor was produced in strict mode.
func (c *Cholesky) Strict() bool { return c.strict }

// Used returns the retained pivot indices, increasing.
func (c *Cholesky) Used() []int {
	used := make([]int, 0, c.rank)
	for j, ok := range c.kept {
		if ok {
			used = append(used, j)
		}
	}

	return used
}

// Dropped returns the pivot indices treated as zero, increasing.
func (c *Cholesky) Dropped() []int {
	dropped := make([]int, 0, len(c.kept)-c.rank)
	for j, ok := range c.kept {
		if !ok {
			dropped = append(dropped, j)
		}
	}

	return dropped
}

// L returns a copy of the lower-triangular factor.
func (c *Cholesky) L() *matrix.Matrix { return c.l.Clone() }

// SolveVec returns b with S·b = rhs over the retained pivots and bⱼ = 0 at
// dropped ones (L·z = rhs, then Lᵀ·b = z, both generalized).
//
// Errors:
//   - matrix.ErrNaNInf / matrix.ErrSingular from substitution.
//   - panics (matrix.ErrDimensionMismatch) if len(rhs) != k.
func (c *Cholesky) SolveVec(rhs *matrix.Vector) (*matrix.Vector, error) {
	k := len(c.kept)
	if rhs == nil || rhs.Len() != k {
		panic(decompErrorf(opCholSolve, fmt.Errorf("rhs length mismatch for order %d: %w", k, matrix.ErrDimensionMismatch)))
	}
	b := rhs.Clone()
	if err := matrix.SolveLowerTol(c.l, b, blas.NoTrans, 0); err != nil {
		return nil, decompErrorf(opCholSolve, err)
	}
	if err := matrix.SolveLowerTol(c.l, b, blas.Trans, 0); err != nil {
		return nil, decompErrorf(opCholSolve, err)
	}

	return b, nil
}

// Inverse returns the generalized inverse: (S_UU)⁻¹ on the retained block,
// zero rows and columns at dropped pivots.
//
// Complexity:
//   - Time O(k³), Space O(k²).
func (c *Cholesky) Inverse() (*matrix.Matrix, error) {
	k := len(c.kept)
	inv, _ := matrix.NewMatrix(k, k)
	e, _ := matrix.NewVector(k)
	for j := 0; j < k; j++ {
		if !c.kept[j] {
			continue
		}
		e.Fill(0)
		e.SetVec(j, 1)
		col, err := c.SolveVec(e)
		if err != nil {
			return nil, decompErrorf(opCholInverse, err)
		}
		matrix.Copy(inv.Col(j), col)
	}

	return inv, nil
}

// LogDet returns log det(S_UU) = 2·Σ log L[j,j] over the retained pivots.
func (c *Cholesky) LogDet() float64 {
	var acc matrix.Accumulator
	for j, ok := range c.kept {
		if ok {
			acc.Add(2 * math.Log(c.l.At(j, j)))
		}
	}

	return acc.Sum()
}
