// SPDX-License-Identifier: MIT
// Package matrix: compensated summation.
//
// Purpose:
//   - Provide the Neumaier accumulator used by every sum whose accuracy the
//     least-squares path depends on (XᵗX, Xᵗy, residual recomputation).
//   - Provide AccumulatorMatrix: a symmetric grid of accumulators that lets
//     XᵗX be built row by row with compensated sums.
//
// Determinism:
//   - Sums depend on the order of Add calls only; no reassociation.

package matrix

import "math"

// Accumulator sums float64 terms. In Robust mode it carries a Neumaier
// compensation term so the result is accurate to O(ε) regardless of length.
// The zero value is a ready-to-use Robust accumulator.
type Accumulator struct {
	sum  float64 // running sum
	comp float64 // running compensation (lost low-order bits)
	mode AccMode
}

// NewAccumulator returns an empty accumulator in the given mode.
func NewAccumulator(mode AccMode) Accumulator {
	return Accumulator{mode: mode}
}

// Mode reports the accumulation mode.
func (a *Accumulator) Mode() AccMode { return a.mode }

// Add adds x to the running sum.
//
// Implementation (Robust):
//   - t = sum + x; the bits lost by whichever operand is smaller in magnitude
//     are recovered exactly and collected in comp.
func (a *Accumulator) Add(x float64) {
	if a.mode == Fast {
		a.sum += x
		return
	}
	t := a.sum + x
	if math.Abs(a.sum) >= math.Abs(x) {
		a.comp += (a.sum - t) + x
	} else {
		a.comp += (x - t) + a.sum
	}
	a.sum = t
}

// AddProduct adds x*y.
func (a *Accumulator) AddProduct(x, y float64) { a.Add(x * y) }

// Sum returns the compensated total.
func (a *Accumulator) Sum() float64 { return a.sum + a.comp }

// Reset clears the running state; the mode is kept.
func (a *Accumulator) Reset() {
	a.sum = ZeroSum
	a.comp = ZeroSum
}

// SumCompensated returns the Neumaier sum of xs.
func SumCompensated(xs []float64) float64 {
	var acc Accumulator
	for _, x := range xs {
		acc.Add(x)
	}

	return acc.Sum()
}

// AccumulatorMatrix is a k×k symmetric grid of accumulators (lower triangle
// stored). It is the target of SyrkMode and the engine behind CrossProduct.
type AccumulatorMatrix struct {
	k    int
	cell []Accumulator // packed lower triangle, column by column
}

// NewAccumulatorMatrix returns an empty k×k accumulator grid.
func NewAccumulatorMatrix(k int, mode AccMode) *AccumulatorMatrix {
	if k < 0 {
		k = 0
	}
	cells := make([]Accumulator, k*(k+1)/2)
	for i := range cells {
		cells[i].mode = mode
	}

	return &AccumulatorMatrix{k: k, cell: cells}
}

// Size returns k.
func (a *AccumulatorMatrix) Size() int { return a.k }

// index maps (i,j), i>=j, to its packed position.
func (a *AccumulatorMatrix) index(i, j int) int {
	return j*a.k - j*(j-1)/2 + (i - j)
}

// Add accumulates x into cell (i,j) (and, by symmetry, (j,i)).
func (a *AccumulatorMatrix) Add(i, j int, x float64) {
	if i < j {
		i, j = j, i
	}
	a.cell[a.index(i, j)].Add(x)
}

// Sum returns the compensated value of cell (i,j).
func (a *AccumulatorMatrix) Sum(i, j int) float64 {
	if i < j {
		i, j = j, i
	}

	return a.cell[a.index(i, j)].Sum()
}

// Matrix materializes the full symmetric k×k result.
func (a *AccumulatorMatrix) Matrix() *Matrix {
	out, _ := NewMatrix(a.k, a.k)
	var i, j int
	var s float64
	for j = 0; j < a.k; j++ {
		for i = j; i < a.k; i++ {
			s = a.cell[a.index(i, j)].Sum()
			out.data[i+j*out.cs] = s
			out.data[j+i*out.cs] = s
		}
	}

	return out
}
