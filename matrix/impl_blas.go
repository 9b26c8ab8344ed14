// SPDX-License-Identifier: MIT
// Package matrix: BLAS level-1 kernels over strided vector views.
//
// Purpose:
//   - Scal, Axpy, Dot/DotMode, Nrm2, Copy, Swap.
//
// Behavior highlights:
//   - Kernels are total over conforming views; a length mismatch is a
//     programmer error and panics with an error wrapping ErrDimensionMismatch.
//   - Unit-stride operands take an unrolled loop over the raw slice; any other
//     stride takes the generic offset walk. Fast-mode Dot may therefore round
//     differently on the two paths; Robust mode always takes the walk.

package matrix

import "math"

const (
	opAxpy = "Axpy"
	opDot  = "Dot"
	opCopy = "Copy"
	opSwap = "Swap"
)

// contiguous returns the raw slice behind a unit-stride vector.
func (v *Vector) contiguous() ([]float64, bool) {
	if v.inc != 1 {
		return nil, false
	}

	return v.data[v.off : v.off+v.n], true
}

// Scal computes x ← αx in place.
//
// Complexity:
//   - Time O(n), Space O(1).
func Scal(alpha float64, x *Vector) {
	if xs, ok := x.contiguous(); ok {
		scale64(alpha, xs)
		return
	}
	var i, p int
	for i, p = 0, x.off; i < x.n; i, p = i+1, p+x.inc {
		x.data[p] *= alpha
	}
}

// Axpy computes y ← y + αx in place.
//
// Errors:
//   - panics (ErrDimensionMismatch) if x.Len() != y.Len().
func Axpy(alpha float64, x, y *Vector) {
	if x.n != y.n {
		panicMismatch(opAxpy, "len(x)=%d len(y)=%d", x.n, y.n)
	}
	if alpha == 0 {
		return
	}
	xs, okx := x.contiguous()
	ys, oky := y.contiguous()
	if okx && oky {
		axpy64(alpha, xs, ys)
		return
	}
	var i, px, py int
	for i, px, py = 0, x.off, y.off; i < x.n; i, px, py = i+1, px+x.inc, py+y.inc {
		y.data[py] += alpha * x.data[px]
	}
}

// Dot returns Σ xᵢyᵢ with plain accumulation.
func Dot(x, y *Vector) float64 { return DotMode(Fast, x, y) }

// DotMode returns Σ xᵢyᵢ accumulated in the given mode.
//
// Behavior highlights:
//   - Robust mode routes every product through a Neumaier accumulator; it is
//     what the solvers use for normal equations and residuals.
//
// Errors:
//   - panics (ErrDimensionMismatch) if x.Len() != y.Len().
//
// Complexity:
//   - Time O(n), Space O(1).
func DotMode(mode AccMode, x, y *Vector) float64 {
	if x.n != y.n {
		panicMismatch(opDot, "len(x)=%d len(y)=%d", x.n, y.n)
	}
	if mode == Fast {
		xs, okx := x.contiguous()
		ys, oky := y.contiguous()
		if okx && oky {
			return dot64(xs, ys)
		}
	}
	acc := NewAccumulator(mode)
	var i, px, py int
	for i, px, py = 0, x.off, y.off; i < x.n; i, px, py = i+1, px+x.inc, py+y.inc {
		acc.AddProduct(x.data[px], y.data[py])
	}

	return acc.Sum()
}

// Nrm2 returns ‖x‖₂ without intermediate overflow or underflow.
//
// Implementation:
//   - Keep (scale, ssq) with ‖x‖ = scale·√ssq; rescale whenever a larger
//     magnitude shows up.
//
// Notes:
//   - A NaN element yields NaN; an infinite element yields +Inf.
func Nrm2(x *Vector) float64 {
	scale, ssq := NormZero, 1.0
	var i, p int
	var a, r float64
	for i, p = 0, x.off; i < x.n; i, p = i+1, p+x.inc {
		a = x.data[p]
		if a == 0 {
			continue
		}
		if math.IsNaN(a) {
			return math.NaN()
		}
		a = math.Abs(a)
		if math.IsInf(a, 1) {
			return a
		}
		if scale < a {
			r = scale / a
			ssq = 1 + ssq*r*r
			scale = a
		} else {
			r = a / scale
			ssq += r * r
		}
	}
	if scale == NormZero {
		return NormZero
	}

	return scale * math.Sqrt(ssq)
}

// Copy writes src into dst element-wise.
//
// Errors:
//   - panics (ErrDimensionMismatch) on a length mismatch.
func Copy(dst, src *Vector) {
	if dst.n != src.n {
		panicMismatch(opCopy, "len(dst)=%d len(src)=%d", dst.n, src.n)
	}
	ds, okd := dst.contiguous()
	ss, oks := src.contiguous()
	if okd && oks {
		copy(ds, ss)
		return
	}
	var i, pd, ps int
	for i, pd, ps = 0, dst.off, src.off; i < dst.n; i, pd, ps = i+1, pd+dst.inc, ps+src.inc {
		dst.data[pd] = src.data[ps]
	}
}

// Swap exchanges the contents of x and y.
//
// Errors:
//   - panics (ErrDimensionMismatch) on a length mismatch.
func Swap(x, y *Vector) {
	if x.n != y.n {
		panicMismatch(opSwap, "len(x)=%d len(y)=%d", x.n, y.n)
	}
	var i, px, py int
	for i, px, py = 0, x.off, y.off; i < x.n; i, px, py = i+1, px+x.inc, py+y.inc {
		x.data[px], y.data[py] = y.data[py], x.data[px]
	}
}

// ---------- unrolled unit-stride loops ----------

func dot64(x, y []float64) float64 {
	n := len(x)
	var s0, s1 float64
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += x[i]*y[i] + x[i+1]*y[i+1]
		s1 += x[i+2]*y[i+2] + x[i+3]*y[i+3]
	}
	s := s0 + s1
	for ; i < n; i++ {
		s += x[i] * y[i]
	}

	return s
}

func axpy64(a float64, x, y []float64) {
	n := len(x)
	i := 0
	for ; i+4 <= n; i += 4 {
		y[i] += a * x[i]
		y[i+1] += a * x[i+1]
		y[i+2] += a * x[i+2]
		y[i+3] += a * x[i+3]
	}
	for ; i < n; i++ {
		y[i] += a * x[i]
	}
}

func scale64(a float64, x []float64) {
	n := len(x)
	i := 0
	for ; i+4 <= n; i += 4 {
		x[i] *= a
		x[i+1] *= a
		x[i+2] *= a
		x[i+3] *= a
	}
	for ; i < n; i++ {
		x[i] *= a
	}
}
