// SPDX-License-Identifier: MIT
// Package decomp: Householder QR with optional column pivoting.
//
// Purpose:
//   - Factor X·P = Q·R for an n×m X, keeping Q implicit as a product of
//     min(n,m) elementary reflectors Hₚ = I − τₚ·vₚ·vₚᵀ (vₚ[p] = 1).
//   - Reveal the numerical rank r and the retained columns for least squares.
//
// Storage (LAPACK-compatible):
//   - R on and above the diagonal of a copy of X (pivot order).
//   - The tail of vₚ below the diagonal of column p, τₚ in tau[p].

package decomp

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lsqcore/matrix"
	"gonum.org/v1/gonum/blas"
)

// recomputeFactor triggers a fresh column-norm pass when the best downdated
// squared norm has shrunk below ε/recomputeFactor of the last fresh maximum.
const recomputeFactor = 0.001

// QR is a Householder factorization X·P = Q·R.
// The zero value is empty; use NewQR or Decompose.
type QR struct {
	a       *matrix.Matrix // packed R and reflector tails, n×m
	tau     []float64      // reflector scalars, len min(n,m)
	perm    []int          // perm[p] = original column eliminated at step p
	usedPos []int          // usedPos[p] = position of perm[p] inside Used()
	rank    int            // numerical rank r
	n, m    int            // shape of X
}

// NewQR factors x (n×m, n ≥ 1, m ≥ 1). x is not modified.
//
// Implementation:
//   - Stage 1: Validate (non-nil, non-empty, finite) and copy x.
//   - Stage 2: For p = 0..min(n,m)−1:
//   - (pivoting) downdate the squared residual norms of the remaining
//     columns by the entry just finalized in row p−1, pick the largest, and
//     recompute all of them from scratch when cancellation has eaten the
//     downdated values; swap the winner into position p.
//   - build the reflector for column p and apply it to the trailing block
//     via z = Bᵀv (Gemv) and B ← B − τ·v·zᵀ (Ger).
//   - (natural order) a column whose residual norm on rows p..n−1 is at
//     most ε·|R[0,0]| is moved behind the remaining columns and dropped;
//     the sweep continues with the next one.
//   - Stage 3: Rank r = count of leading |R[p,p]| > ε·|R[0,0]| (pivoting),
//     or the number of accepted columns (natural order).
//
// Behavior highlights:
//   - Never fails on valid shapes: rank deficiency shows up as r < m.
//   - Without pivoting the retained columns are the first maximal
//     independent subset in natural order: of two collinear columns the
//     earlier one is kept, and later independent columns are never lost.
//   - Reflectors are built only for retained columns, so Diagonal entries
//     at positions ≥ r are residual values, not triangularized pivots.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrDegenerateShape (zero rows or columns),
//     matrix.ErrNaNInf (non-finite entry).
//
// Determinism:
//   - Ties in the pivot search go to the lowest remaining position.
//
// Complexity:
//   - Time O(n·m·min(n,m)), Space O(n·m).
func NewQR(x *matrix.Matrix, opts ...Option) (*QR, error) {
	q := new(QR)
	if err := q.Decompose(x, opts...); err != nil {
		return nil, err
	}

	return q, nil
}

// Decompose refactors q from x, discarding any previous state.
// Errors are the same as NewQR; on error q is left empty.
func (q *QR) Decompose(x *matrix.Matrix, opts ...Option) error {
	*q = QR{}
	if err := matrix.ValidateNotNil(x); err != nil {
		return decompErrorf(opQR, err)
	}
	n, m := x.Dims()
	if n == 0 || m == 0 {
		return decompErrorf(opQR, fmt.Errorf("%dx%d: %w", n, m, ErrDegenerateShape))
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return decompErrorf(opQR, err)
	}
	o := NewOptions(opts...)

	q.a = x.Clone()
	q.tau = make([]float64, min(n, m))
	q.perm = make([]int, m)
	for j := range q.perm {
		q.perm[j] = j
	}
	q.n, q.m = n, m
	q.factorize(o)

	return nil
}

// factorize runs the reflector sweep and rank detection in place.
func (q *QR) factorize(o Options) {
	n, m, k := q.n, q.m, len(q.tau)
	a := q.a

	var h []float64 // squared residual column norms
	hmax := 0.0
	if o.pivoting {
		h = make([]float64, m)
	}
	vbuf := make([]float64, n)
	zbuf := make([]float64, m)

	var p, l, lmax int
	var t, r00 float64
	end := m // columns end..m−1 were skipped as dependent (natural order only)
	for p = 0; p < k && p < end; p++ {
		if !o.pivoting {
			for p < end && !q.independent(p, o.rankEps*r00) {
				end--
				q.rotateToEnd(p, end)
			}
			if p == end {
				break
			}
		} else {
			lmax = p
			if p > 0 {
				for l = p; l < m; l++ {
					t = a.At(p-1, l)
					h[l] -= t * t
					if h[l] > h[lmax] {
						lmax = l
					}
				}
			}
			if p == 0 || recomputeFactor*h[lmax] < hmax*machineEpsilon {
				lmax = p
				for l = p; l < m; l++ {
					t = matrix.Nrm2(a.Col(l).Slice(p, n-p))
					h[l] = t * t
					if h[l] > h[lmax] {
						lmax = l
					}
				}
				hmax = h[lmax]
			}
			if lmax != p {
				matrix.Swap(a.Col(p), a.Col(lmax))
				q.perm[p], q.perm[lmax] = q.perm[lmax], q.perm[p]
				h[p], h[lmax] = h[lmax], h[p]
			}
		}

		q.house(p)
		if p == 0 {
			r00 = math.Abs(a.At(0, 0))
		}
		if q.tau[p] == 0 || p+1 == m {
			continue
		}
		v := q.reflector(p, vbuf)
		trail := a.Slice(p, p+1, n-p, m-p-1)
		z := matrix.NewVectorFrom(zbuf[:m-p-1])
		matrix.Gemv(blas.Trans, 1, trail, v, 0, z)
		matrix.Ger(-q.tau[p], v, z, trail)
	}

	if o.pivoting {
		q.rank = 0
		for p = 0; p < k; p++ {
			if !(math.Abs(a.At(p, p)) > o.rankEps*r00) {
				break
			}
			q.rank++
		}
	} else {
		q.rank = p // every step taken accepted its column
	}

	used := q.Used()
	q.usedPos = make([]int, q.rank)
	for p = 0; p < q.rank; p++ {
		q.usedPos[p] = sort.SearchInts(used, q.perm[p])
	}
}

// independent reports whether column p still has a residual norm above thr
// on rows p..n−1. With thr zero only an exactly zero column fails.
func (q *QR) independent(p int, thr float64) bool {
	return matrix.Nrm2(q.a.Col(p).Slice(p, q.n-p)) > thr
}

// rotateToEnd moves column p to position end, shifting columns p+1..end
// one place left. perm follows the same rotation.
func (q *QR) rotateToEnd(p, end int) {
	for l := p; l < end; l++ {
		matrix.Swap(q.a.Col(l), q.a.Col(l+1))
		q.perm[l], q.perm[l+1] = q.perm[l+1], q.perm[l]
	}
}

// house builds reflector p from column p, rows p..n−1, and stores
// β = R[p,p] on the diagonal and the normalized tail below it.
func (q *QR) house(p int) {
	col := q.a.Col(p)
	alpha := col.AtVec(p)
	if p+1 == q.n {
		q.tau[p] = 0
		return
	}
	tail := col.Slice(p+1, q.n-p-1)
	xnorm := matrix.Nrm2(tail)
	if xnorm == 0 {
		q.tau[p] = 0 // already triangular: H = I
		return
	}
	beta := -math.Copysign(math.Hypot(alpha, xnorm), alpha)
	q.tau[p] = (beta - alpha) / beta
	matrix.Scal(1/(alpha-beta), tail)
	col.SetVec(p, beta)
}

// reflector returns vₚ (length n−p, leading 1) materialized in buf.
func (q *QR) reflector(p int, buf []float64) *matrix.Vector {
	v := matrix.NewVectorFrom(buf[:q.n-p])
	v.SetVec(0, 1)
	if q.n-p > 1 {
		matrix.Copy(v.Slice(1, q.n-p-1), q.a.Col(p).Slice(p+1, q.n-p-1))
	}

	return v
}

// applyReflector computes w ← Hₚ·w on rows p..n−1 of w.
func (q *QR) applyReflector(p int, w *matrix.Vector) {
	tau := q.tau[p]
	if tau == 0 {
		return
	}
	seg := w.Slice(p, q.n-p)
	s := seg.AtVec(0)
	if q.n-p > 1 {
		tail := q.a.Col(p).Slice(p+1, q.n-p-1)
		rest := seg.Slice(1, q.n-p-1)
		s += matrix.Dot(tail, rest)
		matrix.Axpy(-tau*s, tail, rest)
	}
	seg.SetVec(0, seg.AtVec(0)-tau*s)
}

// Dims returns the shape (n, m) of the factored matrix.
func (q *QR) Dims() (n, m int) { return q.n, q.m }

// Rank returns the numerical rank r.
func (q *QR) Rank() int { return q.rank }

// Used returns the original indices of the retained columns, increasing.
func (q *QR) Used() []int {
	used := append([]int(nil), q.perm[:q.rank]...)
	sort.Ints(used)

	return used
}

// Pivots returns the retained original column indices in elimination order.
// This is the row/column order of R().
func (q *QR) Pivots() []int {
	return append([]int(nil), q.perm[:q.rank]...)
}

// Dropped returns the original indices of the columns beyond the rank, increasing.
func (q *QR) Dropped() []int {
	dropped := append([]int(nil), q.perm[q.rank:]...)
	sort.Ints(dropped)

	return dropped
}

// Diagonal returns |R[p,p]| for p < min(n,m), in elimination order.
func (q *QR) Diagonal() []float64 {
	d := make([]float64, len(q.tau))
	for p := range d {
		d[p] = math.Abs(q.a.At(p, p))
	}

	return d
}

// R returns a copy of the leading r×r upper-triangular block (pivot order),
// or its transpose when transposed is true.
func (q *QR) R(transposed bool) *matrix.Matrix {
	r := q.rank
	out, _ := matrix.NewMatrix(r, r)
	var i, j int
	for j = 0; j < r; j++ {
		for i = 0; i <= j; i++ {
			out.Set(i, j, q.a.At(i, j))
		}
	}
	if transposed {
		return out.Transposed().Clone()
	}

	return out
}

// ApplyQt computes v ← Qᵀ·v in place (len(v) must be n).
func (q *QR) ApplyQt(v *matrix.Vector) {
	q.checkLen(opQR+".ApplyQt", v, q.n)
	for p := 0; p < len(q.tau); p++ {
		q.applyReflector(p, v)
	}
}

// ApplyQ computes v ← Q·v in place (len(v) must be n).
func (q *QR) ApplyQ(v *matrix.Vector) {
	q.checkLen(opQR+".ApplyQ", v, q.n)
	for p := len(q.tau) - 1; p >= 0; p-- {
		q.applyReflector(p, v)
	}
}

// SolveR solves R₁₁·v = v (NoTrans) or R₁₁ᵀ·v = v (Trans) in place, where
// R₁₁ is the leading r×r block and v is indexed in pivot order.
//
// Errors:
//   - matrix.ErrSingular if substitution meets a zero or overflowing pivot.
func (q *QR) SolveR(v *matrix.Vector, trans blas.Transpose) error {
	q.checkLen(opSolveR, v, q.rank)
	if q.rank == 0 {
		return nil
	}
	if err := matrix.SolveUpper(q.a.Slice(0, 0, q.rank, q.rank), v, trans); err != nil {
		return decompErrorf(opSolveR, err)
	}

	return nil
}

// LeastSquares solves min ‖X·b − y‖ over the retained columns.
//
// Implementation:
//   - Stage 1: w = Qᵀy.
//   - Stage 2: R₁₁·c = w[0:r] by back substitution (c in pivot order).
//   - Stage 3: scatter c into b in Used() order; e = w[r:n].
//
// Inputs:
//   - y: length n (not modified).
//   - b: length r, receives the coefficients of the Used() columns.
//   - e: length n−r or nil, receives the residual in Qᵀ coordinates
//     (‖e‖ equals the residual norm ‖y − X·b‖).
//
// Errors:
//   - matrix.ErrSingular from the triangular solve.
//   - panics (matrix.ErrDimensionMismatch) on wrong vector lengths.
func (q *QR) LeastSquares(y, b, e *matrix.Vector) error {
	q.checkLen(opLeastSquares, y, q.n)
	q.checkLen(opLeastSquares, b, q.rank)
	if e != nil {
		q.checkLen(opLeastSquares, e, q.n-q.rank)
	}
	w := y.Clone()
	q.ApplyQt(w)
	c := w.Slice(0, q.rank).Clone()
	if err := q.SolveR(c, blas.NoTrans); err != nil {
		return decompErrorf(opLeastSquares, err)
	}
	for p := 0; p < q.rank; p++ {
		b.SetVec(q.usedPos[p], c.AtVec(p))
	}
	if e != nil {
		matrix.Copy(e, w.Slice(q.rank, q.n-q.rank))
	}

	return nil
}

// checkLen panics with an error wrapping matrix.ErrDimensionMismatch.
func (q *QR) checkLen(tag string, v *matrix.Vector, want int) {
	if v == nil || v.Len() != want {
		got := -1
		if v != nil {
			got = v.Len()
		}
		panic(decompErrorf(tag, fmt.Errorf("len %d, want %d: %w", got, want, matrix.ErrDimensionMismatch)))
	}
}
