// Package costtable implements the per-position, per-regime dynamic
// programming table the optimal parser relaxes against (spec.md §3, §4.4).
package costtable

import (
	"math"

	"github.com/samber/lo"

	"github.com/musclesoft/dan3/internal/golomb"
)

// Inf is the "unreachable" cost sentinel. It is large enough that adding
// any single token's cost to it cannot wrap around, but small enough to
// stay well inside int range on 32-bit builds.
const Inf = math.MaxInt32 / 2

// Table holds bits/len/offset for every (position, regime) pair, across
// all golomb.BitOffsetNbr regimes. Regime r is only meaningful up to
// whatever nbrAllowed the caller configured; entries for disallowed
// regimes are left at +Inf and ignored by BestRegime.
type Table struct {
	n    int
	bits [][]int // bits[r][i]
	len_ [][]int // len_[r][i]
	off  [][]int // off[r][i]
}

// New allocates a table for n positions across golomb.BitOffsetNbr regimes,
// with position 0 preset per spec.md's base case: bits[0][r] = 8 (the first
// byte is always emitted raw), len[0][r] = 1, offset[0][r] = 0.
func New(n int) *Table {
	t := &Table{
		n:    n,
		bits: make([][]int, golomb.BitOffsetNbr),
		len_: make([][]int, golomb.BitOffsetNbr),
		off:  make([][]int, golomb.BitOffsetNbr),
	}
	for r := 0; r < golomb.BitOffsetNbr; r++ {
		bits := make([]int, n)
		lens := make([]int, n)
		offs := make([]int, n)
		for i := 1; i < n; i++ {
			bits[i] = Inf
		}
		if n > 0 {
			bits[0] = 8
			lens[0] = 1
			offs[0] = 0
		}
		t.bits[r] = bits
		t.len_[r] = lens
		t.off[r] = offs
	}
	return t
}

// Bits returns the current minimum bit-cost to cover position i under
// regime r.
func (t *Table) Bits(i, r int) int { return t.bits[r][i] }

// Get returns the full covering-token record at (i, r).
func (t *Table) Get(i, r int) (bits, length, offset int) {
	return t.bits[r][i], t.len_[r][i], t.off[r][i]
}

// Relax updates (i, r) to the candidate (cost, length, offset) iff cost
// strictly improves the current minimum, per spec.md §3's invariant that
// bits[i][r] only ever decreases during the forward scan. It reports
// whether the update was applied.
func (t *Table) Relax(i, r, cost, length, offset int) bool {
	if cost < t.bits[r][i] {
		t.bits[r][i] = cost
		t.len_[r][i] = length
		t.off[r][i] = offset
		return true
	}
	return false
}

// SetLen clears the covering token at (i, r), used by the trim pass to
// mark positions swallowed by a longer token as non-emitting.
func (t *Table) SetLen(i, r, length, offset int) {
	t.len_[r][i] = length
	t.off[r][i] = offset
}

// BestRegime returns the regime r in 0..nbrAllowed-1 with the smallest
// bits[n-1][r], breaking ties toward the smallest r (spec.md §4.4 and the
// §9 design note: "must not deviate from the selection rule"). ok is false
// iff every allowed regime is unreachable (+Inf), i.e. encoding failed.
func (t *Table) BestRegime(nbrAllowed int) (r int, bits int, ok bool) {
	if t.n == 0 {
		return 0, 0, true
	}
	last := t.n - 1
	regimes := make([]int, nbrAllowed)
	for i := range regimes {
		regimes[i] = i
	}
	best := lo.MinBy(regimes, func(a, b int) bool {
		return t.bits[a][last] < t.bits[b][last]
	})
	if t.bits[best][last] >= Inf {
		return 0, 0, false
	}
	return best, t.bits[best][last], true
}
