// Package parser implements the DAN3 optimal-parse forward scan: the
// per-position relaxations against the cost table, regime selection, and
// the trim pass that resolves overlapping tokens (spec.md §4.4).
package parser

import (
	"github.com/musclesoft/dan3/internal/costtable"
	"github.com/musclesoft/dan3/internal/golomb"
	"github.com/musclesoft/dan3/internal/matchindex"
)

// Options configures a parse, mirroring spec.md §6's caller-supplied
// configuration (none of this is encoded in the wire format).
type Options struct {
	MaxOffsetBits int  // 9..16, narrows the regimes considered
	RLE           bool // enables the literal-run relaxation
	Fast          bool // enables the length-1-run fast path
}

// NbrAllowed returns how many of the eight regimes (0..NbrAllowed-1) are
// in play for these options.
func (o Options) NbrAllowed() int {
	return o.MaxOffsetBits - golomb.BitOffsetMin + 1
}

// Token is one emitted unit after the trim pass: a literal (Length==1,
// Offset==0), a literal run (Length>1, Offset==0), or a back-reference
// (Offset>0). Pos is the position of the last byte the token covers.
type Token struct {
	Pos    int
	Length int
	Offset int
}

// Result is the outcome of a successful parse.
type Result struct {
	N       int
	Regime  int // r*, the selected offset-encoding regime
	Bits    int // bits[n-1][r*]: total bit-cost under the selected regime
	Tokens  []Token
	Table   *costtable.Table // retained for optimality-under-fixed-regime tests
}

// Parse runs the forward DP scan over src, selects the best regime, trims
// overlapping tokens, and returns the ordered token list ready for bit
// emission. It never touches bitio or golomb writers directly; it only
// computes costs with golomb.GammaBits/OffsetBits.
func Parse(src []byte, opts Options) (*Result, error) {
	n := len(src)
	if n == 0 {
		return &Result{N: 0}, nil
	}

	nbrAllowed := opts.NbrAllowed()
	table := costtable.New(n)
	idx := matchindex.New(n)
	maxOffsetForIndex := golomb.MaxOffset3(nbrAllowed - 1)

	for i := 1; i < n; i++ {
		relaxLiteral(table, nbrAllowed, i)
		if opts.RLE {
			relaxLiteralRun(table, nbrAllowed, src, i)
		}
		relaxShortBackref(table, nbrAllowed, src, i)

		usedFast := opts.Fast && relaxFastRun(table, nbrAllowed, src, i)
		if !usedFast {
			relaxMatchList(table, idx, nbrAllowed, src, i, maxOffsetForIndex)
		}

		if i >= 1 {
			key := matchindex.Key(src[i-1], src[i])
			idx.Insert(key, i)
		}
	}

	r, bits, ok := table.BestRegime(nbrAllowed)
	if !ok {
		return nil, ErrUnreachable
	}

	tokens := trim(table, r, n)

	return &Result{N: n, Regime: r, Bits: bits, Tokens: tokens, Table: table}, nil
}

// relaxLiteral implements spec.md §4.4 relaxation 1.
func relaxLiteral(table *costtable.Table, nbrAllowed, i int) {
	for r := 0; r < nbrAllowed; r++ {
		cost := table.Bits(i-1, r) + 1 + 8
		table.Relax(i, r, cost, 1, 0)
	}
}

// relaxLiteralRun implements spec.md §4.4 relaxation 2.
func relaxLiteralRun(table *costtable.Table, nbrAllowed int, src []byte, i int) {
	if i < golomb.RawMin {
		return
	}
	kmax := golomb.RawMax
	if i < kmax {
		kmax = i
	}
	kmin := golomb.RawMin + 1
	if golomb.RawMin > 1 {
		kmin = golomb.RawMin
	}
	for k := kmax; k >= kmin; k-- {
		pred := i - k
		if pred < 0 {
			continue
		}
		for r := 0; r < nbrAllowed; r++ {
			cost := table.Bits(pred, r) + 1 + golomb.BitGolombMax + 1 + 8 + k*8
			table.Relax(i, r, cost, k, 0)
		}
	}
}

// relaxShortBackref implements spec.md §4.4 relaxation 3.
func relaxShortBackref(table *costtable.Table, nbrAllowed int, src []byte, i int) {
	kmax := golomb.MaxOffset0
	if i < kmax {
		kmax = i
	}
	for k := 1; k <= kmax; k++ {
		if src[i] != src[i-k] {
			continue
		}
		for r := 0; r < nbrAllowed; r++ {
			cost := table.Bits(i-1, r) + 1 + golomb.GammaBits(1) + golomb.OffsetBits(k, 1, r)
			table.Relax(i, r, cost, 1, k)
		}
	}
}

// relaxFastRun implements the fast-path heuristic, gated strictly on regime
// 0's state per dan3final.c:822 (`optimals[i-1].offset[0] == 1 &&
// optimals[i-1].len[0] > 2`, reached only when `prev_match_index ==
// match_index`, i.e. three consecutive equal bytes, not just the two the
// match-list hash key itself guarantees). Regime 0 alone decides whether the
// run is extended; the single resulting (length, offset=1) candidate is then
// relaxed against every regime's own column, exactly as update_optimal does
// for any other candidate. Other regimes never gate or veto this decision,
// keeping each regime's column independent of the others.
func relaxFastRun(table *costtable.Table, nbrAllowed int, src []byte, i int) bool {
	if i < 2 || src[i] != src[i-1] || src[i-1] != src[i-2] {
		return false
	}
	_, length, offset := table.Get(i-1, 0)
	if offset != 1 || length <= 2 {
		return false
	}
	newLen := length + 1
	if newLen > golomb.MaxGamma {
		return false
	}
	relaxAtLength(table, nbrAllowed, i, 1, newLen)
	return true
}

// relaxMatchList implements spec.md §4.4 relaxation 4. Length 2 is always
// relaxed once a candidate clears the offset bound: both its bytes are
// already guaranteed equal by construction of the two-byte key the match
// index is keyed on, so no further comparison is needed there. Extension
// beyond length 2 checks one new byte per step, per the "while i-len-offset
// >= 0 and src[i-len] == src[i-len-offset]" condition.
func relaxMatchList(table *costtable.Table, idx *matchindex.Index, nbrAllowed int, src []byte, i, maxOffset int) {
	if i < 1 {
		return
	}
	key := matchindex.Key(src[i-1], src[i])
	idx.Candidates(key, i, maxOffset, func(p int) bool {
		offset := i - p
		if offset > maxOffset {
			return false
		}

		relaxAtLength(table, nbrAllowed, i, offset, 2)

		length := 2
		for length < golomb.MaxGamma {
			si := i - length
			sj := si - offset
			if si < 0 || sj < 0 {
				break
			}
			if src[si] != src[sj] {
				break
			}
			length++
			relaxAtLength(table, nbrAllowed, i, offset, length)
		}
		return true
	})
}

func relaxAtLength(table *costtable.Table, nbrAllowed, i, offset, length int) {
	pred := i - length
	if pred < 0 {
		return
	}
	for r := 0; r < nbrAllowed; r++ {
		maxOffset3 := golomb.MaxOffset3(r)
		if offset > golomb.MaxOffset2 && offset > maxOffset3 {
			continue
		}
		cost := table.Bits(pred, r) + 1 + golomb.GammaBits(length) + golomb.OffsetBits(offset, length, r)
		table.Relax(i, r, cost, length, offset)
	}
}

// trim walks backward from n-1 along the chosen regime's len[] chain,
// zeroing out the len/offset of every position a longer token swallows,
// per spec.md §4.4's cleanup pass.
func trim(table *costtable.Table, r, n int) []Token {
	var tokens []Token

	i := n - 1
	for i >= 0 {
		_, length, offset := table.Get(i, r)
		if length <= 0 {
			length = 1
		}
		tokens = append(tokens, Token{Pos: i, Length: length, Offset: offset})
		start := i - length + 1
		for j := start; j < i; j++ {
			if j >= 0 {
				table.SetLen(j, r, 0, 0)
			}
		}
		i = start - 1
	}

	// tokens were collected back-to-front; reverse into forward order.
	for l, rr := 0, len(tokens)-1; l < rr; l, rr = l+1, rr-1 {
		tokens[l], tokens[rr] = tokens[rr], tokens[l]
	}
	return tokens
}
