// Package matchindex implements the two-byte-key hash-chained match list
// used by the optimal parser to find back-reference candidates (spec.md
// §4.3). Instead of a map of slices the chain is arena-indexed: one next
// pointer per source position, preallocated up front, so insertion and
// pruning never touch the host allocator mid-scan.
package matchindex

// Index holds, for every two-byte key (0..65535), the most recent source
// position whose trailing pair produced that key, plus a singly linked
// chain of older positions sharing the same key.
type Index struct {
	head []int32 // head[key] = most recent position with that key, or -1
	next []int32 // next[pos] = next-older position sharing pos's key, or -1
}

const noPos = int32(-1)

// New returns an Index sized for a source buffer of up to n bytes.
func New(n int) *Index {
	idx := &Index{
		head: make([]int32, 1<<16),
		next: make([]int32, n),
	}
	idx.Reset()
	return idx
}

// Reset releases every chain, restoring the index to its just-allocated
// state. The backing arrays are reused, not reallocated.
func (idx *Index) Reset() {
	for i := range idx.head {
		idx.head[i] = noPos
	}
	for i := range idx.next {
		idx.next[i] = noPos
	}
}

// Key forms the two-byte hash key from the pair ending at position i
// (i.e. (src[i-1], src[i])). Callers must have i >= 1.
func Key(b0, b1 byte) int {
	return int(b0)<<8 | int(b1)
}

// Insert adds position pos under key to the head of its chain. pos must
// be inserted only after all lookups against it have already examined the
// chain, per spec.md §4.3 ("after examining candidates at position i, the
// position itself is inserted at the head").
func (idx *Index) Insert(key, pos int) {
	idx.next[pos] = idx.head[key]
	idx.head[key] = int32(pos)
}

// Candidates calls visit once per candidate position sharing key, ordered
// most-recent (largest position) first, stopping as soon as i-p exceeds
// maxOffset — positions only grow more distant from there on, so the rest
// of the chain is pruned without being walked or freed. visit returns
// false to stop early (e.g. once a regime-specific bound is exceeded).
func (idx *Index) Candidates(key, i, maxOffset int, visit func(p int) bool) {
	for p := idx.head[key]; p != noPos; p = idx.next[p] {
		if i-int(p) > maxOffset {
			return
		}
		if !visit(int(p)) {
			return
		}
	}
}
