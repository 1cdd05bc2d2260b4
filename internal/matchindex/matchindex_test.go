package matchindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPacksBothBytes(t *testing.T) {
	assert.Equal(t, 0x4142, Key(0x41, 0x42))
	assert.Equal(t, 0x0000, Key(0x00, 0x00))
	assert.Equal(t, 0xFFFF, Key(0xFF, 0xFF))
}

func TestCandidatesMostRecentFirst(t *testing.T) {
	idx := New(16)
	key := Key('a', 'b')
	idx.Insert(key, 2)
	idx.Insert(key, 5)
	idx.Insert(key, 9)

	var got []int
	idx.Candidates(key, 10, 100, func(p int) bool {
		got = append(got, p)
		return true
	})

	assert.Equal(t, []int{9, 5, 2}, got)
}

func TestCandidatesPrunesBeyondMaxOffset(t *testing.T) {
	idx := New(16)
	key := Key('a', 'b')
	idx.Insert(key, 1)
	idx.Insert(key, 8)

	var got []int
	// i=10, maxOffset=3: position 8 (offset 2) is in range, position 1
	// (offset 9) is not and must stop the walk rather than being visited.
	idx.Candidates(key, 10, 3, func(p int) bool {
		got = append(got, p)
		return true
	})

	assert.Equal(t, []int{8}, got)
}

func TestCandidatesVisitFalseStopsEarly(t *testing.T) {
	idx := New(16)
	key := Key('a', 'b')
	idx.Insert(key, 1)
	idx.Insert(key, 2)
	idx.Insert(key, 3)

	var got []int
	idx.Candidates(key, 4, 100, func(p int) bool {
		got = append(got, p)
		return false
	})

	assert.Equal(t, []int{3}, got)
}

func TestCandidatesEmptyChainVisitsNothing(t *testing.T) {
	idx := New(16)
	var got []int
	idx.Candidates(Key('x', 'y'), 5, 100, func(p int) bool {
		got = append(got, p)
		return true
	})
	assert.Empty(t, got)
}

func TestDistinctKeysDoNotShareChains(t *testing.T) {
	idx := New(16)
	idx.Insert(Key('a', 'b'), 1)
	idx.Insert(Key('c', 'd'), 2)

	var got []int
	idx.Candidates(Key('a', 'b'), 10, 100, func(p int) bool {
		got = append(got, p)
		return true
	})
	assert.Equal(t, []int{1}, got)
}

func TestResetClearsChains(t *testing.T) {
	idx := New(16)
	key := Key('a', 'b')
	idx.Insert(key, 1)
	idx.Reset()

	var got []int
	idx.Candidates(key, 10, 100, func(p int) bool {
		got = append(got, p)
		return true
	})
	assert.Empty(t, got)
}
