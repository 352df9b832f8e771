package fenwick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/pool/fenwick"
)

func TestTreeTotalTracksUpdates(t *testing.T) {
	tr := fenwick.New(4)
	assert.Zero(t, tr.Total())

	tr.Update(0, 1)
	tr.Update(1, 2)
	tr.Update(2, 3)
	tr.Update(3, 4)
	assert.Equal(t, float64(10), tr.Total())

	tr.Update(1, 5)
	assert.Equal(t, float64(5), tr.At(1))
	assert.Equal(t, float64(13), tr.Total())
}

func TestTreePrefixSum(t *testing.T) {
	tr := fenwick.New(5)
	for i := 0; i < 5; i++ {
		tr.Update(i, float64(i+1))
	}
	// 1+2+3 = 6 over indices [0,2]
	assert.Equal(t, float64(6), tr.PrefixSum(2))
	assert.Equal(t, tr.Total(), tr.PrefixSum(4))
}

func TestFirstIndexPastPrefixSumCoversWholeRange(t *testing.T) {
	tr := fenwick.New(3)
	tr.Update(0, 1)
	tr.Update(1, 1)
	tr.Update(2, 1)

	seen := make(map[int]bool)
	for _, target := range []float64{0, 1, 1.5, 2, 2.9} {
		idx, ok := tr.FirstIndexPastPrefixSum(target)
		require.True(t, ok)
		seen[idx] = true
	}
	assert.Len(t, seen, 3, "targets spanning the full weight range should reach every index")
}

func TestFirstIndexPastPrefixSumOutOfRange(t *testing.T) {
	tr := fenwick.New(2)
	tr.Update(0, 1)
	tr.Update(1, 1)
	_, ok := tr.FirstIndexPastPrefixSum(10)
	assert.False(t, ok)
}

func TestGrowPreservesExistingWeights(t *testing.T) {
	tr := fenwick.New(2)
	tr.Update(0, 3)
	tr.Update(1, 4)
	tr.Grow(4)
	assert.Equal(t, 4, tr.Len())
	assert.Equal(t, float64(7), tr.Total())
	tr.Update(3, 1)
	assert.Equal(t, float64(8), tr.Total())
}
