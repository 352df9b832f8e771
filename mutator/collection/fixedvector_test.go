package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
	"github.com/corefuzz/corefuzz/mutator/collection"
)

func newFixedTrio() *collection.FixedVector[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None] {
	return collection.NewFixedVector[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewInt32(), mutator.NewInt32(), mutator.NewInt32())
}

func TestFixedVectorNeverChangesLength(t *testing.T) {
	m := newFixedTrio()
	m.SeedWith(4)
	for i := 0; i < 20; i++ {
		v, _ := m.RandomArbitrary(m.MaxComplexity())
		assert.Len(t, v, 3)
		cache, ok := m.Validate(&v)
		require.True(t, ok)
		_, _ = m.RandomMutate(&v, &cache, m.MaxComplexity())
		assert.Len(t, v, 3, "RandomMutate must preserve the fixed length even via the Replace case")
	}
}

func TestFixedVectorValidateRejectsWrongLength(t *testing.T) {
	m := newFixedTrio()
	tooShort := []int32{1, 2}
	_, ok := m.Validate(&tooShort)
	assert.False(t, ok)
}

func TestFixedVectorUnmutateRoundTrip(t *testing.T) {
	m := newFixedTrio()
	m.SeedWith(6)

	for trial := 0; trial < 30; trial++ {
		value, _ := m.RandomArbitrary(m.MaxComplexity())
		cache, ok := m.Validate(&value)
		require.True(t, ok)

		original := append([]int32(nil), value...)
		token, _ := m.RandomMutate(&value, &cache, m.MaxComplexity())
		m.Unmutate(&value, &cache, token)

		assert.Equal(t, original, value, "trial %d", trial)
	}
}

func TestFixedVectorComplexityIsAdditiveOverPositions(t *testing.T) {
	m := newFixedTrio()
	value := []int32{1, 2, 3}
	cache, ok := m.Validate(&value)
	require.True(t, ok)
	assert.Equal(t, 1.0+3*m.Elems[0].MinComplexity(), m.Complexity(&value, &cache))
}
