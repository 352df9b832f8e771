package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
	"github.com/corefuzz/corefuzz/mutator/mapping"
)

func newIntMapAdapter() *mapping.MapAdapterMutator[int32, int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None] {
	return mapping.NewMapAdapter[int32, int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewInt32(), mutator.NewInt32(), 0, 5)
}

func TestMapAdapterProjectsPairsIntoAGoMap(t *testing.T) {
	m := newIntMapAdapter()
	for i := 0; i < 10; i++ {
		v, _ := m.RandomArbitrary(m.MaxComplexity())
		assert.LessOrEqual(t, len(v), 5)
	}
}

func TestMapAdapterUnmutateRoundTrip(t *testing.T) {
	m := newIntMapAdapter()
	v := map[int32]int32{1: 10, 2: 20}
	cache, ok := m.Validate(&v)
	require.True(t, ok)

	original := map[int32]int32{1: 10, 2: 20}
	token, _ := m.RandomMutate(&v, &cache, m.MaxComplexity())
	m.Unmutate(&v, &cache, token)
	assert.Equal(t, original, v)
}

func newIntSetAdapter() *mapping.SetAdapterMutator[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None] {
	return mapping.NewSetAdapter[int32](mutator.NewInt32(), 0, 5)
}

func TestSetAdapterProjectsElementsIntoAGoSet(t *testing.T) {
	m := newIntSetAdapter()
	for i := 0; i < 10; i++ {
		v, _ := m.RandomArbitrary(m.MaxComplexity())
		assert.LessOrEqual(t, len(v), 5)
		for elem := range v {
			_ = elem
		}
	}
}

func TestSetAdapterUnmutateRoundTrip(t *testing.T) {
	m := newIntSetAdapter()
	v := map[int32]struct{}{1: {}, 2: {}}
	cache, ok := m.Validate(&v)
	require.True(t, ok)

	original := map[int32]struct{}{1: {}, 2: {}}
	token, _ := m.RandomMutate(&v, &cache, m.MaxComplexity())
	m.Unmutate(&v, &cache, token)
	assert.Equal(t, original, v)
}
