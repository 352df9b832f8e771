package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestTuple2ComplexityIsAdditivePlusBase(t *testing.T) {
	m := mutator.NewTuple2[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewInt32(), mutator.NewInt32())

	assert.Equal(t, m.First.MinComplexity()+m.Second.MinComplexity()+1, m.MinComplexity())
	assert.Equal(t, m.First.MaxComplexity()+m.Second.MaxComplexity()+1, m.MaxComplexity())
}

func TestTuple2UnmutateRoundTrip(t *testing.T) {
	m := mutator.NewTuple2[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewInt32(), mutator.NewInt32())

	value, _ := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&value)
	require.True(t, ok)

	original := value
	token, _ := m.RandomMutate(&value, &cache, m.MaxComplexity())
	m.Unmutate(&value, &cache, token)
	assert.Equal(t, original, value, "Unmutate must restore both fields exactly")
}

func TestTuple2ValidateRecomputesComplexityFromFields(t *testing.T) {
	m := mutator.NewTuple2[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewInt32(), mutator.NewInt32())

	value := mutator.Pair[int32, int32]{First: 1, Second: 2}
	cache, ok := m.Validate(&value)
	require.True(t, ok)
	assert.Equal(t, m.Complexity(&value, &cache), m.First.MinComplexity()+m.Second.MinComplexity()+1)
}
