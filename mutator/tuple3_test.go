package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func newIntTriple() *mutator.Tuple3[
	int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None,
	int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None,
	int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None,
] {
	return mutator.NewTuple3[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewInt32(), mutator.NewInt32(), mutator.NewInt32())
}

func TestTuple3ComplexityIsAdditivePlusBase(t *testing.T) {
	m := newIntTriple()
	value := mutator.Triple[int32, int32, int32]{First: 1, Second: 2, Third: 3}
	cache, ok := m.Validate(&value)
	require.True(t, ok)

	expected := 1.0 + m.First.MinComplexity() + m.Second.MinComplexity() + m.Third.MinComplexity()
	assert.Equal(t, expected, m.Complexity(&value, &cache))
}

func TestTuple3UnmutateRoundTrip(t *testing.T) {
	m := newIntTriple()
	value, _ := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&value)
	require.True(t, ok)

	for trial := 0; trial < 10; trial++ {
		original := value
		token, _ := m.RandomMutate(&value, &cache, m.MaxComplexity())
		m.Unmutate(&value, &cache, token)
		assert.Equal(t, original, value, "trial %d", trial)
	}
}

func TestTuple3ValidateRejectsWhenAnyFieldFails(t *testing.T) {
	inner := mutator.NewIntWithinRange[int32](0, 10)
	m := mutator.NewTuple3[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewInt32(), mutator.NewInt32(), inner)

	value := mutator.Triple[int32, int32, int32]{First: 1, Second: 2, Third: 500}
	_, ok := m.Validate(&value)
	assert.False(t, ok)
}
