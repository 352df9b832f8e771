package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestBoxDelegatesComplexityToInner(t *testing.T) {
	inner := mutator.NewInt32()
	m := mutator.NewBox[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](inner)

	assert.Equal(t, inner.MinComplexity(), m.MinComplexity())
	assert.Equal(t, inner.MaxComplexity(), m.MaxComplexity())
}

func TestBoxUnmutateRoundTripThroughIndirection(t *testing.T) {
	inner := mutator.NewInt32()
	m := mutator.NewBox[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](inner)

	value, _, ok := m.OrderedArbitrary(&mutator.IntArbitraryStep{}, m.MaxComplexity())
	require.True(t, ok)
	cache, ok := m.Validate(&value)
	require.True(t, ok)

	original := *value
	token, _ := m.RandomMutate(&value, &cache, m.MaxComplexity())
	m.Unmutate(&value, &cache, token)
	assert.Equal(t, original, *value)
}
