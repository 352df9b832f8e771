package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestRecursiveDelegatesToBuiltMutatorOnceReady(t *testing.T) {
	m := mutator.NewRecursive(func(recurse mutator.Mutator[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None]) mutator.Mutator[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None] {
		_ = recurse // this fixture's grammar does not recurse; expr_test.go exercises genuine self-reference
		return mutator.NewInt32()
	})

	assert.Equal(t, mutator.NewInt32().MaxComplexity(), m.MaxComplexity())

	v, cplx := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&v)
	require.True(t, ok)
	assert.Equal(t, cplx, m.Complexity(&v, &cache))
}

func TestRecursiveUnmutateRoundTrip(t *testing.T) {
	m := mutator.NewRecursive(func(recurse mutator.Mutator[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None]) mutator.Mutator[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None] {
		return mutator.NewInt32()
	})

	v, _ := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&v)
	require.True(t, ok)

	original := v
	token, _ := m.RandomMutate(&v, &cache, m.MaxComplexity())
	m.Unmutate(&v, &cache, token)
	assert.Equal(t, original, v)
}

func TestRecurToHandleUsedBeforeBuildReturnsPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = mutator.NewRecursive(func(recurse mutator.Mutator[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None]) mutator.Mutator[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None] {
			v := int32(0)
			recurse.Validate(&v) // self is not assigned yet: must panic, not deadlock or silently misbehave
			return mutator.NewInt32()
		})
	})
}
