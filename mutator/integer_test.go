package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestIntUnmutateRoundTrip(t *testing.T) {
	m := mutator.NewInt32()
	m.SeedWith(42)

	value, cplx := m.RandomArbitrary(32)
	require.Equal(t, float64(32), cplx)
	cache, ok := m.Validate(&value)
	require.True(t, ok)

	original := value
	step := m.DefaultMutationStep(&value, &cache)
	token, _, ok := m.OrderedMutate(&value, &cache, &step, 32)
	require.True(t, ok)
	assert.NotEqual(t, original, value, "OrderedMutate's first move (+1) should change the value")

	m.Unmutate(&value, &cache, token)
	assert.Equal(t, original, value, "Unmutate must exactly reverse the mutation")
}

func TestIntComplexityBoundedByBitWidth(t *testing.T) {
	m := mutator.NewUint8()
	assert.Equal(t, float64(8), m.MinComplexity())
	assert.Equal(t, float64(8), m.MaxComplexity())

	value, cplx := m.RandomArbitrary(8)
	assert.Equal(t, float64(8), cplx)
	_ = value
}

func TestIntRejectsBudgetBelowMinComplexity(t *testing.T) {
	m := mutator.NewInt64()
	var step mutator.IntArbitraryStep
	_, _, ok := m.OrderedArbitrary(&step, 4)
	assert.False(t, ok, "a budget below MinComplexity must be rejected, not silently rounded up")
}

func TestIntOrderedArbitraryTriesSpecialValuesFirst(t *testing.T) {
	m := mutator.NewInt16()
	step := m.DefaultArbitraryStep()

	v0, _, ok := m.OrderedArbitrary(&step, 16)
	require.True(t, ok)
	assert.Equal(t, int16(0), v0)

	v1, _, ok := m.OrderedArbitrary(&step, 16)
	require.True(t, ok)
	assert.Equal(t, int16(1), v1)
}
