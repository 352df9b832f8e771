package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestCharWithinRangeStaysInBounds(t *testing.T) {
	m := mutator.NewCharWithinRange('a', 'z')
	m.SeedWith(7)

	for i := 0; i < 50; i++ {
		v, _ := m.RandomArbitrary(m.MaxComplexity())
		assert.GreaterOrEqual(t, v, rune('a'))
		assert.LessOrEqual(t, v, rune('z'))
		_, ok := m.Validate(&v)
		assert.True(t, ok)
	}
}

func TestCharWithinRangeValidateRejectsOutOfRange(t *testing.T) {
	m := mutator.NewCharWithinRange('0', '9')
	outside := rune('x')
	_, ok := m.Validate(&outside)
	assert.False(t, ok)
}

func TestCharWithinRangeSingleValueNeverMutates(t *testing.T) {
	m := mutator.NewCharWithinRange('Q', 'Q')
	v := rune('Q')
	cache := mutator.None{}
	step := m.DefaultMutationStep(&v, &cache)
	_, _, ok := m.OrderedMutate(&v, &cache, &step, m.MaxComplexity())
	assert.False(t, ok, "a single-valued range mutator has nothing to mutate to")
}

func TestCharWithinRangeUnmutateRoundTrip(t *testing.T) {
	m := mutator.NewCharWithinRange('a', 'z')
	m.SeedWith(3)
	v := rune('m')
	cache := mutator.None{}
	token, _ := m.RandomMutate(&v, &cache, m.MaxComplexity())
	m.Unmutate(&v, &cache, token)
	require.Equal(t, rune('m'), v)
}

func TestNewCharWithinRangePanicsOnInvertedRange(t *testing.T) {
	assert.Panics(t, func() {
		mutator.NewCharWithinRange('z', 'a')
	})
}
