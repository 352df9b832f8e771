package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestAlternationProducesValuesFromEitherAlternative(t *testing.T) {
	m := mutator.NewAlternation[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewIntWithinRange[int32](0, 10),
		mutator.NewIntWithinRange[int32](1000, 1010),
	)
	m.SeedWith(8)

	for i := 0; i < 20; i++ {
		v, _ := m.RandomArbitrary(m.MaxComplexity())
		inLow := v >= 0 && v <= 10
		inHigh := v >= 1000 && v <= 1010
		assert.True(t, inLow || inHigh, "value %d must come from one of the two alternatives", v)
	}
}

func TestAlternationUnmutateRoundTrip(t *testing.T) {
	m := mutator.NewAlternation[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewIntWithinRange[int32](0, 10),
		mutator.NewIntWithinRange[int32](1000, 1010),
	)
	m.SeedWith(9)

	for trial := 0; trial < 30; trial++ {
		value, _ := m.RandomArbitrary(m.MaxComplexity())
		cache, ok := m.Validate(&value)
		require.True(t, ok)

		original := value
		token, _ := m.RandomMutate(&value, &cache, m.MaxComplexity())
		m.Unmutate(&value, &cache, token)

		assert.Equal(t, original, value, "trial %d", trial)
	}
}

func TestAlternationValidateTriesEachAlternativeInTurn(t *testing.T) {
	m := mutator.NewAlternation[int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](
		mutator.NewIntWithinRange[int32](0, 10),
		mutator.NewIntWithinRange[int32](1000, 1010),
	)
	v := int32(1005)
	_, ok := m.Validate(&v)
	assert.True(t, ok)

	outOfRange := int32(500)
	_, ok = m.Validate(&outOfRange)
	assert.False(t, ok)
}
