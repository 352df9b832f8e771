package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

// shape is a minimal tagged-union test fixture: either a circle (radius) or
// a square (side), each carrying an int32 payload.
type shape struct {
	isCircle bool
	radius   int32
	side     int32
}

func circleMutator() *mutator.EnumSingleVariant[shape, int32, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None] {
	return mutator.NewEnumSingleVariant[shape, int32](
		mutator.NewInt32(),
		func(s *shape) (*int32, bool) {
			if !s.isCircle {
				return nil, false
			}
			return &s.radius, true
		},
		func(s *shape, v int32) { s.isCircle = true; s.radius = v },
	)
}

func TestEnumSingleVariantValidateRejectsOtherVariant(t *testing.T) {
	m := circleMutator()
	sq := shape{isCircle: false, side: 4}
	_, ok := m.Validate(&sq)
	assert.False(t, ok)
}

func TestEnumSingleVariantValidateAcceptsItsVariant(t *testing.T) {
	m := circleMutator()
	c := shape{isCircle: true, radius: 3}
	_, ok := m.Validate(&c)
	assert.True(t, ok)
}

func TestEnumSingleVariantUnmutateRoundTrip(t *testing.T) {
	m := circleMutator()
	m.Inner.(interface{ SeedWith(int64) }).SeedWith(21)

	c := shape{isCircle: true, radius: 5}
	cache, ok := m.Validate(&c)
	require.True(t, ok)

	original := c
	token, _ := m.RandomMutate(&c, &cache, m.MaxComplexity())
	m.Unmutate(&c, &cache, token)
	assert.Equal(t, original, c)
}

func TestEnumSingleVariantDelegatesComplexityToInner(t *testing.T) {
	m := circleMutator()
	c := shape{isCircle: true, radius: 5}
	cache, ok := m.Validate(&c)
	require.True(t, ok)
	assert.Equal(t, m.Inner.Complexity(&c.radius, &cache), m.Complexity(&c, &cache))
}
