package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestBasicEnumOnlyProducesKnownVariants(t *testing.T) {
	m := mutator.NewBasicEnum("red", "green", "blue")
	m.SeedWith(7)

	for i := 0; i < 20; i++ {
		v, cplx := m.RandomArbitrary(m.MaxComplexity())
		assert.Contains(t, []string{"red", "green", "blue"}, v)
		assert.Equal(t, 1.0, cplx)
	}
}

func TestBasicEnumValidateRejectsUnknownVariant(t *testing.T) {
	m := mutator.NewBasicEnum("red", "green", "blue")
	v := "purple"
	_, ok := m.Validate(&v)
	assert.False(t, ok)
}

func TestBasicEnumUnmutateRoundTrip(t *testing.T) {
	m := mutator.NewBasicEnum("a", "b", "c")
	m.SeedWith(11)

	v := "a"
	cache, ok := m.Validate(&v)
	require.True(t, ok)

	original := v
	token, _ := m.RandomMutate(&v, &cache, m.MaxComplexity())
	m.Unmutate(&v, &cache, token)
	assert.Equal(t, original, v)
}

func TestBasicEnumOrderedArbitraryEnumeratesEveryVariantOnce(t *testing.T) {
	m := mutator.NewBasicEnum("a", "b", "c")
	step := m.DefaultArbitraryStep()

	seen := map[string]bool{}
	for {
		v, _, ok := m.OrderedArbitrary(&step, m.MaxComplexity())
		if !ok {
			break
		}
		seen[v] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)
}

func TestBasicEnumRandomMutateAlwaysPicksADifferentVariant(t *testing.T) {
	m := mutator.NewBasicEnum("a", "b")
	m.SeedWith(5)

	v := "a"
	cache, _ := m.Validate(&v)
	for i := 0; i < 10; i++ {
		before := v
		_, _ = m.RandomMutate(&v, &cache, m.MaxComplexity())
		assert.NotEqual(t, before, v)
	}
}
