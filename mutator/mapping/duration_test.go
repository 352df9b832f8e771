package mapping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator/mapping"
)

func TestDurationMutatorStaysWithinBounds(t *testing.T) {
	m := mapping.NewDurationMutator(uint64(time.Hour))
	for i := 0; i < 20; i++ {
		v, _ := m.RandomArbitrary(m.MaxComplexity())
		assert.GreaterOrEqual(t, v, time.Duration(0))
		assert.LessOrEqual(t, v, time.Hour)
	}
}

func TestDurationMutatorUnmutateRoundTrip(t *testing.T) {
	m := mapping.NewDurationMutator(uint64(time.Hour))
	v, _ := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&v)
	require.True(t, ok)

	original := v
	token, _ := m.RandomMutate(&v, &cache, m.MaxComplexity())
	m.Unmutate(&v, &cache, token)
	assert.Equal(t, original, v)
}

func TestDurationMutatorValidateRejectsNegative(t *testing.T) {
	m := mapping.NewDurationMutator(uint64(time.Hour))
	v := -time.Second
	_, ok := m.Validate(&v)
	assert.False(t, ok)
}
