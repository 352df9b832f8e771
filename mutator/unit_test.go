package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corefuzz/corefuzz/mutator"
)

func TestUnitAlwaysProducesItsConst(t *testing.T) {
	m := mutator.NewUnit("fixed")
	v, cplx := m.RandomArbitrary(0)
	assert.Equal(t, "fixed", v)
	assert.Zero(t, cplx)
	assert.Zero(t, m.MaxComplexity())
}

func TestUnitNeverMutates(t *testing.T) {
	m := mutator.NewUnit(7)
	v := 7
	cache := mutator.None{}
	step := m.DefaultMutationStep(&v, &cache)
	_, _, ok := m.OrderedMutate(&v, &cache, &step, 0)
	assert.False(t, ok)
	_, _ = m.RandomMutate(&v, &cache, 0)
	assert.Equal(t, 7, v, "Unit must never change the value even via RandomMutate")
}
