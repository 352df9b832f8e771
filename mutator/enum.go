package mutator

import (
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
)

// BasicEnum mutates a value by picking among a fixed, caller-supplied list
// of variants, with equal complexity for every variant. It does not look
// inside the variants; pair it with EnumSingleVariant (see singlevariant.go)
// when variants carry payloads that need their own mutators.
type BasicEnum[V comparable] struct {
	Variants []V
	rng      *rand.Rand
}

// NewBasicEnum builds an enum mutator over variants. Requires at least one
// variant, since a Mutator must be able to produce a value.
func NewBasicEnum[V comparable](variants ...V) *BasicEnum[V] {
	invariant.Precondition(len(variants) > 0, "BasicEnum requires at least one variant")
	return &BasicEnum[V]{Variants: variants, rng: rand.New(rand.NewSource(1))}
}

func (m *BasicEnum[V]) SeedWith(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

// EnumArbitraryStep indexes into Variants for deterministic generation.
type EnumArbitraryStep struct{ next int }

// EnumMutationStep indexes into Variants for deterministic mutation.
type EnumMutationStep struct{ next int }

// EnumToken records the previous variant so Unmutate can restore it.
type EnumToken[V any] struct{ prev V }

func (m *BasicEnum[V]) DefaultArbitraryStep() EnumArbitraryStep { return EnumArbitraryStep{} }

func (m *BasicEnum[V]) Validate(value *V) (None, bool) {
	for _, v := range m.Variants {
		if v == *value {
			return None{}, true
		}
	}
	return None{}, false
}

func (m *BasicEnum[V]) DefaultMutationStep(value *V, cache *None) EnumMutationStep {
	return EnumMutationStep{}
}

func (m *BasicEnum[V]) MinComplexity() float64 { return 1 }
func (m *BasicEnum[V]) MaxComplexity() float64 { return 1 }

func (m *BasicEnum[V]) Complexity(value *V, cache *None) float64 { return 1 }

func (m *BasicEnum[V]) OrderedArbitrary(step *EnumArbitraryStep, maxCplx float64) (V, float64, bool) {
	if maxCplx < m.MinComplexity() || step.next >= len(m.Variants) {
		var zero V
		return zero, 0, false
	}
	v := m.Variants[step.next]
	step.next++
	return v, 1, true
}

func (m *BasicEnum[V]) RandomArbitrary(maxCplx float64) (V, float64) {
	return m.Variants[m.rng.Intn(len(m.Variants))], 1
}

func (m *BasicEnum[V]) OrderedMutate(value *V, cache *None, step *EnumMutationStep, maxCplx float64) (EnumToken[V], float64, bool) {
	if maxCplx < m.MinComplexity() || len(m.Variants) < 2 {
		return EnumToken[V]{}, 0, false
	}
	for step.next < len(m.Variants) && m.Variants[step.next] == *value {
		step.next++
	}
	if step.next >= len(m.Variants) {
		return EnumToken[V]{}, 0, false
	}
	prev := *value
	*value = m.Variants[step.next]
	step.next++
	return EnumToken[V]{prev: prev}, 1, true
}

func (m *BasicEnum[V]) RandomMutate(value *V, cache *None, maxCplx float64) (EnumToken[V], float64) {
	prev := *value
	if len(m.Variants) > 1 {
		for {
			candidate := m.Variants[m.rng.Intn(len(m.Variants))]
			if candidate != prev {
				*value = candidate
				break
			}
		}
	}
	return EnumToken[V]{prev: prev}, 1
}

func (m *BasicEnum[V]) Unmutate(value *V, cache *None, token EnumToken[V]) {
	*value = token.prev
}

func (m *BasicEnum[V]) DefaultRecursingPartIndex(value *V, cache *None) None { return None{} }
func (m *BasicEnum[V]) RecursingPartRaw(value *V, index *None) (any, bool)  { return nil, false }
