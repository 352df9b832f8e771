package mutator

import (
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
)

// IntWithinRange mutates integers of type T constrained to [Min, Max].
// Complexity is proportional to the log2 of the range's width, per
// spec.md §4.2 ("complexity proportional to bit width or range").
type IntWithinRange[T Integer] struct {
	Min, Max T
	rng      *rand.Rand
}

// NewIntWithinRange builds a within-range integer mutator. Panics via
// invariant if min > max, since that is a construction-time contract bug,
// not a value the fuzzer ever hands it.
func NewIntWithinRange[T Integer](min, max T) *IntWithinRange[T] {
	invariant.Precondition(min <= max, "IntWithinRange requires min <= max")
	return &IntWithinRange[T]{Min: min, Max: max, rng: rand.New(rand.NewSource(1))}
}

func (m *IntWithinRange[T]) SeedWith(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

func (m *IntWithinRange[T]) width() uint64 { return uint64(m.Max) - uint64(m.Min) + 1 }

func (m *IntWithinRange[T]) rangeComplexity() float64 {
	w := m.width()
	if w <= 1 {
		return 0
	}
	bits := 0
	for w > (1 << bits) {
		bits++
	}
	return float64(bits)
}

func (m *IntWithinRange[T]) DefaultArbitraryStep() IntArbitraryStep { return IntArbitraryStep{} }

func (m *IntWithinRange[T]) Validate(value *T) (None, bool) {
	if *value < m.Min || *value > m.Max {
		return None{}, false
	}
	return None{}, true
}

func (m *IntWithinRange[T]) DefaultMutationStep(value *T, cache *None) IntMutationStep {
	return IntMutationStep{}
}

func (m *IntWithinRange[T]) MinComplexity() float64 { return 0 }
func (m *IntWithinRange[T]) MaxComplexity() float64 { return m.rangeComplexity() }

func (m *IntWithinRange[T]) Complexity(value *T, cache *None) float64 { return m.rangeComplexity() }

func (m *IntWithinRange[T]) inRandom() T {
	w := m.width()
	if w == 0 {
		return m.Min
	}
	return m.Min + T(m.rng.Uint64()%w)
}

func (m *IntWithinRange[T]) OrderedArbitrary(step *IntArbitraryStep, maxCplx float64) (T, float64, bool) {
	if maxCplx < m.MinComplexity() {
		return m.Min, 0, false
	}
	switch step.tried {
	case 0:
		step.tried++
		return m.Min, m.rangeComplexity(), true
	case 1:
		step.tried++
		if m.Max != m.Min {
			return m.Max, m.rangeComplexity(), true
		}
		fallthrough
	default:
		v, cplx := m.RandomArbitrary(maxCplx)
		step.tried++
		return v, cplx, true
	}
}

func (m *IntWithinRange[T]) RandomArbitrary(maxCplx float64) (T, float64) {
	v := m.inRandom()
	return v, m.rangeComplexity()
}

func (m *IntWithinRange[T]) OrderedMutate(value *T, cache *None, step *IntMutationStep, maxCplx float64) (IntToken[T], float64, bool) {
	if maxCplx < m.MinComplexity() || m.Min == m.Max {
		return IntToken[T]{}, 0, false
	}
	prev := *value
	*value = m.inRandom()
	step.tried++
	return IntToken[T]{prev: prev}, m.rangeComplexity(), true
}

func (m *IntWithinRange[T]) RandomMutate(value *T, cache *None, maxCplx float64) (IntToken[T], float64) {
	prev := *value
	*value = m.inRandom()
	return IntToken[T]{prev: prev}, m.rangeComplexity()
}

func (m *IntWithinRange[T]) Unmutate(value *T, cache *None, token IntToken[T]) {
	*value = token.prev
}

func (m *IntWithinRange[T]) DefaultRecursingPartIndex(value *T, cache *None) None { return None{} }
func (m *IntWithinRange[T]) RecursingPartRaw(value *T, index *None) (any, bool)   { return nil, false }
