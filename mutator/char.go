package mutator

import (
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
)

// CharWithinRange mutates a rune constrained to [Min, Max]. Complexity is
// the log2 of the code-point range, per spec.md §4.2.
type CharWithinRange struct {
	Min, Max rune
	rng      *rand.Rand
}

// NewCharWithinRange builds a rune mutator over [min, max].
func NewCharWithinRange(min, max rune) *CharWithinRange {
	invariant.Precondition(min <= max, "CharWithinRange requires min <= max")
	return &CharWithinRange{Min: min, Max: max, rng: rand.New(rand.NewSource(1))}
}

func (m *CharWithinRange) SeedWith(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

func (m *CharWithinRange) width() int64 { return int64(m.Max) - int64(m.Min) + 1 }

func (m *CharWithinRange) rangeComplexity() float64 {
	w := m.width()
	if w <= 1 {
		return 0
	}
	bits := 0
	for w > (int64(1) << bits) {
		bits++
	}
	return float64(bits)
}

func (m *CharWithinRange) DefaultArbitraryStep() IntArbitraryStep { return IntArbitraryStep{} }

func (m *CharWithinRange) Validate(value *rune) (None, bool) {
	if *value < m.Min || *value > m.Max {
		return None{}, false
	}
	return None{}, true
}

func (m *CharWithinRange) DefaultMutationStep(value *rune, cache *None) IntMutationStep {
	return IntMutationStep{}
}

func (m *CharWithinRange) MinComplexity() float64 { return 0 }
func (m *CharWithinRange) MaxComplexity() float64 { return m.rangeComplexity() }

func (m *CharWithinRange) Complexity(value *rune, cache *None) float64 { return m.rangeComplexity() }

func (m *CharWithinRange) inRandom() rune {
	return m.Min + rune(m.rng.Int63n(m.width()))
}

func (m *CharWithinRange) OrderedArbitrary(step *IntArbitraryStep, maxCplx float64) (rune, float64, bool) {
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

func (m *CharWithinRange) RandomArbitrary(maxCplx float64) (rune, float64) {
	return m.inRandom(), m.rangeComplexity()
}

func (m *CharWithinRange) OrderedMutate(value *rune, cache *None, step *IntMutationStep, maxCplx float64) (IntToken[rune], float64, bool) {
	if maxCplx < m.MinComplexity() || m.Min == m.Max {
		return IntToken[rune]{}, 0, false
	}
	prev := *value
	*value = m.inRandom()
	step.tried++
	return IntToken[rune]{prev: prev}, m.rangeComplexity(), true
}

func (m *CharWithinRange) RandomMutate(value *rune, cache *None, maxCplx float64) (IntToken[rune], float64) {
	prev := *value
	*value = m.inRandom()
	return IntToken[rune]{prev: prev}, m.rangeComplexity()
}

func (m *CharWithinRange) Unmutate(value *rune, cache *None, token IntToken[rune]) {
	*value = token.prev
}

func (m *CharWithinRange) DefaultRecursingPartIndex(value *rune, cache *None) None { return None{} }
func (m *CharWithinRange) RecursingPartRaw(value *rune, index *None) (any, bool)   { return nil, false }
