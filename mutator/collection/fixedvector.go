package collection

import (
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
	"github.com/corefuzz/corefuzz/mutator"
)

// FixedVector mutates a []V whose length is fixed at construction, with an
// independent mutator per position (spec.md §4.7). Only Element, Elements
// and Replace mutations are permitted - insert/remove are absent since
// they would change the length.
type FixedVector[V, C, S, A, T, R any] struct {
	Elems []mutator.Mutator[V, C, S, A, T, R]
	rng   *rand.Rand
}

// NewFixedVector builds a fixed-length vector mutator, one mutator per
// position. Requires at least one position.
func NewFixedVector[V, C, S, A, T, R any](elems ...mutator.Mutator[V, C, S, A, T, R]) *FixedVector[V, C, S, A, T, R] {
	invariant.Precondition(len(elems) > 0, "FixedVector requires at least one position")
	return &FixedVector[V, C, S, A, T, R]{Elems: elems, rng: rand.New(rand.NewSource(1))}
}

func (m *FixedVector[V, C, S, A, T, R]) SeedWith(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

// FixedVectorCache caches each position's cache and the vector's total
// complexity.
type FixedVectorCache[C any] struct {
	elems      []C
	complexity float64
}

// FixedVectorMutationStep cycles Element before Elements/Replace, which
// are only reached via RandomMutate.
type FixedVectorMutationStep[S any] struct {
	nextIdx   int
	elemSteps []S
}

// FixedVectorArbitraryStep holds each position's own generation cursor.
type FixedVectorArbitraryStep[A any] struct {
	perPosition []A
}

// FixedVectorKind tags which FixedVectorToken variant is populated.
type FixedVectorKind int

const (
	FixedVectorElement FixedVectorKind = iota
	FixedVectorElements
	FixedVectorReplace
)

// FixedVectorToken reverses an Element, Elements or Replace mutation.
type FixedVectorToken[V, T any] struct {
	Kind        FixedVectorKind
	ElementAt   IndexToken[T]
	ElementsAt  []IndexToken[T]
	PriorVector []V
}

func (m *FixedVector[V, C, S, A, T, R]) DefaultArbitraryStep() FixedVectorArbitraryStep[A] {
	steps := make([]A, len(m.Elems))
	for i, e := range m.Elems {
		steps[i] = e.DefaultArbitraryStep()
	}
	return FixedVectorArbitraryStep[A]{perPosition: steps}
}

func (m *FixedVector[V, C, S, A, T, R]) Validate(value *[]V) (FixedVectorCache[C], bool) {
	if len(*value) != len(m.Elems) {
		return FixedVectorCache[C]{}, false
	}
	caches := make([]C, len(m.Elems))
	total := vectorBaseComplexity
	for i := range *value {
		c, ok := m.Elems[i].Validate(&(*value)[i])
		if !ok {
			return FixedVectorCache[C]{}, false
		}
		caches[i] = c
		total += m.Elems[i].Complexity(&(*value)[i], &c)
	}
	return FixedVectorCache[C]{elems: caches, complexity: total}, true
}

func (m *FixedVector[V, C, S, A, T, R]) DefaultMutationStep(value *[]V, cache *FixedVectorCache[C]) FixedVectorMutationStep[S] {
	steps := make([]S, len(m.Elems))
	for i := range m.Elems {
		steps[i] = m.Elems[i].DefaultMutationStep(&(*value)[i], &cache.elems[i])
	}
	return FixedVectorMutationStep[S]{elemSteps: steps}
}

func (m *FixedVector[V, C, S, A, T, R]) MinComplexity() float64 {
	total := vectorBaseComplexity
	for _, e := range m.Elems {
		total += e.MinComplexity()
	}
	return total
}

func (m *FixedVector[V, C, S, A, T, R]) MaxComplexity() float64 {
	total := vectorBaseComplexity
	for _, e := range m.Elems {
		total += e.MaxComplexity()
	}
	return total
}

func (m *FixedVector[V, C, S, A, T, R]) Complexity(value *[]V, cache *FixedVectorCache[C]) float64 {
	return cache.complexity
}

func (m *FixedVector[V, C, S, A, T, R]) recomputeComplexity(value []V, cache *FixedVectorCache[C]) {
	total := vectorBaseComplexity
	for i := range m.Elems {
		total += m.Elems[i].Complexity(&value[i], &cache.elems[i])
	}
	cache.complexity = total
}

func (m *FixedVector[V, C, S, A, T, R]) OrderedArbitrary(step *FixedVectorArbitraryStep[A], maxCplx float64) ([]V, float64, bool) {
	budget := maxCplx - vectorBaseComplexity
	values := make([]V, len(m.Elems))
	total := vectorBaseComplexity
	for i, e := range m.Elems {
		v, cplx, ok := e.OrderedArbitrary(&step.perPosition[i], budget)
		if !ok {
			return nil, 0, false
		}
		values[i] = v
		total += cplx
		budget -= cplx
	}
	return values, total, true
}

func (m *FixedVector[V, C, S, A, T, R]) RandomArbitrary(maxCplx float64) ([]V, float64) {
	budget := maxCplx - vectorBaseComplexity
	values := make([]V, len(m.Elems))
	total := vectorBaseComplexity
	for i, e := range m.Elems {
		v, cplx := e.RandomArbitrary(budget)
		values[i] = v
		total += cplx
		budget -= cplx
	}
	return values, total
}

func (m *FixedVector[V, C, S, A, T, R]) OrderedMutate(value *[]V, cache *FixedVectorCache[C], step *FixedVectorMutationStep[S], maxCplx float64) (FixedVectorToken[V, T], float64, bool) {
	for step.nextIdx < len(m.Elems) {
		idx := step.nextIdx
		tok, _, ok := m.Elems[idx].OrderedMutate(&(*value)[idx], &cache.elems[idx], &step.elemSteps[idx], maxCplx)
		if !ok {
			step.nextIdx++
			continue
		}
		m.recomputeComplexity(*value, cache)
		return FixedVectorToken[V, T]{Kind: FixedVectorElement, ElementAt: IndexToken[T]{Index: idx, Inner: tok}}, cache.complexity, true
	}
	return FixedVectorToken[V, T]{}, 0, false
}

func (m *FixedVector[V, C, S, A, T, R]) RandomMutate(value *[]V, cache *FixedVectorCache[C], maxCplx float64) (FixedVectorToken[V, T], float64) {
	choice := m.rng.Intn(3)
	if choice == 1 && len(m.Elems) < 2 {
		choice = 0
	}
	switch choice {
	case 0:
		idx := m.rng.Intn(len(m.Elems))
		tok, _ := m.Elems[idx].RandomMutate(&(*value)[idx], &cache.elems[idx], maxCplx)
		m.recomputeComplexity(*value, cache)
		return FixedVectorToken[V, T]{Kind: FixedVectorElement, ElementAt: IndexToken[T]{Index: idx, Inner: tok}}, cache.complexity
	case 1:
		k := 2
		if len(m.Elems) > 2 {
			k = 2 + m.rng.Intn(len(m.Elems)-1)
		}
		idxs := m.rng.Perm(len(m.Elems))[:k]
		var toks []IndexToken[T]
		for _, idx := range idxs {
			tok, _ := m.Elems[idx].RandomMutate(&(*value)[idx], &cache.elems[idx], maxCplx)
			toks = append(toks, IndexToken[T]{Index: idx, Inner: tok})
		}
		m.recomputeComplexity(*value, cache)
		return FixedVectorToken[V, T]{Kind: FixedVectorElements, ElementsAt: toks}, cache.complexity
	default:
		prior := append([]V(nil), *value...)
		fresh, _ := m.RandomArbitrary(maxCplx)
		*value = fresh
		for i := range fresh {
			c, ok := m.Elems[i].Validate(&fresh[i])
			invariant.Invariant(ok, "FixedVector: value from own RandomArbitrary must validate")
			cache.elems[i] = c
		}
		m.recomputeComplexity(*value, cache)
		return FixedVectorToken[V, T]{Kind: FixedVectorReplace, PriorVector: prior}, cache.complexity
	}
}

func (m *FixedVector[V, C, S, A, T, R]) Unmutate(value *[]V, cache *FixedVectorCache[C], token FixedVectorToken[V, T]) {
	switch token.Kind {
	case FixedVectorElement:
		idx := token.ElementAt.Index
		m.Elems[idx].Unmutate(&(*value)[idx], &cache.elems[idx], token.ElementAt.Inner)
	case FixedVectorElements:
		for i := len(token.ElementsAt) - 1; i >= 0; i-- {
			it := token.ElementsAt[i]
			m.Elems[it.Index].Unmutate(&(*value)[it.Index], &cache.elems[it.Index], it.Inner)
		}
	case FixedVectorReplace:
		*value = token.PriorVector
		for i := range token.PriorVector {
			c, ok := m.Elems[i].Validate(&token.PriorVector[i])
			invariant.Invariant(ok, "FixedVector: prior vector must still validate on unmutate")
			cache.elems[i] = c
		}
	}
	m.recomputeComplexity(*value, cache)
}

func (m *FixedVector[V, C, S, A, T, R]) DefaultRecursingPartIndex(value *[]V, cache *FixedVectorCache[C]) R {
	var zero R
	return zero
}

func (m *FixedVector[V, C, S, A, T, R]) RecursingPartRaw(value *[]V, index *R) (any, bool) {
	for i := range m.Elems {
		var zero R
		if raw, ok := m.Elems[i].RecursingPartRaw(&(*value)[i], &zero); ok {
			return raw, true
		}
	}
	return nil, false
}
