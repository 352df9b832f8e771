// Package mapping provides bidirectional-projection mutators: an inner
// mutator operates on a "From" representation, and a map function projects
// every generated/mutated From value into the "To" type the caller
// actually wants (spec.md §4.8-4.9).
package mapping

import "github.com/corefuzz/corefuzz/mutator"

// Map wraps a mutator over From and projects it onto To. Parse must be a
// left inverse of MapFn (parsing a mapped value must recover a From that
// re-maps to an equal To) for Validate to behave correctly; callers whose
// To has no stable From representation should use Incremental instead.
type Map[From, To, C, S, A, T, R any] struct {
	Inner            mutator.Mutator[From, C, S, A, T, R]
	MapFn            func(From) To
	Parse            func(To) (From, bool)
	ComplexityAdjust func(To, float64) float64
}

// NewMap builds a Map mutator. complexityAdjust may be nil, in which case
// the inner mutator's own complexity is used unadjusted.
func NewMap[From, To, C, S, A, T, R any](
	inner mutator.Mutator[From, C, S, A, T, R],
	mapFn func(From) To,
	parse func(To) (From, bool),
	complexityAdjust func(To, float64) float64,
) *Map[From, To, C, S, A, T, R] {
	if complexityAdjust == nil {
		complexityAdjust = func(_ To, inner float64) float64 { return inner }
	}
	return &Map[From, To, C, S, A, T, R]{Inner: inner, MapFn: mapFn, Parse: parse, ComplexityAdjust: complexityAdjust}
}

func (m *Map[From, To, C, S, A, T, R]) DefaultArbitraryStep() A { return m.Inner.DefaultArbitraryStep() }

func (m *Map[From, To, C, S, A, T, R]) Validate(value *To) (C, bool) {
	from, ok := m.Parse(*value)
	if !ok {
		var zero C
		return zero, false
	}
	return m.Inner.Validate(&from)
}

func (m *Map[From, To, C, S, A, T, R]) DefaultMutationStep(value *To, cache *C) S {
	from, _ := m.Parse(*value)
	return m.Inner.DefaultMutationStep(&from, cache)
}

func (m *Map[From, To, C, S, A, T, R]) MinComplexity() float64 { return m.Inner.MinComplexity() }
func (m *Map[From, To, C, S, A, T, R]) MaxComplexity() float64 { return m.Inner.MaxComplexity() }

func (m *Map[From, To, C, S, A, T, R]) Complexity(value *To, cache *C) float64 {
	from, _ := m.Parse(*value)
	return m.ComplexityAdjust(*value, m.Inner.Complexity(&from, cache))
}

func (m *Map[From, To, C, S, A, T, R]) OrderedArbitrary(step *A, maxCplx float64) (To, float64, bool) {
	from, cplx, ok := m.Inner.OrderedArbitrary(step, maxCplx)
	if !ok {
		var zero To
		return zero, 0, false
	}
	to := m.MapFn(from)
	return to, m.ComplexityAdjust(to, cplx), true
}

func (m *Map[From, To, C, S, A, T, R]) RandomArbitrary(maxCplx float64) (To, float64) {
	from, cplx := m.Inner.RandomArbitrary(maxCplx)
	to := m.MapFn(from)
	return to, m.ComplexityAdjust(to, cplx)
}

// mapToken carries the From value produced by the inner mutator's token
// plus the inner token itself, so Unmutate can both reverse the inner
// mutation and re-derive To via MapFn without re-parsing.
type mapToken[From, T any] struct {
	inner T
	from  From
}

func (m *Map[From, To, C, S, A, T, R]) OrderedMutate(value *To, cache *C, step *S, maxCplx float64) (mapToken[From, T], float64, bool) {
	from, _ := m.Parse(*value)
	tok, cplx, ok := m.Inner.OrderedMutate(&from, cache, step, maxCplx)
	if !ok {
		return mapToken[From, T]{}, 0, false
	}
	*value = m.MapFn(from)
	return mapToken[From, T]{inner: tok, from: from}, m.ComplexityAdjust(*value, cplx), true
}

func (m *Map[From, To, C, S, A, T, R]) RandomMutate(value *To, cache *C, maxCplx float64) (mapToken[From, T], float64) {
	from, _ := m.Parse(*value)
	tok, cplx := m.Inner.RandomMutate(&from, cache, maxCplx)
	*value = m.MapFn(from)
	return mapToken[From, T]{inner: tok, from: from}, m.ComplexityAdjust(*value, cplx)
}

func (m *Map[From, To, C, S, A, T, R]) Unmutate(value *To, cache *C, token mapToken[From, T]) {
	from := token.from
	m.Inner.Unmutate(&from, cache, token.inner)
	*value = m.MapFn(from)
}

func (m *Map[From, To, C, S, A, T, R]) DefaultRecursingPartIndex(value *To, cache *C) R {
	from, _ := m.Parse(*value)
	return m.Inner.DefaultRecursingPartIndex(&from, cache)
}

func (m *Map[From, To, C, S, A, T, R]) RecursingPartRaw(value *To, index *R) (any, bool) {
	from, ok := m.Parse(*value)
	if !ok {
		return nil, false
	}
	return m.Inner.RecursingPartRaw(&from, index)
}
