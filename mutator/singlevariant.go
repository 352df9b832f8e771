package mutator

import "github.com/corefuzz/corefuzz/internal/invariant"

// EnumSingleVariant adapts a payload mutator over V into a mutator over an
// enclosing sum type E, for exactly one of E's variants. Get extracts a
// pointer to the payload when e is currently that variant (false
// otherwise, which is routine - e is simply some other variant); Set
// switches e into this variant carrying the given payload.
//
// Once Validate has accepted e, every other method assumes e is still this
// variant: a Get failure past that point means the value and this
// mutator's cache have desynchronized, which is the "single-variant enum
// mismatch" programming-error class invariant.go documents, so it panics
// via invariant.Unreachable rather than returning an error.
type EnumSingleVariant[E, V, C, S, A, T, R any] struct {
	Inner Mutator[V, C, S, A, T, R]
	Get   func(*E) (*V, bool)
	Set   func(*E, V)
}

// NewEnumSingleVariant builds a single-variant dispatch mutator.
func NewEnumSingleVariant[E, V, C, S, A, T, R any](
	inner Mutator[V, C, S, A, T, R],
	get func(*E) (*V, bool),
	set func(*E, V),
) *EnumSingleVariant[E, V, C, S, A, T, R] {
	return &EnumSingleVariant[E, V, C, S, A, T, R]{Inner: inner, Get: get, Set: set}
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) mustGet(e *E) *V {
	v, ok := m.Get(e)
	if !ok {
		invariant.Unreachable("EnumSingleVariant: value is no longer this variant")
	}
	return v
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) DefaultArbitraryStep() A {
	return m.Inner.DefaultArbitraryStep()
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) Validate(e *E) (C, bool) {
	v, ok := m.Get(e)
	if !ok {
		var zero C
		return zero, false
	}
	return m.Inner.Validate(v)
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) DefaultMutationStep(e *E, cache *C) S {
	return m.Inner.DefaultMutationStep(m.mustGet(e), cache)
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) MinComplexity() float64 { return m.Inner.MinComplexity() }
func (m *EnumSingleVariant[E, V, C, S, A, T, R]) MaxComplexity() float64 { return m.Inner.MaxComplexity() }

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) Complexity(e *E, cache *C) float64 {
	return m.Inner.Complexity(m.mustGet(e), cache)
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) OrderedArbitrary(step *A, maxCplx float64) (E, float64, bool) {
	v, cplx, ok := m.Inner.OrderedArbitrary(step, maxCplx)
	if !ok {
		var zero E
		return zero, 0, false
	}
	var e E
	m.Set(&e, v)
	return e, cplx, true
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) RandomArbitrary(maxCplx float64) (E, float64) {
	v, cplx := m.Inner.RandomArbitrary(maxCplx)
	var e E
	m.Set(&e, v)
	return e, cplx
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) OrderedMutate(e *E, cache *C, step *S, maxCplx float64) (T, float64, bool) {
	return m.Inner.OrderedMutate(m.mustGet(e), cache, step, maxCplx)
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) RandomMutate(e *E, cache *C, maxCplx float64) (T, float64) {
	return m.Inner.RandomMutate(m.mustGet(e), cache, maxCplx)
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) Unmutate(e *E, cache *C, token T) {
	m.Inner.Unmutate(m.mustGet(e), cache, token)
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) DefaultRecursingPartIndex(e *E, cache *C) R {
	return m.Inner.DefaultRecursingPartIndex(m.mustGet(e), cache)
}

func (m *EnumSingleVariant[E, V, C, S, A, T, R]) RecursingPartRaw(e *E, index *R) (any, bool) {
	return m.Inner.RecursingPartRaw(m.mustGet(e), index)
}
