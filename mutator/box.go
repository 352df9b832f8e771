package mutator

// Box mutates a pointer-indirected value by delegating entirely to an
// inner mutator over the pointed-to type. It exists so that recursive
// grammars (see recursive.go) and large payloads can be stored behind a
// pointer without every combinator needing to know about indirection.
type Box[V, C, S, A, T, R any] struct {
	Inner Mutator[V, C, S, A, T, R]
}

// NewBox wraps inner in a Box mutator.
func NewBox[V, C, S, A, T, R any](inner Mutator[V, C, S, A, T, R]) *Box[V, C, S, A, T, R] {
	return &Box[V, C, S, A, T, R]{Inner: inner}
}

func (m *Box[V, C, S, A, T, R]) DefaultArbitraryStep() A { return m.Inner.DefaultArbitraryStep() }

func (m *Box[V, C, S, A, T, R]) Validate(value **V) (C, bool) {
	return m.Inner.Validate(*value)
}

func (m *Box[V, C, S, A, T, R]) DefaultMutationStep(value **V, cache *C) S {
	return m.Inner.DefaultMutationStep(*value, cache)
}

func (m *Box[V, C, S, A, T, R]) MinComplexity() float64 { return m.Inner.MinComplexity() }
func (m *Box[V, C, S, A, T, R]) MaxComplexity() float64 { return m.Inner.MaxComplexity() }

func (m *Box[V, C, S, A, T, R]) Complexity(value **V, cache *C) float64 {
	return m.Inner.Complexity(*value, cache)
}

func (m *Box[V, C, S, A, T, R]) OrderedArbitrary(step *A, maxCplx float64) (*V, float64, bool) {
	v, cplx, ok := m.Inner.OrderedArbitrary(step, maxCplx)
	if !ok {
		return nil, 0, false
	}
	return &v, cplx, true
}

func (m *Box[V, C, S, A, T, R]) RandomArbitrary(maxCplx float64) (*V, float64) {
	v, cplx := m.Inner.RandomArbitrary(maxCplx)
	return &v, cplx
}

func (m *Box[V, C, S, A, T, R]) OrderedMutate(value **V, cache *C, step *S, maxCplx float64) (T, float64, bool) {
	return m.Inner.OrderedMutate(*value, cache, step, maxCplx)
}

func (m *Box[V, C, S, A, T, R]) RandomMutate(value **V, cache *C, maxCplx float64) (T, float64) {
	return m.Inner.RandomMutate(*value, cache, maxCplx)
}

func (m *Box[V, C, S, A, T, R]) Unmutate(value **V, cache *C, token T) {
	m.Inner.Unmutate(*value, cache, token)
}

func (m *Box[V, C, S, A, T, R]) DefaultRecursingPartIndex(value **V, cache *C) R {
	return m.Inner.DefaultRecursingPartIndex(*value, cache)
}

func (m *Box[V, C, S, A, T, R]) RecursingPartRaw(value **V, index *R) (any, bool) {
	return m.Inner.RecursingPartRaw(*value, index)
}
