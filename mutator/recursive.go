package mutator

import "github.com/corefuzz/corefuzz/internal/invariant"

// Recursive ties a self-referential grammar together. The original
// fuzzcheck uses a Weak<RefCell<...>> here because Rc is reference-counted
// and a strong self-cycle would leak; Go's garbage collector traces
// cycles, so Recursive just holds a plain pointer to the mutator it wraps
// and never needs to distinguish strong from weak ownership. The
// SPEC_FULL.md Open Question on recursive-grammar ownership is resolved
// this way: a cyclic pointer instead of a weak reference.
//
// Build two-phase: construct with NewRecursive, passing a closure that
// receives a RecurTo handle to "itself" to embed at the grammar's
// recursion point, before the mutator it eventually delegates to exists.
type Recursive[V, C, S, A, T, R any] struct {
	self Mutator[V, C, S, A, T, R]
}

// NewRecursive builds a Recursive mutator. build receives a handle that
// can be passed to combinators (e.g. as one Alternation alternative) as
// the "recurse here" placeholder; it must not be invoked until build
// returns, since self is only assigned once build's result comes back.
func NewRecursive[V, C, S, A, T, R any](build func(recurse Mutator[V, C, S, A, T, R]) Mutator[V, C, S, A, T, R]) *Recursive[V, C, S, A, T, R] {
	m := &Recursive[V, C, S, A, T, R]{}
	m.self = build(RecurTo(m))
	return m
}

// RecurTo returns a Mutator handle to m that can be embedded in m's own
// grammar definition before m is fully built; every call it receives is
// forwarded through m.self once construction completes.
func RecurTo[V, C, S, A, T, R any](m *Recursive[V, C, S, A, T, R]) Mutator[V, C, S, A, T, R] {
	return m
}

func (m *Recursive[V, C, S, A, T, R]) ready() Mutator[V, C, S, A, T, R] {
	invariant.Invariant(m.self != nil, "Recursive: used before its builder closure returned")
	return m.self
}

func (m *Recursive[V, C, S, A, T, R]) DefaultArbitraryStep() A { return m.ready().DefaultArbitraryStep() }

func (m *Recursive[V, C, S, A, T, R]) Validate(value *V) (C, bool) { return m.ready().Validate(value) }

func (m *Recursive[V, C, S, A, T, R]) DefaultMutationStep(value *V, cache *C) S {
	return m.ready().DefaultMutationStep(value, cache)
}

func (m *Recursive[V, C, S, A, T, R]) MinComplexity() float64 { return m.ready().MinComplexity() }
func (m *Recursive[V, C, S, A, T, R]) MaxComplexity() float64 { return m.ready().MaxComplexity() }

func (m *Recursive[V, C, S, A, T, R]) Complexity(value *V, cache *C) float64 {
	return m.ready().Complexity(value, cache)
}

func (m *Recursive[V, C, S, A, T, R]) OrderedArbitrary(step *A, maxCplx float64) (V, float64, bool) {
	return m.ready().OrderedArbitrary(step, maxCplx)
}

func (m *Recursive[V, C, S, A, T, R]) RandomArbitrary(maxCplx float64) (V, float64) {
	return m.ready().RandomArbitrary(maxCplx)
}

func (m *Recursive[V, C, S, A, T, R]) OrderedMutate(value *V, cache *C, step *S, maxCplx float64) (T, float64, bool) {
	return m.ready().OrderedMutate(value, cache, step, maxCplx)
}

func (m *Recursive[V, C, S, A, T, R]) RandomMutate(value *V, cache *C, maxCplx float64) (T, float64) {
	return m.ready().RandomMutate(value, cache, maxCplx)
}

func (m *Recursive[V, C, S, A, T, R]) Unmutate(value *V, cache *C, token T) {
	m.ready().Unmutate(value, cache, token)
}

func (m *Recursive[V, C, S, A, T, R]) DefaultRecursingPartIndex(value *V, cache *C) R {
	return m.ready().DefaultRecursingPartIndex(value, cache)
}

func (m *Recursive[V, C, S, A, T, R]) RecursingPartRaw(value *V, index *R) (any, bool) {
	return m.ready().RecursingPartRaw(value, index)
}
