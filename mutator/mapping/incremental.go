package mapping

import "github.com/corefuzz/corefuzz/mutator"

// IncrementalMapping is the contract a structural projection (e.g. an AST
// to its rendered string) implements so that a mutation on From can be
// mirrored into To by a minimal edit instead of a full rebuild, per
// spec.md §4.9.
//
//   - Build constructs the initial To from a freshly generated From.
//   - MutateValueFromToken is called after from has already been mutated;
//     it must update to to mirror it, using the token's structure to
//     patch incrementally rather than re-deriving to from scratch.
//   - UnmutateValueFromToken is called before from has been unmutated; it
//     must restore to using the token and the mapping's own residual
//     state (typically the prior rendering captured by MutateValueFromToken).
type IncrementalMapping[From, To, T any] interface {
	Build(from From) To
	MutateValueFromToken(from *From, to *To, token T)
	UnmutateValueFromToken(to *To, token T)
}

// Incremental wraps a mutator over From and an IncrementalMapping so that
// each mutation updates To incrementally instead of calling Build again.
type Incremental[From, To, C, S, A, T, R any] struct {
	Inner mutator.Mutator[From, C, S, A, T, R]
	Map   IncrementalMapping[From, To, T]
}

// NewIncremental builds an incremental map mutator.
func NewIncremental[From, To, C, S, A, T, R any](
	inner mutator.Mutator[From, C, S, A, T, R],
	mapping IncrementalMapping[From, To, T],
) *Incremental[From, To, C, S, A, T, R] {
	return &Incremental[From, To, C, S, A, T, R]{Inner: inner, Map: mapping}
}

// IncrementalCache pairs the inner From cache with the currently rendered
// To, since To cannot be recomputed from From alone without losing the
// "incremental" property.
type IncrementalCache[C, To any] struct {
	inner C
	to    To
}

func (m *Incremental[From, To, C, S, A, T, R]) DefaultArbitraryStep() A {
	return m.Inner.DefaultArbitraryStep()
}

func (m *Incremental[From, To, C, S, A, T, R]) Validate(value *From) (IncrementalCache[C, To], bool) {
	c, ok := m.Inner.Validate(value)
	if !ok {
		return IncrementalCache[C, To]{}, false
	}
	return IncrementalCache[C, To]{inner: c, to: m.Map.Build(*value)}, true
}

func (m *Incremental[From, To, C, S, A, T, R]) DefaultMutationStep(value *From, cache *IncrementalCache[C, To]) S {
	return m.Inner.DefaultMutationStep(value, &cache.inner)
}

func (m *Incremental[From, To, C, S, A, T, R]) MinComplexity() float64 { return m.Inner.MinComplexity() }
func (m *Incremental[From, To, C, S, A, T, R]) MaxComplexity() float64 { return m.Inner.MaxComplexity() }

func (m *Incremental[From, To, C, S, A, T, R]) Complexity(value *From, cache *IncrementalCache[C, To]) float64 {
	return m.Inner.Complexity(value, &cache.inner)
}

func (m *Incremental[From, To, C, S, A, T, R]) OrderedArbitrary(step *A, maxCplx float64) (From, float64, bool) {
	return m.Inner.OrderedArbitrary(step, maxCplx)
}

func (m *Incremental[From, To, C, S, A, T, R]) RandomArbitrary(maxCplx float64) (From, float64) {
	return m.Inner.RandomArbitrary(maxCplx)
}

// To returns the currently rendered projection for value, given its
// cache. Callers needing the string/AST dual (e.g. the grammar package)
// read this instead of re-deriving To themselves.
func (m *Incremental[From, To, C, S, A, T, R]) To(cache *IncrementalCache[C, To]) To {
	return cache.to
}

func (m *Incremental[From, To, C, S, A, T, R]) OrderedMutate(value *From, cache *IncrementalCache[C, To], step *S, maxCplx float64) (T, float64, bool) {
	tok, cplx, ok := m.Inner.OrderedMutate(value, &cache.inner, step, maxCplx)
	if !ok {
		return tok, 0, false
	}
	m.Map.MutateValueFromToken(value, &cache.to, tok)
	return tok, cplx, true
}

func (m *Incremental[From, To, C, S, A, T, R]) RandomMutate(value *From, cache *IncrementalCache[C, To], maxCplx float64) (T, float64) {
	tok, cplx := m.Inner.RandomMutate(value, &cache.inner, maxCplx)
	m.Map.MutateValueFromToken(value, &cache.to, tok)
	return tok, cplx
}

// Unmutate first gives the mapping a chance to patch cache.to from the
// token alone (UnmutateValueFromToken, called while value still holds the
// mutated From), then restores value/cache.inner via the inner mutator.
// Because UnmutateValueFromToken never receives from, a mapping that gets
// its reverse patch wrong (or skips it entirely) would otherwise leave
// cache.to silently desynced from the now-restored value - so cache.to is
// always rebuilt with Build(*value) afterward. Every Unmutate therefore
// pays Build's cost, whatever the mapping's own patch does.
func (m *Incremental[From, To, C, S, A, T, R]) Unmutate(value *From, cache *IncrementalCache[C, To], token T) {
	m.Map.UnmutateValueFromToken(&cache.to, token)
	m.Inner.Unmutate(value, &cache.inner, token)
	cache.to = m.Map.Build(*value)
}

func (m *Incremental[From, To, C, S, A, T, R]) DefaultRecursingPartIndex(value *From, cache *IncrementalCache[C, To]) R {
	return m.Inner.DefaultRecursingPartIndex(value, &cache.inner)
}

func (m *Incremental[From, To, C, S, A, T, R]) RecursingPartRaw(value *From, index *R) (any, bool) {
	return m.Inner.RecursingPartRaw(value, index)
}
