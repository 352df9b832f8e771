package mutator

import (
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
)

// Alternation picks among several mutators that all produce the same value
// type V, e.g. a JSON value that might be a Number, a String or an Object,
// each represented by its own sub-mutator. Per spec.md §4.4, mutation comes
// in two flavors: Replace regenerates the value from the next alternative
// (in slice order, wrapping around) via its RandomArbitrary, and Inner
// mutates the currently active alternative in place. Only OrderedMutate
// makes a Replace move, once per step after the active alternative's own
// ordered mutations run out; RandomMutate always makes an Inner move.
type Alternation[V, C, S, A, T, R any] struct {
	Alternatives []Mutator[V, C, S, A, T, R]
	rng          *rand.Rand
}

// NewAlternation composes alternatives into an Alternation mutator.
// Requires at least one alternative.
func NewAlternation[V, C, S, A, T, R any](alternatives ...Mutator[V, C, S, A, T, R]) *Alternation[V, C, S, A, T, R] {
	invariant.Precondition(len(alternatives) > 0, "Alternation requires at least one alternative")
	return &Alternation[V, C, S, A, T, R]{Alternatives: alternatives, rng: rand.New(rand.NewSource(1))}
}

func (m *Alternation[V, C, S, A, T, R]) SeedWith(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

// AlternationCache remembers which alternative produced the current value,
// since the value itself carries no tag.
type AlternationCache[C any] struct {
	which int
	inner C
}

// AlternationMutationStep tracks the inner alternative's own step cursor
// plus whether a Replace (switch-alternative) move has been tried yet.
type AlternationMutationStep[S any] struct {
	inner        S
	triedReplace bool
}

// AlternationArbitraryStep walks the alternatives in slice order, moving
// to the next one only once the current one's OrderedArbitrary is
// exhausted.
type AlternationArbitraryStep[A any] struct {
	nextAlt int
	inner   A
}

// AlternationToken is either a Replace (full value swap, undone by
// restoring the previous value and which-index verbatim) or an Inner
// (delegated to the active alternative's own token).
type AlternationToken[V, T any] struct {
	isReplace bool
	prevValue V
	prevWhich int
	inner     T
}

func (m *Alternation[V, C, S, A, T, R]) DefaultArbitraryStep() AlternationArbitraryStep[A] {
	return AlternationArbitraryStep[A]{inner: m.Alternatives[0].DefaultArbitraryStep()}
}

func (m *Alternation[V, C, S, A, T, R]) Validate(value *V) (AlternationCache[C], bool) {
	for i, alt := range m.Alternatives {
		if c, ok := alt.Validate(value); ok {
			return AlternationCache[C]{which: i, inner: c}, true
		}
	}
	return AlternationCache[C]{}, false
}

func (m *Alternation[V, C, S, A, T, R]) DefaultMutationStep(value *V, cache *AlternationCache[C]) AlternationMutationStep[S] {
	return AlternationMutationStep[S]{inner: m.Alternatives[cache.which].DefaultMutationStep(value, &cache.inner)}
}

func (m *Alternation[V, C, S, A, T, R]) MinComplexity() float64 {
	min := m.Alternatives[0].MinComplexity()
	for _, alt := range m.Alternatives[1:] {
		if c := alt.MinComplexity(); c < min {
			min = c
		}
	}
	return min
}

func (m *Alternation[V, C, S, A, T, R]) MaxComplexity() float64 {
	max := m.Alternatives[0].MaxComplexity()
	for _, alt := range m.Alternatives[1:] {
		if c := alt.MaxComplexity(); c > max {
			max = c
		}
	}
	return max
}

func (m *Alternation[V, C, S, A, T, R]) Complexity(value *V, cache *AlternationCache[C]) float64 {
	return m.Alternatives[cache.which].Complexity(value, &cache.inner)
}

func (m *Alternation[V, C, S, A, T, R]) OrderedArbitrary(step *AlternationArbitraryStep[A], maxCplx float64) (V, float64, bool) {
	for step.nextAlt < len(m.Alternatives) {
		alt := m.Alternatives[step.nextAlt]
		v, cplx, ok := alt.OrderedArbitrary(&step.inner, maxCplx)
		if ok {
			return v, cplx, true
		}
		step.nextAlt++
		if step.nextAlt < len(m.Alternatives) {
			step.inner = m.Alternatives[step.nextAlt].DefaultArbitraryStep()
		}
	}
	var zero V
	return zero, 0, false
}

func (m *Alternation[V, C, S, A, T, R]) RandomArbitrary(maxCplx float64) (V, float64) {
	alt := m.Alternatives[m.rng.Intn(len(m.Alternatives))]
	return alt.RandomArbitrary(maxCplx)
}

func (m *Alternation[V, C, S, A, T, R]) OrderedMutate(value *V, cache *AlternationCache[C], step *AlternationMutationStep[S], maxCplx float64) (AlternationToken[V, T], float64, bool) {
	active := m.Alternatives[cache.which]
	tok, cplx, ok := active.OrderedMutate(value, &cache.inner, &step.inner, maxCplx)
	if ok {
		return AlternationToken[V, T]{isReplace: false, inner: tok}, cplx, true
	}
	if step.triedReplace || len(m.Alternatives) < 2 {
		return AlternationToken[V, T]{}, 0, false
	}
	step.triedReplace = true
	prevValue := *value
	prevWhich := cache.which
	nextWhich := (cache.which + 1) % len(m.Alternatives)
	newAlt := m.Alternatives[nextWhich]
	v, replacedCplx := newAlt.RandomArbitrary(maxCplx)
	c, ok := newAlt.Validate(&v)
	invariant.Invariant(ok, "Alternation: value produced by an alternative's own RandomArbitrary must validate against it")
	*value = v
	cache.which = nextWhich
	cache.inner = c
	return AlternationToken[V, T]{isReplace: true, prevValue: prevValue, prevWhich: prevWhich}, replacedCplx, true
}

func (m *Alternation[V, C, S, A, T, R]) RandomMutate(value *V, cache *AlternationCache[C], maxCplx float64) (AlternationToken[V, T], float64) {
	active := m.Alternatives[cache.which]
	tok, cplx := active.RandomMutate(value, &cache.inner, maxCplx)
	return AlternationToken[V, T]{isReplace: false, inner: tok}, cplx
}

func (m *Alternation[V, C, S, A, T, R]) Unmutate(value *V, cache *AlternationCache[C], token AlternationToken[V, T]) {
	if token.isReplace {
		*value = token.prevValue
		cache.which = token.prevWhich
		c, ok := m.Alternatives[cache.which].Validate(value)
		invariant.Invariant(ok, "Alternation: unmutate must restore a value its prior alternative still validates")
		cache.inner = c
		return
	}
	m.Alternatives[cache.which].Unmutate(value, &cache.inner, token.inner)
}

func (m *Alternation[V, C, S, A, T, R]) DefaultRecursingPartIndex(value *V, cache *AlternationCache[C]) R {
	return m.Alternatives[cache.which].DefaultRecursingPartIndex(value, &cache.inner)
}

// RecursingPartRaw delegates to the first alternative. The Mutator contract
// does not pass Cache here, so Alternation cannot recover which alternative
// produced value; recursive grammars needing a correct dispatch should wrap
// each alternative in its own EnumSingleVariant instead (see
// singlevariant.go), which does carry a tag alongside the value.
func (m *Alternation[V, C, S, A, T, R]) RecursingPartRaw(value *V, index *R) (any, bool) {
	return m.Alternatives[0].RecursingPartRaw(value, index)
}
