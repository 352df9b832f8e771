package mutator

// Pair is the value type produced by Tuple2.
type Pair[V1, V2 any] struct {
	First  V1
	Second V2
}

// Triple is the value type produced by Tuple3.
type Triple[V1, V2, V3 any] struct {
	First  V1
	Second V2
	Third  V3
}

// Tuple2Cache caches each field's cache plus the pair's total complexity, so
// Complexity never has to re-walk both fields.
type Tuple2Cache[C1, C2 any] struct {
	First       C1
	Second      C2
	complexity float64
}

// Tuple2MutationStep alternates which field is mutated next.
type Tuple2MutationStep[S1, S2 any] struct {
	first  S1
	second S2
	turn   int
}

// Tuple2ArbitraryStep holds each field's own generation cursor.
type Tuple2ArbitraryStep[A1, A2 any] struct {
	first  A1
	second A2
}

// Tuple2Token tags which field was mutated, so Unmutate dispatches to the
// matching field mutator.
type Tuple2Token[T1, T2 any] struct {
	isFirst bool
	first   T1
	second  T2
}

// Tuple2RecursingIndex alternates which field's recursing part is probed.
type Tuple2RecursingIndex[R1, R2 any] struct {
	first  R1
	second R2
	turn   int
}

// Tuple2 composes two mutators over a 2-field struct. Complexity is
// additive across fields plus a fixed base cost, per spec.md §4.3.
// SPEC_FULL.md documents the arity cap at 3 (Tuple2/Tuple3): Go has no
// variadic-generics equivalent of a macro-generated TupleMutator!, so wider
// tuples are expressed as nested pairs instead of a 4th generated type.
type Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2 any] struct {
	First  Mutator[V1, C1, S1, A1, T1, R1]
	Second Mutator[V2, C2, S2, A2, T2, R2]
}

const tupleBaseComplexity = 1.0

// NewTuple2 composes first and second into a pair mutator.
func NewTuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2 any](
	first Mutator[V1, C1, S1, A1, T1, R1],
	second Mutator[V2, C2, S2, A2, T2, R2],
) *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2] {
	return &Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]{First: first, Second: second}
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) DefaultArbitraryStep() Tuple2ArbitraryStep[A1, A2] {
	return Tuple2ArbitraryStep[A1, A2]{first: m.First.DefaultArbitraryStep(), second: m.Second.DefaultArbitraryStep()}
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) Validate(value *Pair[V1, V2]) (Tuple2Cache[C1, C2], bool) {
	c1, ok1 := m.First.Validate(&value.First)
	if !ok1 {
		return Tuple2Cache[C1, C2]{}, false
	}
	c2, ok2 := m.Second.Validate(&value.Second)
	if !ok2 {
		return Tuple2Cache[C1, C2]{}, false
	}
	cplx := tupleBaseComplexity + m.First.Complexity(&value.First, &c1) + m.Second.Complexity(&value.Second, &c2)
	return Tuple2Cache[C1, C2]{First: c1, Second: c2, complexity: cplx}, true
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) DefaultMutationStep(value *Pair[V1, V2], cache *Tuple2Cache[C1, C2]) Tuple2MutationStep[S1, S2] {
	return Tuple2MutationStep[S1, S2]{
		first:  m.First.DefaultMutationStep(&value.First, &cache.First),
		second: m.Second.DefaultMutationStep(&value.Second, &cache.Second),
	}
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) MinComplexity() float64 {
	return tupleBaseComplexity + m.First.MinComplexity() + m.Second.MinComplexity()
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) MaxComplexity() float64 {
	return tupleBaseComplexity + m.First.MaxComplexity() + m.Second.MaxComplexity()
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) Complexity(value *Pair[V1, V2], cache *Tuple2Cache[C1, C2]) float64 {
	return cache.complexity
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) OrderedArbitrary(step *Tuple2ArbitraryStep[A1, A2], maxCplx float64) (Pair[V1, V2], float64, bool) {
	budget := maxCplx - tupleBaseComplexity
	if budget < m.First.MinComplexity()+m.Second.MinComplexity() {
		return Pair[V1, V2]{}, 0, false
	}
	v1, c1, ok := m.First.OrderedArbitrary(&step.first, budget-m.Second.MinComplexity())
	if !ok {
		return Pair[V1, V2]{}, 0, false
	}
	v2, c2, ok := m.Second.OrderedArbitrary(&step.second, budget-c1)
	if !ok {
		return Pair[V1, V2]{}, 0, false
	}
	return Pair[V1, V2]{First: v1, Second: v2}, tupleBaseComplexity + c1 + c2, true
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) RandomArbitrary(maxCplx float64) (Pair[V1, V2], float64) {
	budget := maxCplx - tupleBaseComplexity
	v1, c1 := m.First.RandomArbitrary(budget - m.Second.MinComplexity())
	v2, c2 := m.Second.RandomArbitrary(budget - c1)
	return Pair[V1, V2]{First: v1, Second: v2}, tupleBaseComplexity + c1 + c2
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) OrderedMutate(value *Pair[V1, V2], cache *Tuple2Cache[C1, C2], step *Tuple2MutationStep[S1, S2], maxCplx float64) (Tuple2Token[T1, T2], float64, bool) {
	budget := maxCplx - tupleBaseComplexity
	for attempts := 0; attempts < 2; attempts++ {
		if step.turn == 0 {
			step.turn = 1
			otherCplx := m.Second.Complexity(&value.Second, &cache.Second)
			tok, cplx, ok := m.First.OrderedMutate(&value.First, &cache.First, &step.first, budget-otherCplx)
			if ok {
				cache.complexity = tupleBaseComplexity + cplx + otherCplx
				return Tuple2Token[T1, T2]{isFirst: true, first: tok}, cache.complexity, true
			}
		} else {
			step.turn = 0
			otherCplx := m.First.Complexity(&value.First, &cache.First)
			tok, cplx, ok := m.Second.OrderedMutate(&value.Second, &cache.Second, &step.second, budget-otherCplx)
			if ok {
				cache.complexity = tupleBaseComplexity + otherCplx + cplx
				return Tuple2Token[T1, T2]{isFirst: false, second: tok}, cache.complexity, true
			}
		}
	}
	return Tuple2Token[T1, T2]{}, 0, false
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) RandomMutate(value *Pair[V1, V2], cache *Tuple2Cache[C1, C2], maxCplx float64) (Tuple2Token[T1, T2], float64) {
	budget := maxCplx - tupleBaseComplexity
	if cache.turnRand() {
		otherCplx := m.Second.Complexity(&value.Second, &cache.Second)
		tok, cplx := m.First.RandomMutate(&value.First, &cache.First, budget-otherCplx)
		cache.complexity = tupleBaseComplexity + cplx + otherCplx
		return Tuple2Token[T1, T2]{isFirst: true, first: tok}, cache.complexity
	}
	otherCplx := m.First.Complexity(&value.First, &cache.First)
	tok, cplx := m.Second.RandomMutate(&value.Second, &cache.Second, budget-otherCplx)
	cache.complexity = tupleBaseComplexity + otherCplx + cplx
	return Tuple2Token[T1, T2]{isFirst: false, second: tok}, cache.complexity
}

// turnRand picks a pseudo-random field to mutate, alternating off the
// complexity cache's low bit so RandomMutate does not need its own RNG
// state; callers needing a true uniform choice should prefer OrderedMutate.
func (c *Tuple2Cache[C1, C2]) turnRand() bool {
	return int64(c.complexity*1000)%2 == 0
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) Unmutate(value *Pair[V1, V2], cache *Tuple2Cache[C1, C2], token Tuple2Token[T1, T2]) {
	if token.isFirst {
		m.First.Unmutate(&value.First, &cache.First, token.first)
	} else {
		m.Second.Unmutate(&value.Second, &cache.Second, token.second)
	}
	cache.complexity = tupleBaseComplexity + m.First.Complexity(&value.First, &cache.First) + m.Second.Complexity(&value.Second, &cache.Second)
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) DefaultRecursingPartIndex(value *Pair[V1, V2], cache *Tuple2Cache[C1, C2]) Tuple2RecursingIndex[R1, R2] {
	return Tuple2RecursingIndex[R1, R2]{
		first:  m.First.DefaultRecursingPartIndex(&value.First, &cache.First),
		second: m.Second.DefaultRecursingPartIndex(&value.Second, &cache.Second),
	}
}

func (m *Tuple2[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2]) RecursingPartRaw(value *Pair[V1, V2], index *Tuple2RecursingIndex[R1, R2]) (any, bool) {
	for attempts := 0; attempts < 2; attempts++ {
		if index.turn == 0 {
			index.turn = 1
			if raw, ok := m.First.RecursingPartRaw(&value.First, &index.first); ok {
				return raw, true
			}
		} else {
			index.turn = 0
			if raw, ok := m.Second.RecursingPartRaw(&value.Second, &index.second); ok {
				return raw, true
			}
		}
	}
	return nil, false
}
