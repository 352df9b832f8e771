package mutator

// Tuple3Cache, Tuple3MutationStep, Tuple3ArbitraryStep, Tuple3Token and
// Tuple3RecursingIndex mirror their Tuple2 counterparts, extended to a
// third field.
type Tuple3Cache[C1, C2, C3 any] struct {
	First      C1
	Second     C2
	Third      C3
	complexity float64
}

type Tuple3MutationStep[S1, S2, S3 any] struct {
	first  S1
	second S2
	third  S3
	turn   int
}

type Tuple3ArbitraryStep[A1, A2, A3 any] struct {
	first  A1
	second A2
	third  A3
}

type Tuple3Token[T1, T2, T3 any] struct {
	which  int // 0=first, 1=second, 2=third
	first  T1
	second T2
	third  T3
}

type Tuple3RecursingIndex[R1, R2, R3 any] struct {
	first  R1
	second R2
	third  R3
	turn   int
}

// Tuple3 composes three mutators over a 3-field struct, following the same
// additive-complexity, round-robin-mutation discipline as Tuple2.
type Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3 any] struct {
	First  Mutator[V1, C1, S1, A1, T1, R1]
	Second Mutator[V2, C2, S2, A2, T2, R2]
	Third  Mutator[V3, C3, S3, A3, T3, R3]
}

// NewTuple3 composes first, second, third into a triple mutator.
func NewTuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3 any](
	first Mutator[V1, C1, S1, A1, T1, R1],
	second Mutator[V2, C2, S2, A2, T2, R2],
	third Mutator[V3, C3, S3, A3, T3, R3],
) *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3] {
	return &Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]{First: first, Second: second, Third: third}
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) DefaultArbitraryStep() Tuple3ArbitraryStep[A1, A2, A3] {
	return Tuple3ArbitraryStep[A1, A2, A3]{
		first:  m.First.DefaultArbitraryStep(),
		second: m.Second.DefaultArbitraryStep(),
		third:  m.Third.DefaultArbitraryStep(),
	}
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) Validate(value *Triple[V1, V2, V3]) (Tuple3Cache[C1, C2, C3], bool) {
	c1, ok := m.First.Validate(&value.First)
	if !ok {
		return Tuple3Cache[C1, C2, C3]{}, false
	}
	c2, ok := m.Second.Validate(&value.Second)
	if !ok {
		return Tuple3Cache[C1, C2, C3]{}, false
	}
	c3, ok := m.Third.Validate(&value.Third)
	if !ok {
		return Tuple3Cache[C1, C2, C3]{}, false
	}
	cplx := tupleBaseComplexity + m.First.Complexity(&value.First, &c1) + m.Second.Complexity(&value.Second, &c2) + m.Third.Complexity(&value.Third, &c3)
	return Tuple3Cache[C1, C2, C3]{First: c1, Second: c2, Third: c3, complexity: cplx}, true
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) DefaultMutationStep(value *Triple[V1, V2, V3], cache *Tuple3Cache[C1, C2, C3]) Tuple3MutationStep[S1, S2, S3] {
	return Tuple3MutationStep[S1, S2, S3]{
		first:  m.First.DefaultMutationStep(&value.First, &cache.First),
		second: m.Second.DefaultMutationStep(&value.Second, &cache.Second),
		third:  m.Third.DefaultMutationStep(&value.Third, &cache.Third),
	}
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) MinComplexity() float64 {
	return tupleBaseComplexity + m.First.MinComplexity() + m.Second.MinComplexity() + m.Third.MinComplexity()
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) MaxComplexity() float64 {
	return tupleBaseComplexity + m.First.MaxComplexity() + m.Second.MaxComplexity() + m.Third.MaxComplexity()
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) Complexity(value *Triple[V1, V2, V3], cache *Tuple3Cache[C1, C2, C3]) float64 {
	return cache.complexity
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) OrderedArbitrary(step *Tuple3ArbitraryStep[A1, A2, A3], maxCplx float64) (Triple[V1, V2, V3], float64, bool) {
	budget := maxCplx - tupleBaseComplexity
	minOthers := m.Second.MinComplexity() + m.Third.MinComplexity()
	if budget < m.First.MinComplexity()+minOthers {
		return Triple[V1, V2, V3]{}, 0, false
	}
	v1, c1, ok := m.First.OrderedArbitrary(&step.first, budget-minOthers)
	if !ok {
		return Triple[V1, V2, V3]{}, 0, false
	}
	v2, c2, ok := m.Second.OrderedArbitrary(&step.second, budget-c1-m.Third.MinComplexity())
	if !ok {
		return Triple[V1, V2, V3]{}, 0, false
	}
	v3, c3, ok := m.Third.OrderedArbitrary(&step.third, budget-c1-c2)
	if !ok {
		return Triple[V1, V2, V3]{}, 0, false
	}
	return Triple[V1, V2, V3]{First: v1, Second: v2, Third: v3}, tupleBaseComplexity + c1 + c2 + c3, true
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) RandomArbitrary(maxCplx float64) (Triple[V1, V2, V3], float64) {
	budget := maxCplx - tupleBaseComplexity
	v1, c1 := m.First.RandomArbitrary(budget - m.Second.MinComplexity() - m.Third.MinComplexity())
	v2, c2 := m.Second.RandomArbitrary(budget - c1 - m.Third.MinComplexity())
	v3, c3 := m.Third.RandomArbitrary(budget - c1 - c2)
	return Triple[V1, V2, V3]{First: v1, Second: v2, Third: v3}, tupleBaseComplexity + c1 + c2 + c3
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) otherComplexity(value *Triple[V1, V2, V3], cache *Tuple3Cache[C1, C2, C3], skip int) float64 {
	total := 0.0
	if skip != 0 {
		total += m.First.Complexity(&value.First, &cache.First)
	}
	if skip != 1 {
		total += m.Second.Complexity(&value.Second, &cache.Second)
	}
	if skip != 2 {
		total += m.Third.Complexity(&value.Third, &cache.Third)
	}
	return total
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) OrderedMutate(value *Triple[V1, V2, V3], cache *Tuple3Cache[C1, C2, C3], step *Tuple3MutationStep[S1, S2, S3], maxCplx float64) (Tuple3Token[T1, T2, T3], float64, bool) {
	budget := maxCplx - tupleBaseComplexity
	for attempts := 0; attempts < 3; attempts++ {
		which := step.turn
		step.turn = (step.turn + 1) % 3
		others := m.otherComplexity(value, cache, which)
		switch which {
		case 0:
			if tok, cplx, ok := m.First.OrderedMutate(&value.First, &cache.First, &step.first, budget-others); ok {
				cache.complexity = tupleBaseComplexity + others + cplx
				return Tuple3Token[T1, T2, T3]{which: 0, first: tok}, cache.complexity, true
			}
		case 1:
			if tok, cplx, ok := m.Second.OrderedMutate(&value.Second, &cache.Second, &step.second, budget-others); ok {
				cache.complexity = tupleBaseComplexity + others + cplx
				return Tuple3Token[T1, T2, T3]{which: 1, second: tok}, cache.complexity, true
			}
		case 2:
			if tok, cplx, ok := m.Third.OrderedMutate(&value.Third, &cache.Third, &step.third, budget-others); ok {
				cache.complexity = tupleBaseComplexity + others + cplx
				return Tuple3Token[T1, T2, T3]{which: 2, third: tok}, cache.complexity, true
			}
		}
	}
	return Tuple3Token[T1, T2, T3]{}, 0, false
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) RandomMutate(value *Triple[V1, V2, V3], cache *Tuple3Cache[C1, C2, C3], maxCplx float64) (Tuple3Token[T1, T2, T3], float64) {
	budget := maxCplx - tupleBaseComplexity
	which := int(cache.complexity*1000) % 3
	others := m.otherComplexity(value, cache, which)
	switch which {
	case 0:
		tok, cplx := m.First.RandomMutate(&value.First, &cache.First, budget-others)
		cache.complexity = tupleBaseComplexity + others + cplx
		return Tuple3Token[T1, T2, T3]{which: 0, first: tok}, cache.complexity
	case 1:
		tok, cplx := m.Second.RandomMutate(&value.Second, &cache.Second, budget-others)
		cache.complexity = tupleBaseComplexity + others + cplx
		return Tuple3Token[T1, T2, T3]{which: 1, second: tok}, cache.complexity
	default:
		tok, cplx := m.Third.RandomMutate(&value.Third, &cache.Third, budget-others)
		cache.complexity = tupleBaseComplexity + others + cplx
		return Tuple3Token[T1, T2, T3]{which: 2, third: tok}, cache.complexity
	}
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) Unmutate(value *Triple[V1, V2, V3], cache *Tuple3Cache[C1, C2, C3], token Tuple3Token[T1, T2, T3]) {
	switch token.which {
	case 0:
		m.First.Unmutate(&value.First, &cache.First, token.first)
	case 1:
		m.Second.Unmutate(&value.Second, &cache.Second, token.second)
	case 2:
		m.Third.Unmutate(&value.Third, &cache.Third, token.third)
	}
	cache.complexity = tupleBaseComplexity +
		m.First.Complexity(&value.First, &cache.First) +
		m.Second.Complexity(&value.Second, &cache.Second) +
		m.Third.Complexity(&value.Third, &cache.Third)
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) DefaultRecursingPartIndex(value *Triple[V1, V2, V3], cache *Tuple3Cache[C1, C2, C3]) Tuple3RecursingIndex[R1, R2, R3] {
	return Tuple3RecursingIndex[R1, R2, R3]{
		first:  m.First.DefaultRecursingPartIndex(&value.First, &cache.First),
		second: m.Second.DefaultRecursingPartIndex(&value.Second, &cache.Second),
		third:  m.Third.DefaultRecursingPartIndex(&value.Third, &cache.Third),
	}
}

func (m *Tuple3[V1, C1, S1, A1, T1, R1, V2, C2, S2, A2, T2, R2, V3, C3, S3, A3, T3, R3]) RecursingPartRaw(value *Triple[V1, V2, V3], index *Tuple3RecursingIndex[R1, R2, R3]) (any, bool) {
	for attempts := 0; attempts < 3; attempts++ {
		which := index.turn
		index.turn = (index.turn + 1) % 3
		switch which {
		case 0:
			if raw, ok := m.First.RecursingPartRaw(&value.First, &index.first); ok {
				return raw, true
			}
		case 1:
			if raw, ok := m.Second.RecursingPartRaw(&value.Second, &index.second); ok {
				return raw, true
			}
		case 2:
			if raw, ok := m.Third.RecursingPartRaw(&value.Third, &index.third); ok {
				return raw, true
			}
		}
	}
	return nil, false
}
