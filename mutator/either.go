package mutator

// Either is the value type mutated by the Either combinator: exactly one of
// Left or Right is active, tagged by IsLeft.
type Either[L, R any] struct {
	IsLeft bool
	Left   L
	Right  R
}

// NewEitherLeft builds an Either value in its Left variant.
func NewEitherLeft[L, R any](left L) Either[L, R] { return Either[L, R]{IsLeft: true, Left: left} }

// NewEitherRight builds an Either value in its Right variant.
func NewEitherRight[L, R any](right R) Either[L, R] { return Either[L, R]{IsLeft: false, Right: right} }

// EitherCache caches both variants' mutator caches plus total complexity;
// only the cache matching the value's active tag is meaningful at any time.
type EitherCache[CL, CR any] struct {
	left       CL
	right      CR
	complexity float64
}

// EitherMutationStep holds each variant's own mutation step. Mutation
// always stays within the currently active variant: trySwitch is never
// set, so no step switches the variant.
type EitherMutationStep[SL, SR any] struct {
	left        SL
	right       SR
	trySwitch   bool
}

// EitherArbitraryStep picks Left or Right, then defers to that variant's
// own arbitrary step.
type EitherArbitraryStep[AL, AR any] struct {
	chooseLeft bool
	tried      bool
	left       AL
	right      AR
}

// EitherToken reverses either an in-variant mutation or a variant switch.
type EitherToken[L, R, TL, TR any] struct {
	switched   bool
	wasLeft    bool
	prevLeft   L
	prevRight  R
	innerLeft  TL
	innerRight TR
}

// Either2 mutates an Either[L, R] with one mutator per variant; its twelve
// type parameters are the Left mutator's six followed by the Right's six.
type Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR any] struct {
	Left  Mutator[L, CL, SL, AL, TL, RL]
	Right Mutator[R, CR, SR, AR, TR, RR]
}

// NewEither2 composes left and right into an Either mutator.
func NewEither2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR any](
	left Mutator[L, CL, SL, AL, TL, RL],
	right Mutator[R, CR, SR, AR, TR, RR],
) *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR] {
	return &Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]{Left: left, Right: right}
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) DefaultArbitraryStep() EitherArbitraryStep[AL, AR] {
	return EitherArbitraryStep[AL, AR]{chooseLeft: true, left: m.Left.DefaultArbitraryStep(), right: m.Right.DefaultArbitraryStep()}
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) Validate(value *Either[L, R]) (EitherCache[CL, CR], bool) {
	if value.IsLeft {
		c, ok := m.Left.Validate(&value.Left)
		if !ok {
			return EitherCache[CL, CR]{}, false
		}
		return EitherCache[CL, CR]{left: c, complexity: 1 + m.Left.Complexity(&value.Left, &c)}, true
	}
	c, ok := m.Right.Validate(&value.Right)
	if !ok {
		return EitherCache[CL, CR]{}, false
	}
	return EitherCache[CL, CR]{right: c, complexity: 1 + m.Right.Complexity(&value.Right, &c)}, true
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) DefaultMutationStep(value *Either[L, R], cache *EitherCache[CL, CR]) EitherMutationStep[SL, SR] {
	if value.IsLeft {
		return EitherMutationStep[SL, SR]{left: m.Left.DefaultMutationStep(&value.Left, &cache.left)}
	}
	return EitherMutationStep[SL, SR]{right: m.Right.DefaultMutationStep(&value.Right, &cache.right)}
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) MinComplexity() float64 {
	l, r := m.Left.MinComplexity(), m.Right.MinComplexity()
	if l < r {
		return 1 + l
	}
	return 1 + r
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) MaxComplexity() float64 {
	l, r := m.Left.MaxComplexity(), m.Right.MaxComplexity()
	if l > r {
		return 1 + l
	}
	return 1 + r
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) Complexity(value *Either[L, R], cache *EitherCache[CL, CR]) float64 {
	return cache.complexity
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) OrderedArbitrary(step *EitherArbitraryStep[AL, AR], maxCplx float64) (Either[L, R], float64, bool) {
	budget := maxCplx - 1
	if step.chooseLeft {
		v, cplx, ok := m.Left.OrderedArbitrary(&step.left, budget)
		if ok {
			return Either[L, R]{IsLeft: true, Left: v}, 1 + cplx, true
		}
		step.chooseLeft = false
	}
	v, cplx, ok := m.Right.OrderedArbitrary(&step.right, budget)
	if !ok {
		return Either[L, R]{}, 0, false
	}
	return Either[L, R]{IsLeft: false, Right: v}, 1 + cplx, true
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) RandomArbitrary(maxCplx float64) (Either[L, R], float64) {
	budget := maxCplx - 1
	if m.Left.MinComplexity() <= m.Right.MinComplexity() {
		v, cplx := m.Left.RandomArbitrary(budget)
		return Either[L, R]{IsLeft: true, Left: v}, 1 + cplx
	}
	v, cplx := m.Right.RandomArbitrary(budget)
	return Either[L, R]{IsLeft: false, Right: v}, 1 + cplx
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) OrderedMutate(value *Either[L, R], cache *EitherCache[CL, CR], step *EitherMutationStep[SL, SR], maxCplx float64) (EitherToken[L, R, TL, TR], float64, bool) {
	budget := maxCplx - 1
	if value.IsLeft {
		tok, cplx, ok := m.Left.OrderedMutate(&value.Left, &cache.left, &step.left, budget)
		if ok {
			cache.complexity = 1 + cplx
			return EitherToken[L, R, TL, TR]{wasLeft: true, innerLeft: tok}, cache.complexity, true
		}
	} else {
		tok, cplx, ok := m.Right.OrderedMutate(&value.Right, &cache.right, &step.right, budget)
		if ok {
			cache.complexity = 1 + cplx
			return EitherToken[L, R, TL, TR]{wasLeft: false, innerRight: tok}, cache.complexity, true
		}
	}
	return EitherToken[L, R, TL, TR]{}, 0, false
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) RandomMutate(value *Either[L, R], cache *EitherCache[CL, CR], maxCplx float64) (EitherToken[L, R, TL, TR], float64) {
	budget := maxCplx - 1
	if value.IsLeft {
		tok, cplx := m.Left.RandomMutate(&value.Left, &cache.left, budget)
		cache.complexity = 1 + cplx
		return EitherToken[L, R, TL, TR]{wasLeft: true, innerLeft: tok}, cache.complexity
	}
	tok, cplx := m.Right.RandomMutate(&value.Right, &cache.right, budget)
	cache.complexity = 1 + cplx
	return EitherToken[L, R, TL, TR]{wasLeft: false, innerRight: tok}, cache.complexity
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) Unmutate(value *Either[L, R], cache *EitherCache[CL, CR], token EitherToken[L, R, TL, TR]) {
	if token.switched {
		value.IsLeft = token.wasLeft
		value.Left = token.prevLeft
		value.Right = token.prevRight
		return
	}
	if token.wasLeft {
		m.Left.Unmutate(&value.Left, &cache.left, token.innerLeft)
		cache.complexity = 1 + m.Left.Complexity(&value.Left, &cache.left)
	} else {
		m.Right.Unmutate(&value.Right, &cache.right, token.innerRight)
		cache.complexity = 1 + m.Right.Complexity(&value.Right, &cache.right)
	}
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) DefaultRecursingPartIndex(value *Either[L, R], cache *EitherCache[CL, CR]) Either[RL, RR] {
	if value.IsLeft {
		return Either[RL, RR]{IsLeft: true, Left: m.Left.DefaultRecursingPartIndex(&value.Left, &cache.left)}
	}
	return Either[RL, RR]{IsLeft: false, Right: m.Right.DefaultRecursingPartIndex(&value.Right, &cache.right)}
}

func (m *Either2[L, CL, SL, AL, TL, RL, R, CR, SR, AR, TR, RR]) RecursingPartRaw(value *Either[L, R], index *Either[RL, RR]) (any, bool) {
	if value.IsLeft {
		return m.Left.RecursingPartRaw(&value.Left, &index.Left)
	}
	return m.Right.RecursingPartRaw(&value.Right, &index.Right)
}
