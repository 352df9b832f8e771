package mutator

import (
	"math"
	"math/rand"
)

// Expr is a small self-referential arithmetic value: a leaf int32, or one
// level of parenthesized nesting around another Expr. It gives Recursive
// and RecursingPart a grammar that genuinely recurses, rather than the
// single-level delegation recursive_test.go exercises them with.
//
// Expr has to be an ordinary struct, not a generic instantiation of
// Either[int32, *Expr]: Go rejects a generic type used as its own type
// argument, even behind a pointer. The self-reference goes through a
// plain pointer field instead, the same way Recursive's own doc comment
// describes for the mutator side of this problem.
type Expr struct {
	IsLeaf bool
	Leaf   int32
	Nested *Expr
}

// NewExprLeaf builds a leaf Expr.
func NewExprLeaf(v int32) Expr { return Expr{IsLeaf: true, Leaf: v} }

// NewExprNested builds an Expr nesting inner one level deeper.
func NewExprNested(inner Expr) Expr { return Expr{Nested: &inner} }

// ExprCache mirrors EitherCache: both variants' cache state plus total
// complexity, only the field matching IsLeaf live at any time.
type ExprCache struct {
	leaf       None
	nested     *ExprCache
	complexity float64
}

// ExprArbitraryStep mirrors EitherArbitraryStep: try the leaf variant
// before nesting, deferring within each to that variant's own step.
type ExprArbitraryStep struct {
	chooseLeaf bool
	leaf       IntArbitraryStep
	nested     *ExprArbitraryStep
}

// ExprMutationStep mirrors EitherMutationStep, minus variant-switching -
// Either2 does not implement that either (see its unused trySwitch field).
type ExprMutationStep struct {
	leaf   IntMutationStep
	nested *ExprMutationStep
}

// ExprToken reverses an in-variant mutation of either the leaf or the
// nested Expr.
type ExprToken struct {
	wasLeaf     bool
	innerLeaf   IntToken[int32]
	innerNested *ExprToken
}

// ExprRecursingIndex is the RecursingPartIndex for ExprMutator. Nested is
// the grammar's only recursive position, so there is nothing to count
// past "have we already yielded it".
type ExprRecursingIndex struct {
	yielded bool
}

// floatSource is the minimal surface ExprMutator needs from *rand.Rand for
// its variant coin flip, kept as an interface so tests can substitute a
// deterministic stub - the same idiom pool.And's randSource uses.
type floatSource interface {
	Float64() float64
}

// ExprMutator generates and mutates Expr values. Its Nested variant
// recurses into itself through a Box wrapping a RecurTo handle, the
// two-phase construction Recursive's doc comment describes: NewBox is
// handed a handle to the very Recursive being built, before that
// Recursive has anything to delegate to.
type ExprMutator struct {
	leaf   *Int[int32]
	nested *Box[Expr, ExprCache, ExprMutationStep, ExprArbitraryStep, ExprToken, ExprRecursingIndex]
	rng    floatSource
}

// NewExprMutator builds a mutator for Expr.
func NewExprMutator() *ExprMutator {
	var em *ExprMutator
	NewRecursive(func(recurse Mutator[Expr, ExprCache, ExprMutationStep, ExprArbitraryStep, ExprToken, ExprRecursingIndex]) Mutator[Expr, ExprCache, ExprMutationStep, ExprArbitraryStep, ExprToken, ExprRecursingIndex] {
		em = &ExprMutator{
			leaf:   NewInt32(),
			nested: NewBox[Expr, ExprCache, ExprMutationStep, ExprArbitraryStep, ExprToken, ExprRecursingIndex](recurse),
			rng:    rand.New(rand.NewSource(1)),
		}
		return em
	})
	return em
}

func (m *ExprMutator) DefaultArbitraryStep() ExprArbitraryStep {
	return ExprArbitraryStep{chooseLeaf: true, leaf: m.leaf.DefaultArbitraryStep()}
}

func (m *ExprMutator) Validate(value *Expr) (ExprCache, bool) {
	if value.IsLeaf {
		c, ok := m.leaf.Validate(&value.Leaf)
		if !ok {
			return ExprCache{}, false
		}
		return ExprCache{leaf: c, complexity: 1 + m.leaf.Complexity(&value.Leaf, &c)}, true
	}
	if value.Nested == nil {
		return ExprCache{}, false
	}
	c, ok := m.nested.Validate(&value.Nested)
	if !ok {
		return ExprCache{}, false
	}
	return ExprCache{nested: &c, complexity: 1 + m.nested.Complexity(&value.Nested, &c)}, true
}

func (m *ExprMutator) DefaultMutationStep(value *Expr, cache *ExprCache) ExprMutationStep {
	if value.IsLeaf {
		return ExprMutationStep{leaf: m.leaf.DefaultMutationStep(&value.Leaf, &cache.leaf)}
	}
	s := m.nested.DefaultMutationStep(&value.Nested, cache.nested)
	return ExprMutationStep{nested: &s}
}

// MinComplexity is the leaf variant's cost: nesting is always more
// expensive than a bare leaf.
func (m *ExprMutator) MinComplexity() float64 { return 1 + m.leaf.MinComplexity() }

// MaxComplexity is unbounded: nesting depth is budgeted per call via
// maxCplx, not capped by a fixed ceiling.
func (m *ExprMutator) MaxComplexity() float64 { return math.Inf(1) }

func (m *ExprMutator) Complexity(value *Expr, cache *ExprCache) float64 { return cache.complexity }

func (m *ExprMutator) OrderedArbitrary(step *ExprArbitraryStep, maxCplx float64) (Expr, float64, bool) {
	budget := maxCplx - 1
	if step.chooseLeaf {
		v, cplx, ok := m.leaf.OrderedArbitrary(&step.leaf, budget)
		if ok {
			return Expr{IsLeaf: true, Leaf: v}, 1 + cplx, true
		}
		step.chooseLeaf = false
	}
	if step.nested == nil {
		s := m.nested.DefaultArbitraryStep()
		step.nested = &s
	}
	v, cplx, ok := m.nested.OrderedArbitrary(step.nested, budget)
	if !ok {
		return Expr{}, 0, false
	}
	return Expr{Nested: v}, 1 + cplx, true
}

func (m *ExprMutator) RandomArbitrary(maxCplx float64) (Expr, float64) {
	budget := maxCplx - 1
	// A decaying coin flip keeps generation from nesting indefinitely even
	// when the complexity budget alone would allow it, the same role
	// Either2's Left/Right split plays when one side is the cheaper choice.
	if budget < m.nested.MinComplexity() || m.rng.Float64() < 0.5 {
		v, cplx := m.leaf.RandomArbitrary(maxCplx)
		return Expr{IsLeaf: true, Leaf: v}, 1 + cplx
	}
	v, cplx := m.nested.RandomArbitrary(budget)
	return Expr{Nested: v}, 1 + cplx
}

func (m *ExprMutator) OrderedMutate(value *Expr, cache *ExprCache, step *ExprMutationStep, maxCplx float64) (ExprToken, float64, bool) {
	budget := maxCplx - 1
	if value.IsLeaf {
		tok, cplx, ok := m.leaf.OrderedMutate(&value.Leaf, &cache.leaf, &step.leaf, budget)
		if !ok {
			return ExprToken{}, 0, false
		}
		cache.complexity = 1 + cplx
		return ExprToken{wasLeaf: true, innerLeaf: tok}, cache.complexity, true
	}
	if step.nested == nil {
		s := m.nested.DefaultMutationStep(&value.Nested, cache.nested)
		step.nested = &s
	}
	tok, cplx, ok := m.nested.OrderedMutate(&value.Nested, cache.nested, step.nested, budget)
	if !ok {
		return ExprToken{}, 0, false
	}
	cache.complexity = 1 + cplx
	return ExprToken{wasLeaf: false, innerNested: &tok}, cache.complexity, true
}

func (m *ExprMutator) RandomMutate(value *Expr, cache *ExprCache, maxCplx float64) (ExprToken, float64) {
	budget := maxCplx - 1
	if value.IsLeaf {
		tok, cplx := m.leaf.RandomMutate(&value.Leaf, &cache.leaf, budget)
		cache.complexity = 1 + cplx
		return ExprToken{wasLeaf: true, innerLeaf: tok}, cache.complexity
	}
	tok, cplx := m.nested.RandomMutate(&value.Nested, cache.nested, budget)
	cache.complexity = 1 + cplx
	return ExprToken{wasLeaf: false, innerNested: &tok}, cache.complexity
}

func (m *ExprMutator) Unmutate(value *Expr, cache *ExprCache, token ExprToken) {
	if token.wasLeaf {
		m.leaf.Unmutate(&value.Leaf, &cache.leaf, token.innerLeaf)
		cache.complexity = 1 + m.leaf.Complexity(&value.Leaf, &cache.leaf)
		return
	}
	m.nested.Unmutate(&value.Nested, cache.nested, *token.innerNested)
	cache.complexity = 1 + m.nested.Complexity(&value.Nested, cache.nested)
}

func (m *ExprMutator) DefaultRecursingPartIndex(value *Expr, cache *ExprCache) ExprRecursingIndex {
	return ExprRecursingIndex{}
}

// RecursingPartRaw yields value.Nested itself - a complete sub-Expr - so a
// caller building a larger Expr around value can reuse it directly instead
// of generating a fresh nested value from scratch, per spec.md §4.1.
func (m *ExprMutator) RecursingPartRaw(value *Expr, index *ExprRecursingIndex) (any, bool) {
	if index.yielded || value.IsLeaf || value.Nested == nil {
		return nil, false
	}
	index.yielded = true
	return value.Nested, true
}
