package grammar

import (
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
)

// ASTMutator is the grammar core's object-safe mutator contract. Grammars
// are assembled at runtime (literal by literal, often derived from a
// parsed regex - see regex.go) into a tree of heterogeneous combinator
// types sharing only the AST value type, so Cache/MutationStep/
// ArbitraryStep/UnmutateToken are boxed as any here instead of carried as
// type parameters the way mutator.Mutator does: a []ASTMutator slice
// inside Concatenation could not otherwise hold, say, a literal node next
// to an alternation node. This is the "object-safe façade" pattern
// SPEC_FULL.md §7 also uses for AnyPool/AnySensor.
type ASTMutator interface {
	DefaultArbitraryStep() any
	Validate(value *AST) (any, bool)
	DefaultMutationStep(value *AST, cache any) any
	MinComplexity() float64
	MaxComplexity() float64
	Complexity(value *AST, cache any) float64
	OrderedArbitrary(step any, maxCplx float64) (AST, float64, bool)
	RandomArbitrary(maxCplx float64) (AST, float64)
	OrderedMutate(value *AST, cache any, step any, maxCplx float64) (any, float64, bool)
	RandomMutate(value *AST, cache any, maxCplx float64) (any, float64)
	Unmutate(value *AST, cache any, token any)
}

var grammarRNG = rand.New(rand.NewSource(1))

// literalMutator always produces the single rune it was built with. It
// never mutates, mirroring mutator.Unit's discipline at the grammar
// level.
type literalMutator struct{ c rune }

// Literal builds a grammar producing the fixed rune c.
func Literal(c rune) ASTMutator { return &literalMutator{c: c} }

func (m *literalMutator) DefaultArbitraryStep() any { return nil }
func (m *literalMutator) Validate(value *AST) (any, bool) {
	return nil, value.Kind == KindLiteral && value.Literal == m.c
}
func (m *literalMutator) DefaultMutationStep(value *AST, cache any) any { return nil }
func (m *literalMutator) MinComplexity() float64                       { return 1 }
func (m *literalMutator) MaxComplexity() float64                       { return 1 }
func (m *literalMutator) Complexity(value *AST, cache any) float64     { return 1 }
func (m *literalMutator) OrderedArbitrary(step any, maxCplx float64) (AST, float64, bool) {
	if maxCplx < 1 {
		return AST{}, 0, false
	}
	return AST{Kind: KindLiteral, Literal: m.c}, 1, true
}
func (m *literalMutator) RandomArbitrary(maxCplx float64) (AST, float64) {
	return AST{Kind: KindLiteral, Literal: m.c}, 1
}
func (m *literalMutator) OrderedMutate(value *AST, cache any, step any, maxCplx float64) (any, float64, bool) {
	return nil, 0, false
}
func (m *literalMutator) RandomMutate(value *AST, cache any, maxCplx float64) (any, float64) {
	return nil, 0
}
func (m *literalMutator) Unmutate(value *AST, cache any, token any) {}

// RuneRange is an inclusive [Lo, Hi] range of code points.
type RuneRange struct{ Lo, Hi rune }

// literalRangesMutator picks a rune from a disjoint union of ranges.
type literalRangesMutator struct {
	ranges []RuneRange
	total  int64
}

// LiteralRanges builds a grammar producing any rune covered by ranges.
func LiteralRanges(ranges []RuneRange) ASTMutator {
	invariant.Precondition(len(ranges) > 0, "LiteralRanges requires at least one range")
	var total int64
	for _, r := range ranges {
		total += int64(r.Hi) - int64(r.Lo) + 1
	}
	return &literalRangesMutator{ranges: ranges, total: total}
}

func (m *literalRangesMutator) pick(n int64) rune {
	for _, r := range m.ranges {
		width := int64(r.Hi) - int64(r.Lo) + 1
		if n < width {
			return r.Lo + rune(n)
		}
		n -= width
	}
	return m.ranges[0].Lo
}

func (m *literalRangesMutator) indexOf(c rune) (int64, bool) {
	var base int64
	for _, r := range m.ranges {
		if c >= r.Lo && c <= r.Hi {
			return base + int64(c-r.Lo), true
		}
		base += int64(r.Hi) - int64(r.Lo) + 1
	}
	return 0, false
}

func (m *literalRangesMutator) DefaultArbitraryStep() any { return new(int64) }
func (m *literalRangesMutator) Validate(value *AST) (any, bool) {
	if value.Kind != KindLiteral {
		return nil, false
	}
	_, ok := m.indexOf(value.Literal)
	return nil, ok
}
func (m *literalRangesMutator) DefaultMutationStep(value *AST, cache any) any { return nil }
func (m *literalRangesMutator) MinComplexity() float64                       { return 1 }
func (m *literalRangesMutator) MaxComplexity() float64                       { return 1 }
func (m *literalRangesMutator) Complexity(value *AST, cache any) float64     { return 1 }
func (m *literalRangesMutator) OrderedArbitrary(step any, maxCplx float64) (AST, float64, bool) {
	if maxCplx < 1 {
		return AST{}, 0, false
	}
	cursor := step.(*int64)
	if *cursor >= m.total {
		return AST{}, 0, false
	}
	c := m.pick(*cursor)
	*cursor++
	return AST{Kind: KindLiteral, Literal: c}, 1, true
}
func (m *literalRangesMutator) RandomArbitrary(maxCplx float64) (AST, float64) {
	return AST{Kind: KindLiteral, Literal: m.pick(grammarRNG.Int63n(m.total))}, 1
}
func (m *literalRangesMutator) OrderedMutate(value *AST, cache any, step any, maxCplx float64) (any, float64, bool) {
	if m.total < 2 {
		return nil, 0, false
	}
	prev := value.Literal
	idx, _ := m.indexOf(prev)
	next := (idx + 1) % m.total
	value.Literal = m.pick(next)
	return prev, 1, true
}
func (m *literalRangesMutator) RandomMutate(value *AST, cache any, maxCplx float64) (any, float64) {
	prev := value.Literal
	if m.total > 1 {
		for {
			c := m.pick(grammarRNG.Int63n(m.total))
			if c != prev {
				value.Literal = c
				break
			}
		}
	}
	return prev, 1
}
func (m *literalRangesMutator) Unmutate(value *AST, cache any, token any) {
	value.Literal = token.(rune)
}

// concatCache holds each child's cache alongside the node's complexity.
type concatCache struct {
	children   []any
	complexity float64
}

// concatMutator mutates a fixed-arity sequence of independently-typed
// children (like mutator/collection.FixedVector, but any-boxed).
type concatMutator struct {
	children []ASTMutator
}

// Concatenation builds a grammar that produces a sequence of children in
// order, mutating exactly one child position at a time.
func Concatenation(children []ASTMutator) ASTMutator {
	invariant.Precondition(len(children) > 0, "Concatenation requires at least one child")
	return &concatMutator{children: children}
}

func (m *concatMutator) DefaultArbitraryStep() any {
	steps := make([]any, len(m.children))
	for i, c := range m.children {
		steps[i] = c.DefaultArbitraryStep()
	}
	return steps
}

func (m *concatMutator) Validate(value *AST) (any, bool) {
	if value.Kind != KindConcatenation || len(value.Children) != len(m.children) {
		return nil, false
	}
	caches := make([]any, len(m.children))
	total := 1.0
	for i, c := range m.children {
		cache, ok := c.Validate(&value.Children[i])
		if !ok {
			return nil, false
		}
		caches[i] = cache
		total += c.Complexity(&value.Children[i], cache)
	}
	return &concatCache{children: caches, complexity: total}, true
}

func (m *concatMutator) DefaultMutationStep(value *AST, cache any) any {
	c := cache.(*concatCache)
	steps := make([]any, len(m.children))
	for i, child := range m.children {
		steps[i] = child.DefaultMutationStep(&value.Children[i], c.children[i])
	}
	return &struct {
		steps   []any
		nextIdx int
	}{steps: steps}
}

func (m *concatMutator) MinComplexity() float64 {
	total := 1.0
	for _, c := range m.children {
		total += c.MinComplexity()
	}
	return total
}

func (m *concatMutator) MaxComplexity() float64 {
	total := 1.0
	for _, c := range m.children {
		total += c.MaxComplexity()
	}
	return total
}

func (m *concatMutator) Complexity(value *AST, cache any) float64 {
	return cache.(*concatCache).complexity
}

func (m *concatMutator) recompute(value *AST, cache *concatCache) {
	total := 1.0
	for i, c := range m.children {
		total += c.Complexity(&value.Children[i], cache.children[i])
	}
	cache.complexity = total
}

func (m *concatMutator) OrderedArbitrary(step any, maxCplx float64) (AST, float64, bool) {
	steps := step.([]any)
	budget := maxCplx - 1
	children := make([]AST, len(m.children))
	total := 1.0
	for i, c := range m.children {
		v, cplx, ok := c.OrderedArbitrary(steps[i], budget)
		if !ok {
			return AST{}, 0, false
		}
		children[i] = v
		total += cplx
		budget -= cplx
	}
	return AST{Kind: KindConcatenation, Children: children}, total, true
}

func (m *concatMutator) RandomArbitrary(maxCplx float64) (AST, float64) {
	budget := maxCplx - 1
	children := make([]AST, len(m.children))
	total := 1.0
	for i, c := range m.children {
		v, cplx := c.RandomArbitrary(budget)
		children[i] = v
		total += cplx
		budget -= cplx
	}
	return AST{Kind: KindConcatenation, Children: children}, total
}

func (m *concatMutator) OrderedMutate(value *AST, cache any, step any, maxCplx float64) (any, float64, bool) {
	c := cache.(*concatCache)
	s := step.(*struct {
		steps   []any
		nextIdx int
	})
	for s.nextIdx < len(m.children) {
		idx := s.nextIdx
		tok, _, ok := m.children[idx].OrderedMutate(&value.Children[idx], c.children[idx], s.steps[idx], maxCplx)
		if !ok {
			s.nextIdx++
			continue
		}
		m.recompute(value, c)
		return indexToken{index: idx, inner: tok}, c.complexity, true
	}
	return nil, 0, false
}

func (m *concatMutator) RandomMutate(value *AST, cache any, maxCplx float64) (any, float64) {
	c := cache.(*concatCache)
	idx := grammarRNG.Intn(len(m.children))
	tok, _ := m.children[idx].RandomMutate(&value.Children[idx], c.children[idx], maxCplx)
	m.recompute(value, c)
	return indexToken{index: idx, inner: tok}, c.complexity
}

// indexToken pairs a child index with its own inner token, used by both
// Concatenation and Repetition to reverse a single-child mutation.
type indexToken struct {
	index int
	inner any
}

func (m *concatMutator) Unmutate(value *AST, cache any, token any) {
	c := cache.(*concatCache)
	it := token.(indexToken)
	m.children[it.index].Unmutate(&value.Children[it.index], c.children[it.index], it.inner)
	m.recompute(value, c)
}

// altCache remembers which alternative is active, since the AST's own
// Kind field (KindAlternation) does not distinguish which child grammar
// produced it.
type altCache struct {
	which      int
	inner      any
	complexity float64
}

type altMutator struct {
	alternatives []ASTMutator
}

// Alternation builds a grammar that picks among alternatives, all
// producing AST values wrapped in a KindAlternation node whose sole child
// is the active alternative's own AST.
func Alternation(alternatives []ASTMutator) ASTMutator {
	invariant.Precondition(len(alternatives) > 0, "Alternation requires at least one alternative")
	return &altMutator{alternatives: alternatives}
}

func (m *altMutator) wrap(inner AST) AST {
	return AST{Kind: KindAlternation, Children: []AST{inner}}
}

func (m *altMutator) DefaultArbitraryStep() any {
	return &struct {
		nextAlt int
		inner   any
	}{inner: m.alternatives[0].DefaultArbitraryStep()}
}

func (m *altMutator) Validate(value *AST) (any, bool) {
	if value.Kind != KindAlternation || len(value.Children) != 1 {
		return nil, false
	}
	for i, alt := range m.alternatives {
		if c, ok := alt.Validate(&value.Children[0]); ok {
			return &altCache{which: i, inner: c, complexity: 1 + alt.Complexity(&value.Children[0], c)}, true
		}
	}
	return nil, false
}

func (m *altMutator) DefaultMutationStep(value *AST, cache any) any {
	c := cache.(*altCache)
	return m.alternatives[c.which].DefaultMutationStep(&value.Children[0], c.inner)
}

func (m *altMutator) MinComplexity() float64 {
	min := m.alternatives[0].MinComplexity()
	for _, a := range m.alternatives[1:] {
		if v := a.MinComplexity(); v < min {
			min = v
		}
	}
	return 1 + min
}

func (m *altMutator) MaxComplexity() float64 {
	max := m.alternatives[0].MaxComplexity()
	for _, a := range m.alternatives[1:] {
		if v := a.MaxComplexity(); v > max {
			max = v
		}
	}
	return 1 + max
}

func (m *altMutator) Complexity(value *AST, cache any) float64 {
	return cache.(*altCache).complexity
}

func (m *altMutator) OrderedArbitrary(step any, maxCplx float64) (AST, float64, bool) {
	s := step.(*struct {
		nextAlt int
		inner   any
	})
	for s.nextAlt < len(m.alternatives) {
		v, cplx, ok := m.alternatives[s.nextAlt].OrderedArbitrary(s.inner, maxCplx-1)
		if ok {
			return m.wrap(v), 1 + cplx, true
		}
		s.nextAlt++
		if s.nextAlt < len(m.alternatives) {
			s.inner = m.alternatives[s.nextAlt].DefaultArbitraryStep()
		}
	}
	return AST{}, 0, false
}

func (m *altMutator) RandomArbitrary(maxCplx float64) (AST, float64) {
	alt := m.alternatives[grammarRNG.Intn(len(m.alternatives))]
	v, cplx := alt.RandomArbitrary(maxCplx - 1)
	return m.wrap(v), 1 + cplx
}

func (m *altMutator) OrderedMutate(value *AST, cache any, step any, maxCplx float64) (any, float64, bool) {
	c := cache.(*altCache)
	tok, cplx, ok := m.alternatives[c.which].OrderedMutate(&value.Children[0], c.inner, step, maxCplx-1)
	if !ok {
		return nil, 0, false
	}
	c.complexity = 1 + cplx
	return tok, c.complexity, true
}

func (m *altMutator) RandomMutate(value *AST, cache any, maxCplx float64) (any, float64) {
	c := cache.(*altCache)
	tok, cplx := m.alternatives[c.which].RandomMutate(&value.Children[0], c.inner, maxCplx-1)
	c.complexity = 1 + cplx
	return tok, c.complexity
}

func (m *altMutator) Unmutate(value *AST, cache any, token any) {
	c := cache.(*altCache)
	m.alternatives[c.which].Unmutate(&value.Children[0], c.inner, token)
	c.complexity = 1 + m.alternatives[c.which].Complexity(&value.Children[0], c.inner)
}

// repCache holds each repeated instance's cache plus the node's total
// complexity.
type repCache struct {
	children   []any
	complexity float64
}

type repMutator struct {
	elem       ASTMutator
	min, max   int
}

// Repetition builds a grammar repeating elem between min and max
// (inclusive) times.
func Repetition(elem ASTMutator, min, max int) ASTMutator {
	invariant.Precondition(min >= 0 && max >= min, "Repetition requires 0 <= min <= max")
	return &repMutator{elem: elem, min: min, max: max}
}

func (m *repMutator) DefaultArbitraryStep() any { return new(int) }

func (m *repMutator) Validate(value *AST) (any, bool) {
	if value.Kind != KindRepetition || len(value.Children) < m.min || len(value.Children) > m.max {
		return nil, false
	}
	caches := make([]any, len(value.Children))
	total := 1.0
	for i := range value.Children {
		c, ok := m.elem.Validate(&value.Children[i])
		if !ok {
			return nil, false
		}
		caches[i] = c
		total += m.elem.Complexity(&value.Children[i], c)
	}
	return &repCache{children: caches, complexity: total}, true
}

func (m *repMutator) DefaultMutationStep(value *AST, cache any) any {
	return &struct {
		nextIdx int
		inner   any
	}{}
}

func (m *repMutator) MinComplexity() float64 { return 1 + float64(m.min)*m.elem.MinComplexity() }
func (m *repMutator) MaxComplexity() float64 { return 1 + float64(m.max)*m.elem.MaxComplexity() }

func (m *repMutator) Complexity(value *AST, cache any) float64 { return cache.(*repCache).complexity }

func (m *repMutator) recompute(value *AST, cache *repCache) {
	total := 1.0
	for i := range value.Children {
		total += m.elem.Complexity(&value.Children[i], cache.children[i])
	}
	cache.complexity = total
}

func (m *repMutator) OrderedArbitrary(step any, maxCplx float64) (AST, float64, bool) {
	cursor := step.(*int)
	length := m.min + *cursor
	if length > m.max {
		return AST{}, 0, false
	}
	budget := maxCplx - 1
	if budget < float64(length)*m.elem.MinComplexity() {
		return AST{}, 0, false
	}
	children := make([]AST, length)
	total := 1.0
	for i := 0; i < length; i++ {
		v, cplx := m.elem.RandomArbitrary(budget)
		children[i] = v
		total += cplx
		budget -= cplx
	}
	*cursor++
	return AST{Kind: KindRepetition, Children: children}, total, true
}

func (m *repMutator) RandomArbitrary(maxCplx float64) (AST, float64) {
	budget := maxCplx - 1
	span := m.max - m.min + 1
	length := m.min
	if span > 0 {
		length += grammarRNG.Intn(span)
	}
	children := make([]AST, 0, length)
	total := 1.0
	for i := 0; i < length && budget > m.elem.MinComplexity(); i++ {
		v, cplx := m.elem.RandomArbitrary(budget)
		children = append(children, v)
		total += cplx
		budget -= cplx
	}
	return AST{Kind: KindRepetition, Children: children}, total
}

func (m *repMutator) OrderedMutate(value *AST, cache any, step any, maxCplx float64) (any, float64, bool) {
	c := cache.(*repCache)
	s := step.(*struct {
		nextIdx int
		inner   any
	})
	for s.nextIdx < len(value.Children) {
		idx := s.nextIdx
		if s.inner == nil {
			s.inner = m.elem.DefaultMutationStep(&value.Children[idx], c.children[idx])
		}
		tok, _, ok := m.elem.OrderedMutate(&value.Children[idx], c.children[idx], s.inner, maxCplx)
		if !ok {
			s.nextIdx++
			s.inner = nil
			continue
		}
		m.recompute(value, c)
		return indexToken{index: idx, inner: tok}, c.complexity, true
	}
	return nil, 0, false
}

func (m *repMutator) RandomMutate(value *AST, cache any, maxCplx float64) (any, float64) {
	c := cache.(*repCache)
	if len(value.Children) > 0 && (len(value.Children) >= m.max || grammarRNG.Intn(3) == 0) {
		idx := grammarRNG.Intn(len(value.Children))
		tok, _ := m.elem.RandomMutate(&value.Children[idx], c.children[idx], maxCplx)
		m.recompute(value, c)
		return indexToken{index: idx, inner: tok}, c.complexity
	}
	if len(value.Children) < m.max {
		idx := 0
		if len(value.Children) > 0 {
			idx = grammarRNG.Intn(len(value.Children) + 1)
		}
		v, _ := m.elem.RandomArbitrary(maxCplx)
		cc, ok := m.elem.Validate(&v)
		invariant.Invariant(ok, "Repetition: value from element's own RandomArbitrary must validate")
		value.Children = append(value.Children, AST{})
		copy(value.Children[idx+1:], value.Children[idx:])
		value.Children[idx] = v
		c.children = append(c.children, nil)
		copy(c.children[idx+1:], c.children[idx:])
		c.children[idx] = cc
		m.recompute(value, c)
		return repInsertToken{index: idx}, c.complexity
	}
	if len(value.Children) > m.min {
		idx := grammarRNG.Intn(len(value.Children))
		removedValue := value.Children[idx]
		removedCache := c.children[idx]
		value.Children = append(value.Children[:idx], value.Children[idx+1:]...)
		c.children = append(c.children[:idx], c.children[idx+1:]...)
		m.recompute(value, c)
		return repRemoveToken{index: idx, value: removedValue, cache: removedCache}, c.complexity
	}
	idx := grammarRNG.Intn(len(value.Children))
	tok, _ := m.elem.RandomMutate(&value.Children[idx], c.children[idx], maxCplx)
	m.recompute(value, c)
	return indexToken{index: idx, inner: tok}, c.complexity
}

// repInsertToken reverses a Repetition insertion by index alone.
type repInsertToken struct{ index int }

// repRemoveToken carries the removed child's value and cache so
// Repetition's Unmutate can splice it back in exactly.
type repRemoveToken struct {
	index int
	value AST
	cache any
}

func (m *repMutator) Unmutate(value *AST, cache any, token any) {
	c := cache.(*repCache)
	switch t := token.(type) {
	case indexToken:
		m.elem.Unmutate(&value.Children[t.index], c.children[t.index], t.inner)
	case repInsertToken:
		value.Children = append(value.Children[:t.index], value.Children[t.index+1:]...)
		c.children = append(c.children[:t.index], c.children[t.index+1:]...)
	case repRemoveToken:
		value.Children = append(value.Children, AST{})
		copy(value.Children[t.index+1:], value.Children[t.index:])
		value.Children[t.index] = t.value
		c.children = append(c.children, nil)
		copy(c.children[t.index+1:], c.children[t.index:])
		c.children[t.index] = t.cache
	}
	m.recompute(value, c)
}
