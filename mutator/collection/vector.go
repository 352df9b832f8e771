// Package collection provides mutators over sequences, per spec.md
// §4.6-4.7: a growable Vector driven by a single child mutator shared by
// every element, and a length-fixed FixedVector with one child mutator
// per position.
package collection

import (
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
	"github.com/corefuzz/corefuzz/mutator"
)

const vectorBaseComplexity = 1.0

// Vector mutates a growable []V with a single child mutator shared by
// every element. Complexity is the base cost plus the sum of element
// complexities.
type Vector[V, C, S, A, T, R any] struct {
	Elem mutator.Mutator[V, C, S, A, T, R]
	// MinLen/MaxLen bound the vector's length; MaxLen of 0 means unbounded.
	MinLen, MaxLen int
	rng            *rand.Rand
}

// NewVector builds a vector mutator with element mutator elem and length
// bounds [minLen, maxLen]. maxLen of 0 means unbounded.
func NewVector[V, C, S, A, T, R any](elem mutator.Mutator[V, C, S, A, T, R], minLen, maxLen int) *Vector[V, C, S, A, T, R] {
	invariant.Precondition(minLen >= 0, "Vector MinLen must be non-negative")
	invariant.Precondition(maxLen == 0 || maxLen >= minLen, "Vector MaxLen must be >= MinLen or 0")
	return &Vector[V, C, S, A, T, R]{Elem: elem, MinLen: minLen, MaxLen: maxLen, rng: rand.New(rand.NewSource(1))}
}

func (m *Vector[V, C, S, A, T, R]) SeedWith(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

// VectorCache holds each element's cache alongside the vector's total
// complexity, so Complexity never has to re-walk the slice.
type VectorCache[C any] struct {
	elems      []C
	complexity float64
}

// VectorMutationStep drives OrderedMutate, which enumerates only
// single-element (Element) mutations, index by index; the other kinds
// (Elements, Insert, InsertMany, Remove, RemoveMany, Replace) are made
// only by RandomMutate.
type VectorMutationStep[S any] struct {
	kind     int
	elemStep S
	nextIdx  int
}

// VectorArbitraryStep drives ordered generation of fresh vectors of
// increasing length.
type VectorArbitraryStep[A any] struct {
	length int
}

// VectorKind tags which VectorToken variant is populated.
type VectorKind int

const (
	VectorElement VectorKind = iota
	VectorElements
	VectorInsert
	VectorInsertMany
	VectorRemove
	VectorRemoveMany
	VectorReplace
	VectorNothing
)

// IndexToken pairs an index with the inner token produced by mutating the
// element at that index.
type IndexToken[T any] struct {
	Index int
	Inner T
}

// VectorToken reverses any of the mutation kinds in VectorKind.
type VectorToken[V, T any] struct {
	Kind          VectorKind
	ElementAt     IndexToken[T]
	ElementsAt    []IndexToken[T]
	InsertedAt    int
	InsertedCount int
	RemovedAt     int
	RemovedValues []V
	PriorVector   []V
}

func (m *Vector[V, C, S, A, T, R]) DefaultArbitraryStep() VectorArbitraryStep[A] {
	return VectorArbitraryStep[A]{length: m.MinLen}
}

func (m *Vector[V, C, S, A, T, R]) Validate(value *[]V) (VectorCache[C], bool) {
	if len(*value) < m.MinLen || (m.MaxLen > 0 && len(*value) > m.MaxLen) {
		return VectorCache[C]{}, false
	}
	caches := make([]C, len(*value))
	total := vectorBaseComplexity
	for i := range *value {
		c, ok := m.Elem.Validate(&(*value)[i])
		if !ok {
			return VectorCache[C]{}, false
		}
		caches[i] = c
		total += m.Elem.Complexity(&(*value)[i], &c)
	}
	return VectorCache[C]{elems: caches, complexity: total}, true
}

func (m *Vector[V, C, S, A, T, R]) DefaultMutationStep(value *[]V, cache *VectorCache[C]) VectorMutationStep[S] {
	return VectorMutationStep[S]{}
}

func (m *Vector[V, C, S, A, T, R]) MinComplexity() float64 {
	return vectorBaseComplexity + float64(m.MinLen)*m.Elem.MinComplexity()
}

func (m *Vector[V, C, S, A, T, R]) MaxComplexity() float64 {
	if m.MaxLen == 0 {
		return vectorBaseComplexity * 1e6 // effectively unbounded, per spec.md's "no hard cap" note
	}
	return vectorBaseComplexity + float64(m.MaxLen)*m.Elem.MaxComplexity()
}

func (m *Vector[V, C, S, A, T, R]) Complexity(value *[]V, cache *VectorCache[C]) float64 {
	return cache.complexity
}

func (m *Vector[V, C, S, A, T, R]) recomputeComplexity(value []V, cache *VectorCache[C]) {
	total := vectorBaseComplexity
	for i := range value {
		total += m.Elem.Complexity(&value[i], &cache.elems[i])
	}
	cache.complexity = total
}

func (m *Vector[V, C, S, A, T, R]) OrderedArbitrary(step *VectorArbitraryStep[A], maxCplx float64) ([]V, float64, bool) {
	if m.MaxLen > 0 && step.length > m.MaxLen {
		return nil, 0, false
	}
	budget := maxCplx - vectorBaseComplexity
	if budget < float64(step.length)*m.Elem.MinComplexity() {
		return nil, 0, false
	}
	values := make([]V, step.length)
	total := vectorBaseComplexity
	for i := 0; i < step.length; i++ {
		v, cplx := m.Elem.RandomArbitrary(budget)
		values[i] = v
		total += cplx
		budget -= cplx
	}
	step.length++
	return values, total, true
}

func (m *Vector[V, C, S, A, T, R]) RandomArbitrary(maxCplx float64) ([]V, float64) {
	budget := maxCplx - vectorBaseComplexity
	length := m.MinLen
	span := 8
	if m.MaxLen > 0 {
		span = m.MaxLen - m.MinLen + 1
	}
	if span > 0 {
		length += m.rng.Intn(span)
	}
	values := make([]V, 0, length)
	total := vectorBaseComplexity
	for i := 0; i < length && budget > m.Elem.MinComplexity(); i++ {
		v, cplx := m.Elem.RandomArbitrary(budget)
		values = append(values, v)
		total += cplx
		budget -= cplx
	}
	return values, total
}

func (m *Vector[V, C, S, A, T, R]) OrderedMutate(value *[]V, cache *VectorCache[C], step *VectorMutationStep[S], maxCplx float64) (VectorToken[V, T], float64, bool) {
	for step.kind <= int(VectorReplace) {
		switch VectorKind(step.kind) {
		case VectorElement:
			if len(*value) == 0 || step.nextIdx >= len(*value) {
				step.kind++
				step.nextIdx = 0
				continue
			}
			idx := step.nextIdx
			step.nextIdx++
			tok, _, ok := m.Elem.OrderedMutate(&(*value)[idx], &cache.elems[idx], &step.elemStep, maxCplx-cache.complexity+m.Elem.Complexity(&(*value)[idx], &cache.elems[idx]))
			if !ok {
				continue
			}
			m.recomputeComplexity(*value, cache)
			return VectorToken[V, T]{Kind: VectorElement, ElementAt: IndexToken[T]{Index: idx, Inner: tok}}, cache.complexity, true
		default:
			// InsertMany/RemoveMany/Replace/Elements are exercised through
			// RandomMutate; OrderedMutate only enumerates single-element
			// edits deterministically before falling back.
			step.kind = int(VectorReplace) + 1
		}
	}
	return VectorToken[V, T]{}, 0, false
}

func (m *Vector[V, C, S, A, T, R]) RandomMutate(value *[]V, cache *VectorCache[C], maxCplx float64) (VectorToken[V, T], float64) {
	budget := maxCplx - vectorBaseComplexity
	kind := VectorKind(m.rng.Intn(int(VectorNothing) + 1))
	if len(*value) == 0 {
		kind = VectorInsert
	}
	if m.MaxLen > 0 && len(*value) >= m.MaxLen {
		if kind == VectorInsert || kind == VectorInsertMany {
			kind = VectorElement
		}
	}
	if len(*value) <= m.MinLen {
		if kind == VectorRemove || kind == VectorRemoveMany {
			kind = VectorElement
		}
	}
	switch kind {
	case VectorElement:
		idx := m.rng.Intn(len(*value))
		tok, _ := m.Elem.RandomMutate(&(*value)[idx], &cache.elems[idx], budget)
		m.recomputeComplexity(*value, cache)
		return VectorToken[V, T]{Kind: VectorElement, ElementAt: IndexToken[T]{Index: idx, Inner: tok}}, cache.complexity

	case VectorElements:
		k := 2 + m.rng.Intn(max(1, len(*value)-1))
		if k > len(*value) {
			k = len(*value)
		}
		idxs := m.rng.Perm(len(*value))[:k]
		var toks []IndexToken[T]
		for _, idx := range idxs {
			tok, _ := m.Elem.RandomMutate(&(*value)[idx], &cache.elems[idx], budget)
			toks = append(toks, IndexToken[T]{Index: idx, Inner: tok})
		}
		m.recomputeComplexity(*value, cache)
		return VectorToken[V, T]{Kind: VectorElements, ElementsAt: toks}, cache.complexity

	case VectorInsert:
		idx := 0
		if len(*value) > 0 {
			idx = m.rng.Intn(len(*value) + 1)
		}
		v, _ := m.Elem.RandomArbitrary(budget)
		c, ok := m.Elem.Validate(&v)
		invariant.Invariant(ok, "Vector: value from element's own RandomArbitrary must validate")
		*value = insertAt(*value, idx, v)
		cache.elems = insertAt(cache.elems, idx, c)
		m.recomputeComplexity(*value, cache)
		return VectorToken[V, T]{Kind: VectorInsert, InsertedAt: idx, InsertedCount: 1}, cache.complexity

	case VectorInsertMany:
		idx := 0
		if len(*value) > 0 {
			idx = m.rng.Intn(len(*value) + 1)
		}
		count := 1 + m.rng.Intn(3)
		if m.MaxLen > 0 && len(*value)+count > m.MaxLen {
			count = m.MaxLen - len(*value)
		}
		newValues := make([]V, count)
		newCaches := make([]C, count)
		for i := 0; i < count; i++ {
			v, _ := m.Elem.RandomArbitrary(budget)
			c, ok := m.Elem.Validate(&v)
			invariant.Invariant(ok, "Vector: value from element's own RandomArbitrary must validate")
			newValues[i] = v
			newCaches[i] = c
		}
		*value = insertManyAt(*value, idx, newValues)
		cache.elems = insertManyAt(cache.elems, idx, newCaches)
		m.recomputeComplexity(*value, cache)
		return VectorToken[V, T]{Kind: VectorInsertMany, InsertedAt: idx, InsertedCount: count}, cache.complexity

	case VectorRemove:
		idx := m.rng.Intn(len(*value))
		removed := (*value)[idx]
		*value = append((*value)[:idx], (*value)[idx+1:]...)
		cache.elems = append(cache.elems[:idx], cache.elems[idx+1:]...)
		m.recomputeComplexity(*value, cache)
		return VectorToken[V, T]{Kind: VectorRemove, RemovedAt: idx, RemovedValues: []V{removed}}, cache.complexity

	case VectorRemoveMany:
		start := m.rng.Intn(len(*value))
		count := 1 + m.rng.Intn(len(*value)-start)
		if len(*value)-count < m.MinLen {
			count = len(*value) - m.MinLen
		}
		removed :=append([]V(nil), (*value)[start:start+count]...)
		*value = append((*value)[:start], (*value)[start+count:]...)
		cache.elems = append(cache.elems[:start], cache.elems[start+count:]...)
		m.recomputeComplexity(*value, cache)
		return VectorToken[V, T]{Kind: VectorRemoveMany, RemovedAt: start, RemovedValues: removed}, cache.complexity

	case VectorReplace:
		prior := append([]V(nil), *value...)
		fresh, _ := m.RandomArbitrary(maxCplx)
		*value = fresh
		cache.elems = make([]C, len(fresh))
		for i := range fresh {
			c, ok := m.Elem.Validate(&fresh[i])
			invariant.Invariant(ok, "Vector: value from own RandomArbitrary must validate")
			cache.elems[i] = c
		}
		m.recomputeComplexity(*value, cache)
		return VectorToken[V, T]{Kind: VectorReplace, PriorVector: prior}, cache.complexity

	default:
		return VectorToken[V, T]{Kind: VectorNothing}, cache.complexity
	}
}

func (m *Vector[V, C, S, A, T, R]) Unmutate(value *[]V, cache *VectorCache[C], token VectorToken[V, T]) {
	switch token.Kind {
	case VectorElement:
		idx := token.ElementAt.Index
		m.Elem.Unmutate(&(*value)[idx], &cache.elems[idx], token.ElementAt.Inner)
	case VectorElements:
		for i := len(token.ElementsAt) - 1; i >= 0; i-- {
			it := token.ElementsAt[i]
			m.Elem.Unmutate(&(*value)[it.Index], &cache.elems[it.Index], it.Inner)
		}
	case VectorInsert, VectorInsertMany:
		start := token.InsertedAt
		end := start + token.InsertedCount
		*value = append((*value)[:start], (*value)[end:]...)
		cache.elems = append(cache.elems[:start], cache.elems[end:]...)
	case VectorRemove, VectorRemoveMany:
		*value = insertManyAt(*value, token.RemovedAt, token.RemovedValues)
		caches := make([]C, len(token.RemovedValues))
		for i := range token.RemovedValues {
			c, ok := m.Elem.Validate(&token.RemovedValues[i])
			invariant.Invariant(ok, "Vector: removed value must still validate on unmutate")
			caches[i] = c
		}
		cache.elems = insertManyAt(cache.elems, token.RemovedAt, caches)
	case VectorReplace:
		*value = token.PriorVector
		cache.elems = make([]C, len(token.PriorVector))
		for i := range token.PriorVector {
			c, ok := m.Elem.Validate(&token.PriorVector[i])
			invariant.Invariant(ok, "Vector: prior vector must still validate on unmutate")
			cache.elems[i] = c
		}
	case VectorNothing:
	}
	m.recomputeComplexity(*value, cache)
}

func (m *Vector[V, C, S, A, T, R]) DefaultRecursingPartIndex(value *[]V, cache *VectorCache[C]) R {
	var zero R
	return zero
}

func (m *Vector[V, C, S, A, T, R]) RecursingPartRaw(value *[]V, index *R) (any, bool) {
	// Vector's own RecursingPartIndex type parameter is R (shared with the
	// element mutator) per the Mutator contract; a dedicated per-element
	// cursor would need its own type parameter Go cannot add here, so this
	// walks linearly from the front each call instead of resuming a cursor.
	for i := range *value {
		var zero R
		if raw, ok := m.Elem.RecursingPartRaw(&(*value)[i], &zero); ok {
			return raw, true
		}
	}
	return nil, false
}

func insertAt[X any](s []X, idx int, v X) []X {
	s = append(s, v)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

func insertManyAt[X any](s []X, idx int, vs []X) []X {
	out := make([]X, 0, len(s)+len(vs))
	out = append(out, s[:idx]...)
	out = append(out, vs...)
	out = append(out, s[idx:]...)
	return out
}
