package mutator

import "math/rand"

// Int mutates fixed-width integers of type T. Complexity is constant,
// proportional to the type's bit width (spec.md §4.2).
//
// Cache is unused (None); MutationStep enumerates a short list of
// "interesting" special values before falling back to uniform random
// mutation, the same ordered-then-random discipline every leaf mutator in
// this package follows.
type Int[T Integer] struct {
	bitWidth int
	rng      *rand.Rand
}

// NewInt8 returns a mutator for 8-bit integers.
func NewInt8() *Int[int8] { return &Int[int8]{bitWidth: 8, rng: rand.New(rand.NewSource(1))} }

// NewInt16 returns a mutator for 16-bit integers.
func NewInt16() *Int[int16] { return &Int[int16]{bitWidth: 16, rng: rand.New(rand.NewSource(1))} }

// NewInt32 returns a mutator for 32-bit integers.
func NewInt32() *Int[int32] { return &Int[int32]{bitWidth: 32, rng: rand.New(rand.NewSource(1))} }

// NewInt64 returns a mutator for 64-bit integers.
func NewInt64() *Int[int64] { return &Int[int64]{bitWidth: 64, rng: rand.New(rand.NewSource(1))} }

// NewUint8 returns a mutator for unsigned 8-bit integers.
func NewUint8() *Int[uint8] { return &Int[uint8]{bitWidth: 8, rng: rand.New(rand.NewSource(1))} }

// NewUint16 returns a mutator for unsigned 16-bit integers.
func NewUint16() *Int[uint16] { return &Int[uint16]{bitWidth: 16, rng: rand.New(rand.NewSource(1))} }

// NewUint32 returns a mutator for unsigned 32-bit integers.
func NewUint32() *Int[uint32] { return &Int[uint32]{bitWidth: 32, rng: rand.New(rand.NewSource(1))} }

// NewUint64 returns a mutator for unsigned 64-bit integers.
func NewUint64() *Int[uint64] { return &Int[uint64]{bitWidth: 64, rng: rand.New(rand.NewSource(1))} }

// SeedWith reseeds the mutator's private RNG for deterministic tests.
func (m *Int[T]) SeedWith(seed int64) { m.rng = rand.New(rand.NewSource(seed)) }

// IntArbitraryStep enumerates the special values 0, 1 and minOf's value
// (the signed minimum's bit pattern) once each before random generation
// takes over; -1 and the maximum are not among them.
type IntArbitraryStep struct{ tried int }

// IntMutationStep enumerates +1, -1, 0 once each before random mutation.
type IntMutationStep struct{ tried int }

// IntToken records the previous value so Unmutate can restore it exactly.
type IntToken[T Integer] struct{ prev T }

func (m *Int[T]) DefaultArbitraryStep() IntArbitraryStep { return IntArbitraryStep{} }

func (m *Int[T]) Validate(value *T) (None, bool) { return None{}, true }

func (m *Int[T]) DefaultMutationStep(value *T, cache *None) IntMutationStep {
	return IntMutationStep{}
}

func (m *Int[T]) MinComplexity() float64 { return float64(m.bitWidth) }
func (m *Int[T]) MaxComplexity() float64 { return float64(m.bitWidth) }

func (m *Int[T]) Complexity(value *T, cache *None) float64 { return float64(m.bitWidth) }

func (m *Int[T]) specialArbitraryValues() []T {
	var zero T
	// zero is the integer's additive identity regardless of signedness.
	return []T{zero, 1, T(minOf[T](m.bitWidth))}
}

func (m *Int[T]) OrderedArbitrary(step *IntArbitraryStep, maxCplx float64) (T, float64, bool) {
	if maxCplx < m.MinComplexity() {
		var zero T
		return zero, 0, false
	}
	specials := m.specialArbitraryValues()
	if step.tried < len(specials) {
		v := specials[step.tried]
		step.tried++
		return v, m.MinComplexity(), true
	}
	v, cplx := m.RandomArbitrary(maxCplx)
	step.tried++
	return v, cplx, true
}

func (m *Int[T]) RandomArbitrary(maxCplx float64) (T, float64) {
	return T(m.rng.Uint64()), m.MinComplexity()
}

func (m *Int[T]) OrderedMutate(value *T, cache *None, step *IntMutationStep, maxCplx float64) (IntToken[T], float64, bool) {
	if maxCplx < m.MinComplexity() {
		return IntToken[T]{}, 0, false
	}
	prev := *value
	switch step.tried {
	case 0:
		*value = prev + 1
	case 1:
		*value = prev - 1
	case 2:
		*value = 0
	default:
		tok, cplx := m.RandomMutate(value, cache, maxCplx)
		step.tried++
		return tok, cplx, true
	}
	step.tried++
	return IntToken[T]{prev: prev}, m.Complexity(value, cache), true
}

func (m *Int[T]) RandomMutate(value *T, cache *None, maxCplx float64) (IntToken[T], float64) {
	prev := *value
	*value = T(m.rng.Uint64())
	return IntToken[T]{prev: prev}, m.Complexity(value, cache)
}

func (m *Int[T]) Unmutate(value *T, cache *None, token IntToken[T]) {
	*value = token.prev
}

func (m *Int[T]) DefaultRecursingPartIndex(value *T, cache *None) None { return None{} }

func (m *Int[T]) RecursingPartRaw(value *T, index *None) (any, bool) { return nil, false }

// minOf returns the minimum representable value for a fixed-width integer
// type, treated as signed when bitWidth corresponds to a signed type. Since
// Go generics cannot branch on signedness at compile time, callers that
// need the true signed minimum use NewInt* constructors matching T; this
// helper only needs to produce *a* boundary-ish special value for seeding
// ordered arbitrary generation, not the exact two's-complement minimum.
func minOf[T Integer](bitWidth int) int64 {
	return -(int64(1) << (bitWidth - 1))
}
