package mutator

// Unit mutates a value that has exactly one possible representation - its
// zero complexity, single value. It never mutates and only ever generates
// Const. Used for marker fields, phantom enum variants, and the terminal
// case of recursive grammars.
type Unit[V any] struct {
	Const V
}

// NewUnit builds a Unit mutator fixed to const_.
func NewUnit[V any](const_ V) *Unit[V] { return &Unit[V]{Const: const_} }

func (m *Unit[V]) DefaultArbitraryStep() None { return None{} }

func (m *Unit[V]) Validate(value *V) (None, bool) { return None{}, true }

func (m *Unit[V]) DefaultMutationStep(value *V, cache *None) None { return None{} }

func (m *Unit[V]) MinComplexity() float64 { return 0 }
func (m *Unit[V]) MaxComplexity() float64 { return 0 }

func (m *Unit[V]) Complexity(value *V, cache *None) float64 { return 0 }

func (m *Unit[V]) OrderedArbitrary(step *None, maxCplx float64) (V, float64, bool) {
	return m.Const, 0, false
}

func (m *Unit[V]) RandomArbitrary(maxCplx float64) (V, float64) { return m.Const, 0 }

func (m *Unit[V]) OrderedMutate(value *V, cache *None, step *None, maxCplx float64) (None, float64, bool) {
	return None{}, 0, false
}

func (m *Unit[V]) RandomMutate(value *V, cache *None, maxCplx float64) (None, float64) {
	return None{}, 0
}

func (m *Unit[V]) Unmutate(value *V, cache *None, token None) {}

func (m *Unit[V]) DefaultRecursingPartIndex(value *V, cache *None) None { return None{} }
func (m *Unit[V]) RecursingPartRaw(value *V, index *None) (any, bool)   { return nil, false }
