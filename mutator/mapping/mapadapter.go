package mapping

import (
	"github.com/corefuzz/corefuzz/mutator"
	"github.com/corefuzz/corefuzz/mutator/collection"
)

// pairVectorMutator names the Vector-of-Tuple2 mutator instantiation behind
// MapAdapter: it mutates []Pair[K, V], which the Map then projects onto a
// Go map[K]V. Nothing in this package refers to the alias;
// MapAdapterMutator spells its type arguments out in full.
type pairVectorMutator[K comparable, V, CK, SK, AK, TK, RK, CV, SV, AV, TV, RV any] = collection.Vector[
	mutator.Pair[K, V],
	mutator.Tuple2Cache[CK, CV], mutator.Tuple2MutationStep[SK, SV], mutator.Tuple2ArbitraryStep[AK, AV],
	mutator.Tuple2Token[TK, TV], mutator.Tuple2RecursingIndex[RK, RV],
]

// MapAdapterMutator is the concrete Map type MapAdapter produces, wiring
// []Pair[K, V] (the Vector's domain) onto map[K]V. SPEC_FULL.md §7
// recovers this from the original's BTreeMap/BTreeSet adapter, expressed
// in Go terms as a map since Go has no builtin ordered map type.
type MapAdapterMutator[K comparable, V, CK, SK, AK, TK, RK, CV, SV, AV, TV, RV any] = Map[
	[]mutator.Pair[K, V], map[K]V,
	collection.VectorCache[mutator.Tuple2Cache[CK, CV]],
	collection.VectorMutationStep[mutator.Tuple2MutationStep[SK, SV]],
	collection.VectorArbitraryStep[mutator.Tuple2ArbitraryStep[AK, AV]],
	collection.VectorToken[mutator.Pair[K, V], mutator.Tuple2Token[TK, TV]],
	mutator.Tuple2RecursingIndex[RK, RV],
]

// NewMapAdapter composes keyMutator and valMutator into a mutator over
// map[K]V, via a Vector of key/value pairs. Duplicate keys collapse
// (later pairs win) when projecting the pair slice into the Go map; this
// is routine during random generation, not a validation failure.
func NewMapAdapter[K comparable, V, CK, SK, AK, TK, RK, CV, SV, AV, TV, RV any](
	keyMutator mutator.Mutator[K, CK, SK, AK, TK, RK],
	valMutator mutator.Mutator[V, CV, SV, AV, TV, RV],
	minLen, maxLen int,
) *MapAdapterMutator[K, V, CK, SK, AK, TK, RK, CV, SV, AV, TV, RV] {
	pairMutator := mutator.NewTuple2[K, CK, SK, AK, TK, RK, V, CV, SV, AV, TV, RV](keyMutator, valMutator)
	vecMutator := collection.NewVector[mutator.Pair[K, V], mutator.Tuple2Cache[CK, CV], mutator.Tuple2MutationStep[SK, SV], mutator.Tuple2ArbitraryStep[AK, AV], mutator.Tuple2Token[TK, TV], mutator.Tuple2RecursingIndex[RK, RV]](pairMutator, minLen, maxLen)
	return NewMap[[]mutator.Pair[K, V], map[K]V](
		vecMutator,
		func(pairs []mutator.Pair[K, V]) map[K]V {
			out := make(map[K]V, len(pairs))
			for _, p := range pairs {
				out[p.First] = p.Second
			}
			return out
		},
		func(m map[K]V) ([]mutator.Pair[K, V], bool) {
			pairs := make([]mutator.Pair[K, V], 0, len(m))
			for k, v := range m {
				pairs = append(pairs, mutator.Pair[K, V]{First: k, Second: v})
			}
			return pairs, true
		},
		nil,
	)
}

// SetAdapterMutator is the concrete Map type NewSetAdapter produces,
// representing a set as map[K]struct{}.
type SetAdapterMutator[K comparable, CK, SK, AK, TK, RK any] = Map[
	[]K, map[K]struct{},
	collection.VectorCache[CK], collection.VectorMutationStep[SK], collection.VectorArbitraryStep[AK],
	collection.VectorToken[K, TK], RK,
]

// NewSetAdapter composes elemMutator into a mutator over a Go set,
// represented as map[K]struct{} (the idiomatic Go analogue of the
// original's BTreeSet, since Go has no builtin set type).
func NewSetAdapter[K comparable, CK, SK, AK, TK, RK any](
	elemMutator mutator.Mutator[K, CK, SK, AK, TK, RK],
	minLen, maxLen int,
) *SetAdapterMutator[K, CK, SK, AK, TK, RK] {
	vecMutator := collection.NewVector[K, CK, SK, AK, TK, RK](elemMutator, minLen, maxLen)
	return NewMap[[]K, map[K]struct{}](
		vecMutator,
		func(elems []K) map[K]struct{} {
			out := make(map[K]struct{}, len(elems))
			for _, e := range elems {
				out[e] = struct{}{}
			}
			return out
		},
		func(m map[K]struct{}) ([]K, bool) {
			elems := make([]K, 0, len(m))
			for e := range m {
				elems = append(elems, e)
			}
			return elems, true
		},
		nil,
	)
}
