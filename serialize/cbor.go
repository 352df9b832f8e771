// Package serialize provides mutator.Serializer implementations used by the
// world layer to persist corpus inputs to disk.
package serialize

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR implements mutator.Serializer[V] over github.com/fxamacker/cbor/v2,
// the same library opal's core/planfmt package uses for its own canonical
// encoding. CBOR is used instead of encoding/gob because its output is a
// stable, language-neutral wire format: corpus files written by one version
// of this fuzzer stay readable by tooling that never imports corefuzz's Go
// types.
type CBOR[V any] struct {
	ext string
}

// NewCBOR builds a CBOR serializer whose Extension is ext (conventionally
// ".cbor", but callers may want a type-specific one such as ".input.cbor").
func NewCBOR[V any](ext string) *CBOR[V] {
	return &CBOR[V]{ext: ext}
}

func (s *CBOR[V]) Extension() string { return s.ext }

// FromData deserializes data into a V, reporting false on malformed input
// rather than panicking - corpus files can be truncated by a crash mid-write
// or hand-edited by a user.
func (s *CBOR[V]) FromData(data []byte) (V, bool) {
	var v V
	if err := cbor.Unmarshal(data, &v); err != nil {
		var zero V
		return zero, false
	}
	return v, true
}

// ToData serializes value. Per the mutator.Serializer contract this must
// never fail; encoding a value this package itself produced never does, so
// a marshal error here indicates a corrupted in-memory value and is a
// programming error, not routine input.
func (s *CBOR[V]) ToData(value V) []byte {
	data, err := cbor.Marshal(value)
	if err != nil {
		panic("serialize: CBOR.ToData: " + err.Error())
	}
	return data
}
