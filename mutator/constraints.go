package mutator

// Integer enumerates the fixed-width integer types the Int and
// IntWithinRange leaf mutators operate over.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Float enumerates the floating-point types the Float leaf mutator
// operates over.
type Float interface {
	~float32 | ~float64
}
