package mapping

import (
	"time"

	"github.com/corefuzz/corefuzz/mutator"
)

// DurationMutator mutates a time.Duration by mutating its underlying
// uint64 nanosecond count. Worked example from SPEC_FULL.md §4.6-4.9, recovered
// from the original's u64->Duration map mutator.
type DurationMutator = Map[uint64, time.Duration, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[uint64], mutator.None]

// NewDurationMutator builds a Duration mutator over [0, maxNanos].
func NewDurationMutator(maxNanos uint64) *DurationMutator {
	inner := mutator.NewIntWithinRange[uint64](0, maxNanos)
	return NewMap[uint64, time.Duration](
		inner,
		func(nanos uint64) time.Duration { return time.Duration(nanos) },
		func(d time.Duration) (uint64, bool) {
			if d < 0 {
				return 0, false
			}
			return uint64(d), true
		},
		nil,
	)
}
