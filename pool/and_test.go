package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/pool"
)

// fixedRand is a deterministic randSource stub so And's weighted pick is
// reproducible without pulling in math/rand from the test.
type fixedRand struct{ value float64 }

func (f fixedRand) Float64() float64 { return f.value }

// pairObservation is a test-local combined observation type, standing in
// for whatever two-sensor union a real driver would define.
type pairObservation struct{ A, B float64 }

func TestAndSplitsObservationsToBothChildren(t *testing.T) {
	first := pool.NewMaximiseObservation[float64]()
	second := pool.NewMaximiseObservation[float64]()

	split := func(o pairObservation) (float64, float64) { return o.A, o.B }
	a := pool.NewAnd[float64, float64, pairObservation](first, second, 1, 1, split, fixedRand{value: 0})

	deltas := a.Process(1, &pairObservation{A: 1, B: 2}, 3)
	assert.NotEmpty(t, deltas)

	id1, ok := first.GetRandomIndex()
	require.True(t, ok)
	assert.Equal(t, pool.StorageIndex(1), id1)

	id2, ok := second.GetRandomIndex()
	require.True(t, ok)
	assert.Equal(t, pool.StorageIndex(1), id2)
}

func TestAndWeightDecaysWithoutProgress(t *testing.T) {
	first := pool.NewMaximiseObservation[float64]()
	second := pool.NewMaximiseObservation[float64]()
	split := func(o pairObservation) (float64, float64) { return o.A, o.B }
	a := pool.NewAnd[float64, float64, pairObservation](first, second, 1, 1, split, fixedRand{value: 0})

	initial := a.Weight()
	// First made progress once; the second observation no longer improves
	// it, and a draw that lands on it (value=0 always falls within its
	// share) grows its since-progress counter, so its effective weight
	// shrinks relative to a freshly progressing second child.
	a.Process(1, &pairObservation{A: 5, B: 0}, 1)
	a.Process(2, &pairObservation{A: 1, B: 9}, 1)
	_, ok := a.GetRandomIndex()
	require.True(t, ok)

	assert.NotEqual(t, initial, a.Weight())
}

func TestAndSinceProgressCounterTracksSelectionNotProcess(t *testing.T) {
	first := pool.NewMaximiseObservation[float64]()
	second := pool.NewMaximiseObservation[float64]()
	split := func(o pairObservation) (float64, float64) { return o.A, o.B }
	a := pool.NewAnd[float64, float64, pairObservation](first, second, 1, 1, split, fixedRand{value: 0})

	// One Process call that makes no further progress on either child (both
	// pools already hold better values than 0), followed by several
	// GetRandomIndex draws (always landing in first, since value=0 always
	// falls within its share): only the draws, not the Process call, should
	// grow first's since-progress counter and shrink its effective weight.
	first.Process(1, ref(5.0), 1)
	second.Process(2, ref(5.0), 1)

	weightAfterSeed := a.Weight()
	a.Process(3, &pairObservation{A: 0, B: 0}, 1)
	assert.Equal(t, weightAfterSeed, a.Weight(), "a Process call with no progress must not itself move the weight")

	for i := 0; i < 3; i++ {
		_, ok := a.GetRandomIndex()
		require.True(t, ok)
	}
	assert.Less(t, a.Weight(), weightAfterSeed, "repeated draws of the same child must decay its effective weight")
}

func ref[T any](v T) *T { return &v }

func TestAndGetRandomIndexPicksFirstWhenDrawBelowItsShare(t *testing.T) {
	first := pool.NewMaximiseObservation[float64]()
	second := pool.NewMaximiseObservation[float64]()
	split := func(o pairObservation) (float64, float64) { return o.A, o.B }
	a := pool.NewAnd[float64, float64, pairObservation](first, second, 1, 1, split, fixedRand{value: 0})

	v1, v2 := 1.0, 1.0
	first.Process(10, &v1, 1)
	second.Process(20, &v2, 1)

	id, ok := a.GetRandomIndex()
	require.True(t, ok)
	assert.Equal(t, pool.StorageIndex(10), id, "a draw of 0 must fall in the first child's share")
}
