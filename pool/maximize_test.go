package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/pool"
)

func TestMaximiseObservationKeepsOnlyTheBest(t *testing.T) {
	p := pool.NewMaximiseObservation[float64]()

	_, ok := p.GetRandomIndex()
	assert.False(t, ok, "an empty pool has no best yet")

	o1 := 1.0
	deltas := p.Process(1, &o1, 10)
	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Add)

	o2 := 5.0
	deltas = p.Process(2, &o2, 10)
	require.Len(t, deltas, 2, "a strictly better observation both adds the new best and evicts the old one")

	id, ok := p.GetRandomIndex()
	require.True(t, ok)
	assert.Equal(t, pool.StorageIndex(2), id)
}

func TestMaximiseObservationRejectsWorseObservation(t *testing.T) {
	p := pool.NewMaximiseObservation[float64]()
	best := 10.0
	p.Process(1, &best, 5)

	worse := 3.0
	deltas := p.Process(2, &worse, 1)
	assert.Nil(t, deltas)

	id, _ := p.GetRandomIndex()
	assert.Equal(t, pool.StorageIndex(1), id)
}

func TestMaximiseObservationTieBreaksOnLowerComplexity(t *testing.T) {
	p := pool.NewMaximiseObservation[float64]()
	v := 4.0
	p.Process(1, &v, 10)

	deltas := p.Process(2, &v, 3)
	require.Len(t, deltas, 2, "equal observation value with lower complexity should still replace the best")
	id, _ := p.GetRandomIndex()
	assert.Equal(t, pool.StorageIndex(2), id)
}
