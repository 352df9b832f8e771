package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corefuzz/corefuzz/pool"
)

func TestUnitAlwaysReturnsItsFixedInput(t *testing.T) {
	p := pool.NewUnit[int](pool.StorageIndex(42))
	id, ok := p.GetRandomIndex()
	assert.True(t, ok)
	assert.Equal(t, pool.StorageIndex(42), id)
	assert.Equal(t, float64(1), p.Weight())
}

func TestUnitRejectsEveryObservation(t *testing.T) {
	p := pool.NewUnit[int](pool.StorageIndex(1))
	obs := 99
	deltas := p.Process(pool.StorageIndex(2), &obs, 1)
	assert.Nil(t, deltas)

	id, _ := p.GetRandomIndex()
	assert.Equal(t, pool.StorageIndex(1), id, "Process must never change which input Unit points at")
}
