package sensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/sensor"
)

// recordingSensor is a minimal Sensor[int] test double that counts how
// many times each lifecycle method fires.
type recordingSensor struct {
	started, stopped int
	value            int
}

func (s *recordingSensor) StartRecording()     { s.started++ }
func (s *recordingSensor) StopRecording()      { s.stopped++ }
func (s *recordingSensor) GetObservations() int { return s.value }

func TestAndSameObservationsPropagatesLifecycleToBoth(t *testing.T) {
	a := &recordingSensor{value: 7}
	b := &recordingSensor{value: 7}
	s := sensor.SameObservations[int](a, b)

	s.StartRecording()
	s.StopRecording()

	assert.Equal(t, 1, a.started)
	assert.Equal(t, 1, b.started)
	assert.Equal(t, 1, a.stopped)
	assert.Equal(t, 1, b.stopped)
	assert.Equal(t, 7, s.GetObservations())
}

func TestDifferentObservationsComposesIntoPair(t *testing.T) {
	a := &recordingSensor{value: 1}
	b := &recordingSensor{value: 2}
	s := sensor.DifferentObservations[int, int](a, b)

	pair := s.GetObservations()
	assert.Equal(t, 1, pair.First)
	assert.Equal(t, 2, pair.Second)
}

func TestAsAnySensorErasesObservationType(t *testing.T) {
	a := &recordingSensor{value: 42}
	any1 := sensor.AsAnySensor[int](a)

	any1.StartRecording()
	any1.StopRecording()
	assert.Equal(t, 1, a.started)

	obs := any1.GetObservationsAny()
	ptr, ok := obs.(*int)
	require.True(t, ok)
	assert.Equal(t, 42, *ptr)
}
