// Package sensor defines the coverage-observation contract the pool
// package consumes, per spec.md §4.11.
package sensor

// Sensor records coverage observations during one run of the fuzz target
// and reports them back. Per spec.md §4.11, sensors do not retain
// observations beyond a single StartRecording/StopRecording/
// GetObservations cycle - GetObservations is the one chance a caller has
// to read them before the sensor resets for the next run.
type Sensor[O any] interface {
	StartRecording()
	StopRecording()
	GetObservations() O
}

// And composes two sensors so a single fuzz-target run can be observed by
// both at once, feeding an And-pool (see pool/and.go). Compose is applied
// to the two sensors' own observation values to produce the And-pool's
// combined O.
type And[O1, O2, O any] struct {
	First   Sensor[O1]
	Second  Sensor[O2]
	Compose func(O1, O2) O
}

// NewAnd composes first and second into a single sensor.
func NewAnd[O1, O2, O any](first Sensor[O1], second Sensor[O2], compose func(O1, O2) O) *And[O1, O2, O] {
	return &And[O1, O2, O]{First: first, Second: second, Compose: compose}
}

func (s *And[O1, O2, O]) StartRecording() {
	s.First.StartRecording()
	s.Second.StartRecording()
}

func (s *And[O1, O2, O]) StopRecording() {
	s.First.StopRecording()
	s.Second.StopRecording()
}

func (s *And[O1, O2, O]) GetObservations() O {
	return s.Compose(s.First.GetObservations(), s.Second.GetObservations())
}

// SameObservations composes two sensors that observe the identical
// coverage space O - both children see the same value, verbatim.
func SameObservations[O any](first, second Sensor[O]) *And[O, O, O] {
	return NewAnd(first, second, func(o1, o2 O) O {
		// Both sensors observe the same space; the first's reading is
		// authoritative since a correctly-implemented pair reports
		// identically.
		return o1
	})
}

// Pair is the observation type DifferentObservations composes two
// distinct sensors' readings into.
type Pair[O1, O2 any] struct {
	First  O1
	Second O2
}

// DifferentObservations composes two sensors observing distinct spaces
// O1 and O2 into a single Pair[O1, O2] observation.
func DifferentObservations[O1, O2 any](first Sensor[O1], second Sensor[O2]) *And[O1, O2, Pair[O1, O2]] {
	return NewAnd(first, second, func(o1 O1, o2 O2) Pair[O1, O2] {
		return Pair[O1, O2]{First: o1, Second: o2}
	})
}

// AnySensor is the object-safe façade SPEC_FULL.md §7 recovers for
// sensors, mirroring pool.AnyPool: a driver wiring together sensors of
// different observation types into one registry needs a shared,
// non-generic handle.
type AnySensor interface {
	StartRecording()
	StopRecording()
	GetObservationsAny() any
}

// anySensorAdapter adapts a Sensor[O] into an AnySensor.
type anySensorAdapter[O any] struct {
	Sensor[O]
}

// AsAnySensor erases s's observation type so it can sit in a []AnySensor
// alongside sensors observing different types.
func AsAnySensor[O any](s Sensor[O]) AnySensor {
	return anySensorAdapter[O]{s}
}

func (a anySensorAdapter[O]) GetObservationsAny() any {
	o := a.GetObservations()
	return &o
}
