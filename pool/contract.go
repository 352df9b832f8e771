// Package pool implements the input-selection strategies described in
// spec.md §4.11-4.14: a counter-maximizing pool backed by weighted
// sampling, a unit pool and a maximise-observation pool for minification,
// and an And-pool composition (its sensor-side counterpart, sensor.And,
// lives in package sensor).
package pool

// StorageIndex identifies a test case in the fuzzer's own value storage.
// Pools never own test case bytes directly; per spec.md §5, ownership of
// the actual test cases lives in the fuzzer's storage so there is a
// single source of truth across multiple pools.
type StorageIndex uint64

// CorpusDelta describes which stored inputs a Pool.Process call added or
// removed, for the world layer to persist or unpersist (spec.md §6).
type CorpusDelta struct {
	Path   string
	Add    bool
	Remove []StorageIndex
}

// Stats summarizes a pool's current state for reporting (report.Table
// renders these as rows).
type Stats struct {
	Name   string
	Fields []StatField
}

// StatField is one named, pre-formatted statistic.
type StatField struct {
	Name  string
	Value string
}

// CSVField returns name=value, the format ToCSV joins fields with.
func (f StatField) CSVField() string { return f.Name + "=" + f.Value }

// ToCSV renders every field of s as a single comma-joined line.
func ToCSV(s Stats) string {
	out := s.Name
	for _, f := range s.Fields {
		out += "," + f.CSVField()
	}
	return out
}

// Pool selects which previously-seen value to mutate next, guided by
// observations a sensor reports about a candidate input.
type Pool interface {
	Stats() Stats
	GetRandomIndex() (StorageIndex, bool)
	Weight() float64
}

// CompatibleWithObservations is the subtrait of Pool that actually
// consumes a sensor's observation type O, per spec.md §4.11: "process(...)
// via the observation-specific subtrait."
type CompatibleWithObservations[O any] interface {
	Pool
	// Process records a new input's observations against the pool's
	// current state, returning the corpus deltas (if any) the world layer
	// should act on.
	Process(id StorageIndex, observations *O, cplx float64) []CorpusDelta
}
