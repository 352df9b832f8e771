package pool

import "fmt"

// Unit always returns the single input it was built with and rejects
// every observation - Process is a no-op returning no deltas. Used for
// minification, where the driver already knows exactly which input to
// keep re-mutating (spec.md §4.13). Generic over O purely so it
// satisfies CompatibleWithObservations[O] for whichever sensor the
// driver is wired to.
type Unit[O any] struct {
	input StorageIndex
}

// NewUnit builds a Unit pool fixed to input.
func NewUnit[O any](input StorageIndex) *Unit[O] { return &Unit[O]{input: input} }

func (p *Unit[O]) Stats() Stats {
	return Stats{Name: "unit", Fields: []StatField{{Name: "input", Value: fmt.Sprintf("%d", p.input)}}}
}

func (p *Unit[O]) GetRandomIndex() (StorageIndex, bool) { return p.input, true }

func (p *Unit[O]) Weight() float64 { return 1 }

// Process implements CompatibleWithObservations[O]: every observation is
// rejected, per spec.md §4.13.
func (p *Unit[O]) Process(id StorageIndex, observations *O, cplx float64) []CorpusDelta {
	return nil
}
