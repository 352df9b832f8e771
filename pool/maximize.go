package pool

import (
	"cmp"
	"fmt"
)

// MaximiseObservation stores at most one input that maximizes a totally
// ordered observation value, with ties broken by lower complexity
// (spec.md §4.13).
type MaximiseObservation[O cmp.Ordered] struct {
	hasBest   bool
	best      StorageIndex
	bestValue O
	bestCplx  float64
}

// NewMaximiseObservation builds an empty maximise-observation pool.
func NewMaximiseObservation[O cmp.Ordered]() *MaximiseObservation[O] {
	return &MaximiseObservation[O]{}
}

func (p *MaximiseObservation[O]) Stats() Stats {
	fields := []StatField{{Name: "has_best", Value: fmt.Sprintf("%v", p.hasBest)}}
	if p.hasBest {
		fields = append(fields, StatField{Name: "best_value", Value: fmt.Sprintf("%v", p.bestValue)})
	}
	return Stats{Name: "maximise_observation", Fields: fields}
}

func (p *MaximiseObservation[O]) GetRandomIndex() (StorageIndex, bool) {
	if !p.hasBest {
		return 0, false
	}
	return p.best, true
}

func (p *MaximiseObservation[O]) Weight() float64 {
	if p.hasBest {
		return 1
	}
	return 0
}

// Process implements CompatibleWithObservations[O].
func (p *MaximiseObservation[O]) Process(id StorageIndex, observation *O, cplx float64) []CorpusDelta {
	if !p.hasBest || *observation > p.bestValue || (*observation == p.bestValue && cplx < p.bestCplx) {
		prevBest, hadBest := p.best, p.hasBest
		p.best, p.bestValue, p.bestCplx, p.hasBest = id, *observation, cplx, true
		deltas := []CorpusDelta{{Path: fmt.Sprintf("input-%d", id), Add: true}}
		if hadBest && prevBest != id {
			deltas = append(deltas, CorpusDelta{Remove: []StorageIndex{prevBest}})
		}
		return deltas
	}
	return nil
}
