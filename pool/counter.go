package pool

import (
	"fmt"
	"math/rand"

	"github.com/corefuzz/corefuzz/internal/invariant"
	"github.com/corefuzz/corefuzz/pool/fenwick"
)

// Intensity is one counter's observed value for a given input; higher is
// better.
type Intensity = uint64

// CounterObservations maps counter index to observed intensity. Counters
// that never fired are simply absent, per spec.md §4.12.
type CounterObservations map[int]Intensity

// counterRecord is the single best input known for one counter.
type counterRecord struct {
	input      StorageIndex
	intensity  Intensity
	complexity float64
}

// inputEntry tracks one live input's bookkeeping: which counters it is
// currently best for (its "score" is len(counters)), and how long it has
// gone without winning a new counter.
type inputEntry struct {
	counters              map[int]struct{}
	complexity            float64
	timesChosen           int
	timesSinceLastProgress int
	deadEnd               bool
}

// CounterMaximizing implements spec.md §4.12: for each of a fixed-size
// counter space, it tracks the single best input (by intensity, ties
// broken by complexity), and samples live inputs weighted by
// score/(1+times_chosen_since_progress) via a Fenwick tree so
// over-selected inputs decay.
type CounterMaximizing struct {
	numCounters int
	best        []*counterRecord // best[i] is nil until counter i first fires
	inputs      map[StorageIndex]*inputEntry
	order       []StorageIndex // stable index -> input, for the Fenwick tree's slots
	slotOf      map[StorageIndex]int
	tree        *fenwick.Tree
	rng         *rand.Rand
}

// NewCounterMaximizing builds a counter-maximizing pool over a counter
// space of numCounters.
func NewCounterMaximizing(numCounters int) *CounterMaximizing {
	invariant.Precondition(numCounters > 0, "CounterMaximizing requires a positive counter space")
	return &CounterMaximizing{
		numCounters: numCounters,
		best:        make([]*counterRecord, numCounters),
		inputs:      make(map[StorageIndex]*inputEntry),
		slotOf:      make(map[StorageIndex]int),
		tree:        fenwick.New(0),
		rng:         rand.New(rand.NewSource(1)),
	}
}

// SeedWith reseeds the pool's private RNG for deterministic tests.
func (p *CounterMaximizing) SeedWith(seed int64) { p.rng = rand.New(rand.NewSource(seed)) }

func (p *CounterMaximizing) weightOf(e *inputEntry) float64 {
	if e.deadEnd || len(e.counters) == 0 {
		return 0
	}
	return float64(len(e.counters)) / float64(1+e.timesSinceLastProgress)
}

func (p *CounterMaximizing) slotFor(id StorageIndex) int {
	if slot, ok := p.slotOf[id]; ok {
		return slot
	}
	slot := len(p.order)
	p.order = append(p.order, id)
	p.slotOf[id] = slot
	p.tree.Grow(slot + 1)
	return slot
}

func (p *CounterMaximizing) syncWeight(id StorageIndex) {
	e, ok := p.inputs[id]
	if !ok {
		return
	}
	p.tree.Update(p.slotFor(id), p.weightOf(e))
}

// Process implements CompatibleWithObservations[CounterObservations].
func (p *CounterMaximizing) Process(id StorageIndex, observations *CounterObservations, cplx float64) []CorpusDelta {
	var deltas []CorpusDelta
	progressed := false
	entry := &inputEntry{counters: map[int]struct{}{}, complexity: cplx}

	for counter, intensity := range *observations {
		invariant.InRange(counter, 0, p.numCounters-1, "counter index")
		prev := p.best[counter]
		if prev == nil || intensity > prev.intensity || (intensity == prev.intensity && cplx < prev.complexity) {
			if prev != nil {
				if prevEntry, ok := p.inputs[prev.input]; ok {
					delete(prevEntry.counters, counter)
					if len(prevEntry.counters) == 0 {
						p.removeInput(prev.input, &deltas)
					} else {
						p.syncWeight(prev.input)
					}
				}
			}
			p.best[counter] = &counterRecord{input: id, intensity: intensity, complexity: cplx}
			entry.counters[counter] = struct{}{}
			progressed = true
		}
	}

	if len(entry.counters) > 0 {
		p.inputs[id] = entry
		p.slotFor(id)
		p.syncWeight(id)
		deltas = append(deltas, CorpusDelta{Path: fmt.Sprintf("input-%d", id), Add: true})
	}

	if progressed {
		for _, e := range p.inputs {
			e.timesSinceLastProgress = 0
		}
		for _, otherID := range p.order {
			p.syncWeight(otherID)
		}
	}
	return deltas
}

func (p *CounterMaximizing) removeInput(id StorageIndex, deltas *[]CorpusDelta) {
	delete(p.inputs, id)
	if slot, ok := p.slotOf[id]; ok {
		p.tree.Update(slot, 0)
	}
	*deltas = append(*deltas, CorpusDelta{Remove: []StorageIndex{id}})
}

// MarkTestCaseAsDeadEnd forces id's score to zero so it is never sampled
// again, while it still occupies its counter slots until displaced by a
// better input (spec.md §4.12, recovered dead-end feature).
func (p *CounterMaximizing) MarkTestCaseAsDeadEnd(id StorageIndex) {
	e, ok := p.inputs[id]
	if !ok {
		return
	}
	e.deadEnd = true
	p.syncWeight(id)
}

func (p *CounterMaximizing) Weight() float64 { return p.tree.Total() }

func (p *CounterMaximizing) GetRandomIndex() (StorageIndex, bool) {
	total := p.tree.Total()
	if total <= 0 {
		return 0, false
	}
	target := p.rng.Float64() * total
	slot, ok := p.tree.FirstIndexPastPrefixSum(target)
	if !ok {
		return 0, false
	}
	id := p.order[slot]
	if e, ok := p.inputs[id]; ok {
		e.timesChosen++
		e.timesSinceLastProgress++
		p.syncWeight(id)
	}
	return id, true
}

func (p *CounterMaximizing) Stats() Stats {
	return Stats{
		Name: "counter_maximizing",
		Fields: []StatField{
			{Name: "inputs", Value: fmt.Sprintf("%d", len(p.inputs))},
			{Name: "counters", Value: fmt.Sprintf("%d", p.numCounters)},
		},
	}
}
