package pool

import "fmt"

// And composes two pools with a weighted, decaying draw between them,
// per spec.md §4.14: each pool's effective weight is its configured
// weight divided by its number_times_chosen_since_last_progress, which
// resets to 1 when the pool reports a non-empty delta.
type And[O1, O2, O any] struct {
	First                                    CompatibleWithObservations[O1]
	Second                                   CompatibleWithObservations[O2]
	weightFirst, weightSecond                float64
	sinceProgressFirst, sinceProgressSecond int
	split                                    func(O) (O1, O2)
	rng                                      randSource
}

// randSource is the minimal surface And needs from *rand.Rand, kept as
// an interface so tests can substitute a deterministic stub.
type randSource interface {
	Float64() float64
}

// NewAnd composes first and second, weighted by weightFirst/weightSecond,
// splitting each processed observation into the two children's own
// halves via split.
func NewAnd[O1, O2, O any](
	first CompatibleWithObservations[O1],
	second CompatibleWithObservations[O2],
	weightFirst, weightSecond float64,
	split func(O) (O1, O2),
	rng randSource,
) *And[O1, O2, O] {
	return &And[O1, O2, O]{
		First: first, Second: second,
		weightFirst: weightFirst, weightSecond: weightSecond,
		sinceProgressFirst: 1, sinceProgressSecond: 1,
		split: split, rng: rng,
	}
}

func (p *And[O1, O2, O]) effectiveWeightFirst() float64 {
	return p.weightFirst / float64(p.sinceProgressFirst)
}

func (p *And[O1, O2, O]) effectiveWeightSecond() float64 {
	return p.weightSecond / float64(p.sinceProgressSecond)
}

func (p *And[O1, O2, O]) Weight() float64 {
	return p.effectiveWeightFirst() + p.effectiveWeightSecond()
}

// GetRandomIndex draws from whichever child the weighted coin favors,
// falling back to the other child if that one has nothing to offer. The
// since-progress counter for the child actually drawn from is bumped
// here, on the branch taken - not in Process - so it tracks how many
// times a pool's storage index has been handed out, not how many
// observations have been processed.
func (p *And[O1, O2, O]) GetRandomIndex() (StorageIndex, bool) {
	wf, ws := p.effectiveWeightFirst(), p.effectiveWeightSecond()
	total := wf + ws
	if total <= 0 {
		return 0, false
	}
	choice := p.rng.Float64() * total
	if choice <= wf {
		if idx, ok := p.First.GetRandomIndex(); ok {
			p.sinceProgressFirst++
			return idx, true
		}
		p.sinceProgressSecond++
		return p.Second.GetRandomIndex()
	}
	if idx, ok := p.Second.GetRandomIndex(); ok {
		p.sinceProgressSecond++
		return idx, true
	}
	p.sinceProgressFirst++
	return p.First.GetRandomIndex()
}

// Process implements CompatibleWithObservations[O]: it splits a combined
// observation into the two halves each child pool was built to consume
// (spec.md §4.14's DifferentObservations case), or hands the same value
// to both (SameObservations, via a split that returns its argument
// twice). It only resets a child's since-progress counter to 1 when that
// child reports progress; the counter's increments happen in
// GetRandomIndex, not here.
func (p *And[O1, O2, O]) Process(id StorageIndex, observations *O, cplx float64) []CorpusDelta {
	o1, o2 := p.split(*observations)
	d1 := p.First.Process(id, &o1, cplx)
	d2 := p.Second.Process(id, &o2, cplx)
	if len(d1) > 0 {
		p.sinceProgressFirst = 1
	}
	if len(d2) > 0 {
		p.sinceProgressSecond = 1
	}
	return append(d1, d2...)
}

func (p *And[O1, O2, O]) Stats() Stats {
	return Stats{
		Name: "and",
		Fields: []StatField{
			{Name: "weight_first", Value: fmt.Sprintf("%.4f", p.effectiveWeightFirst())},
			{Name: "weight_second", Value: fmt.Sprintf("%.4f", p.effectiveWeightSecond())},
		},
	}
}

// AnyPool is the object-safe façade SPEC_FULL.md §7 recovers from the
// original's boxed-trait-object pool registry: a driver holding several
// pools with different observation types in one slice needs a shared,
// non-generic handle, so AnyPool erases Process's observation type to
// any, mirroring grammar.ASTMutator's own any-boxing rationale.
type AnyPool interface {
	Pool
	ProcessAny(id StorageIndex, observations any, cplx float64) []CorpusDelta
}

// anyPoolAdapter adapts a CompatibleWithObservations[O] into an AnyPool.
type anyPoolAdapter[O any] struct {
	CompatibleWithObservations[O]
}

// AsAnyPool erases p's observation type so it can sit in a []AnyPool
// alongside pools observing different types.
func AsAnyPool[O any](p CompatibleWithObservations[O]) AnyPool {
	return anyPoolAdapter[O]{p}
}

func (a anyPoolAdapter[O]) ProcessAny(id StorageIndex, observations any, cplx float64) []CorpusDelta {
	o, ok := observations.(*O)
	if !ok {
		return nil
	}
	return a.Process(id, o, cplx)
}
