package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/corefuzz/corefuzz/grammar"
	"github.com/corefuzz/corefuzz/pool"
	"github.com/corefuzz/corefuzz/serialize"
	"github.com/corefuzz/corefuzz/world"
)

// driver owns the in-process loop spec.md §5 describes: resolve a
// PoolStorageIndex to a value, mutate it, run the target, feed the
// sensor's observations back to the pool, and either keep the mutated
// value as a new corpus entry or reverse the mutation and discard it.
//
// mu guards every field below it: Step runs on the main loop goroutine,
// but AddSeed is invoked from world.Watch's own goroutine whenever a file
// in the corpus directory is created or written, concurrently with a run.
type driver struct {
	cfg    driverConfig
	mut    *grammar.ASTStringMutator
	sens   *trigramSensor
	corpus *world.Corpus[string]
	log    *slog.Logger

	mu     sync.Mutex
	p      *pool.CounterMaximizing
	nextID pool.StorageIndex
	states map[pool.StorageIndex]*grammar.StringState
	values map[pool.StorageIndex]string
}

// driverConfig is the subset of internal/config.Config the driver needs,
// narrowed here so tests can construct one without viper.
type driverConfig struct {
	CorpusDir     string
	MaxComplexity float64
	Seed          int64
	Iterations    int
	NumCounters   int
}

func newDriver(cfg driverConfig, log *slog.Logger) (*driver, error) {
	mut, err := buildDemoMutator()
	if err != nil {
		return nil, err
	}

	corpus, err := world.NewCorpus[string](cfg.CorpusDir, serialize.NewCBOR[string](".cbor"))
	if err != nil {
		return nil, err
	}

	p := pool.NewCounterMaximizing(cfg.NumCounters)
	p.SeedWith(cfg.Seed)

	return &driver{
		cfg:    cfg,
		mut:    mut,
		sens:   newTrigramSensor(cfg.NumCounters),
		p:      p,
		corpus: corpus,
		log:    log,
		states: make(map[pool.StorageIndex]*grammar.StringState),
		values: make(map[pool.StorageIndex]string),
	}, nil
}

// seed loads the existing on-disk corpus (for reporting only - the
// grammar package has no parser from a string back to a grammar AST, so
// seeds are not re-entered into the live mutation pool) and generates a
// handful of fresh arbitrary values to prime it.
func (d *driver) seed(ctx context.Context, count int) error {
	if _, err := d.corpus.Load(); err != nil {
		d.log.Warn("failed to load existing corpus", "error", err)
	}

	for i := 0; i < count; i++ {
		value, state := d.mut.Generate(d.cfg.MaxComplexity)
		id := d.allocate(value, state)
		obs := d.observe(value)
		deltas := d.p.Process(id, &obs, 0)
		if err := d.corpus.Apply(ctx, deltas, map[pool.StorageIndex]string{id: value}); err != nil {
			return err
		}
	}
	return nil
}

// AddSeed ingests a value read from the corpus directory (world.Watch's
// callback, which reports this process's own corpus writes as well as
// seeds dropped in by something else). Like any pool entry
// forked from a bare string rather than a freshly generated AST, it has no
// independently-parseable state of its own, so Step re-tests its stored
// value unchanged whenever it is drawn.
func (d *driver) AddSeed(ctx context.Context, value string) {
	d.mu.Lock()
	id := d.allocate(value, nil)
	obs := d.observe(value)
	deltas := d.p.Process(id, &obs, float64(len(value)))
	d.mu.Unlock()
	_ = d.corpus.Apply(ctx, deltas, map[pool.StorageIndex]string{id: value})
}

func (d *driver) allocate(value string, state *grammar.StringState) pool.StorageIndex {
	id := d.nextID
	d.nextID++
	d.values[id] = value
	d.states[id] = state
	return id
}

func (d *driver) observe(value string) pool.CounterObservations {
	d.sens.StartRecording()
	d.sens.Observe(value)
	d.sens.StopRecording()
	return d.sens.GetObservations()
}

// Step runs one iteration of the mutate/test/observe loop, returning the
// value tested and whether the target crashed on it.
func (d *driver) Step(ctx context.Context) (tested string, crashed bool, err error) {
	d.mu.Lock()

	id, ok := d.p.GetRandomIndex()
	if !ok {
		value, state := d.mut.Generate(d.cfg.MaxComplexity)
		id = d.allocate(value, state)
	}

	// A nil state (entries forked off by a prior accepted mutation, which
	// has no independently-parseable AST of its own - see the seed comment
	// above) has nothing to mutate; its stored value stands as this
	// round's candidate unchanged.
	state := d.states[id]
	if state == nil {
		tested = d.values[id]
	} else {
		tested = d.mut.Mutate(state, d.cfg.MaxComplexity)
	}
	d.mu.Unlock()

	crashed = d.runTarget(tested)
	if crashed {
		return tested, true, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	obs := d.observe(tested)
	newID := d.nextID
	d.nextID++
	deltas := d.p.Process(newID, &obs, float64(len(tested)))

	kept := false
	for _, delta := range deltas {
		if delta.Add {
			kept = true
		}
	}

	if kept {
		d.values[newID] = tested
		if state != nil {
			// newID keeps only the mutated string, with no AST state of
			// its own (states[newID] is nil); id's stored state must still
			// revert to what it was before this mutation so the next round
			// that draws id again starts from its original value.
			d.mut.Unmutate(state)
			d.states[newID] = nil
		}
		if err := d.corpus.Apply(ctx, deltas, map[pool.StorageIndex]string{newID: tested}); err != nil {
			return tested, false, err
		}
	} else if state != nil {
		d.mut.Unmutate(state)
		if err := d.corpus.Apply(ctx, deltas, nil); err != nil {
			return tested, false, err
		}
	}

	return tested, false, nil
}

// runTarget invokes the demo target, converting a panic into a reported
// crash rather than taking the whole process down - the world layer's
// sandboxing is explicitly out of scope (spec.md's Non-goals), but a
// demonstration CLI still has to survive its own planted bug.
func (d *driver) runTarget(value string) (crashed bool) {
	defer func() {
		if r := recover(); r != nil {
			crashed = true
			d.log.Error("fuzz target crashed", "input", value, "panic", r)
		}
	}()
	runDemoTarget(value)
	return false
}

// Run drives Step in a loop until ctx is canceled or, when iterations > 0,
// that many iterations have completed.
func (d *driver) Run(ctx context.Context, iterations int, onProgress func(n int)) error {
	start := time.Now()
	n := 0
	for iterations <= 0 || n < iterations {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		value, crashed, err := d.Step(ctx)
		if err != nil {
			return err
		}
		if crashed {
			return fmt.Errorf("crash found after %d iterations on input %q (elapsed %s)", n, value, time.Since(start))
		}
		n++
		if onProgress != nil && n%1000 == 0 {
			onProgress(n)
		}
	}
	return nil
}

// Stats returns the pool's current Stats for reporting.
func (d *driver) Stats() pool.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.p.Stats()
}

// CorpusSize returns the number of values currently held in memory.
func (d *driver) CorpusSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.values)
}
