package main

import (
	"hash/fnv"
	"strings"

	"github.com/corefuzz/corefuzz/grammar"
	"github.com/corefuzz/corefuzz/pool"
	"github.com/corefuzz/corefuzz/sensor"
)

// demoPattern is the built-in fuzz target's grammar: a small regex
// standing in for whatever structured string format a real project would
// fuzz (a URL path, a query language, a config line). The coverage sensor
// implementation is explicitly out of scope for the core (spec.md §1), so
// this demo ships its own toy byte-trigram sensor rather than real
// instrumentation.
const demoPattern = `[a-zA-Z0-9_/.-]{1,64}`

// buildDemoMutator constructs the demo fuzz target's string mutator from
// demoPattern.
func buildDemoMutator() (*grammar.ASTStringMutator, error) {
	g, err := grammar.FromRegex(demoPattern)
	if err != nil {
		return nil, err
	}
	return grammar.NewASTStringMutator(g), nil
}

// demoCrash is the toy bug this fuzz target exists to find: a literal
// magic substring, the way a fuzz-testing demo conventionally plants one
// findable crash to prove the loop works end to end.
const demoCrash = "FUZZ_CRASH"

// runDemoTarget is the TestFunc[string] the driver loop invokes: it panics
// if value contains the magic crash string, and is otherwise a no-op.
func runDemoTarget(value string) {
	if strings.Contains(value, demoCrash) {
		panic("corefuzz: demo target crashed on input containing " + demoCrash)
	}
}

// trigramSensor is a toy stand-in for real coverage instrumentation: it
// reports one counter per distinct 3-byte window of the string under test,
// hashed into a fixed counter space. This is enough to give the
// counter-maximizing pool a meaningfully varied observation space without
// requiring this demo to link against an instrumented build - the thing
// spec.md §1 places out of scope for the core.
type trigramSensor struct {
	numCounters int
	current     string
}

func newTrigramSensor(numCounters int) *trigramSensor {
	return &trigramSensor{numCounters: numCounters}
}

func (s *trigramSensor) StartRecording() { s.current = "" }
func (s *trigramSensor) StopRecording()  {}

func (s *trigramSensor) Observe(value string) { s.current = value }

func (s *trigramSensor) GetObservations() pool.CounterObservations {
	obs := make(pool.CounterObservations)
	v := s.current
	for i := 0; i+3 <= len(v); i++ {
		h := fnv.New32a()
		h.Write([]byte(v[i : i+3]))
		idx := int(h.Sum32()) % s.numCounters
		if idx < 0 {
			idx += s.numCounters
		}
		obs[idx]++
	}
	return obs
}

var _ sensor.Sensor[pool.CounterObservations] = (*trigramSensor)(nil)
