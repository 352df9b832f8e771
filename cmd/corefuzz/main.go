// Command corefuzz is a thin demonstration CLI around the corefuzz mutator
// framework: it drives the generate/mutate/test/observe loop spec.md §5
// describes over a single built-in string fuzz target, backed by a regex
// grammar, a counter-maximizing pool, and an on-disk corpus.
package main

func main() {
	Execute()
}
