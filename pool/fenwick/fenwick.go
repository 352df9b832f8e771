// Package fenwick provides a Binary Indexed Tree over float64 weights,
// backing the counter-maximizing pool's weighted sampling (spec.md §4.12).
package fenwick

import "github.com/corefuzz/corefuzz/internal/invariant"

// Tree is a Fenwick tree (Binary Indexed Tree) supporting point updates
// and prefix-sum queries in O(log n), used to sample an input weighted by
// score/(1+times_chosen_since_progress) without rescanning every live
// input on each draw.
type Tree struct {
	// tree is 1-indexed internally; tree[0] is unused.
	tree   []float64
	values []float64 // values[i] is the current weight at index i (0-indexed)
}

// New builds a Fenwick tree over n slots, all initialized to zero weight.
func New(n int) *Tree {
	return &Tree{tree: make([]float64, n+1), values: make([]float64, n)}
}

// Len returns the number of slots the tree covers.
func (t *Tree) Len() int { return len(t.values) }

// Grow extends the tree to cover n slots total, preserving existing
// weights. n must be >= the tree's current length.
func (t *Tree) Grow(n int) {
	invariant.Precondition(n >= len(t.values), "fenwick.Grow: n must not shrink the tree")
	for i := len(t.values); i < n; i++ {
		t.values = append(t.values, 0)
		t.tree = append(t.tree, 0)
		// Node pos covers (pos-lowbit(pos), pos]; the new slot's own weight
		// is zero, so the node is the sum of the nodes directly below it.
		pos := i + 1
		for child := pos - 1; child > pos-(pos&(-pos)); child -= child & (-child) {
			t.tree[pos] += t.tree[child]
		}
	}
}

// Update sets the weight at index i (0-indexed) to weight, adjusting the
// tree by the delta.
func (t *Tree) Update(i int, weight float64) {
	invariant.InRange(i, 0, len(t.values)-1, "fenwick index")
	invariant.NonNegative(weight, "fenwick weight")
	delta := weight - t.values[i]
	t.values[i] = weight
	for pos := i + 1; pos <= len(t.values); pos += pos & (-pos) {
		t.tree[pos] += delta
	}
}

// At returns the current weight at index i.
func (t *Tree) At(i int) float64 { return t.values[i] }

// PrefixSum returns the sum of weights in [0, i] inclusive (0-indexed).
func (t *Tree) PrefixSum(i int) float64 {
	var sum float64
	for pos := i + 1; pos > 0; pos -= pos & (-pos) {
		sum += t.tree[pos]
	}
	return sum
}

// Total returns the sum of every weight in the tree.
func (t *Tree) Total() float64 {
	if len(t.values) == 0 {
		return 0
	}
	return t.PrefixSum(len(t.values) - 1)
}

// FirstIndexPastPrefixSum returns the smallest index i such that the
// prefix sum over [0, i] strictly exceeds target. Used to turn a uniform
// draw in [0, Total()) into a weighted index pick in O(log n).
func (t *Tree) FirstIndexPastPrefixSum(target float64) (int, bool) {
	if len(t.values) == 0 {
		return 0, false
	}
	pos := 0
	remaining := target
	// highest power of two <= len(tree)-1
	logSize := 1
	for logSize*2 <= len(t.tree)-1 {
		logSize *= 2
	}
	for step := logSize; step > 0; step /= 2 {
		next := pos + step
		if next < len(t.tree) && t.tree[next] <= remaining {
			pos = next
			remaining -= t.tree[next]
		}
	}
	if pos >= len(t.values) {
		return 0, false
	}
	return pos, true
}
