package invariant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corefuzz/corefuzz/internal/invariant"
)

func TestPreconditionPanicsOnFalse(t *testing.T) {
	assert.Panics(t, func() { invariant.Precondition(false, "value must be %d", 1) })
	assert.NotPanics(t, func() { invariant.Precondition(true, "unreachable") })
}

func TestInvariantPanicsOnFalse(t *testing.T) {
	assert.Panics(t, func() { invariant.Invariant(false, "cache desync") })
}

func TestUnreachableAlwaysPanics(t *testing.T) {
	assert.Panics(t, func() { invariant.Unreachable("single-variant enum mismatch") })
}

func TestInRangePanicsOutsideBounds(t *testing.T) {
	assert.Panics(t, func() { invariant.InRange(10, 0, 5, "index") })
	assert.NotPanics(t, func() { invariant.InRange(3, 0, 5, "index") })
}

func TestNonNegativePanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { invariant.NonNegative(-1, "complexity") })
	assert.NotPanics(t, func() { invariant.NonNegative(0, "complexity") })
}
