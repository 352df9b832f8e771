package mapping_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator"
	"github.com/corefuzz/corefuzz/mutator/mapping"
)

// decimalString renders an int32 to its base-10 string representation,
// rebuilding it wholesale on every step - a worst-case but correct
// IncrementalMapping used to test the Incremental contract in isolation.
type decimalString struct{}

func (decimalString) Build(from int32) string { return strconv.Itoa(int(from)) }
func (decimalString) MutateValueFromToken(from *int32, to *string, token mutator.IntToken[int32]) {
	*to = strconv.Itoa(int(*from))
}
// UnmutateValueFromToken cannot patch to incrementally here: IntToken's
// prior value is unexported outside the mutator package, and this
// mapping is given no other way to learn what the string was before the
// mutation it's reversing. Incremental.Unmutate covers for exactly this
// case by reconciling to against Build once the inner mutator has
// restored from.
func (decimalString) UnmutateValueFromToken(to *string, token mutator.IntToken[int32]) {
}

func TestIncrementalBuildsToFromValidate(t *testing.T) {
	m := mapping.NewIncremental[int32, string, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](mutator.NewInt32(), decimalString{})
	v := int32(42)
	cache, ok := m.Validate(&v)
	require.True(t, ok)
	assert.Equal(t, "42", m.To(&cache))
}

func TestIncrementalMutateKeepsToInSyncWithFrom(t *testing.T) {
	m := mapping.NewIncremental[int32, string, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](mutator.NewInt32(), decimalString{})
	v := int32(7)
	cache, ok := m.Validate(&v)
	require.True(t, ok)

	_, _, _ = m.OrderedMutate(&v, &cache, ptr(m.DefaultMutationStep(&v, &cache)), m.MaxComplexity())
	assert.Equal(t, strconv.Itoa(int(v)), m.To(&cache))
}

func TestIncrementalUnmutateRestoresToAlongsideFrom(t *testing.T) {
	m := mapping.NewIncremental[int32, string, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[int32], mutator.None](mutator.NewInt32(), decimalString{})
	v := int32(7)
	cache, ok := m.Validate(&v)
	require.True(t, ok)

	originalV, originalTo := v, m.To(&cache)
	for trial := 0; trial < 10; trial++ {
		token, _, _ := m.OrderedMutate(&v, &cache, ptr(m.DefaultMutationStep(&v, &cache)), m.MaxComplexity())
		m.Unmutate(&v, &cache, token)
		assert.Equal(t, originalV, v, "trial %d: from", trial)
		assert.Equal(t, originalTo, m.To(&cache), "trial %d: to must track from even though UnmutateValueFromToken is a no-op", trial)
	}
}

func ptr[T any](v T) *T { return &v }
