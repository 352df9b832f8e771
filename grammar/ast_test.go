package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/grammar"
)

func TestConcatenationUnmutateRoundTrip(t *testing.T) {
	m := grammar.Concatenation([]grammar.ASTMutator{
		grammar.LiteralRanges([]grammar.RuneRange{{Lo: 'a', Hi: 'z'}}),
		grammar.LiteralRanges([]grammar.RuneRange{{Lo: '0', Hi: '9'}}),
	})

	value, _ := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&value)
	require.True(t, ok)

	original, _ := grammar.Render(value)
	token, _ := m.RandomMutate(&value, cache, m.MaxComplexity())
	m.Unmutate(&value, cache, token)

	restored, _ := grammar.Render(value)
	assert.Equal(t, original, restored)
}

func TestAlternationProducesOneOfItsAlternatives(t *testing.T) {
	m := grammar.Alternation([]grammar.ASTMutator{
		grammar.Literal('x'),
		grammar.Literal('y'),
	})

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		value, _ := m.RandomArbitrary(m.MaxComplexity())
		s, _ := grammar.Render(value)
		seen[s] = true
	}
	for s := range seen {
		assert.Contains(t, []string{"x", "y"}, s)
	}
}

func TestRepetitionRespectsMinAndMaxChildCount(t *testing.T) {
	m := grammar.Repetition(grammar.Literal('a'), 2, 4)
	for i := 0; i < 20; i++ {
		value, _ := m.RandomArbitrary(m.MaxComplexity())
		assert.GreaterOrEqual(t, len(value.Children), 2)
		assert.LessOrEqual(t, len(value.Children), 4)
	}
}

func TestRepetitionUnmutateRoundTrip(t *testing.T) {
	m := grammar.Repetition(grammar.LiteralRanges([]grammar.RuneRange{{Lo: 'a', Hi: 'c'}}), 1, 5)

	value, _ := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&value)
	require.True(t, ok)

	original, _ := grammar.Render(value)
	for trial := 0; trial < 10; trial++ {
		before, _ := grammar.Render(value)
		token, _ := m.RandomMutate(&value, cache, m.MaxComplexity())
		m.Unmutate(&value, cache, token)
		after, _ := grammar.Render(value)
		assert.Equal(t, before, after, "trial %d: a single mutate/unmutate pair must round-trip", trial)
	}
	final, _ := grammar.Render(value)
	assert.Equal(t, original, final)
}

func TestRenderProducesContiguousByteRanges(t *testing.T) {
	ast, _ := grammar.Concatenation([]grammar.ASTMutator{
		grammar.Literal('a'),
		grammar.Literal('b'),
	}).RandomArbitrary(10)

	s, m := grammar.Render(ast)
	assert.Equal(t, "ab", s)
	assert.Equal(t, 0, m.Children[0].StartIndex)
	assert.Equal(t, 1, m.Children[1].StartIndex)
}
