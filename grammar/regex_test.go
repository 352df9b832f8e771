package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/grammar"
)

func TestFromRegexGeneratesMatchingStrings(t *testing.T) {
	m, err := grammar.FromRegex(`[a-c]+`)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		value, _ := m.RandomArbitrary(m.MaxComplexity())
		s, _ := grammar.Render(value)
		require.NotEmpty(t, s)
		for _, r := range s {
			assert.True(t, r >= 'a' && r <= 'c', "rune %q out of the [a-c] class", r)
		}
	}
}

func TestFromRegexRejectsEmptyPattern(t *testing.T) {
	_, err := grammar.FromRegex("")
	assert.Error(t, err)
}

func TestFromRegexRejectsWordBoundary(t *testing.T) {
	_, err := grammar.FromRegex(`\bfoo\b`)
	assert.Error(t, err)
}

func TestFromRegexRejectsInvalidSyntax(t *testing.T) {
	_, err := grammar.FromRegex(`(unclosed`)
	assert.Error(t, err)
}

func TestFromRegexLiteralConcatenation(t *testing.T) {
	m, err := grammar.FromRegex(`abc`)
	require.NoError(t, err)

	value, _ := m.RandomArbitrary(m.MaxComplexity())
	s, _ := grammar.Render(value)
	assert.Equal(t, "abc", s)
}

func TestFromRegexQuestionMarkAllowsZeroOrOne(t *testing.T) {
	m, err := grammar.FromRegex(`ab?`)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 30; i++ {
		value, _ := m.RandomArbitrary(m.MaxComplexity())
		s, _ := grammar.Render(value)
		seen[s] = true
	}
	for s := range seen {
		assert.Contains(t, []string{"a", "ab"}, s)
	}
}
