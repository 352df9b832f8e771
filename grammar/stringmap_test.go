package grammar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/grammar"
)

func digitsGrammar() grammar.ASTMutator {
	return grammar.Repetition(
		grammar.LiteralRanges([]grammar.RuneRange{{Lo: '0', Hi: '9'}}),
		1, 6,
	)
}

func TestASTStringMutatorGenerateProducesMatchingCharset(t *testing.T) {
	m := grammar.NewASTStringMutator(digitsGrammar())
	s, state := m.Generate(16)
	require.NotNil(t, state)
	for _, r := range s {
		assert.True(t, r >= '0' && r <= '9', "generated rune %q out of grammar's declared range", r)
	}
}

func TestASTStringMutatorMutateChangesTheString(t *testing.T) {
	m := grammar.NewASTStringMutator(digitsGrammar())
	s, state := m.Generate(16)

	changed := false
	for i := 0; i < 20 && !changed; i++ {
		mutated := m.Mutate(state, 16)
		if mutated != s {
			changed = true
		}
		s = mutated
	}
	assert.True(t, changed, "at least one of 20 mutations should change a 1-6 digit string")
}

func TestASTStringMutatorUnmutateRestoresGrammarConformance(t *testing.T) {
	m := grammar.NewASTStringMutator(digitsGrammar())
	_, state := m.Generate(16)
	m.Mutate(state, 16)
	result := m.Unmutate(state)

	for _, r := range result {
		assert.True(t, r >= '0' && r <= '9')
	}
	assert.True(t, len(result) >= 1 && len(result) <= 6)
}

func TestConcatenationRendersChildrenInOrder(t *testing.T) {
	g := grammar.Concatenation([]grammar.ASTMutator{
		grammar.Literal('a'),
		grammar.Literal('b'),
		grammar.Literal('c'),
	})
	m := grammar.NewASTStringMutator(g)
	s, _ := m.Generate(8)
	assert.True(t, strings.HasPrefix(s, "abc") || s == "abc")
}
