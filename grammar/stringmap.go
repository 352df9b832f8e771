package grammar

import (
	"github.com/corefuzz/corefuzz/mutator"
	"github.com/corefuzz/corefuzz/mutator/mapping"
)

// stringMapping implements mapping.IncrementalMapping[AST, string, any]
// for grammar-produced ASTs, per spec.md §4.9: it renders the whole tree
// once in Build, then patches only the edited subtree's byte range on
// every subsequent mutation instead of re-rendering from scratch.
//
// Invariant preserved across every mutate/unmutate pair: the root map's
// Len equals len(to), and every child range partitions its parent's
// range exactly (spec.md §4.9, final paragraph).
type stringMapping struct {
	grammar ASTMutator
	astMap  ASTMap

	// lastAST mirrors the AST as of the end of the most recent
	// MutateValueFromToken call. UnmutateValueFromToken is invoked before
	// the grammar mutator has reverted `from` (mapping.Incremental's
	// documented ordering), so it has no `from` of its own to walk; it
	// walks lastAST instead, purely to rediscover which Alternation
	// alternative produced a transparently-dispatched token; the edit
	// itself is always reversed from data the token already carries
	// (the prior rune, or a Repetition token's embedded removed value).
	lastAST AST
}

// newStringMapping builds the IncrementalMapping side of a grammar's
// string-producing mutator.
func newStringMapping(g ASTMutator) *stringMapping {
	return &stringMapping{grammar: g}
}

func (sm *stringMapping) Build(from AST) string {
	s, m := Render(from)
	sm.astMap = m
	sm.lastAST = from
	return s
}

// MutateValueFromToken patches only the byte range the mutation touched,
// using the grammar tree to locate it: from already holds the
// post-mutation AST (the grammar mutator runs before the mapping is
// consulted), so each combinator contributes its own new rendering
// directly instead of the whole tree being re-rendered.
func (sm *stringMapping) MutateValueFromToken(from *AST, to *string, token any) {
	*to = patchForward(sm.grammar, from, &sm.astMap, *to, token)
	sm.lastAST = *from
}

// UnmutateValueFromToken reverses the same edit using only the token and
// the map's own residual state, per spec.md §4.9's incremental-unmutate
// requirement; it runs before the grammar mutator has restored `from`.
func (sm *stringMapping) UnmutateValueFromToken(to *string, token any) {
	*to = patchBackward(sm.grammar, &sm.lastAST, &sm.astMap, *to, token)
}

// patchForward walks g/ast/m in lockstep with token, splicing the one
// leaf or child range the mutation touched into s and growing/shifting
// its ancestors' and later siblings' ranges by the resulting delta.
// Alternation is transparent in the grammar's token stream (see
// altMutator.OrderedMutate/RandomMutate), so it is transparent here too:
// it re-derives which alternative is active from ast rather than peeling
// a wrapper off token.
func patchForward(g ASTMutator, ast *AST, m *ASTMap, s string, token any) string {
	switch gm := g.(type) {
	case *literalMutator:
		return s
	case *literalRangesMutator:
		next := string(ast.Literal)
		s = spliceBytes(s, m.StartIndex, m.Len, next)
		m.Len = len(next)
		return s
	case *concatMutator:
		it := token.(indexToken)
		cm := &m.Children[it.index]
		before := cm.Len
		s = patchForward(gm.children[it.index], &ast.Children[it.index], cm, s, it.inner)
		growAndShiftSiblings(m, it.index, cm.Len-before)
		return s
	case *altMutator:
		idx := activeAlternative(gm, &ast.Children[0])
		cm := &m.Children[0]
		before := cm.Len
		s = patchForward(gm.alternatives[idx], &ast.Children[0], cm, s, token)
		m.Len += cm.Len - before
		return s
	case *repMutator:
		switch t := token.(type) {
		case indexToken:
			cm := &m.Children[t.index]
			before := cm.Len
			s = patchForward(gm.elem, &ast.Children[t.index], cm, s, t.inner)
			growAndShiftSiblings(m, t.index, cm.Len-before)
			return s
		case repInsertToken:
			rendered, renderedMap := render(ast.Children[t.index], 0)
			return spliceInsert(m, &s, t.index, rendered, renderedMap)
		case repRemoveToken:
			return spliceRemove(m, &s, t.index)
		}
	}
	return s
}

// patchBackward is patchForward's mirror: it splices in the content the
// token recorded as *prior* (a literal's previous rune, or a
// Repetition-removal token's removed subtree) instead of reading ast's
// current value, since ast here is the post-mutation snapshot the
// mutation already moved past.
func patchBackward(g ASTMutator, ast *AST, m *ASTMap, s string, token any) string {
	switch gm := g.(type) {
	case *literalMutator:
		return s
	case *literalRangesMutator:
		prev := string(token.(rune))
		s = spliceBytes(s, m.StartIndex, m.Len, prev)
		m.Len = len(prev)
		return s
	case *concatMutator:
		it := token.(indexToken)
		cm := &m.Children[it.index]
		before := cm.Len
		s = patchBackward(gm.children[it.index], &ast.Children[it.index], cm, s, it.inner)
		growAndShiftSiblings(m, it.index, cm.Len-before)
		return s
	case *altMutator:
		idx := activeAlternative(gm, &ast.Children[0])
		cm := &m.Children[0]
		before := cm.Len
		s = patchBackward(gm.alternatives[idx], &ast.Children[0], cm, s, token)
		m.Len += cm.Len - before
		return s
	case *repMutator:
		switch t := token.(type) {
		case indexToken:
			cm := &m.Children[t.index]
			before := cm.Len
			s = patchBackward(gm.elem, &ast.Children[t.index], cm, s, t.inner)
			growAndShiftSiblings(m, t.index, cm.Len-before)
			return s
		case repInsertToken:
			// Reversing an insertion removes the child insertion itself put
			// there; repInsertToken carries only the index, which is all
			// spliceRemove needs.
			return spliceRemove(m, &s, t.index)
		case repRemoveToken:
			// Reversing a removal re-inserts the exact subtree the token
			// captured on its way out, rendered fresh since the map never
			// kept a removed child's range around.
			rendered, renderedMap := render(t.value, 0)
			return spliceInsert(m, &s, t.index, rendered, renderedMap)
		}
	}
	return s
}

// spliceBytes replaces s[start:start+oldLen] with replacement.
func spliceBytes(s string, start, oldLen int, replacement string) string {
	return s[:start] + replacement + s[start+oldLen:]
}

// growAndShiftSiblings grows m's own Len by delta and relocates every
// child after editedIndex by delta, leaving the edited child (already
// updated by the caller) and everything before it untouched.
func growAndShiftSiblings(m *ASTMap, editedIndex, delta int) {
	if delta == 0 {
		return
	}
	m.Len += delta
	for i := editedIndex + 1; i < len(m.Children); i++ {
		shift(&m.Children[i], delta)
	}
}

// spliceInsert inserts rendered's string at the position m.Children[at]
// currently starts (or just past the last child, if at is the new
// length), growing m and shifting every following child by the inserted
// width.
func spliceInsert(m *ASTMap, s *string, at int, rendered string, renderedMap ASTMap) string {
	insertAt := m.StartIndex + m.Len
	if at < len(m.Children) {
		insertAt = m.Children[at].StartIndex
	}
	shift(&renderedMap, insertAt)
	*s = (*s)[:insertAt] + rendered + (*s)[insertAt:]

	children := make([]ASTMap, 0, len(m.Children)+1)
	children = append(children, m.Children[:at]...)
	children = append(children, renderedMap)
	for _, c := range m.Children[at:] {
		shift(&c, len(rendered))
		children = append(children, c)
	}
	m.Children = children
	m.Len += len(rendered)
	return *s
}

// spliceRemove deletes the child currently at m.Children[at], shrinking
// m and shifting every following child back by the removed width.
func spliceRemove(m *ASTMap, s *string, at int) string {
	removed := m.Children[at]
	*s = (*s)[:removed.StartIndex] + (*s)[removed.StartIndex+removed.Len:]

	children := make([]ASTMap, 0, len(m.Children)-1)
	children = append(children, m.Children[:at]...)
	for _, c := range m.Children[at+1:] {
		shift(&c, -removed.Len)
		children = append(children, c)
	}
	m.Children = children
	m.Len -= removed.Len
	return *s
}

// activeAlternative finds which alternative produced ast, the same way
// altMutator.Validate does: the first one whose own Validate accepts it.
// Alternation never switches alternatives mid-mutation (see
// altMutator.OrderedMutate/RandomMutate, which always delegate to the
// variant Validate originally picked), so this agrees with the dispatch
// the grammar mutator itself used for both the forward and backward walk.
func activeAlternative(m *altMutator, ast *AST) int {
	for i, alt := range m.alternatives {
		if _, ok := alt.Validate(ast); ok {
			return i
		}
	}
	return 0
}

// astMutatorAdapter lifts the grammar package's any-boxed ASTMutator
// façade into mutator.Mutator[AST, any, any, any, any, any], the shape
// mapping.Incremental needs for its Inner field. The two interfaces
// agree in spirit but not in literal method signatures (ASTMutator
// passes its cache/step arguments by value, mutator.Mutator by pointer,
// since ASTMutator predates the generic combinator package and every
// grammar combinator already mutates through the value it's handed), so
// this adapter exists purely to bridge that calling convention - it adds
// no behavior of its own.
type astMutatorAdapter struct{ g ASTMutator }

func (a astMutatorAdapter) DefaultArbitraryStep() any { return a.g.DefaultArbitraryStep() }

func (a astMutatorAdapter) Validate(value *AST) (any, bool) { return a.g.Validate(value) }

func (a astMutatorAdapter) DefaultMutationStep(value *AST, cache *any) any {
	return a.g.DefaultMutationStep(value, *cache)
}

func (a astMutatorAdapter) MinComplexity() float64 { return a.g.MinComplexity() }
func (a astMutatorAdapter) MaxComplexity() float64 { return a.g.MaxComplexity() }

func (a astMutatorAdapter) Complexity(value *AST, cache *any) float64 {
	return a.g.Complexity(value, *cache)
}

func (a astMutatorAdapter) OrderedArbitrary(step *any, maxCplx float64) (AST, float64, bool) {
	return a.g.OrderedArbitrary(*step, maxCplx)
}

func (a astMutatorAdapter) RandomArbitrary(maxCplx float64) (AST, float64) {
	return a.g.RandomArbitrary(maxCplx)
}

func (a astMutatorAdapter) OrderedMutate(value *AST, cache *any, step *any, maxCplx float64) (any, float64, bool) {
	return a.g.OrderedMutate(value, *cache, *step, maxCplx)
}

func (a astMutatorAdapter) RandomMutate(value *AST, cache *any, maxCplx float64) (any, float64) {
	return a.g.RandomMutate(value, *cache, maxCplx)
}

func (a astMutatorAdapter) Unmutate(value *AST, cache *any, token any) {
	a.g.Unmutate(value, *cache, token)
}

// ASTMutator has no recursing-part notion of its own (no grammar
// combinator here is self-referential the way mutator.Recursive's
// grammars are; see recursive.go), so the adapter reports none.
func (a astMutatorAdapter) DefaultRecursingPartIndex(value *AST, cache *any) any { return nil }
func (a astMutatorAdapter) RecursingPartRaw(value *AST, index *any) (any, bool)  { return nil, false }

// ASTStringMutator pairs a grammar with the incremental AST<->string
// projection, exposing only what the grammar package's consumers need:
// generate a string and its map, and reversibly mutate both in lockstep.
// It is itself built on mapping.Incremental, per spec.md §4.10's closing
// line: "The resulting string-producing mutator is an incremental map of
// the AST mutator onto String."
type ASTStringMutator struct {
	grammar ASTMutator
	inc     *mapping.Incremental[AST, string, any, any, any, any, any]
}

// NewASTStringMutator builds the string-producing mutator for a grammar.
func NewASTStringMutator(g ASTMutator) *ASTStringMutator {
	return &ASTStringMutator{
		grammar: g,
		inc:     mapping.NewIncremental[AST, string, any, any, any, any, any](astMutatorAdapter{g: g}, newStringMapping(g)),
	}
}

// StringState is the (value, cache) pair ASTStringMutator threads
// through mapping.Incremental on behalf of a caller that only wants
// strings.
type StringState struct {
	value     AST
	cache     mapping.IncrementalCache[any, string]
	lastToken any
}

// Generate produces a fresh string via the grammar's RandomArbitrary,
// returning the opaque state Mutate/Unmutate take.
func (m *ASTStringMutator) Generate(maxCplx float64) (string, *StringState) {
	v, _ := m.inc.RandomArbitrary(maxCplx)
	cache, ok := m.inc.Validate(&v)
	if !ok {
		// RandomArbitrary of a well-formed grammar always validates against
		// its own mutator; reaching this would mean the grammar's own
		// combinators disagree with each other, a construction bug.
		panic("grammar: RandomArbitrary produced a value its own Validate rejects")
	}
	return m.inc.To(&cache), &StringState{value: v, cache: cache}
}

// Mutate applies one random mutation and returns the updated string.
func (m *ASTStringMutator) Mutate(state *StringState, maxCplx float64) string {
	tok, _ := m.inc.RandomMutate(&state.value, &state.cache, maxCplx)
	state.lastToken = tok
	return m.inc.To(&state.cache)
}

// Unmutate reverses the most recent Mutate call.
func (m *ASTStringMutator) Unmutate(state *StringState) string {
	m.inc.Unmutate(&state.value, &state.cache, state.lastToken)
	return m.inc.To(&state.cache)
}
