// Package grammar provides the AST-based grammar core described in
// spec.md §4.10: combinators that build a tree-shaped mutator over
// values of type AST, paired with an ASTMap that incrementally renders
// the tree into a string as it is mutated.
package grammar

// AST is a node in a grammar-shaped parse tree. Kind identifies which
// combinator produced it; Children holds its sub-trees (empty for
// literals); Literal holds the single rune a literal node contributes.
type AST struct {
	Kind     Kind
	Literal  rune
	Children []AST
}

// Kind tags which grammar combinator produced an AST node.
type Kind int

const (
	KindLiteral Kind = iota
	KindConcatenation
	KindAlternation
	KindRepetition
)

// ASTMap mirrors an AST's rendered string representation, tracking each
// node's byte offset and length so an edit to one subtree only needs to
// shift the offsets of later siblings, not re-render the whole tree.
type ASTMap struct {
	StartIndex int
	Len        int
	Children   []ASTMap
}

// render produces the string rendering of ast and the ASTMap describing
// its byte ranges, with every offset relative to base.
func render(ast AST, base int) (string, ASTMap) {
	switch ast.Kind {
	case KindLiteral:
		s := string(ast.Literal)
		return s, ASTMap{StartIndex: base, Len: len(s)}
	default:
		var sb []byte
		children := make([]ASTMap, len(ast.Children))
		offset := base
		for i, child := range ast.Children {
			s, m := render(child, offset)
			sb = append(sb, s...)
			children[i] = m
			offset += len(s)
		}
		return string(sb), ASTMap{StartIndex: base, Len: offset - base, Children: children}
	}
}

// Render returns the full string rendering of ast and its ASTMap.
func Render(ast AST) (string, ASTMap) {
	return render(ast, 0)
}

// shift adds delta to m's StartIndex and every descendant's StartIndex,
// used to relocate the siblings following an edited subtree.
func shift(m *ASTMap, delta int) {
	m.StartIndex += delta
	for i := range m.Children {
		shift(&m.Children[i], delta)
	}
}
