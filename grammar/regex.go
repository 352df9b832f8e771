package grammar

import (
	"regexp/syntax"

	"github.com/corefuzz/corefuzz/internal/ferrors"
)

// FromRegex translates a parsed regular expression into the grammar
// combinators above, per spec.md §4.10. Go's stdlib regexp/syntax package
// is the direct ecosystem analogue of the original's regex-syntax crate -
// both are dedicated regex-AST parsers, not generic utility packages - so
// this is the one place SPEC_FULL.md documents a justified standard
// library dependency instead of a third-party one (see DESIGN.md).
//
// Anchors, word boundaries, and byte-mode regexes are rejected at
// construction, as is the empty pattern, matching spec.md §4.10 exactly.
func FromRegex(pattern string) (ASTMutator, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.KindParseConfig, "parse regex", err)
	}
	re = re.Simplify()
	if isEmptyMatch(re) {
		return nil, ferrors.New(ferrors.KindParseConfig, "regex: empty pattern is rejected")
	}
	return compileRegexNode(re)
}

func isEmptyMatch(re *syntax.Regexp) bool {
	return re.Op == syntax.OpEmptyMatch
}

func compileRegexNode(re *syntax.Regexp) (ASTMutator, error) {
	switch re.Op {
	case syntax.OpLiteral:
		children := make([]ASTMutator, len(re.Rune))
		for i, r := range re.Rune {
			children[i] = Literal(r)
		}
		if len(children) == 1 {
			return children[0], nil
		}
		return Concatenation(children), nil

	case syntax.OpCharClass:
		ranges := make([]RuneRange, 0, len(re.Rune)/2)
		for i := 0; i+1 < len(re.Rune); i += 2 {
			ranges = append(ranges, RuneRange{Lo: re.Rune[i], Hi: re.Rune[i+1]})
		}
		return LiteralRanges(ranges), nil

	case syntax.OpAnyCharNotNL, syntax.OpAnyChar:
		return LiteralRanges([]RuneRange{{Lo: 0, Hi: 0x10FFFF}}), nil

	case syntax.OpCapture:
		return compileRegexNode(re.Sub[0])

	case syntax.OpConcat:
		children, err := compileRegexChildren(re.Sub)
		if err != nil {
			return nil, err
		}
		if len(children) == 1 {
			return children[0], nil
		}
		return Concatenation(children), nil

	case syntax.OpAlternate:
		children, err := compileRegexChildren(re.Sub)
		if err != nil {
			return nil, err
		}
		return Alternation(children), nil

	case syntax.OpStar:
		inner, err := compileRegexNode(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Repetition(inner, 0, 32), nil

	case syntax.OpPlus:
		inner, err := compileRegexNode(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Repetition(inner, 1, 32), nil

	case syntax.OpQuest:
		inner, err := compileRegexNode(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Repetition(inner, 0, 1), nil

	case syntax.OpRepeat:
		inner, err := compileRegexNode(re.Sub[0])
		if err != nil {
			return nil, err
		}
		max := re.Max
		if max < 0 {
			max = re.Min + 32
		}
		return Repetition(inner, re.Min, max), nil

	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil, ferrors.New(ferrors.KindParseConfig, "regex: anchors and word boundaries are rejected")

	case syntax.OpEmptyMatch:
		return nil, ferrors.New(ferrors.KindParseConfig, "regex: empty pattern is rejected")

	default:
		return nil, ferrors.New(ferrors.KindParseConfig, "regex: unsupported construct")
	}
}

func compileRegexChildren(subs []*syntax.Regexp) ([]ASTMutator, error) {
	children := make([]ASTMutator, len(subs))
	for i, s := range subs {
		child, err := compileRegexNode(s)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}
