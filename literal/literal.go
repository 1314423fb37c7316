// Package literal extracts the literal strings a compiled tree requires,
// for prefilter selection. Grounded on the teacher's literal.Extractor,
// reduced to this grammar's much smaller surface: there are no character
// classes or repetition to expand, so extraction is a single recursive
// walk rather than the teacher's cross-product accumulation.
package literal

import "github.com/coregx/corelite/ast"

// Extract walks tree and reports whether it is a "pure alternation of
// literals": either a single MultipleChar, or an Alternation all of
// whose children are themselves pure alternations of literals bottoming
// out in MultipleChar. When pure is true, lits holds every literal
// required to match - at least one of them must appear in the haystack
// for the pattern to have any chance of matching, which is what makes
// an Aho-Corasick prefilter sound here.
//
// A tree containing Period, Concatenation, or Epsilon anywhere is not
// pure: Period can match any byte, so no finite literal set is
// necessary for a match, and Concatenation mixes variable content with
// literal runs in a way this extractor does not attempt to factor
// (unlike the teacher's cross-product concat handling, which this
// minimal grammar has no character classes to justify).
func Extract(tree ast.Node) (lits [][]byte, pure bool) {
	switch n := tree.(type) {
	case *ast.MultipleChar:
		return [][]byte{n.Bytes}, true

	case *ast.Alternation:
		var all [][]byte
		for _, child := range n.Children {
			sub, ok := Extract(child)
			if !ok {
				return nil, false
			}
			all = append(all, sub...)
		}
		return all, true

	default:
		return nil, false
	}
}
