// Package parser compiles a pattern string into an ast.Node tree.
//
// The algorithm is a single left-to-right pass over the pattern bytes
// using an explicit stack of tagged stack elements (either a finished
// ast.Node or one of two transient markers, LeftParenthesis and
// AlternateBar) plus one auxiliary slice of indices recording where open
// parentheses sit in that stack. This mirrors the source's stack-based
// design but keeps markers and nodes in a single element type that is
// constructor-private outside this package, so a marker can never leak
// into a finished ast.Node - the type system enforces the spec's
// "markers never appear in a finalized tree" invariant.
package parser

import (
	"fmt"

	"github.com/coregx/corelite/ast"
)

// Options controls parsing behavior.
type Options struct {
	// PosixPeriod makes '.' match every byte, including '\n' and '\r'.
	// Default false.
	PosixPeriod bool

	// ParserOpt collapses 0- or 1-child Concatenation/Alternation nodes
	// as the tree is built, keeping it shallow. Default true.
	ParserOpt bool
}

// DefaultOptions returns the default parsing options: PosixPeriod off,
// ParserOpt on.
func DefaultOptions() Options {
	return Options{ParserOpt: true}
}

// escapable is the set of bytes '\' may precede.
const escapable = `$()*+.[]^{|}\`

func isEscapable(b byte) bool {
	for i := 0; i < len(escapable); i++ {
		if escapable[i] == b {
			return true
		}
	}
	return false
}

func isUnsupported(b byte) bool {
	switch b {
	case '{', '*', '+', '?', '^', '$', '[':
		return true
	default:
		return false
	}
}

type elemKind byte

const (
	elemNode elemKind = iota
	elemLeftParen
	elemAltBar
)

// elem is one slot of the parser's working stack: either a finished node
// or a transient marker. Only elemNode entries ever reach ast.Node values
// the caller can see.
type elem struct {
	kind   elemKind
	node   ast.Node
	offset int // byte offset where a marker was pushed; unused for elemNode
}

type parser struct {
	pattern string
	pos     int
	opts    Options
	stack   []elem
	parens  []int // indices into stack of elemLeftParen entries, outermost first
}

// Parse compiles pattern into a regexp tree under opts.
// Returns a *ParseError carrying a Status, a byte offset, and a message
// on failure.
func Parse(pattern string, opts Options) (ast.Node, *ParseError) {
	if len(pattern) == 0 {
		return nil, newError(StatusParserError, 0, "empty pattern")
	}

	p := &parser{pattern: pattern, opts: opts}
	return p.run()
}

func (p *parser) run() (ast.Node, *ParseError) {
	for p.pos < len(p.pattern) {
		b := p.pattern[p.pos]
		switch {
		case b == '(':
			p.stack = append(p.stack, elem{kind: elemLeftParen, offset: p.pos})
			p.parens = append(p.parens, len(p.stack)-1)
			p.pos++

		case b == ')':
			if len(p.parens) == 0 {
				return nil, newError(StatusParserMissingLeftParenthesis, p.pos, "unmatched ')'")
			}
			openIdx := p.parens[len(p.parens)-1]
			p.parens = p.parens[:len(p.parens)-1]
			p.collapseConcatRun()
			p.collapseAlternation(openIdx)
			p.pos++

		case b == '|':
			p.collapseConcatRun()
			p.stack = append(p.stack, elem{kind: elemAltBar, offset: p.pos})
			p.pos++

		case b == '\\':
			escOffset := p.pos
			p.pos++
			if p.pos >= len(p.pattern) {
				return nil, newError(StatusParserUnexpected, escOffset, "trailing '\\'")
			}
			c := p.pattern[p.pos]
			if !isEscapable(c) {
				return nil, newError(StatusParserUnexpected, p.pos, fmt.Sprintf("unexpected escaped character %q", c))
			}
			p.pushLiteralByte(c)
			p.pos++

		case b == '.':
			p.stack = append(p.stack, elem{kind: elemNode, node: &ast.Period{Posix: p.opts.PosixPeriod}})
			p.pos++

		case isUnsupported(b):
			return nil, newError(StatusParserUnsupported, p.pos, fmt.Sprintf("unsupported operator %q", b))

		default:
			p.pushLiteralByte(b)
			p.pos++
		}
	}

	if len(p.parens) > 0 {
		return nil, newError(StatusParserMissingRightParenthesis, p.stack[p.parens[0]].offset, "missing ')'")
	}

	p.collapseConcatRun()
	p.collapseAlternation(-1)

	if len(p.stack) == 0 {
		return nil, newError(StatusParserError, 0, "pattern reduces to an empty match")
	}
	return p.stack[0].node, nil
}

// pushLiteralByte appends b to the MultipleChar at the top of the stack if
// one is there and not yet full, otherwise starts a new MultipleChar.
func (p *parser) pushLiteralByte(b byte) {
	if len(p.stack) > 0 {
		top := &p.stack[len(p.stack)-1]
		if top.kind == elemNode {
			if lit, ok := top.node.(*ast.MultipleChar); ok && !lit.Full() {
				lit.Bytes = append(lit.Bytes, b)
				return
			}
		}
	}
	p.stack = append(p.stack, elem{kind: elemNode, node: &ast.MultipleChar{Bytes: []byte{b}}})
}

// lastMarkerIndex returns the stack index of the most recently pushed
// marker (either kind), or -1 if the stack holds no marker - i.e. the
// current concatenation run spans the whole stack.
func (p *parser) lastMarkerIndex() int {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].kind != elemNode {
			return i
		}
	}
	return -1
}

// collapseConcatRun folds every node above the nearest marker into a
// single Concatenation (or its sole child, or nothing, under ParserOpt)
// and replaces the run with that one value.
func (p *parser) collapseConcatRun() {
	from := p.lastMarkerIndex() + 1
	var nodes []ast.Node
	for i := from; i < len(p.stack); i++ {
		nodes = append(nodes, p.stack[i].node)
	}
	p.stack = p.stack[:from]

	folded := foldConcatenation(nodes, p.opts.ParserOpt)
	if folded != nil {
		p.stack = append(p.stack, elem{kind: elemNode, node: folded})
	}
}

// collapseAlternation folds the alternation branches sitting above
// openIdx (which, after collapseConcatRun, is an interleaving of
// AlternateBar markers and single folded nodes) into one Alternation,
// and - if openIdx is a real LeftParenthesis slot (>= 0) - pops that
// marker too.
func (p *parser) collapseAlternation(openIdx int) {
	var branches []ast.Node
	for i := openIdx + 1; i < len(p.stack); i++ {
		if p.stack[i].kind == elemNode {
			branches = append(branches, p.stack[i].node)
		}
	}

	if openIdx >= 0 {
		p.stack = p.stack[:openIdx]
	} else {
		p.stack = p.stack[:0]
	}

	folded := foldAlternation(branches, p.opts.ParserOpt)
	if folded != nil {
		p.stack = append(p.stack, elem{kind: elemNode, node: folded})
	}
}

func foldConcatenation(nodes []ast.Node, opt bool) ast.Node {
	if opt {
		switch len(nodes) {
		case 0:
			return nil
		case 1:
			return nodes[0]
		}
	}
	return &ast.Concatenation{Children: nodes}
}

func foldAlternation(nodes []ast.Node, opt bool) ast.Node {
	if opt {
		switch len(nodes) {
		case 0:
			return nil
		case 1:
			return nodes[0]
		}
	}
	return &ast.Alternation{Children: nodes}
}
