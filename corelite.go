// Package corelite implements a small regular-expression engine: literal
// bytes, '.' wildcard, '(...)' grouping, and '|' alternation, compiled to
// an automaton and matched with a tick-indexed circular-buffer
// simulation rather than backtracking.
//
// There is no repetition (*, +, ?, {}), no character classes, no
// anchors, no capturing groups, and no case-insensitivity - this
// mirrors the teacher's own v1.0 limitations section, trimmed further.
//
// Basic usage:
//
//	re, err := corelite.New(`cat|dog`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	start, end, ok := re.MatchAnywhere([]byte("I have a dog"))
package corelite

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/corelite/ast"
	"github.com/coregx/corelite/automaton"
	"github.com/coregx/corelite/literal"
	"github.com/coregx/corelite/parser"
	"github.com/coregx/corelite/sim"
)

// Status mirrors parser.Status under the package's own name, so callers
// never need to import the parser package directly.
type Status = parser.Status

// ParseError mirrors parser.ParseError for the same reason.
type ParseError = parser.ParseError

// Re-exported status constants, per the engine's status taxonomy.
const (
	StatusSuccess                       = parser.StatusSuccess
	StatusOutOfMemory                   = parser.StatusOutOfMemory
	StatusParserError                   = parser.StatusParserError
	StatusParserUnsupported             = parser.StatusParserUnsupported
	StatusParserUnexpected              = parser.StatusParserUnexpected
	StatusParserMissingLeftParenthesis  = parser.StatusParserMissingLeftParenthesis
	StatusParserMissingRightParenthesis = parser.StatusParserMissingRightParenthesis
)

// ErrOutOfMemory is the only runtime (non-compile-time) error this
// engine returns.
var ErrOutOfMemory = sim.ErrOutOfMemory

// Options controls parsing and compilation behavior.
type Options struct {
	// PosixPeriod makes '.' match every byte, including '\n' and '\r'.
	// Default false.
	PosixPeriod bool

	// ParserOpt collapses trivial Concatenation/Alternation nodes while
	// parsing, keeping the tree shallow. Default true.
	ParserOpt bool

	// PrintTree dumps the parsed ast.Node tree to stderr during Compile.
	// Debug-only; never affects match results.
	PrintTree bool

	// PrintAutomaton dumps the compiled automaton to stderr during
	// Compile. Debug-only; never affects match results.
	PrintAutomaton bool

	// TraceMatching logs one line (pattern and text) to stderr for each
	// simulation a match call constructs. Debug-only; never affects match
	// results.
	TraceMatching bool
}

// DefaultOptions returns the default options: PosixPeriod off, ParserOpt
// on, all diagnostic flags off.
func DefaultOptions() Options {
	return Options{ParserOpt: true}
}

// Range is a non-overlapping match location, [Start, End) into the text
// passed to MatchAll.
type Range struct {
	Start int
	End   int
}

// Pattern is a compiled pattern. It is immutable after Compile returns
// and safe to share read-only across goroutines; each match call
// constructs its own scratch simulation state.
type Pattern struct {
	tree    ast.Node
	auto    *automaton.Automaton
	opts    Options
	pattern string

	// ahoPrefilter fast-rejects MatchAnywhere/MatchFirst/MatchAll when
	// the tree is a pure alternation of literals (literal.Extract). Nil
	// whenever the tree isn't pure, in which case the simulation alone
	// decides every match.
	ahoPrefilter *ahocorasick.Automaton
}

// New compiles pattern under DefaultOptions.
func New(pattern string) (*Pattern, error) {
	return Compile(pattern, DefaultOptions())
}

// Compile compiles pattern under opts.
func Compile(pattern string, opts Options) (*Pattern, error) {
	popts := parser.Options{PosixPeriod: opts.PosixPeriod, ParserOpt: opts.ParserOpt}

	tree, perr := parser.Parse(pattern, popts)
	if perr != nil {
		return nil, perr
	}
	if opts.PrintTree {
		debugPrint(tree.String())
	}

	a, err := automaton.Build(tree)
	if err != nil {
		return nil, err
	}
	if opts.PrintAutomaton {
		debugPrint(a.String())
	}

	p := &Pattern{tree: tree, auto: a, opts: opts, pattern: pattern}

	if lits, pure := literal.Extract(tree); pure {
		builder := ahocorasick.NewBuilder()
		for _, l := range lits {
			builder.AddPattern(l)
		}
		if auto, err := builder.Build(); err == nil {
			p.ahoPrefilter = auto
		}
	}

	return p, nil
}

// MustCompile compiles pattern under opts and panics if it fails.
func MustCompile(pattern string, opts Options) *Pattern {
	p, err := Compile(pattern, opts)
	if err != nil {
		panic("corelite: Compile(" + pattern + "): " + err.Error())
	}
	return p
}

// newSimulation constructs a fresh scratch Simulation over text.
func (p *Pattern) newSimulation(text []byte) (*sim.Simulation, error) {
	s, err := sim.New(p.auto, text)
	if err != nil {
		return nil, err
	}
	if p.opts.TraceMatching {
		debugPrint("corelite: matching " + p.pattern + " against " + string(text))
	}
	return s, nil
}

// MatchFull reports whether the pattern matches the entirety of text.
func (p *Pattern) MatchFull(text []byte) bool {
	s, err := p.newSimulation(text)
	if err != nil {
		return false
	}
	return s.MatchFull()
}

// MatchAnywhere reports whether the pattern matches anywhere in text,
// returning the first occurrence found.
func (p *Pattern) MatchAnywhere(text []byte) (start, end int, ok bool) {
	if p.ahoPrefilter != nil && !p.ahoPrefilter.IsMatch(text) {
		return 0, 0, false
	}
	s, err := p.newSimulation(text)
	if err != nil {
		return 0, 0, false
	}
	return s.MatchAnywhere()
}

// MatchFirst returns the leftmost, then longest, match in text.
func (p *Pattern) MatchFirst(text []byte) (start, end int, ok bool) {
	if p.ahoPrefilter != nil && !p.ahoPrefilter.IsMatch(text) {
		return 0, 0, false
	}
	s, err := p.newSimulation(text)
	if err != nil {
		return 0, 0, false
	}
	return s.MatchFirst()
}

// MatchAll returns every non-overlapping match in text, left to right:
// MatchFirst against the tail of text starting at the previous match's
// end.
func (p *Pattern) MatchAll(text []byte) []Range {
	if p.ahoPrefilter != nil && !p.ahoPrefilter.IsMatch(text) {
		return nil
	}

	var ranges []Range
	pos := 0
	for pos <= len(text) {
		s, err := p.newSimulation(text[pos:])
		if err != nil {
			break
		}
		start, end, ok := s.MatchFirst()
		if !ok {
			break
		}

		ranges = append(ranges, Range{Start: pos + start, End: pos + end})

		next := pos + end
		if next <= pos+start {
			// Every leaf transition this grammar produces consumes at
			// least one byte, so end > start always holds; kept as a
			// defensive floor against an infinite loop if that
			// invariant is ever broken upstream.
			next = pos + start + 1
		}
		pos = next
	}

	return ranges
}
