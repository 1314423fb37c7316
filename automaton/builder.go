package automaton

import (
	"fmt"

	"github.com/coregx/corelite/ast"
	"github.com/coregx/corelite/internal/conv"
)

// BuildError reports a malformed tree handed to Build - in practice this
// only happens when a tree is constructed by hand rather than produced
// by the parser, since the parser's invariants (every Concatenation and
// Alternation has >= 2 children, every MultipleChar has >= 1 byte) rule
// it out otherwise.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string { return "automaton build error: " + e.Message }

// Builder constructs an Automaton from an ast.Node tree via a single
// post-order walk. It tracks the "last allocated state", used as the
// implicit entry for a node visited without an explicit one supplied by
// its parent - this is how a leaf visited at the top of the tree picks
// up State 0 as its entry without the caller threading it through.
type Builder struct {
	states []State
	last   StateID
	err    *BuildError
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) newState() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id})
	b.last = id
	return id
}

func (b *Builder) addTransition(from, to StateID, label ast.Node) {
	tr := Transition{From: from, To: to, Label: label}
	b.states[from].out = append(b.states[from].out, tr)
	b.states[to].in = append(b.states[to].in, tr)
}

func (b *Builder) fail(message string) {
	if b.err == nil {
		b.err = &BuildError{Message: message}
	}
}

// resolveEntry returns the supplied entry if non-nil, otherwise the
// builder's last allocated state.
func (b *Builder) resolveEntry(entry *StateID) StateID {
	if entry != nil {
		return *entry
	}
	return b.last
}

// resolveExit returns the supplied exit if non-nil, otherwise a freshly
// allocated state.
func (b *Builder) resolveExit(exit *StateID) StateID {
	if exit != nil {
		return *exit
	}
	return b.newState()
}

// visit compiles node into the graph between entry and exit (allocating
// either endpoint that is not supplied) and returns the endpoints
// actually used.
func (b *Builder) visit(node ast.Node, entry, exit *StateID) (StateID, StateID) {
	if b.err != nil {
		return 0, 0
	}

	switch n := node.(type) {
	case *ast.MultipleChar, *ast.Period, *ast.Epsilon:
		en := b.resolveEntry(entry)
		ex := b.resolveExit(exit)
		b.addTransition(en, ex, node)
		return en, ex

	case *ast.Concatenation:
		if len(n.Children) < 2 {
			b.fail(fmt.Sprintf("concatenation with %d children", len(n.Children)))
			return 0, 0
		}
		en := b.resolveEntry(entry)

		inter := make([]StateID, len(n.Children)-1)
		for i := range inter {
			inter[i] = b.newState()
		}

		cur := en
		b.visit(n.Children[0], &cur, &inter[0])
		for i := 1; i < len(inter); i++ {
			b.visit(n.Children[i], &inter[i-1], &inter[i])
		}

		ex := b.resolveExit(exit)
		last := inter[len(inter)-1]
		b.visit(n.Children[len(n.Children)-1], &last, &ex)
		return en, ex

	case *ast.Alternation:
		if len(n.Children) < 2 {
			b.fail(fmt.Sprintf("alternation with %d children", len(n.Children)))
			return 0, 0
		}
		en := b.resolveEntry(entry)
		ex := b.resolveExit(exit)
		for _, child := range n.Children {
			b.visit(child, &en, &ex)
		}
		return en, ex

	default:
		b.fail(fmt.Sprintf("unknown node type %T", n))
		return 0, 0
	}
}

// Build compiles tree into an Automaton. Returns a *BuildError if tree
// violates the ast invariants that the parser itself always upholds.
func Build(tree ast.Node) (*Automaton, error) {
	if tree == nil {
		return nil, &BuildError{Message: "nil tree"}
	}

	b := NewBuilder()
	b.newState() // entry_state = exit_state = last_state = fresh State 0

	entry, exit := b.visit(tree, nil, nil)
	if b.err != nil {
		return nil, b.err
	}

	maxLen := 1
	for i := range b.states {
		for _, t := range b.states[i].out {
			if l := t.Len(); l > maxLen {
				maxLen = l
			}
		}
	}

	return &Automaton{
		states:      b.states,
		entryState:  entry,
		exitState:   exit,
		maxTransLen: maxLen,
	}, nil
}
