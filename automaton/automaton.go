// Package automaton converts an ast.Node regexp tree into a sparse
// transition graph: a set of dense-indexed states connected by
// transitions labeled with leaf ast.Node values (MultipleChar, Period,
// Epsilon). Concatenation and Alternation are structural - they wire
// states together during the build but are never themselves transition
// labels.
//
// This plays the role the teacher's nfa package plays (nfa.State,
// nfa.Builder), simplified to this grammar's needs: there is no split
// state, no capture, no byte-range transition - a transition's predicate
// comes straight from the ast.Node it references, and may consume more
// than one byte in a single step (a MultipleChar chunk), which the
// teacher's Thompson NFA never does for a single transition.
package automaton

import (
	"fmt"

	"github.com/coregx/corelite/ast"
)

// StateID identifies a state by its dense insertion-order index.
type StateID uint32

// State is a node in the automaton graph: just its own id plus the
// outgoing and incoming transitions touching it. States carry no
// predicate of their own - that lives on the Transition.
type State struct {
	id  StateID
	out []Transition
	in  []Transition
}

// ID returns the state's dense index.
func (s *State) ID() StateID { return s.id }

// Out returns the state's outgoing transitions.
func (s *State) Out() []Transition { return s.out }

// In returns the state's incoming transitions.
func (s *State) In() []Transition { return s.in }

// Transition is an edge from From to To, labeled by Label, a leaf
// ast.Node (MultipleChar, Period, or Epsilon) whose match predicate
// decides how many bytes (if any) the edge consumes at a given text
// position.
type Transition struct {
	From  StateID
	To    StateID
	Label ast.Node
}

// Len returns the number of bytes this transition's label consumes on a
// successful match: 1 for Period, 0 for Epsilon, N for an N-byte
// MultipleChar.
func (t Transition) Len() int {
	switch n := t.Label.(type) {
	case *ast.MultipleChar:
		return len(n.Bytes)
	case *ast.Period:
		return 1
	case *ast.Epsilon:
		return 0
	default:
		return 0
	}
}

// Match reports whether the transition's label matches the text at pos,
// returning the number of bytes consumed on success. n is -1 on failure.
func (t Transition) Match(text []byte, pos int) (n int) {
	switch label := t.Label.(type) {
	case *ast.MultipleChar:
		end := pos + len(label.Bytes)
		if end > len(text) {
			return -1
		}
		for i, want := range label.Bytes {
			if text[pos+i] != want {
				return -1
			}
		}
		return len(label.Bytes)

	case *ast.Period:
		if pos >= len(text) {
			return -1
		}
		b := text[pos]
		if !label.Posix && (b == '\n' || b == '\r') {
			return -1
		}
		return 1

	case *ast.Epsilon:
		return 0

	default:
		return -1
	}
}

// Automaton is a directed graph of States connected by Transitions,
// built from a single ast.Node tree. It borrows its transition labels
// from that tree and must not outlive it.
type Automaton struct {
	states      []State
	entryState  StateID
	exitState   StateID
	maxTransLen int
}

// EntryState returns the distinguished start state (index 0 by
// convention).
func (a *Automaton) EntryState() StateID { return a.entryState }

// ExitState returns the distinguished accepting state.
func (a *Automaton) ExitState() StateID { return a.exitState }

// NumStates returns the number of states in the automaton.
func (a *Automaton) NumStates() int { return len(a.states) }

// State returns the state with the given id.
func (a *Automaton) State(id StateID) *State { return &a.states[id] }

// MaxTransitionMatchLength returns the maximum number of bytes any
// single transition in the automaton consumes. This sizes the
// simulation's circular tick buffer (T = this + 1).
func (a *Automaton) MaxTransitionMatchLength() int { return a.maxTransLen }

// String returns a debug dump of every state and its outgoing
// transitions. Not part of the match contract.
func (a *Automaton) String() string {
	s := fmt.Sprintf("Automaton{states=%d, entry=%d, exit=%d, maxLen=%d}\n",
		len(a.states), a.entryState, a.exitState, a.maxTransLen)
	for i := range a.states {
		st := &a.states[i]
		s += fmt.Sprintf("  %d:", st.id)
		for _, t := range st.out {
			s += fmt.Sprintf(" --%s--> %d", t.Label, t.To)
		}
		s += "\n"
	}
	return s
}
