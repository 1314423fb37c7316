// Package sim walks a compiled automaton over a text, using a
// tick-indexed circular buffer of per-state reachability cells instead
// of the thread-queue representation a Pike VM would use. This is the
// one place a transition consuming more than one byte (a MultipleChar
// chunk) needs special handling: its effect lands len(chunk) bytes (at
// most T-1) in the future relative to the byte being processed, not the very
// next one, so a flat "current generation / next generation" pair of
// queues (as in the teacher's nfa.PikeVM) is not enough - the buffer
// needs one row per possible look-ahead distance.
package sim

import (
	"errors"

	"github.com/coregx/corelite/automaton"
	"github.com/coregx/corelite/internal/sparse"
)

// sentinel marks a cell as unreached.
const sentinel = -1

// ErrOutOfMemory is returned when the cell array a Simulation needs
// would be too large to address safely. This is the only runtime error
// the engine exposes - an unmatched pattern is a successful "no match",
// never an error.
var ErrOutOfMemory = errors.New("corelite: out of memory")

// Simulation walks a single automaton over a single text. It is
// single-use: construct a fresh Simulation (via New) for every match
// call. Two goroutines may each hold their own Simulation over the same
// shared, read-only Automaton concurrently without coordination.
type Simulation struct {
	a       *automaton.Automaton
	text    []byte
	textEnd int

	currentPos  int
	currentTick int // rotation offset in [0, t)
	t           int // ring depth = MaxTransitionMatchLength + 1
	nStates     int

	// cells holds T*nStates ints; cell(state, tick) lives at
	// cells[rowOf(tick)*nStates + int(state)].
	cells []int

	// active[row] is the dense set of state indices whose cell in that
	// physical row is not the sentinel. Maintained incrementally so a
	// step only visits states known to be reachable, instead of
	// scanning all nStates states at every one of the t ticks - the
	// same role the teacher's sparse.SparseSet plays for PikeVM's
	// visited-state tracking, adapted here to per-row reachability
	// rather than per-generation thread dedup.
	active []*sparse.SparseSet
}

// New constructs a Simulation over text for a. The automaton is borrowed,
// not owned; it must outlive the Simulation.
func New(a *automaton.Automaton, text []byte) (*Simulation, error) {
	t := a.MaxTransitionMatchLength() + 1
	n := a.NumStates()

	if t <= 0 || n <= 0 || n > (1<<28)/t {
		// Guards the cell-array size computation against overflow;
		// this engine's patterns never approach this, but the status
		// taxonomy promises OutOfMemory as a reachable runtime error.
		return nil, ErrOutOfMemory
	}

	cells := make([]int, t*n)
	for i := range cells {
		cells[i] = sentinel
	}

	active := make([]*sparse.SparseSet, t)
	for i := range active {
		active[i] = sparse.NewSparseSet(uint32(n))
	}

	return &Simulation{
		a:       a,
		text:    text,
		textEnd: len(text),
		t:       t,
		nStates: n,
		cells:   cells,
		active:  active,
	}, nil
}

func (s *Simulation) rowOf(tick int) int {
	return (s.currentTick + tick) % s.t
}

func (s *Simulation) getCell(state automaton.StateID, tick int) int {
	return s.cells[s.rowOf(tick)*s.nStates+int(state)]
}

// setCellMin records that state is reachable at the given tick from
// origin, keeping the earliest (smallest) origin already recorded there.
func (s *Simulation) setCellMin(state automaton.StateID, tick int, origin int) {
	row := s.rowOf(tick)
	idx := row*s.nStates + int(state)
	cur := s.cells[idx]
	if cur == sentinel || origin < cur {
		s.cells[idx] = origin
		s.active[row].Insert(uint32(state))
	}
}

// invalidateRow clears every cell in the given physical row.
func (s *Simulation) invalidateRow(row int) {
	set := s.active[row]
	for _, st := range set.Values() {
		s.cells[row*s.nStates+int(st)] = sentinel
	}
	set.Clear()
}

// invalidateLaterOrigins sentinels every cell (in every row, i.e. every
// tick) whose recorded origin is strictly greater than start. Used once
// MatchFirst commits to its leftmost start: later-starting candidates
// can never beat it.
func (s *Simulation) invalidateLaterOrigins(start int) {
	for row := 0; row < s.t; row++ {
		set := s.active[row]
		stale := append([]uint32(nil), set.Values()...)
		for _, st := range stale {
			idx := row*s.nStates + int(st)
			if s.cells[idx] > start {
				s.cells[idx] = sentinel
				set.Remove(st)
			}
		}
	}
}

// step advances the simulation by exactly one byte of input: every state
// reachable at tick 0 tries each outgoing transition against the byte at
// currentPos, depositing its result len(label) ticks in the future
// keyed by the earliest origin seen. It then retires tick 0 and rotates.
func (s *Simulation) step() {
	row0 := s.rowOf(0)
	active := s.active[row0]

	for _, stVal := range active.Values() {
		st := automaton.StateID(stVal)
		origin := s.getCell(st, 0)
		state := s.a.State(st)
		for _, tr := range state.Out() {
			n := tr.Match(s.text, s.currentPos)
			if n <= 0 {
				// n < 0: the transition didn't match here.
				// n == 0 would be an Epsilon transition landing back
				// on tick 0 in the same step - the parser never
				// produces Epsilon, so this is not exercised; were it
				// ever introduced it would need an epsilon-closure
				// pass within the tick, which this stepper does not
				// perform.
				continue
			}
			s.setCellMin(tr.To, n, origin)
		}
	}

	s.invalidateRow(row0)
	s.currentTick = (s.currentTick + 1) % s.t
	s.currentPos++
}

// MatchFull reports whether the automaton accepts the entire text.
func (s *Simulation) MatchFull() bool {
	s.setCellMin(s.a.EntryState(), 0, 0)
	for s.currentPos < s.textEnd {
		s.step()
	}
	return s.getCell(s.a.ExitState(), 0) != sentinel
}

// MatchAnywhere returns the first occurrence found scanning left to
// right: the one whose end is reached first, with the earliest start
// reaching the exit at that end. A longer match that starts earlier but
// ends later is not preferred.
func (s *Simulation) MatchAnywhere() (start, end int, ok bool) {
	for {
		s.setCellMin(s.a.EntryState(), 0, s.currentPos)
		if origin := s.getCell(s.a.ExitState(), 0); origin != sentinel {
			return origin, s.currentPos, true
		}
		if s.currentPos >= s.textEnd {
			return 0, 0, false
		}
		s.step()
	}
}

// MatchFirst returns the earliest-starting, then longest, match: once a
// candidate start is found, the search keeps extending its end as long
// as the automaton stays alive, and stops seeding any new (necessarily
// later) start.
func (s *Simulation) MatchFirst() (start, end int, ok bool) {
	foundStart, foundEnd := -1, -1

	for {
		if foundStart == sentinel {
			s.setCellMin(s.a.EntryState(), 0, s.currentPos)
		}
		if origin := s.getCell(s.a.ExitState(), 0); origin != sentinel {
			if foundStart == sentinel || origin < foundStart {
				foundStart = origin
				foundEnd = s.currentPos
				s.invalidateLaterOrigins(foundStart)
			} else {
				foundEnd = s.currentPos
			}
		}
		if s.currentPos >= s.textEnd {
			break
		}
		s.step()
	}

	if foundStart == sentinel {
		return 0, 0, false
	}
	return foundStart, foundEnd, true
}
