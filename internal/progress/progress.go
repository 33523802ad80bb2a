// Package progress tracks which exercises pass during one session.
package progress

// State is the per-session completion record. A done flag never goes back
// to false, and the current index is always in range while Total > 0.
type State struct {
	done    []bool
	current int
}

// New builds a state from the startup probe results. The current exercise
// is the first one not yet done, or 0 when everything passes.
func New(done []bool) *State {
	s := &State{done: append([]bool(nil), done...)}
	if i, ok := s.FirstIncomplete(); ok {
		s.current = i
	}
	return s
}

// Total is the number of exercises.
func (s *State) Total() int { return len(s.done) }

// Current returns the index of the selected exercise.
func (s *State) Current() int { return s.current }

// Done reports whether exercise i has passed this session.
func (s *State) Done(i int) bool {
	if i < 0 || i >= len(s.done) {
		return false
	}
	return s.done[i]
}

// Flags returns a copy of the done flags.
func (s *State) Flags() []bool {
	return append([]bool(nil), s.done...)
}

// Count returns how many exercises have passed.
func (s *State) Count() int {
	n := 0
	for _, d := range s.done {
		if d {
			n++
		}
	}
	return n
}

// AllDone reports whether every exercise has passed.
func (s *State) AllDone() bool {
	return s.Count() == len(s.done)
}

// MarkCurrent records that the current exercise passed.
func (s *State) MarkCurrent() {
	if len(s.done) > 0 {
		s.done[s.current] = true
	}
}

// Next moves to the following exercise, wrapping to the first.
func (s *State) Next() {
	if n := len(s.done); n > 0 {
		s.current = (s.current + 1) % n
	}
}

// Previous moves to the preceding exercise, wrapping to the last.
func (s *State) Previous() {
	if n := len(s.done); n > 0 {
		s.current = (s.current - 1 + n) % n
	}
}

// Select makes i the current exercise. Out of range indexes are ignored.
func (s *State) Select(i int) {
	if i >= 0 && i < len(s.done) {
		s.current = i
	}
}

// FirstIncomplete returns the lowest index that has not passed.
func (s *State) FirstIncomplete() (int, bool) {
	for i, d := range s.done {
		if !d {
			return i, true
		}
	}
	return 0, false
}

// NextIncomplete searches forward from the exercise after the current one,
// wrapping around, and returns the first index that has not passed. The
// current exercise itself is checked last.
func (s *State) NextIncomplete() (int, bool) {
	n := len(s.done)
	for step := 1; step <= n; step++ {
		i := (s.current + step) % n
		if !s.done[i] {
			return i, true
		}
	}
	return 0, false
}
