package market

// State maps every agent id to its current preference list, most preferred first.
// It exclusively owns all lists; callers only ever see copies.
type State struct {
	prefs  [][]int
	active int
}

// NewState returns a State holding a deep copy of prefs.
// prefs[i] is agent i's ranking of item ids. No validation is performed.
func NewState(prefs [][]int) *State {
	s := &State{prefs: make([][]int, len(prefs))}
	for i, list := range prefs {
		s.prefs[i] = append([]int(nil), list...)
		if len(list) > 0 {
			s.active++
		}
	}

	return s
}

// Len returns the number of agents the market started with.
func (s *State) Len() int { return len(s.prefs) }

// ActiveCount returns the number of agents with a non-empty preference list.
func (s *State) ActiveCount() int { return s.active }

// Empty reports whether every agent has been matched.
func (s *State) Empty() bool { return s.active == 0 }

// IsActive reports whether id is in range and still has a non-empty list.
func (s *State) IsActive(id int) bool {
	return id >= 0 && id < len(s.prefs) && len(s.prefs[id]) > 0
}

// Head returns the top choice of agent id.
// ok is false when id is out of range or already matched.
func (s *State) Head(id int) (head int, ok bool) {
	if !s.IsActive(id) {
		return -1, false
	}

	return s.prefs[id][0], true
}

// Preferences returns a copy of agent id's current list (nil when out of range).
func (s *State) Preferences(id int) []int {
	if id < 0 || id >= len(s.prefs) {
		return nil
	}

	return append([]int(nil), s.prefs[id]...)
}

// Snapshot returns a deep copy of every current list, indexed by agent id.
func (s *State) Snapshot() [][]int {
	out := make([][]int, len(s.prefs))
	for i, list := range s.prefs {
		out[i] = append([]int{}, list...)
	}

	return out
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	return NewState(s.prefs)
}

// Remove marks agent id as matched by emptying its list.
// Removing an inactive or out-of-range id is a no-op.
func (s *State) Remove(id int) {
	if !s.IsActive(id) {
		return
	}
	s.prefs[id] = nil
	s.active--
}

// Prune deletes every occurrence of ids from every non-empty list, preserving the
// relative order of the surviving entries. Matched agents are not touched.
//
// Complexity: O(total list length + len(ids)).
func (s *State) Prune(ids []int) {
	if len(ids) == 0 {
		return
	}
	gone := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}

	for i, list := range s.prefs {
		if len(list) == 0 {
			continue
		}
		kept := list[:0] // filter in place; the backing array is owned by s
		for _, item := range list {
			if _, drop := gone[item]; !drop {
				kept = append(kept, item)
			}
		}
		s.prefs[i] = kept
		if len(kept) == 0 {
			// the agent lost every acceptable item; it leaves the market unmatched
			s.prefs[i] = nil
			s.active--
		}
	}
}
