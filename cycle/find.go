package cycle

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/tradecycle/market"
)

// Find locates one trading cycle in the top-choice graph of s.
// Returns (cycle, nil) with cycle closed as [a0, ..., ak, a0];
// returns (nil, nil) when s has no active agents;
// returns (nil, ErrCycleNotFound) when active agents remain but no walk closes.
// Find never mutates s.
func Find(s *market.State, opts ...Option) ([]int, error) {
	if s == nil {
		return nil, ErrNilState
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 1) Exhausted market: the normal termination signal, not a failure
	if s.Empty() {
		return nil, nil
	}

	// 2) Dispatch on strategy
	switch o.Strategy {
	case Colored:
		cycles, err := sweep(s, &o)
		if err != nil {
			return nil, fmt.Errorf("cycle: Find: %w", err)
		}
		if len(cycles) == 0 {
			return nil, fmt.Errorf("cycle: Find: %d active agents: %w", s.ActiveCount(), ErrCycleNotFound)
		}

		return cycles[0], nil
	default:
		c, err := boundedWalk(s, &o)
		if err != nil {
			return nil, fmt.Errorf("cycle: Find: %w", err)
		}
		if c == nil {
			return nil, fmt.Errorf("cycle: Find: %d active agents: %w", s.ActiveCount(), ErrCycleNotFound)
		}

		return c, nil
	}
}

// FindAll returns every cycle of the top-choice graph of s, each rotated to start at
// its smallest id and closed, ordered by that id. Cycles are pairwise disjoint.
// Returns (nil, nil) for an empty market and ErrCycleNotFound when active agents
// remain but none lies on a cycle. Options.Strategy is ignored.
func FindAll(s *market.State, opts ...Option) ([][]int, error) {
	if s == nil {
		return nil, ErrNilState
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if s.Empty() {
		return nil, nil
	}

	cycles, err := sweep(s, &o)
	if err != nil {
		return nil, fmt.Errorf("cycle: FindAll: %w", err)
	}
	if len(cycles) == 0 {
		return nil, fmt.Errorf("cycle: FindAll: %d active agents: %w", s.ActiveCount(), ErrCycleNotFound)
	}

	return cycles, nil
}

// boundedWalk scans origins in increasing id order and returns the first walk that
// closes back on its origin, or nil if none does.
//
// A cycle has at most ActiveCount() members, so a closing walk holds at most
// ActiveCount()+1 entries; anything longer has entered a cycle that excludes origin.
func boundedWalk(s *market.State, o *Options) ([]int, error) {
	limit := s.ActiveCount() + 1

	for origin := 0; origin < s.Len(); origin++ {
		if !s.IsActive(origin) {
			continue
		}

		path := []int{origin}
		cursor := origin
		closed := false
		for {
			next, ok := s.Head(cursor)
			if !ok {
				break // pointer into a matched or unknown id; this walk cannot return
			}
			if o.OnStep != nil {
				if err := o.OnStep(origin, next); err != nil {
					return nil, err
				}
			}
			path = append(path, next)
			if next == origin {
				closed = true
				break
			}
			if len(path) > limit {
				break
			}
			cursor = next
		}

		if closed {
			return path, nil
		}
		if o.OnAbandon != nil {
			if err := o.OnAbandon(origin); err != nil {
				return nil, err
			}
		}
	}

	return nil, nil
}

// sweep colors the top-choice graph once and returns every cycle, canonicalized
// and sorted by first id.
func sweep(s *market.State, o *Options) ([][]int, error) {
	n := s.Len()
	color := make([]int, n)   // White/Gray/Black per id
	path := make([]int, 0, n) // ids of the walk in progress, all Gray
	var cycles [][]int        // collected cycles

	for origin := 0; origin < n; origin++ {
		if !s.IsActive(origin) || color[origin] != White {
			continue
		}

		path = path[:0]
		cursor := origin
		for {
			color[cursor] = Gray
			path = append(path, cursor)

			next, _ := s.Head(cursor) // cursor is always active here
			if o.OnStep != nil {
				if err := o.OnStep(origin, next); err != nil {
					return nil, err
				}
			}
			if !s.IsActive(next) {
				break // dangling pointer ends the walk without a cycle
			}
			if color[next] == Gray {
				// back-pointer into the current walk: path[idx:] is a cycle
				cycles = append(cycles, canonical(path[IndexOf(path, next):]))
				break
			}
			if color[next] == Black {
				break // joins a tail explored by an earlier walk
			}
			cursor = next
		}

		for _, v := range path {
			color[v] = Black
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})

	return cycles, nil
}

// canonical rotates an open cycle to its minimal rotation and closes it by
// repeating the first id at the end.
func canonical(open []int) []int {
	rot := MinimalRotation(open)

	return append(rot, rot[0])
}
