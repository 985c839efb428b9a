package market

import "fmt"

// Validate checks that prefs describes a well-formed market: at least one agent,
// every id within 0..N-1, no id ranked twice by the same agent, and every agent
// ranking its own item. Lists need not be complete; items an agent omits are items
// it would never accept.
//
// Every returned error wraps both ErrMalformed and one specific sentinel.
func Validate(prefs [][]int) error {
	n := len(prefs)
	if n == 0 {
		return fmt.Errorf("%w: %w", ErrMalformed, ErrNoAgents)
	}

	seen := make([]int, n) // seen[item] == agent+1 when agent already ranked item
	for agent, list := range prefs {
		ownRanked := false
		for pos, item := range list {
			if item < 0 || item >= n {
				return fmt.Errorf("%w: agent %d position %d: %w (%d not in 0..%d)",
					ErrMalformed, agent, pos, ErrItemOutOfRange, item, n-1)
			}
			if seen[item] == agent+1 {
				return fmt.Errorf("%w: agent %d position %d: %w (%d)",
					ErrMalformed, agent, pos, ErrDuplicateItem, item)
			}
			seen[item] = agent + 1
			if item == agent {
				ownRanked = true
			}
		}
		if !ownRanked {
			return fmt.Errorf("%w: agent %d: %w", ErrMalformed, agent, ErrMissingOwnItem)
		}
	}

	return nil
}
