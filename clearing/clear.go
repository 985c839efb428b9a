package clearing

import (
	"fmt"

	"github.com/katalvlaran/tradecycle/cycle"
	"github.com/katalvlaran/tradecycle/market"
)

// Clear runs TTC on s until every agent is matched and returns the trades in
// commit order. s is left empty on success.
//
// On any error Clear returns nil trades and s keeps the agents still unmatched.
// Use WithOnTrade to observe trades committed before the failure.
//
// An agent whose list runs out after pruning leaves the market unmatched and is
// absent from the trades; Clear still reports success. market.Validate rejects
// lists that omit the agent's own item, which is the only way this can happen.
//
// Complexity: at most N iterations, each one cycle search plus O(total list length)
// for pruning.
func Clear(s *market.State, opts ...Option) ([]Trade, error) {
	if s == nil {
		return nil, cycle.ErrNilState
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	trades := make([]Trade, 0, s.ActiveCount())
	for !s.Empty() {
		// 1) Find the cycle(s) to commit this iteration
		cycles, err := next(s, &o)
		if err != nil {
			return nil, fmt.Errorf("clearing: %d agents unmatched: %w", s.ActiveCount(), err)
		}

		// 2) Commit: each agent receives its successor's item and leaves at once
		for _, c := range cycles {
			if o.OnCycle != nil {
				if err = o.OnCycle(c); err != nil {
					return nil, fmt.Errorf("clearing: OnCycle(%v): %w", c, err)
				}
			}
			for i := 0; i+1 < len(c); i++ {
				t := Trade{Giver: c[i], Receives: c[i+1]}
				trades = append(trades, t)
				s.Remove(c[i])
				if o.OnTrade != nil {
					if err = o.OnTrade(t); err != nil {
						return nil, fmt.Errorf("clearing: OnTrade(%v): %w", t, err)
					}
				}
			}
		}

		// 3) Prune every committed id from the lists of those still trading
		for _, c := range cycles {
			s.Prune(c)
		}
	}

	return trades, nil
}

// next returns the cycles to commit in this iteration: one in sequential mode,
// all of them in batch mode. It never returns an empty slice without an error.
func next(s *market.State, o *Options) ([][]int, error) {
	if o.Batch {
		return cycle.FindAll(s, o.Finder...)
	}
	c, err := cycle.Find(s, o.Finder...)
	if err != nil {
		return nil, err
	}
	if len(c) == 0 {
		// Find only returns an empty cycle for an exhausted market
		return nil, cycle.ErrCycleNotFound
	}

	return [][]int{c}, nil
}

// Allocation maps every agent 0..n-1 to the item it received in trades,
// or -1 if trades do not mention it.
func Allocation(trades []Trade, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for _, t := range trades {
		if t.Giver >= 0 && t.Giver < n {
			out[t.Giver] = t.Receives
		}
	}

	return out
}
