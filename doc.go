// Package tradecycle clears housing markets with the Top Trading Cycle mechanism.
//
// Every agent owns one indivisible item and ranks all items. TTC repeatedly finds
// a cycle of agents each pointing at the owner of its favorite remaining item,
// trades along it, removes those agents and their items, and repeats until the
// market is empty. The outcome is Pareto-efficient and strategy-proof.
//
// Under the hood the module is organized as:
//
//	market/     preference State, the only mutable data, plus input validation
//	cycle/      cycle search in the top-choice graph (bounded walk or colored sweep)
//	clearing/   the clearing loop: find, commit, prune, repeat
//	prefio/     YAML / JSON5 preference files with optional agent names
//	cmd/ttc     command-line front end with an optional SQLite run ledger
//
// Quick example:
//
//	s := market.NewState([][]int{{1, 2, 0}, {2, 0, 1}, {0, 1, 2}})
//	trades, err := clearing.Clear(s)
//	// trades: 0 gets 1, 1 gets 2, 2 gets 0
package tradecycle
