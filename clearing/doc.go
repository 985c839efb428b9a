// Package clearing runs the Top Trading Cycle mechanism to completion.
//
// Clear repeatedly asks package cycle for a trading cycle, commits the trades it
// implies, removes the matched agents, prunes their items from every remaining
// preference list, and stops once no agent is left. The result is Pareto-efficient,
// individually rational and strategy-proof for the agents.
//
// Modes:
//
//   - Sequential (default): one cycle per iteration, the one cycle.Find selects.
//     Trade order is the order cycles are committed.
//   - WithBatchRounds: every disjoint cycle of the current graph is committed in the
//     same round (Shapley–Scarf rounds). The final allocation is identical; only the
//     order of emitted trades can differ.
//
// Errors:
//
//   - cycle.ErrNilState       the state pointer is nil
//   - cycle.ErrCycleNotFound  active agents remain but no cycle closes; Clear stops
//     and returns no trades
//   - observer errors         returned by WithOnCycle or WithOnTrade hooks
//
// Clear mutates the State it is given; pass state.Clone() to keep the original.
package clearing
