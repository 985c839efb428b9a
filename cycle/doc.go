// Package cycle finds trading cycles in the top-choice graph of a market.State.
//
// What:
//
//   - Every active agent points at the owner of its most preferred remaining item.
//     Each node has out-degree exactly one, so the graph is functional: every walk
//     ends in a cycle, and cycles never share a node.
//   - Find returns one cycle, closed as [a0, a1, ..., ak, a0], where a(i+1) is the
//     current top choice of a(i). A self-preferring agent yields [a0, a0].
//   - FindAll returns every cycle of the current graph.
//
// Selection rule:
//
//   - Find returns the cycle through the smallest active id that lies on any cycle,
//     starting at that id. Both strategies honor it, so results are reproducible.
//
// Strategies:
//
//   - BoundedWalk (default): for each active origin in increasing order, follow top
//     choices until the walk returns to the origin or grows past ActiveCount()+1
//     nodes. No visited set. Time O(V²) worst case, memory O(V).
//   - Colored: one White/Gray/Black sweep over the graph; a pointer into a Gray node
//     closes a cycle, a pointer into a Black node joins an explored tail. Every cycle
//     is rotated to start at its smallest id. Time O(V), memory O(V).
//
// Observers:
//
//   - WithOnStep reports every pointer followed; WithOnAbandon reports every
//     BoundedWalk origin whose walk did not close. An observer error aborts the search.
//
// Errors:
//
//   - ErrNilState         state pointer is nil
//   - ErrCycleNotFound    active agents remain but no walk closes
//   - ErrUnknownStrategy  ParseStrategy got an unknown name
//
// An empty market is not an error: Find returns an empty cycle and FindAll no cycles.
package cycle
