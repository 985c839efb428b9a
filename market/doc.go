// Package market holds the preference state of a housing market: a fixed set of
// agents, each owning exactly one indivisible item, each ranking items from most to
// least preferred.
//
// What:
//
//   - State: the single piece of mutable shared state. Agent k owns item k, so agents
//     and items share the index space 0..N-1 and one id names both.
//   - Remove / Prune: the only mutation paths. Remove empties an agent's list (the
//     agent is matched); Prune deletes departed ids from every remaining list.
//   - Validate: well-formedness checks for raw input. The clearing core never calls it;
//     it is offered to callers that build a State from untrusted data.
//
// Invariants:
//
//   - An empty preference list marks an agent as matched. Matched agents are never
//     cycle-search origins and never pruned again.
//   - After Prune, no list holds a departed id, so every non-empty list head is
//     itself an active id.
//
// Concurrency:
//
//   - State is not safe for concurrent use. One goroutine owns it for the whole
//     clearing run.
//
// Errors:
//
//   - ErrMalformed        umbrella for every Validate failure
//   - ErrNoAgents         the preference matrix is empty
//   - ErrItemOutOfRange   an id outside 0..N-1
//   - ErrDuplicateItem    an id listed twice by the same agent
//   - ErrMissingOwnItem   an agent does not rank its own item
package market
