package market

import "errors"

var (
	// ErrMalformed is wrapped by every error returned from Validate.
	ErrMalformed = errors.New("market: malformed preferences")

	// ErrNoAgents indicates a preference matrix without any agent.
	ErrNoAgents = errors.New("market: no agents")

	// ErrItemOutOfRange indicates an item id outside 0..N-1.
	ErrItemOutOfRange = errors.New("market: item id out of range")

	// ErrDuplicateItem indicates an agent ranking the same item twice (a tie).
	ErrDuplicateItem = errors.New("market: duplicate item in preference list")

	// ErrMissingOwnItem indicates an agent whose list lacks its own item. Such a list
	// could be pruned to empty while the agent is still unmatched.
	ErrMissingOwnItem = errors.New("market: own item missing from preference list")
)
