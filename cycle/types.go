package cycle

import (
	"errors"
	"fmt"
)

// Vertex colors used by the Colored strategy.
const (
	White = iota // White: not reached by any walk yet.
	Gray         // Gray: on the walk currently being followed.
	Black        // Black: fully explored; lies on a found cycle or feeds into one.
)

var (
	// ErrNilState is returned when a nil *market.State is passed to Find or FindAll.
	ErrNilState = errors.New("cycle: state is nil")

	// ErrCycleNotFound indicates that active agents remain but none of their walks
	// closes. On well-formed input this cannot happen; callers must treat it as fatal.
	ErrCycleNotFound = errors.New("cycle: no trading cycle found")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
	ErrUnknownStrategy = errors.New("cycle: unknown strategy")
)

// Strategy selects the search algorithm used by Find.
type Strategy int

const (
	// BoundedWalk restarts a length-capped walk from every active origin.
	BoundedWalk Strategy = iota

	// Colored sweeps the graph once with White/Gray/Black marking.
	Colored
)

// String returns the name accepted by ParseStrategy.
func (st Strategy) String() string {
	switch st {
	case BoundedWalk:
		return "bounded"
	case Colored:
		return "colored"
	default:
		return fmt.Sprintf("Strategy(%d)", int(st))
	}
}

// ParseStrategy maps "bounded" or "colored" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "bounded", "":
		return BoundedWalk, nil
	case "colored":
		return Colored, nil
	default:
		return BoundedWalk, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Option configures optional behavior of Find and FindAll.
type Option func(*Options)

// Options holds the search configuration.
type Options struct {
	// Strategy picks the algorithm used by Find. FindAll always sweeps with Colored.
	Strategy Strategy

	// OnStep, if non-nil, is called for every top-choice pointer followed, with the
	// id the current walk started from and the id it just moved to.
	// Returning an error aborts the search with that error.
	OnStep func(origin, to int) error

	// OnAbandon, if non-nil, is called when a BoundedWalk walk from origin gives up
	// without closing. Returning an error aborts the search with that error.
	OnAbandon func(origin int) error
}

// DefaultOptions returns Options with the BoundedWalk strategy and no observers.
func DefaultOptions() Options {
	return Options{
		Strategy:  BoundedWalk,
		OnStep:    nil,
		OnAbandon: nil,
	}
}

// WithStrategy returns an Option that selects the Find algorithm.
func WithStrategy(st Strategy) Option {
	return func(o *Options) {
		o.Strategy = st
	}
}

// WithOnStep returns an Option that installs fn as the walk-step observer.
func WithOnStep(fn func(origin, to int) error) Option {
	return func(o *Options) {
		o.OnStep = fn
	}
}

// WithOnAbandon returns an Option that installs fn as the abandoned-walk observer.
func WithOnAbandon(fn func(origin int) error) Option {
	return func(o *Options) {
		o.OnAbandon = fn
	}
}
