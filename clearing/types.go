package clearing

import (
	"fmt"

	"github.com/katalvlaran/tradecycle/cycle"
)

// Trade records that agent Giver ends up with the item originally owned by Receives.
// Giver's own item goes to whoever precedes it in the same cycle.
type Trade struct {
	Giver    int `json:"giver"`
	Receives int `json:"receives"`
}

// String renders the trade as "0 gets 1".
func (t Trade) String() string {
	return fmt.Sprintf("%d gets %d", t.Giver, t.Receives)
}

// Option configures optional behavior of Clear.
type Option func(*Options)

// Options holds the clearing configuration.
type Options struct {
	// Finder is passed through to cycle.Find / cycle.FindAll.
	Finder []cycle.Option

	// Batch commits every cycle of the current graph per round instead of one.
	Batch bool

	// OnCycle, if non-nil, is called with each cycle before it is committed.
	// Returning an error aborts clearing with that error.
	OnCycle func(c []int) error

	// OnTrade, if non-nil, is called for every trade as it is committed.
	// Returning an error aborts clearing with that error.
	OnTrade func(t Trade) error
}

// DefaultOptions returns sequential clearing with the default cycle search and no
// observers.
func DefaultOptions() Options {
	return Options{
		Finder:  nil,
		Batch:   false,
		OnCycle: nil,
		OnTrade: nil,
	}
}

// WithFinderOptions returns an Option that forwards opts to the cycle search.
func WithFinderOptions(opts ...cycle.Option) Option {
	return func(o *Options) {
		o.Finder = append(o.Finder, opts...)
	}
}

// WithBatchRounds returns an Option that commits all current cycles per round.
func WithBatchRounds() Option {
	return func(o *Options) {
		o.Batch = true
	}
}

// WithOnCycle returns an Option that installs fn as the cycle observer.
func WithOnCycle(fn func(c []int) error) Option {
	return func(o *Options) {
		o.OnCycle = fn
	}
}

// WithOnTrade returns an Option that installs fn as the trade observer.
func WithOnTrade(fn func(t Trade) error) Option {
	return func(o *Options) {
		o.OnTrade = fn
	}
}
