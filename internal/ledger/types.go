package ledger

import (
	"errors"
	"time"

	"github.com/katalvlaran/tradecycle/clearing"
)

var (
	// ErrRunNotFound is returned by GetRun for an unknown id.
	ErrRunNotFound = errors.New("ledger: run not found")

	// ErrInvalidStatus is returned by SaveRun for a status other than StatusCleared
	// or StatusFailed.
	ErrInvalidStatus = errors.New("ledger: invalid run status")
)

// Status is the outcome of a clearing run.
type Status string

const (
	StatusCleared Status = "cleared"
	StatusFailed  Status = "failed"
)

// Run is one clearing invocation and the trades it produced.
type Run struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Source    string           `json:"source"`
	Strategy  string           `json:"strategy"`
	Batch     bool             `json:"batch"`
	Agents    int              `json:"agents"`
	Status    Status           `json:"status"`
	Error     string           `json:"error,omitempty"`
	Trades    []clearing.Trade `json:"trades"`
}

// RunSummary is a Run without its trades, as returned by ListRuns.
type RunSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Source     string    `json:"source"`
	Strategy   string    `json:"strategy"`
	Batch      bool      `json:"batch"`
	Agents     int       `json:"agents"`
	Status     Status    `json:"status"`
	TradeCount int       `json:"trade_count"`
}
