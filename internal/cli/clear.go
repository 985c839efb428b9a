package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tradecycle/clearing"
	"github.com/katalvlaran/tradecycle/cycle"
	"github.com/katalvlaran/tradecycle/internal/ledger"
	"github.com/katalvlaran/tradecycle/prefio"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	searchFlags
	Batch  bool
	Ledger string
}

// ClearResult is the JSON payload of the clear command.
type ClearResult struct {
	Source   string           `json:"source"`
	Strategy string           `json:"strategy"`
	Batch    bool             `json:"batch"`
	Agents   int              `json:"agents"`
	Names    []string         `json:"names,omitempty"`
	Trades   []clearing.Trade `json:"trades"`
	RunID    string           `json:"run_id,omitempty"`
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear FILE",
		Short: "Run the market to completion and print every trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, opts, args[0])
		},
	}

	opts.searchFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.Batch, "batch", false, "commit every current cycle per round")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "SQLite ledger to record the run in")

	return cmd
}

func runClear(cmd *cobra.Command, opts *ClearOptions, path string) error {
	cfg := opts.settings()
	logger := opts.log(cmd)

	st, err := opts.strategy(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	batch := opts.Batch || (!cmd.Flags().Changed("batch") && cfg.Batch)
	ledgerPath := opts.Ledger
	if ledgerPath == "" {
		ledgerPath = cfg.Ledger
	}

	m, err := loadMarket(path)
	if err != nil {
		return err
	}

	run, clearErr := clearMarket(m, st, batch, logger, opts.Verbose)
	run.Source = path
	if ledgerPath != "" {
		if err = record(cmd, ledgerPath, run); err != nil {
			return err
		}
		logger.Info("run recorded", "id", run.ID, "ledger", ledgerPath, "status", run.Status)
	}

	if clearErr != nil {
		code := ExitCommandError
		if errors.Is(clearErr, cycle.ErrCycleNotFound) {
			code = ExitFailure
		}
		return WrapExitError(code, "clearing failed", clearErr)
	}

	result := ClearResult{
		Source:   path,
		Strategy: st.String(),
		Batch:    batch,
		Agents:   m.Len(),
		Names:    m.Names,
		Trades:   run.Trades,
		RunID:    run.ID,
	}

	return opts.formatter(cmd).Result(result, func(w io.Writer) error {
		return writeTrades(w, m, run.Trades)
	})
}

// clearMarket clears m and describes the outcome as a ledger run. Trades are
// collected as they are committed, so a failed run keeps the ones made before
// the failure.
func clearMarket(m *prefio.Market, st cycle.Strategy, batch bool, logger *slog.Logger, trace bool) (*ledger.Run, error) {
	run := &ledger.Run{
		Strategy: st.String(),
		Batch:    batch,
		Agents:   m.Len(),
		Status:   ledger.StatusCleared,
		Trades:   make([]clearing.Trade, 0, m.Len()),
	}

	clearOpts := []clearing.Option{
		clearing.WithFinderOptions(cycle.WithStrategy(st)),
		clearing.WithOnCycle(func(c []int) error {
			logger.Debug("cycle committed", "agents", strings.Join(labels(m, c), " -> "))
			return nil
		}),
		clearing.WithOnTrade(func(t clearing.Trade) error {
			run.Trades = append(run.Trades, t)
			return nil
		}),
	}
	if trace {
		clearOpts = append(clearOpts, clearing.WithFinderOptions(traceOptions(logger, m)...))
	}
	if batch {
		clearOpts = append(clearOpts, clearing.WithBatchRounds())
	}

	if _, err := clearing.Clear(m.State(), clearOpts...); err != nil {
		run.Status = ledger.StatusFailed
		run.Error = err.Error()
		return run, err
	}

	return run, nil
}

// writeTrades prints trades on one line: "| 0 gets 1 | 1 gets 0 |".
func writeTrades(w io.Writer, m *prefio.Market, trades []clearing.Trade) error {
	var b strings.Builder
	b.WriteString("|")
	for _, t := range trades {
		fmt.Fprintf(&b, " %s gets %s |", m.Label(t.Giver), m.Label(t.Receives))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func record(cmd *cobra.Command, path string, run *ledger.Run) error {
	store, err := ledger.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open ledger", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err = store.SaveRun(ctx, run); err != nil {
		return WrapExitError(ExitCommandError, "record run", err)
	}
	return nil
}
