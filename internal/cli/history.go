package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tradecycle/internal/ledger"
)

// LedgerOptions holds flags for commands that read the ledger.
type LedgerOptions struct {
	*RootOptions
	Ledger string
	Limit  int
}

func (o *LedgerOptions) open(cmd *cobra.Command) (*ledger.Store, context.Context, error) {
	path := o.Ledger
	if path == "" {
		path = o.settings().Ledger
	}
	if path == "" {
		return nil, nil, WrapExitError(ExitCommandError, "no ledger: pass --ledger or set ledger in the config", nil)
	}
	store, err := ledger.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open ledger", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return store, ctx, nil
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded clearing runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ctx, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(ctx, opts.Limit)
			if err != nil {
				return WrapExitError(ExitCommandError, "list runs", err)
			}
			if runs == nil {
				runs = []ledger.RunSummary{}
			}
			return opts.formatter(cmd).Result(runs, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tCREATED\tSTATUS\tAGENTS\tTRADES\tSTRATEGY\tSOURCE")
				for _, r := range runs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
						r.ID, r.CreatedAt.Format(time.RFC3339), r.Status, r.Agents, r.TradeCount,
						strategyLabel(r.Strategy, r.Batch), r.Source)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "SQLite ledger to read")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print one recorded run with its trades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ctx, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "show run", err)
			}
			return opts.formatter(cmd).Result(run, func(w io.Writer) error {
				fmt.Fprintf(w, "run %s\n", run.ID)
				fmt.Fprintf(w, "created:  %s\n", run.CreatedAt.Format(time.RFC3339))
				fmt.Fprintf(w, "source:   %s\n", run.Source)
				fmt.Fprintf(w, "strategy: %s\n", strategyLabel(run.Strategy, run.Batch))
				fmt.Fprintf(w, "agents:   %d\n", run.Agents)
				fmt.Fprintf(w, "status:   %s\n", run.Status)
				if run.Error != "" {
					fmt.Fprintf(w, "error:    %s\n", run.Error)
				}
				for _, t := range run.Trades {
					if _, err := fmt.Fprintf(w, "  %s\n", t); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "SQLite ledger to read")

	return cmd
}

func strategyLabel(strategy string, batch bool) string {
	if batch {
		return strategy + "+batch"
	}
	return strategy
}
