package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tradecycle/cycle"
	"github.com/katalvlaran/tradecycle/prefio"
)

// searchFlags are shared by commands that run the cycle search.
type searchFlags struct {
	Strategy string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Strategy, "strategy", "bounded", "cycle search strategy (bounded|colored)")
}

// strategy picks the flag when given explicitly, the configured value otherwise.
func (f *searchFlags) strategy(cmd *cobra.Command, opts *RootOptions) (cycle.Strategy, error) {
	name := f.Strategy
	if !cmd.Flags().Changed("strategy") {
		name = opts.settings().Strategy
	}
	st, err := cycle.ParseStrategy(name)
	if err != nil {
		return st, WrapExitError(ExitCommandError, "invalid --strategy", err)
	}
	return st, nil
}

func loadMarket(path string) (*prefio.Market, error) {
	m, err := prefio.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load preferences", err)
	}
	return m, nil
}

// traceOptions returns cycle observers that log the walk at debug level.
func traceOptions(logger *slog.Logger, m *prefio.Market) []cycle.Option {
	return []cycle.Option{
		cycle.WithOnStep(func(origin, to int) error {
			logger.Debug("walk step", "origin", m.Label(origin), "to", m.Label(to))
			return nil
		}),
		cycle.WithOnAbandon(func(origin int) error {
			logger.Debug("walk abandoned", "origin", m.Label(origin))
			return nil
		}),
	}
}

func labels(m *prefio.Market, ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = m.Label(id)
	}
	return out
}
