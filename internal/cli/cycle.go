package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tradecycle/cycle"
)

// CycleOptions holds flags for the cycle command.
type CycleOptions struct {
	*RootOptions
	searchFlags
	All bool
}

// CycleResult is the JSON payload of the cycle command.
type CycleResult struct {
	Source string     `json:"source"`
	Cycles [][]int    `json:"cycles"`
	Names  [][]string `json:"names,omitempty"`
}

// NewCycleCommand creates the cycle command.
func NewCycleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CycleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cycle FILE",
		Short: "Print the first trading cycle of a market (or all of them)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycle(cmd, opts, args[0])
		},
	}

	opts.searchFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.All, "all", false, "print every disjoint cycle instead of the first")

	return cmd
}

func runCycle(cmd *cobra.Command, opts *CycleOptions, path string) error {
	st, err := opts.strategy(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	m, err := loadMarket(path)
	if err != nil {
		return err
	}

	findOpts := []cycle.Option{cycle.WithStrategy(st)}
	if opts.Verbose {
		findOpts = append(findOpts, traceOptions(opts.log(cmd), m)...)
	}

	var cycles [][]int
	if opts.All {
		cycles, err = cycle.FindAll(m.State(), findOpts...)
	} else {
		var c []int
		c, err = cycle.Find(m.State(), findOpts...)
		if len(c) > 0 {
			cycles = [][]int{c}
		}
	}
	if err != nil {
		return WrapExitError(ExitFailure, "cycle search failed", err)
	}

	result := CycleResult{Source: path, Cycles: cycles}
	if m.Names != nil {
		for _, c := range cycles {
			result.Names = append(result.Names, labels(m, c))
		}
	}

	return opts.formatter(cmd).Result(result, func(w io.Writer) error {
		for _, c := range cycles {
			if _, err := fmt.Fprintln(w, strings.Join(labels(m, c), " -> ")); err != nil {
				return err
			}
		}
		return nil
	})
}
