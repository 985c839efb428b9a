package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ValidateResult is the JSON payload of the validate command.
type ValidateResult struct {
	Source string `json:"source"`
	Agents int    `json:"agents"`
	Named  bool   `json:"named"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a preference file describes a well-formed market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMarket(args[0])
			if err != nil {
				return err
			}
			result := ValidateResult{Source: args[0], Agents: m.Len(), Named: m.Names != nil}
			return opts.formatter(cmd).Result(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: ok, %d agents\n", args[0], m.Len())
				return err
			})
		},
	}
}
