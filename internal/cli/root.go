package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tradecycle/internal/config"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags and the resolved configuration.
type RootOptions struct {
	Verbose    bool
	Format     string
	ConfigPath string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the ttc command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "ttc",
		Short:         "Top Trading Cycle clearing for one-item-per-agent markets",
		Long:          "ttc reallocates indivisible items among agents by repeatedly trading along cycles of top choices.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every step of the cycle search")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "JSON5 config file (default $"+config.EnvConfig+")")

	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewCycleCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// resolve loads the config file and environment, then lets explicit flags win.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(config.ResolvePath(o.ConfigPath))
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if !cmd.Flags().Changed("format") {
		o.Format = cfg.Format
	}
	o.Verbose = o.Verbose || cfg.Verbose
	if !slices.Contains(ValidFormats, o.Format) {
		return WrapExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats), nil)
	}
	o.cfg = cfg
	o.logger = newLogger(cmd.ErrOrStderr(), o.Verbose)

	return nil
}

// settings returns the resolved configuration, or defaults when the root hook did
// not run (commands built on their own in tests).
func (o *RootOptions) settings() *config.Config {
	if o.cfg == nil {
		o.cfg = config.Default()
	}
	return o.cfg
}

func (o *RootOptions) log(cmd *cobra.Command) *slog.Logger {
	if o.logger == nil {
		o.logger = newLogger(cmd.ErrOrStderr(), o.Verbose)
	}
	return o.logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	format := o.Format
	if format == "" {
		format = "text"
	}
	return &OutputFormatter{Format: format, Writer: cmd.OutOrStdout()}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
