// Package commands defines the eb command line
package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/eb/internal/app"
	"github.com/aki/eb/internal/cli/ui"
	"github.com/aki/eb/internal/core/config"
	"github.com/aki/eb/internal/core/logger"
)

// rootOptions carries flag values and the state resolved before any command runs
type rootOptions struct {
	listFlags
	printFlags

	format    string
	color     string
	logLevel  string
	logFormat string

	cfg    *config.Config
	cfgErr error
	log    logger.Logger
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	o := &rootOptions{log: logger.Nop()}

	cmd := &cobra.Command{
		Use:   "eb [flags] [paths...]",
		Short: "List directories and print files",
		Long: `eb lists directories and prints files.

Directories are shown as a name grid or, with --long, as aligned metadata
columns. Files are printed with optional line numbers, wrapping and syntax
highlighting. With no paths the current directory is listed.`,
		Example: `  # Grid of the current directory
  eb

  # Long view with a header and binary size prefixes
  eb -lHb

  # Print lines 10 to 20 of a file with numbers
  eb -N -r 10:20 main.go`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, o, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.format, "format", "pretty", "Output format (pretty, json)")
	pf.StringVar(&o.color, "color", "auto", "When to color output (auto, always, never)")
	RegisterLoggerFlags(cmd, o)

	o.listFlags.register(cmd.Flags())
	o.printFlags.register(cmd.Flags())

	cmd.AddCommand(newConfigCmd(o))
	cmd.AddCommand(newMCPCmd(o))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads the configuration and applies the global output settings.
// A configuration that fails to load is remembered rather than fatal here so
// that "config init --force" can still replace it.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	o.cfg, o.cfgErr = loadConfig(cmd.Context())
	if o.cfgErr != nil {
		o.cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	stringDefault(flags, "format", &o.format, o.cfg.Format)
	stringDefault(flags, "color", &o.color, o.cfg.Color)
	stringDefault(flags, "log-level", &o.logLevel, o.cfg.Log.Level)
	stringDefault(flags, "log-format", &o.logFormat, o.cfg.Log.Format)

	mode, err := ui.ParseColorMode(o.color)
	if err != nil {
		return &InvalidOptionError{Flag: "color", Value: o.color, Err: err}
	}
	ui.SetColorMode(mode)

	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return &InvalidOptionError{Flag: "format", Value: o.format, Err: err}
	}
	if err := ui.SetGlobalFormatter(format); err != nil {
		return err
	}

	o.log, err = CreateLogger(o.logLevel, o.logFormat)
	if err != nil {
		return err
	}
	if o.cfgErr != nil {
		o.log.Debug("configuration not loaded", "error", o.cfgErr)
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), o.log))
	return nil
}

// config returns the loaded configuration or the error that prevented loading it
func (o *rootOptions) config() (*config.Config, error) {
	if o.cfgErr != nil {
		return nil, o.cfgErr
	}
	return o.cfg, nil
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	mgr, err := config.NewDefaultManager()
	if err != nil {
		return nil, err
	}
	return mgr.Load(ctx)
}

func runRoot(cmd *cobra.Command, o *rootOptions, args []string) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	o.applyConfig(cmd.Flags(), cfg)

	opts, err := o.appOptions()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger.FromContext(ctx).Debug("running", "paths", args, "long", opts.Long, "width", opts.Width)
	return app.New(ctx, opts, ui.Stdout).Run(ctx, args)
}

// Execute runs the root command and reports any failure on stderr
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportError(err)
		return err
	}
	return nil
}

// reportError prints each joined error on its own line
func reportError(err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			_ = ui.GlobalFormatter.OutputError(e)
		}
		return
	}
	_ = ui.GlobalFormatter.OutputError(err)
}
