package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/eb/internal/cli/ui"
	"github.com/aki/eb/internal/core/config"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage eb configuration",
		Long: `Manage the eb configuration file.

Values in the file are defaults: any flag given on the command line wins.`,
		Example: `  # View current configuration
  eb config show

  # Write the default configuration
  eb config init

  # Print where the configuration lives
  eb config path`,
	}

	cmd.AddCommand(newConfigShowCmd(o))
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	var showFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the current configuration",
		Long:  "Display the effective eb configuration, defaults included",
		Example: `  # Show configuration in YAML format (default)
  eb config show

  # Show configuration in JSON format
  eb config show --format json

  # Show configuration as a table
  eb config show --format pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return runConfigShow(cfg, showFormat)
		},
	}

	cmd.Flags().StringVar(&showFormat, "format", "yaml", "Output format (yaml, json, pretty)")
	return cmd
}

func runConfigShow(cfg *config.Config, format string) error {
	switch format {
	case "json":
		return ui.NewJSONFormatter().Output(cfg)
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		ui.Output(string(data))
		return nil
	case "pretty":
		showConfigPretty(cfg)
		return nil
	default:
		return &InvalidOptionError{Flag: "format", Value: format, Err: errors.New("must be yaml, json or pretty")}
	}
}

func showConfigPretty(cfg *config.Config) {
	tbl := ui.NewTable("KEY", "VALUE")
	for _, row := range [][2]string{
		{"version", cfg.Version},
		{"color", cfg.Color},
		{"format", cfg.Format},
		{"list.long", strconv.FormatBool(cfg.List.Long)},
		{"list.across", strconv.FormatBool(cfg.List.Across)},
		{"list.all", strconv.FormatBool(cfg.List.All)},
		{"list.dirsFirst", strconv.FormatBool(cfg.List.DirsFirst)},
		{"list.header", strconv.FormatBool(cfg.List.Header)},
		{"list.binary", strconv.FormatBool(cfg.List.Binary)},
		{"list.bytes", strconv.FormatBool(cfg.List.Bytes)},
		{"list.numeric", strconv.FormatBool(cfg.List.Numeric)},
		{"list.git", strconv.FormatBool(cfg.List.Git)},
		{"print.numbers", strconv.FormatBool(cfg.Print.Numbers)},
		{"print.plain", strconv.FormatBool(cfg.Print.Plain)},
		{"print.wrap", cfg.Print.Wrap},
		{"print.paging", cfg.Print.Paging},
		{"print.theme", cfg.Print.Theme},
		{"log.level", cfg.Log.Level},
		{"log.format", cfg.Log.Format},
	} {
		tbl.AddRow(row[0], row[1])
	}
	tbl.Print()
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewDefaultManager()
			if err != nil {
				return err
			}
			if force && mgr.Exists() {
				ui.Warning("Overwriting existing configuration at %s", mgr.Path())
			}
			if err := mgr.Init(cmd.Context(), force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}
			ui.OutputLine("Created configuration at %s", mgr.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			ui.OutputLine("%s", path)
			return nil
		},
	}
}
