package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/eb/internal/cli/ui"
	"github.com/aki/eb/internal/mcp"
)

func newMCPCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Start a Model Context Protocol server on stdio.

The server offers list_directory and read_file tools that render the same
text as the command line, using the configuration file for defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd.Context(), o)
		},
	}
}

func runMCP(ctx context.Context, o *rootOptions) error {
	cfg, err := o.config()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// stdout carries the protocol, so messages go to stderr
	fmt.Fprintln(ui.Stderr, "Starting MCP server with stdio transport")

	server := mcp.NewServer(ctx, cfg, Version)
	if err := server.Start(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(ui.Stderr, "MCP server stopped")
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
