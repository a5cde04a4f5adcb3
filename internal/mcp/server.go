// Package mcp exposes eb's listing and printing over the Model Context Protocol
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aki/eb/internal/core/config"
	"github.com/aki/eb/internal/core/logger"
)

// Server implements the MCP server using mcp-go
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
	log       logger.Logger
}

// NewServer creates a server whose tool defaults come from cfg and whose
// diagnostics go to the logger carried by ctx
func NewServer(ctx context.Context, cfg *config.Config, version string) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Server{
		mcpServer: server.NewMCPServer(
			"eb",
			version,
			server.WithToolCapabilities(false),
			server.WithLogging(),
		),
		cfg: cfg,
		log: logger.FromContext(ctx).With("component", "mcp"),
	}
	s.registerTools()
	return s
}

// registerTools registers the listing and printing tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_directory",
		mcp.WithDescription("List a directory, optionally in the long metadata view"),
		mcp.WithString("path",
			mcp.Description("Directory to list"),
			mcp.Required(),
		),
		mcp.WithBoolean("long", mcp.Description("Show the metadata columns")),
		mcp.WithBoolean("all", mcp.Description("Include entries whose names start with a dot")),
		mcp.WithBoolean("header", mcp.Description("Add a title row to the long view")),
		mcp.WithBoolean("binary", mcp.Description("Use 1024-based size prefixes")),
		mcp.WithBoolean("bytes", mcp.Description("Show exact byte counts")),
		mcp.WithBoolean("inode", mcp.Description("Show inode numbers")),
		mcp.WithBoolean("links", mcp.Description("Show hard link counts")),
		mcp.WithBoolean("group", mcp.Description("Show the owning group")),
		mcp.WithBoolean("blocks", mcp.Description("Show allocated blocks")),
		mcp.WithBoolean("git", mcp.Description("Show each entry's git status")),
		mcp.WithBoolean("tree", mcp.Description("Recurse and draw a tree")),
	), s.handleListDirectory)

	s.mcpServer.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Print a file's lines, optionally numbered"),
		mcp.WithString("path",
			mcp.Description("File to print"),
			mcp.Required(),
		),
		mcp.WithBoolean("numbers", mcp.Description("Prefix lines with their numbers")),
		mcp.WithString("range", mcp.Description("Line range N:M, 1-based and inclusive")),
	), s.handleReadFile)
}

// Start serves over stdio until the client disconnects
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting MCP server", "transport", "stdio")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}
