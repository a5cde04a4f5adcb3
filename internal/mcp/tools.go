package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aki/eb/internal/app"
	"github.com/aki/eb/internal/core/listing"
	"github.com/aki/eb/internal/core/logger"
	"github.com/aki/eb/internal/core/printer"
	"github.com/aki/eb/internal/core/walk"
)

func (s *Server) handleListDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("invalid or missing path argument")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, pathError(path, err)
	}
	if !info.IsDir() {
		return nil, NewErrorWithSuggestions(
			fmt.Sprintf("not a directory: %s", path),
			"read_file - Print the file instead",
		)
	}

	flag := func(name string, fallback bool) bool {
		if v, ok := args[name].(bool); ok {
			return v
		}
		return fallback
	}

	list := s.cfg.List
	sel := listing.DefaultSelection()
	sel.Header = flag("header", list.Header)
	sel.Binary = flag("binary", list.Binary)
	sel.Bytes = flag("bytes", list.Bytes)
	sel.Inode = flag("inode", false)
	sel.Links = flag("links", false)
	sel.Group = flag("group", false)
	sel.Blocks = flag("blocks", false)
	sel.Git = flag("git", list.Git)

	opts := app.Options{
		Long:      flag("long", list.Long),
		OneLine:   true,
		Tree:      flag("tree", false),
		Selection: sel,
		Numeric:   list.Numeric,
		Walk: walk.Options{
			All:       flag("all", list.All),
			DirsFirst: list.DirsFirst,
			Level:     -1,
		},
	}

	s.log.Debug("tool call", "tool", "list_directory", "path", path)
	text, err := s.render(ctx, opts, path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}
	return textResult(text), nil
}

func (s *Server) handleReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("invalid or missing path argument")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, pathError(path, err)
	}
	if info.IsDir() {
		return nil, NewErrorWithSuggestions(
			fmt.Sprintf("is a directory: %s", path),
			"list_directory - List the directory instead",
		)
	}

	rng := printer.AllLines
	if r, ok := args["range"].(string); ok {
		rng, err = printer.ParseRange(r)
		if err != nil {
			return nil, err
		}
	}

	numbers := s.cfg.Print.Numbers
	if v, ok := args["numbers"].(bool); ok {
		numbers = v
	}

	opts := app.Options{
		Print: printer.Options{
			Numbers: numbers,
			Wrap:    printer.WrapNever,
		},
		Range: rng,
	}

	s.log.Debug("tool call", "tool", "read_file", "path", path)
	text, err := s.render(ctx, opts, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return textResult(text), nil
}

// render runs one path through the app without color, paging or a terminal width
func (s *Server) render(ctx context.Context, opts app.Options, path string) (string, error) {
	var buf bytes.Buffer
	if err := app.New(logger.WithContext(ctx, s.log), opts, &buf).Run(ctx, []string{path}); err != nil {
		s.log.Error("render failed", "path", path, "error", err)
		return "", err
	}
	return buf.String(), nil
}

func pathError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return PathNotFoundError(path)
	}
	return fmt.Errorf("cannot access %s: %w", path, err)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}
