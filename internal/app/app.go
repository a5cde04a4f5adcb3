// Package app dispatches eb's path arguments to the listing and printing cores
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aki/eb/internal/core/fsmeta"
	"github.com/aki/eb/internal/core/git"
	"github.com/aki/eb/internal/core/grid"
	"github.com/aki/eb/internal/core/listing"
	"github.com/aki/eb/internal/core/logger"
	"github.com/aki/eb/internal/core/printer"
	"github.com/aki/eb/internal/core/walk"
)

// Style decorates rendered text. Nil functions leave text plain.
type Style struct {
	// Name renders an entry name, tree prefix included
	Name func(listing.Entry) string
	// Header renders the long view's title row
	Header func(string) string
	// Path renders the "path:" line introducing an argument or subdirectory
	Path func(string) string
}

// Options is everything one invocation decided from flags and configuration
type Options struct {
	// Layout
	Long     bool
	Grid     bool
	OneLine  bool
	Across   bool
	Recurse  bool
	Tree     bool
	ListDirs bool

	Selection listing.Selection
	Numeric   bool
	Walk      walk.Options

	// Printing
	Print    printer.Options
	Range    printer.Range
	Paging   printer.Paging
	FileName string

	// Environment
	Width    int
	Height   int
	Terminal bool
	Location *time.Location
	JSON     bool
	Style    Style

	// Emit receives structured records in JSON mode; nil encodes them to the output
	Emit func(v any) error
}

// App renders path arguments to an output writer
type App struct {
	opts   Options
	out    io.Writer
	log    logger.Logger
	walker *walk.Walker
	owners listing.OwnerResolver
	repos  *git.Repos
}

// New creates an app writing to out. Diagnostics go to the logger carried by ctx.
func New(ctx context.Context, opts Options, out io.Writer) *App {
	if opts.Range == (printer.Range{}) {
		opts.Range = printer.AllLines
	}
	if opts.Paging == "" {
		opts.Paging = printer.PagingNever
	}
	opts.Print.Width = opts.Width

	a := &App{
		opts:   opts,
		out:    out,
		log:    logger.FromContext(ctx),
		walker: walk.New(ctx, opts.Walk),
		owners: listing.NumericOwners{},
	}
	if !opts.Numeric {
		a.owners = fsmeta.NewOwners()
	}
	if opts.Selection.Git {
		a.repos = git.NewRepos()
	}
	if a.opts.Emit == nil {
		a.opts.Emit = func(v any) error {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}
	}
	return a
}

// Run handles each path in turn: directories are listed and files printed.
// With several paths each gets a "path:" header. Failures are collected and
// returned together after every path has been tried.
func (a *App) Run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if a.opts.ListDirs {
		return a.listArguments(ctx, paths)
	}

	var errs []error
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(paths) > 1 && !a.opts.JSON {
			if i > 0 {
				a.writeLines([]string{""})
			}
			a.writeLines([]string{a.pathLine(path)})
		}
		if err := a.runPath(ctx, path); err != nil {
			a.log.Debug("path failed", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) runPath(ctx context.Context, path string) error {
	entry, err := a.walker.Stat(path)
	if err != nil {
		return err
	}
	switch entry.Kind {
	case listing.KindDir:
		return a.List(ctx, path)
	case listing.KindFile:
		return a.Print(ctx, path)
	default:
		entry.Display = path
		return a.listBatch(path, []listing.Entry{entry}, nil)
	}
}

// List renders the directory at dir, recursing or drawing a tree when asked
func (a *App) List(ctx context.Context, dir string) error {
	if a.opts.Tree {
		entries, err := a.walker.Tree(ctx, dir)
		if entries == nil {
			return err
		}
		if a.opts.JSON {
			if emitErr := a.emitListing(dir, entries, nil); emitErr != nil {
				return emitErr
			}
			return err
		}
		// Tree entries are already filtered and must keep their connectors
		rows, renderErr := a.render(dir, entries, nil, true)
		if renderErr != nil {
			return renderErr
		}
		a.writeLines(rows)
		return err
	}

	first := true
	return a.walker.Walk(ctx, dir, a.opts.Recurse, func(d string, entries []listing.Entry) error {
		if !first && !a.opts.JSON {
			a.writeLines([]string{"", a.pathLine(d)})
		}
		first = false
		return a.listBatch(d, entries, a.walker.Hidden())
	})
}

// listArguments renders every argument as an entry of a single batch
func (a *App) listArguments(ctx context.Context, paths []string) error {
	var (
		entries []listing.Entry
		errs    []error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := a.walker.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		e.Display = path
		entries = append(entries, e)
	}
	if len(entries) > 0 {
		if err := a.listBatch(".", entries, nil); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) listBatch(dir string, entries []listing.Entry, hidden func(listing.Entry) bool) error {
	if a.opts.JSON {
		return a.emitListing(dir, entries, hidden)
	}
	rows, err := a.render(dir, entries, hidden, a.opts.OneLine)
	if err != nil {
		return err
	}
	a.writeLines(rows)
	return nil
}

func (a *App) emitListing(dir string, entries []listing.Entry, hidden func(listing.Entry) bool) error {
	gs := a.gitStatus(dir)
	visible := listing.Visible(entries, hidden)
	rec := ListingRecord{Path: dir, Entries: make([]EntryRecord, 0, len(visible))}
	for _, e := range visible {
		rec.Entries = append(rec.Entries, newEntryRecord(e, a.owners, gs))
	}
	return a.opts.Emit(rec)
}

// render turns one batch into output rows using the long or short view
func (a *App) render(dir string, entries []listing.Entry, hidden func(listing.Entry) bool, oneLine bool) ([]string, error) {
	if a.opts.Long {
		return a.renderLong(dir, entries, hidden, oneLine)
	}

	visible := listing.Visible(entries, hidden)
	names := make([]string, len(visible))
	for i, e := range visible {
		names[i] = a.name(e)
	}
	if oneLine {
		return names, nil
	}
	return a.pack(names, grid.NameMargin, ""), nil
}

func (a *App) renderLong(dir string, entries []listing.Entry, hidden func(listing.Entry) bool, oneLine bool) ([]string, error) {
	opts := listing.Options{
		Location: a.opts.Location,
		Owners:   a.owners,
		Hidden:   hidden,
		Name:     a.opts.Style.Name,
	}
	if gs := a.gitStatus(dir); gs != nil {
		opts.Git = gs
	}

	batch, err := listing.NewFormatter(a.opts.Selection, opts).Format(entries)
	if err != nil {
		return nil, err
	}

	header := batch.Header
	if header != "" && a.opts.Style.Header != nil {
		header = a.opts.Style.Header(header)
	}
	if a.opts.Grid && !oneLine {
		return a.pack(batch.Lines, grid.LongMargin, header), nil
	}
	if header == "" {
		return batch.Lines, nil
	}
	return append([]string{header}, batch.Lines...), nil
}

// pack lays cells out in a grid as wide as the terminal, one per line when
// the width is unknown or nothing fits. A non-empty header titles each column.
func (a *App) pack(cells []string, margin int, header string) []string {
	dir := grid.TopToBottom
	if a.opts.Across {
		dir = grid.LeftToRight
	}
	opts := grid.Options{Direction: dir, Margin: margin}
	if header != "" {
		opts.Header = grid.NewCell(header)
	}
	g := grid.New(opts)
	g.Add(grid.Cells(cells)...)

	out := strings.TrimSuffix(g.Render(a.opts.Width), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// gitStatus returns the status for dir's repository, or nil when the column
// is off or dir is not inside a repository
func (a *App) gitStatus(dir string) listing.GitStatus {
	if a.repos == nil {
		return nil
	}
	s, err := a.repos.For(dir)
	if err != nil {
		if !errors.Is(err, git.ErrNotRepository) {
			a.log.Warn("cannot read git status", "path", dir, "error", err)
		}
		return nil
	}
	return s
}

// Print renders the file at path with the configured printer options
func (a *App) Print(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	lines, err := printer.ReadLines(f, a.opts.Range)
	if err != nil {
		return err
	}
	if a.opts.JSON {
		if lines == nil {
			lines = []printer.Line{}
		}
		return a.opts.Emit(FileRecord{Path: path, Lines: lines})
	}

	popts := a.opts.Print
	popts.Name = a.opts.FileName
	if popts.Name == "" {
		popts.Name = filepath.Base(path)
	}
	rows, err := printer.New(popts).Render(lines)
	if err != nil {
		return err
	}

	if printer.ShouldPage(a.opts.Paging, a.opts.Terminal, len(rows), a.opts.Height) {
		content := strings.Join(rows, "\n")
		if len(rows) > 0 {
			content += "\n"
		}
		return printer.Page(ctx, content, a.out)
	}
	a.writeLines(rows)
	return nil
}

func (a *App) name(e listing.Entry) string {
	if a.opts.Style.Name != nil {
		return a.opts.Style.Name(e)
	}
	return e.DisplayName()
}

func (a *App) pathLine(path string) string {
	if a.opts.Style.Path != nil {
		return a.opts.Style.Path(path)
	}
	return path + ":"
}

func (a *App) writeLines(lines []string) {
	for _, line := range lines {
		if _, err := fmt.Fprintln(a.out, line); err != nil {
			a.log.Debug("write failed", "error", err)
			return
		}
	}
}
