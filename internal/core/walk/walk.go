// Package walk reads directories into ordered listing batches.
//
// It owns the traversal decisions the formatter deliberately does not make:
// which directories to descend into, how deep, and in what order entries appear.
package walk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aki/eb/internal/core/fsmeta"
	"github.com/aki/eb/internal/core/listing"
	"github.com/aki/eb/internal/core/logger"
)

const (
	treeBranch = "├── "
	treeLast   = "└── "
	treePipe   = "│   "
	treeBlank  = "    "
)

// Options control filtering, ordering and depth
type Options struct {
	// All shows entries whose names start with "."
	All bool
	// OnlyDirs drops everything that is not a directory
	OnlyDirs bool
	// DirsFirst sorts directories ahead of files
	DirsFirst bool
	// Level limits how many directory levels are shown; negative is unlimited
	Level int
}

// VisitFunc receives each directory's sorted entries, hidden ones included
type VisitFunc func(dir string, entries []listing.Entry) error

// Walker reads directories according to Options
type Walker struct {
	opts Options
	log  logger.Logger
	stat func(path string) (listing.Entry, error)
}

// New creates a walker that reports skipped entries to the logger carried by ctx
func New(ctx context.Context, opts Options) *Walker {
	return &Walker{
		opts: opts,
		log:  logger.FromContext(ctx),
		stat: fsmeta.Stat,
	}
}

// Hidden returns the predicate that removes hidden entries, or nil when they are shown.
// The same predicate must be used for measuring and rendering a batch.
func (w *Walker) Hidden() func(listing.Entry) bool {
	if w.opts.All {
		return nil
	}
	return listing.IsHidden
}

// Stat reads a single path as an entry
func (w *Walker) Stat(path string) (listing.Entry, error) {
	return w.stat(path)
}

// ReadDir returns the entries of dir in display order. Entries that vanish or
// cannot be stat'ed between readdir and stat are skipped with a warning.
func (w *Walker) ReadDir(ctx context.Context, dir string) ([]listing.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]listing.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())
		e, err := w.stat(path)
		if err != nil {
			w.log.Warn("skipping entry", "path", path, "error", err)
			continue
		}
		if w.opts.OnlyDirs && !e.IsDir() {
			continue
		}
		entries = append(entries, e)
	}

	listing.Sort(entries, w.opts.DirsFirst)
	w.log.Debug("read directory", "path", dir, "entries", len(entries))
	return entries, nil
}

// Walk visits root and, when recurse is set, every visible subdirectory
// depth-first within the configured level. A failure to read root is returned
// directly; failures below it are logged, skipped and joined into the result.
func (w *Walker) Walk(ctx context.Context, root string, recurse bool, visit VisitFunc) error {
	entries, err := w.ReadDir(ctx, root)
	if err != nil {
		return err
	}
	if err := visit(root, entries); err != nil {
		return err
	}
	if !recurse {
		return nil
	}

	var errs []error
	w.descendAll(ctx, entries, 0, visit, &errs)
	return errors.Join(errs...)
}

func (w *Walker) descendAll(ctx context.Context, entries []listing.Entry, depth int, visit VisitFunc, errs *[]error) {
	if !w.descend(depth) {
		return
	}
	for _, e := range listing.Visible(entries, w.Hidden()) {
		if !e.IsDir() || e.Symlink {
			continue
		}
		children, err := w.ReadDir(ctx, e.Path)
		if err != nil {
			if ctx.Err() != nil {
				*errs = append(*errs, err)
				return
			}
			w.log.Warn("cannot read directory", "path", e.Path, "error", err)
			*errs = append(*errs, err)
			continue
		}
		if err := visit(e.Path, children); err != nil {
			*errs = append(*errs, err)
			return
		}
		w.descendAll(ctx, children, depth+1, visit, errs)
	}
}

// descend reports whether entries one level below depth should be read
func (w *Walker) descend(depth int) bool {
	return w.opts.Level < 0 || depth+1 < w.opts.Level
}

// Tree returns root followed by its visible descendants in depth-first order,
// with Display names carrying box-drawing prefixes. Hidden entries are already
// removed so that the last-child connectors are correct.
func (w *Walker) Tree(ctx context.Context, root string) ([]listing.Entry, error) {
	rootEntry, err := w.stat(root)
	if err != nil {
		return nil, err
	}
	rootEntry.Display = root

	out := []listing.Entry{rootEntry}
	if !rootEntry.IsDir() {
		return out, nil
	}

	var errs []error
	if err := w.tree(ctx, root, "", 0, &out, &errs); err != nil {
		return nil, err
	}
	return out, errors.Join(errs...)
}

func (w *Walker) tree(ctx context.Context, dir, prefix string, depth int, out *[]listing.Entry, errs *[]error) error {
	entries, err := w.ReadDir(ctx, dir)
	if err != nil {
		return err
	}
	entries = listing.Visible(entries, w.Hidden())

	for i, e := range entries {
		branch, indent := treeBranch, treePipe
		if i == len(entries)-1 {
			branch, indent = treeLast, treeBlank
		}
		e.Display = prefix + branch + e.Name
		*out = append(*out, e)

		if !e.IsDir() || e.Symlink || !w.descend(depth) {
			continue
		}
		if err := w.tree(ctx, e.Path, prefix+indent, depth+1, out, errs); err != nil {
			if ctx.Err() != nil {
				return err
			}
			w.log.Warn("cannot read directory", "path", e.Path, "error", err)
			*errs = append(*errs, err)
		}
	}
	return nil
}
