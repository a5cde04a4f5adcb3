// Package git reads working tree status for the long view's git column
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	git "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no repository contains the path
var ErrNotRepository = errors.New("not a git repository")

// Status is a snapshot of one working tree's changes
type Status struct {
	root    string
	changes map[string]code
}

type code struct {
	staged   byte
	unstaged byte
}

func (c code) String() string {
	return string([]byte{c.staged, c.unstaged})
}

// Open reads the status of the repository containing path
func Open(path string) (*Status, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree root: %w", err)
	}

	s := &Status{
		root:    root,
		changes: make(map[string]code, len(st)),
	}
	for file, fs := range st {
		c := code{
			staged:   stagedChar(fs.Staging),
			unstaged: unstagedChar(fs.Worktree),
		}
		if c.staged == '-' && c.unstaged == '-' {
			continue
		}
		s.changes[file] = c
	}
	return s, nil
}

// Root returns the absolute path of the working tree
func (s *Status) Root() string {
	return s.root
}

// Code returns the two-character code for path: the staged change then the
// unstaged one, "-" meaning none. A directory reports the most significant
// change found beneath it.
func (s *Status) Code(path string, dir bool) string {
	rel, ok := s.relative(path)
	if !ok {
		return "--"
	}
	if !dir {
		if c, found := s.changes[rel]; found {
			return c.String()
		}
		return "--"
	}

	agg := code{staged: '-', unstaged: '-'}
	prefix := rel + "/"
	if rel == "." {
		prefix = ""
	}
	for file, c := range s.changes {
		if !strings.HasPrefix(file, prefix) {
			continue
		}
		agg.staged = worse(agg.staged, c.staged)
		agg.unstaged = worse(agg.unstaged, c.unstaged)
	}
	return agg.String()
}

func (s *Status) relative(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func stagedChar(c git.StatusCode) byte {
	switch c {
	case git.Added:
		return 'N'
	case git.Modified:
		return 'M'
	case git.Deleted:
		return 'D'
	case git.Renamed:
		return 'R'
	case git.Copied:
		return 'C'
	case git.UpdatedButUnmerged:
		return 'U'
	default:
		return '-'
	}
}

func unstagedChar(c git.StatusCode) byte {
	switch c {
	case git.Untracked:
		return 'N'
	case git.Modified:
		return 'M'
	case git.Deleted:
		return 'D'
	case git.Renamed:
		return 'R'
	case git.Copied:
		return 'C'
	case git.UpdatedButUnmerged:
		return 'U'
	default:
		return '-'
	}
}

// significance orders change codes for directory aggregation
var significance = map[byte]int{
	'-': 0,
	'C': 1,
	'R': 2,
	'N': 3,
	'M': 4,
	'D': 5,
	'U': 6,
}

func worse(a, b byte) byte {
	if significance[b] > significance[a] {
		return b
	}
	return a
}

// Repos caches one Status per working tree so a recursive listing reads
// each repository once
type Repos struct {
	mu     sync.Mutex
	byRoot []*Status
	misses map[string]bool
}

// NewRepos creates an empty cache
func NewRepos() *Repos {
	return &Repos{misses: make(map[string]bool)}
}

// For returns the status of the repository containing dir, or ErrNotRepository
func (r *Repos) For(dir string) (*Status, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.byRoot {
		if _, ok := s.relative(abs); ok {
			return s, nil
		}
	}
	if r.misses[abs] {
		return nil, ErrNotRepository
	}

	s, err := Open(abs)
	if err != nil {
		if errors.Is(err, ErrNotRepository) {
			r.misses[abs] = true
		}
		return nil, err
	}
	r.byRoot = append(r.byRoot, s)
	return s, nil
}
