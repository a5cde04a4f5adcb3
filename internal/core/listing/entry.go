// Package listing turns filesystem entries into aligned long-form display lines.
//
// The package never touches the filesystem. Callers hand it an ordered batch of
// Entry values whose metadata has already been captured, plus a Selection that
// says which columns to show, and get back one rendered line per visible entry.
package listing

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies an entry for display purposes
type Kind int

const (
	// KindOther covers symlinks to nowhere, devices, sockets and pipes
	KindOther Kind = iota
	// KindDir is a directory
	KindDir
	// KindFile is a regular file
	KindFile
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "other"
	}
}

// TimeKind selects one of the four timestamps an entry may carry
type TimeKind int

const (
	// TimeModified is the last content modification
	TimeModified TimeKind = iota
	// TimeChanged is the last inode status change
	TimeChanged
	// TimeCreated is the birth time, which not every platform records
	TimeCreated
	// TimeAccessed is the last access
	TimeAccessed

	numTimeKinds
)

// TimeKinds lists every timestamp kind in canonical column order
var TimeKinds = []TimeKind{TimeModified, TimeChanged, TimeCreated, TimeAccessed}

// String returns the kind name
func (k TimeKind) String() string {
	switch k {
	case TimeModified:
		return "modified"
	case TimeChanged:
		return "changed"
	case TimeCreated:
		return "created"
	case TimeAccessed:
		return "accessed"
	default:
		return fmt.Sprintf("TimeKind(%d)", int(k))
	}
}

// Entry is one filesystem object with its metadata captured at stat time
type Entry struct {
	// Name is the base name shown in listings
	Name string
	// Path is the path the entry was read from
	Path string
	// Display overrides Name in rendered output (tree prefixes)
	Display string

	Kind    Kind
	Symlink bool

	Size   uint64
	Links  uint64
	Inode  uint64
	UID    uint32
	GID    uint32
	Blocks uint64

	// Mode holds the permission bits; only the low nine are rendered
	Mode uint32

	// Times holds the timestamps the platform could provide
	Times map[TimeKind]time.Time
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// IsRegular reports whether the entry is a regular file
func (e Entry) IsRegular() bool {
	return e.Kind == KindFile
}

// IsExecutable reports whether any execute bit is set on a regular file
func (e Entry) IsExecutable() bool {
	return e.Kind == KindFile && e.Mode&0o111 != 0
}

// DisplayName returns the text appended after the metadata columns
func (e Entry) DisplayName() string {
	if e.Display != "" {
		return e.Display
	}
	return e.Name
}

// Time returns the requested timestamp or an error wrapping ErrTimestampUnavailable
func (e Entry) Time(kind TimeKind) (time.Time, error) {
	t, ok := e.Times[kind]
	if !ok {
		return time.Time{}, &TimestampError{Name: e.Name, Kind: kind}
	}
	return t, nil
}

// IsHidden reports whether the name starts with the hidden-file marker.
// The "." and ".." names given as arguments are never hidden.
func IsHidden(e Entry) bool {
	if e.Name == "." || e.Name == ".." {
		return false
	}
	return strings.HasPrefix(e.Name, ".")
}

// Visible returns the entries that the hidden predicate does not reject.
// A nil predicate keeps everything.
func Visible(entries []Entry, hidden func(Entry) bool) []Entry {
	if hidden == nil {
		return entries
	}
	visible := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !hidden(e) {
			visible = append(visible, e)
		}
	}
	return visible
}
