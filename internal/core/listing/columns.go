package listing

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Field identifies one long-form column. The constant order is the canonical
// left-to-right render order.
type Field int

const (
	FieldInode Field = iota
	FieldPermissions
	FieldLinks
	FieldSize
	FieldBlocks
	FieldOwner
	FieldGroup
	FieldModified
	FieldChanged
	FieldCreated
	FieldAccessed
	FieldGit

	numFields
)

var fieldNames = [numFields]string{
	FieldInode:       "inode",
	FieldPermissions: "permissions",
	FieldLinks:       "links",
	FieldSize:        "size",
	FieldBlocks:      "blocks",
	FieldOwner:       "user",
	FieldGroup:       "group",
	FieldModified:    "modified",
	FieldChanged:     "changed",
	FieldCreated:     "created",
	FieldAccessed:    "accessed",
	FieldGit:         "git",
}

var fieldHeaders = [numFields]string{
	FieldInode:       "Inode",
	FieldPermissions: "Permissions",
	FieldLinks:       "Links",
	FieldSize:        "Size",
	FieldBlocks:      "Blocks",
	FieldOwner:       "User",
	FieldGroup:       "Group",
	FieldModified:    "Date Modified",
	FieldChanged:     "Date Changed",
	FieldCreated:     "Date Created",
	FieldAccessed:    "Date Accessed",
	FieldGit:         "Git",
}

// NameHeader titles the trailing name column
const NameHeader = "Name"

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Header returns the column title used by header rows
func (f Field) Header() string {
	if f < 0 || f >= numFields {
		return f.String()
	}
	return fieldHeaders[f]
}

// timeField maps a timestamp kind onto its column
func timeField(k TimeKind) Field {
	return FieldModified + Field(k)
}

// Selection is the set of active long-form columns and the conventions they
// render with. It is built once per invocation and never mutated while formatting.
type Selection struct {
	Inode       bool
	Permissions bool
	Links       bool
	Size        bool
	Blocks      bool
	Owner       bool
	Group       bool
	Git         bool

	// Times lists the timestamp columns; order does not matter, output is canonical
	Times []TimeKind

	// Bytes renders exact byte counts instead of unit-prefixed sizes
	Bytes bool
	// Binary uses 1024-based prefixes (Ki, Mi, ...) for human sizes
	Binary bool

	// Header adds a title row above the entries
	Header bool
}

// DefaultSelection shows permissions, size, owner and modification time
func DefaultSelection() Selection {
	return Selection{
		Permissions: true,
		Size:        true,
		Owner:       true,
		Times:       []TimeKind{TimeModified},
	}
}

// Fields returns the active columns in canonical order
func (s Selection) Fields() []Field {
	var fields []Field
	add := func(on bool, f Field) {
		if on {
			fields = append(fields, f)
		}
	}
	add(s.Inode, FieldInode)
	add(s.Permissions, FieldPermissions)
	add(s.Links, FieldLinks)
	add(s.Size, FieldSize)
	add(s.Blocks, FieldBlocks)
	add(s.Owner, FieldOwner)
	add(s.Group, FieldGroup)
	for _, k := range TimeKinds {
		add(slices.Contains(s.Times, k), timeField(k))
	}
	add(s.Git, FieldGit)
	return fields
}

// Align is the padding side of a column
type Align int

const (
	AlignRight Align = iota
	AlignLeft
)

// column knows how to produce one field's text for an entry
type column struct {
	field Field
	align Align
	value func(Entry) (string, error)
}

func (f *Formatter) buildColumns() []column {
	fields := f.sel.Fields()
	cols := make([]column, 0, len(fields))
	for _, field := range fields {
		cols = append(cols, f.column(field))
	}
	return cols
}

func (f *Formatter) column(field Field) column {
	col := column{field: field, align: AlignRight}
	switch field {
	case FieldInode:
		col.value = plain(func(e Entry) string { return strconv.FormatUint(e.Inode, 10) })
	case FieldPermissions:
		col.align = AlignLeft
		col.value = plain(func(e Entry) string { return FormatPermissions(e.Mode, e.IsDir()) })
	case FieldLinks:
		col.value = plain(func(e Entry) string { return strconv.FormatUint(e.Links, 10) })
	case FieldSize:
		col.value = plain(f.sizeText)
	case FieldBlocks:
		col.value = plain(func(e Entry) string {
			if e.Blocks == 0 {
				return "-"
			}
			return strconv.FormatUint(e.Blocks, 10)
		})
	case FieldOwner:
		col.value = plain(func(e Entry) string { return f.owners().User(e.UID) })
	case FieldGroup:
		col.value = plain(func(e Entry) string { return f.owners().Group(e.GID) })
	case FieldModified, FieldChanged, FieldCreated, FieldAccessed:
		kind := TimeKind(field - FieldModified)
		loc := f.opts.Location
		col.value = func(e Entry) (string, error) {
			t, err := e.Time(kind)
			if err != nil {
				return "", err
			}
			return FormatTimestamp(t, loc), nil
		}
	case FieldGit:
		col.value = plain(func(e Entry) string {
			if f.opts.Git == nil {
				return CleanGitStatus
			}
			return f.opts.Git.Code(e.Path, e.IsDir())
		})
	}
	return col
}

func plain(fn func(Entry) string) func(Entry) (string, error) {
	return func(e Entry) (string, error) {
		return fn(e), nil
	}
}

func (f *Formatter) sizeText(e Entry) string {
	if !e.IsRegular() {
		return DirectorySize
	}
	if f.sel.Bytes {
		return FormatWithSeparator(e.Size)
	}
	return FormatHumanSize(e.Size, f.sel.Binary)
}

func (f *Formatter) owners() OwnerResolver {
	if f.opts.Owners == nil {
		return NumericOwners{}
	}
	return f.opts.Owners
}

// OwnerResolver turns numeric ids into display names
type OwnerResolver interface {
	User(uid uint32) string
	Group(gid uint32) string
}

// NumericOwners renders ids as decimal numbers
type NumericOwners struct{}

// User returns uid in decimal
func (NumericOwners) User(uid uint32) string { return strconv.FormatUint(uint64(uid), 10) }

// Group returns gid in decimal
func (NumericOwners) Group(gid uint32) string { return strconv.FormatUint(uint64(gid), 10) }

// CleanGitStatus is the git column value for entries without changes
const CleanGitStatus = "--"

// GitStatus reports the two-character staging/worktree code for a path
type GitStatus interface {
	Code(path string, dir bool) string
}

// Options are the collaborators a Formatter consults while rendering
type Options struct {
	// Location for timestamps; nil means time.Local
	Location *time.Location
	// Owners resolves uid/gid; nil renders numbers
	Owners OwnerResolver
	// Git supplies the git column; nil renders every entry as clean
	Git GitStatus
	// Hidden excludes entries from both passes; nil keeps everything
	Hidden func(Entry) bool
	// Name renders the trailing name (styling); nil uses Entry.DisplayName
	Name func(Entry) string
}
