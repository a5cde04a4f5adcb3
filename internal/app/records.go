package app

import (
	"time"

	"github.com/aki/eb/internal/core/listing"
	"github.com/aki/eb/internal/core/printer"
)

// EntryRecord is the structured form of one listed entry
type EntryRecord struct {
	Name    string               `json:"name"`
	Path    string               `json:"path"`
	Kind    string               `json:"kind"`
	Symlink bool                 `json:"symlink,omitempty"`
	Size    uint64               `json:"size"`
	Links   uint64               `json:"links"`
	Inode   uint64               `json:"inode"`
	UID     uint32               `json:"uid"`
	GID     uint32               `json:"gid"`
	User    string               `json:"user"`
	Group   string               `json:"group"`
	Blocks  uint64               `json:"blocks"`
	Mode    string               `json:"mode"`
	Times   map[string]time.Time `json:"times"`
	Git     string               `json:"git,omitempty"`
}

// ListingRecord holds the entries of one directory
type ListingRecord struct {
	Path    string        `json:"path"`
	Entries []EntryRecord `json:"entries"`
}

// FileRecord holds the selected lines of one printed file
type FileRecord struct {
	Path  string         `json:"path"`
	Lines []printer.Line `json:"lines"`
}

func newEntryRecord(e listing.Entry, owners listing.OwnerResolver, git listing.GitStatus) EntryRecord {
	r := EntryRecord{
		Name:    e.Name,
		Path:    e.Path,
		Kind:    e.Kind.String(),
		Symlink: e.Symlink,
		Size:    e.Size,
		Links:   e.Links,
		Inode:   e.Inode,
		UID:     e.UID,
		GID:     e.GID,
		User:    owners.User(e.UID),
		Group:   owners.Group(e.GID),
		Blocks:  e.Blocks,
		Mode:    listing.FormatPermissions(e.Mode, e.IsDir()),
		Times:   make(map[string]time.Time, len(e.Times)),
	}
	for kind, t := range e.Times {
		r.Times[kind.String()] = t
	}
	if git != nil {
		r.Git = git.Code(e.Path, e.IsDir())
	}
	return r
}
