// Package fsmeta captures filesystem metadata into listing entries.
package fsmeta

import (
	"io/fs"
	"os"
	"time"

	"github.com/aki/eb/internal/core/listing"
)

// Stat reads the entry at path. Symbolic links are followed for metadata; a
// dangling link is described by the link itself.
func Stat(path string) (listing.Entry, error) {
	linfo, err := os.Lstat(path)
	if err != nil {
		return listing.Entry{}, err
	}

	info := linfo
	symlink := linfo.Mode()&fs.ModeSymlink != 0
	if symlink {
		if target, err := os.Stat(path); err == nil {
			info = target
		}
	}

	e := FromFileInfo(path, info)
	e.Symlink = symlink
	if e.Name == "" {
		e.Name = path
	}
	return e, nil
}

// FromFileInfo converts info into an entry. Platform-specific fields (inode,
// owner, change/access/birth times) are filled where the OS exposes them.
func FromFileInfo(path string, info fs.FileInfo) listing.Entry {
	e := listing.Entry{
		Name:  info.Name(),
		Path:  path,
		Kind:  kindOf(info.Mode()),
		Mode:  uint32(info.Mode().Perm()),
		Links: 1,
		Times: map[listing.TimeKind]time.Time{
			listing.TimeModified: info.ModTime(),
		},
	}
	if info.Size() > 0 {
		e.Size = uint64(info.Size())
	}
	fillPlatform(&e, path, info)
	return e
}

func kindOf(mode fs.FileMode) listing.Kind {
	switch {
	case mode.IsDir():
		return listing.KindDir
	case mode.IsRegular():
		return listing.KindFile
	default:
		return listing.KindOther
	}
}
