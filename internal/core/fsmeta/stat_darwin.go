//go:build darwin

package fsmeta

import (
	"io/fs"
	"syscall"
	"time"

	"github.com/aki/eb/internal/core/listing"
)

func fillPlatform(e *listing.Entry, _ string, info fs.FileInfo) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	e.Inode = stat.Ino
	e.Links = uint64(stat.Nlink)
	e.UID = stat.Uid
	e.GID = stat.Gid
	if stat.Blocks > 0 {
		e.Blocks = uint64(stat.Blocks)
	}
	e.Times[listing.TimeChanged] = time.Unix(stat.Ctimespec.Unix())
	e.Times[listing.TimeAccessed] = time.Unix(stat.Atimespec.Unix())
	e.Times[listing.TimeCreated] = time.Unix(stat.Birthtimespec.Unix())
}
