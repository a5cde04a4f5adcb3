//go:build linux

package fsmeta

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/aki/eb/internal/core/listing"
)

func fillPlatform(e *listing.Entry, path string, info fs.FileInfo) {
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
	e.Times[listing.TimeChanged] = time.Unix(stat.Ctim.Unix())
	e.Times[listing.TimeAccessed] = time.Unix(stat.Atim.Unix())

	if btime, ok := birthTime(path, info.Mode()&fs.ModeSymlink != 0); ok {
		e.Times[listing.TimeCreated] = btime
	}
}

// birthTime asks statx for the creation time, which plain stat(2) does not carry
// on Linux. Older kernels and some filesystems leave STATX_BTIME unset.
func birthTime(path string, noFollow bool) (time.Time, bool) {
	flags := 0
	if noFollow {
		flags = unix.AT_SYMLINK_NOFOLLOW
	}
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, flags, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}, false
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true
}
