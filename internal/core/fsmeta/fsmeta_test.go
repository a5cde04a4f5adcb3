package fsmeta

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/eb/internal/core/listing"
)

func TestStat_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))
	require.NoError(t, os.Chmod(path, 0o640))

	e, err := Stat(path)
	require.NoError(t, err)

	assert.Equal(t, "hello.txt", e.Name)
	assert.Equal(t, path, e.Path)
	assert.Equal(t, listing.KindFile, e.Kind)
	assert.Equal(t, uint64(11), e.Size)
	assert.Equal(t, uint32(0o640), e.Mode)
	assert.False(t, e.Symlink)

	mtime, err := e.Time(listing.TimeModified)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), mtime, time.Minute)

	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		assert.NotZero(t, e.Inode)
		assert.Equal(t, uint64(1), e.Links)
		assert.Equal(t, uint32(os.Getuid()), e.UID)
		_, err := e.Time(listing.TimeChanged)
		assert.NoError(t, err)
		_, err = e.Time(listing.TimeAccessed)
		assert.NoError(t, err)
	}
}

func TestStat_Directory(t *testing.T) {
	dir := t.TempDir()

	e, err := Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, listing.KindDir, e.Kind)
	assert.True(t, e.IsDir())
}

func TestStat_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	e, err := Stat(link)
	require.NoError(t, err)
	assert.Equal(t, "link", e.Name)
	assert.True(t, e.Symlink)
	assert.Equal(t, listing.KindDir, e.Kind, "metadata follows the link")

	dangling := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), dangling))

	e, err = Stat(dangling)
	require.NoError(t, err)
	assert.True(t, e.Symlink)
	assert.Equal(t, listing.KindOther, e.Kind)
}

func TestStat_Missing(t *testing.T) {
	_, err := Stat(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOwners(t *testing.T) {
	o := NewOwners()
	calls := 0
	o.lookupUser = func(uid string) (*user.User, error) {
		calls++
		if uid == "0" {
			return &user.User{Username: "root"}, nil
		}
		return nil, user.UnknownUserIdError(42)
	}
	o.lookupGroup = func(gid string) (*user.Group, error) {
		return &user.Group{Name: "wheel"}, nil
	}

	assert.Equal(t, "root", o.User(0))
	assert.Equal(t, "root", o.User(0))
	assert.Equal(t, 1, calls, "lookups are cached")
	assert.Equal(t, "42", o.User(42))
	assert.Equal(t, "wheel", o.Group(0))
}
