package listing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2024, time.March, 5, 14, 22, 0, 0, time.UTC)

func fileEntry(name string, size uint64, mode uint32, uid uint32) Entry {
	return Entry{
		Name:   name,
		Path:   "/tmp/" + name,
		Kind:   KindFile,
		Size:   size,
		Mode:   mode,
		UID:    uid,
		GID:    uid,
		Links:  1,
		Inode:  uint64(len(name)) * 1000,
		Blocks: size / 512,
		Times:  map[TimeKind]time.Time{TimeModified: stamp, TimeAccessed: stamp.Add(time.Hour)},
	}
}

func dirEntry(name string, mode uint32, uid uint32) Entry {
	e := fileEntry(name, 4096, mode, uid)
	e.Kind = KindDir
	return e
}

func sampleEntries() []Entry {
	return []Entry{
		fileEntry("a", 5, 0o644, 1000),
		dirEntry("bb", 0o755, 0),
		fileEntry("ccc", 123456789, 0o600, 501),
	}
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter(DefaultSelection(), Options{Location: time.UTC})

	batch, err := f.Format(sampleEntries())
	require.NoError(t, err)

	assert.Equal(t, []string{
		".rw-r--r--    5 1000 05 Mar 14:22 a",
		"drwxr-xr-x    -    0 05 Mar 14:22 bb",
		".rw------- 123M  501 05 Mar 14:22 ccc",
	}, batch.Lines)
	assert.Empty(t, batch.Header)
}

func TestFormatter_OwnerRightAligned(t *testing.T) {
	f := NewFormatter(Selection{Owner: true}, Options{})

	batch, err := f.Format(sampleEntries())
	require.NoError(t, err)

	assert.Equal(t, []string{"1000 a", "   0 bb", " 501 ccc"}, batch.Lines)
}

func TestFormatter_CanonicalOrder(t *testing.T) {
	sel := Selection{
		Inode:       true,
		Permissions: true,
		Links:       true,
		Size:        true,
		Blocks:      true,
		Owner:       true,
		Group:       true,
		Git:         true,
		Times:       []TimeKind{TimeAccessed, TimeModified},
		Bytes:       true,
	}
	assert.Equal(t, []Field{
		FieldInode, FieldPermissions, FieldLinks, FieldSize, FieldBlocks,
		FieldOwner, FieldGroup, FieldModified, FieldAccessed, FieldGit,
	}, sel.Fields())

	f := NewFormatter(sel, Options{Location: time.UTC})
	batch, err := f.Format([]Entry{fileEntry("x", 2048, 0o755, 7)})
	require.NoError(t, err)
	assert.Equal(t, "1000 .rwxr-xr-x 1 2,048 4 7 7 05 Mar 14:22 05 Mar 15:22 -- x", batch.Lines[0])
}

func TestFormatter_EqualFieldWidths(t *testing.T) {
	sel := Selection{Inode: true, Permissions: true, Links: true, Size: true, Owner: true, Group: true,
		Times: []TimeKind{TimeModified}}
	f := NewFormatter(sel, Options{Location: time.UTC})

	entries := []Entry{
		fileEntry("one", 1, 0o644, 1),
		fileEntry("twotwo", 99999999999, 0o644, 65534),
		dirEntry("three", 0o700, 22),
		fileEntry("日本語", 1536, 0o644, 333),
	}
	batch, err := f.Format(entries)
	require.NoError(t, err)
	require.Len(t, batch.Lines, len(entries))

	// Every line has the same prefix width before the name.
	prefix := len(batch.Lines[0]) - len(entries[0].Name)
	for i, line := range batch.Lines {
		assert.Equal(t, prefix, len(line)-len(entries[i].Name), "line %d: %q", i, line)
	}
}

func TestFormatter_HiddenEntries(t *testing.T) {
	sel := Selection{Size: true, Bytes: true}
	entries := append(sampleEntries(), fileEntry(".secret", 99999999999, 0o600, 0))

	shown, err := NewFormatter(sel, Options{}).Format(entries)
	require.NoError(t, err)
	hidden, err := NewFormatter(sel, Options{Hidden: IsHidden}).Format(entries)
	require.NoError(t, err)

	assert.Len(t, shown.Lines, 4)
	assert.Len(t, hidden.Lines, 3)

	// ".secret" held the widest size, so removing it narrows the column.
	assert.Equal(t, strings.Repeat(" ", len("99,999,999,999")-1)+"5 a", shown.Lines[0])
	assert.Equal(t, strings.Repeat(" ", len("123,456,789")-1)+"5 a", hidden.Lines[0])

	for _, line := range hidden.Lines {
		assert.NotContains(t, line, ".secret")
	}
}

func TestFormatter_HiddenEntryNotWidest(t *testing.T) {
	sel := Selection{Size: true, Bytes: true, Owner: true}
	base := sampleEntries()
	withHidden := append([]Entry{fileEntry(".x", 1, 0o600, 1)}, base...)

	want, err := NewFormatter(sel, Options{}).Format(base)
	require.NoError(t, err)
	got, err := NewFormatter(sel, Options{Hidden: IsHidden}).Format(withHidden)
	require.NoError(t, err)

	assert.Equal(t, want.Lines, got.Lines)
}

func TestFormatter_Header(t *testing.T) {
	f := NewFormatter(Selection{Permissions: true, Size: true, Header: true}, Options{})

	batch, err := f.Format([]Entry{fileEntry("a", 5, 0o644, 0)})
	require.NoError(t, err)

	assert.Equal(t, "Permissions Size Name", batch.Header)
	assert.Equal(t, ".rw-r--r--     5 a", batch.Lines[0])
}

func TestFormatter_HeaderInode(t *testing.T) {
	f := NewFormatter(Selection{Inode: true, Links: true, Header: true}, Options{})

	batch, err := f.Format([]Entry{fileEntry("a", 5, 0o644, 0)})
	require.NoError(t, err)

	assert.Equal(t, "Inode Links Name", batch.Header)
	assert.Equal(t, " 1000     1 a", batch.Lines[0])
}

func TestField_HeaderCapitalized(t *testing.T) {
	for f := Field(0); f < numFields; f++ {
		title := f.Header()
		require.NotEmpty(t, title, "field %s", f)
		assert.Equal(t, strings.ToUpper(title[:1]), title[:1], "field %s has title %q", f, title)
	}
}

func TestFormatter_MissingTimestamp(t *testing.T) {
	f := NewFormatter(Selection{Times: []TimeKind{TimeCreated}}, Options{})

	_, err := f.Format(sampleEntries())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimestampUnavailable))

	var tsErr *TimestampError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, "a", tsErr.Name)
	assert.Equal(t, TimeCreated, tsErr.Kind)
}

func TestFormatter_Idempotent(t *testing.T) {
	f := NewFormatter(DefaultSelection(), Options{Location: time.UTC, Hidden: IsHidden})
	entries := sampleEntries()

	first, err := f.Format(entries)
	require.NoError(t, err)
	second, err := f.Format(entries)
	require.NoError(t, err)

	assert.Equal(t, first.Lines, second.Lines)
}

type stubOwners struct{}

func (stubOwners) User(uid uint32) string  { return map[uint32]string{0: "root"}[uid] + "u" }
func (stubOwners) Group(gid uint32) string { return "g" }

type stubGit map[string]string

func (s stubGit) Code(path string, _ bool) string { return s[path] }

func TestFormatter_Collaborators(t *testing.T) {
	sel := Selection{Owner: true, Group: true, Git: true}
	opts := Options{
		Owners: stubOwners{},
		Git:    stubGit{"/tmp/a": "-M", "/tmp/bb": "A-", "/tmp/ccc": "--"},
		Name:   func(e Entry) string { return "<" + e.Name + ">" },
	}

	batch, err := NewFormatter(sel, opts).Format(sampleEntries())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"    u g -M <a>",
		"rootu g A- <bb>",
		"    u g -- <ccc>",
	}, batch.Lines)
}

func TestFormatter_DisplayOverride(t *testing.T) {
	e := fileEntry("leaf", 1, 0o644, 0)
	e.Display = "└── leaf"

	batch, err := NewFormatter(Selection{}, Options{}).Format([]Entry{e})
	require.NoError(t, err)
	assert.Equal(t, "└── leaf", batch.Lines[0])
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "05 Mar 14:22", FormatTimestamp(stamp, time.UTC))

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "05 Mar 23:22", FormatTimestamp(stamp, tokyo))
}

func TestSort(t *testing.T) {
	entries := []Entry{
		{Name: "b"}, {Name: "A"}, {Name: "c", Kind: KindDir}, {Name: "a"}, {Name: "B2"},
	}

	byName := append([]Entry(nil), entries...)
	Sort(byName, false)
	assert.Equal(t, []string{"A", "a", "b", "B2", "c"}, names(byName))

	dirsFirst := append([]Entry(nil), entries...)
	Sort(dirsFirst, true)
	assert.Equal(t, []string{"c", "A", "a", "b", "B2"}, names(dirsFirst))
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestNumericOwners(t *testing.T) {
	var owners NumericOwners
	assert.Equal(t, "0", owners.User(0))
	assert.Equal(t, "1000", owners.User(1000))
	assert.Equal(t, "4294967295", owners.Group(4294967295))
}
