package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/eb/internal/cli/ui"
	"github.com/aki/eb/internal/core/config"
	"github.com/aki/eb/internal/core/listing"
)

// setupConfigHome points the user config directory at a fresh temp dir
func setupConfigHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("COLUMNS", "80")
	return home
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	path := filepath.Join(home, config.AppDir, config.ConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// makeFixture builds a directory holding a.txt (12 bytes) and b.txt (3 bytes)
func makeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("abc"), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	oldOut, oldErr := ui.Stdout, ui.Stderr
	ui.Stdout, ui.Stderr = &stdout, &stderr
	t.Cleanup(func() {
		ui.Stdout, ui.Stderr = oldOut, oldErr
		_ = ui.SetGlobalFormatter(ui.FormatPretty)
		ui.SetColorMode(ui.ColorNever)
	})

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_List(t *testing.T) {
	setupConfigHome(t)
	dir := makeFixture(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "grid",
			args:     []string{dir},
			expected: "a.txt  b.txt\n",
		},
		{
			name:     "one per line",
			args:     []string{"-1", dir},
			expected: "a.txt\nb.txt\n",
		},
		{
			name:     "long with only the size column",
			args:     []string{"-l", "-o", "-y", "-t", dir},
			expected: "12 a.txt\n 3 b.txt\n",
		},
		{
			name:     "long with exact bytes and a header",
			args:     []string{"-l", "-o", "-y", "-t", "-B", "-H", dir},
			expected: "Size Name\n  12 a.txt\n   3 b.txt\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRootCommand_PrintFile(t *testing.T) {
	setupConfigHome(t)
	file := filepath.Join(makeFixture(t), "a.txt")

	out, _, err := execute(t, "-N", "--plain", "-P", "never", file)
	require.NoError(t, err)
	assert.Equal(t, "1 │ hello world\n", out)
}

func TestRootCommand_ConfigDefaults(t *testing.T) {
	home := setupConfigHome(t)
	dir := makeFixture(t)
	writeConfig(t, home, "version: \"1.0\"\nlist:\n  long: true\n")

	t.Run("config enables the long view", func(t *testing.T) {
		out, _, err := execute(t, "-o", "-y", "-t", dir)
		require.NoError(t, err)
		assert.Equal(t, "12 a.txt\n 3 b.txt\n", out)
	})

	t.Run("explicit flag wins", func(t *testing.T) {
		out, _, err := execute(t, "--long=false", dir)
		require.NoError(t, err)
		assert.Equal(t, "a.txt  b.txt\n", out)
	})
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	home := setupConfigHome(t)
	dir := makeFixture(t)
	writeConfig(t, home, "color: purple\n")

	_, _, err := execute(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	// init --force can still replace the broken file
	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	out, _, err := execute(t, dir)
	require.NoError(t, err)
	assert.Equal(t, "a.txt  b.txt\n", out)
}

func TestRootCommand_InvalidOptions(t *testing.T) {
	setupConfigHome(t)
	dir := makeFixture(t)

	tests := []struct {
		name string
		args []string
		flag string
	}{
		{name: "wrap", args: []string{"-w", "sideways", dir}, flag: "wrap"},
		{name: "paging", args: []string{"-P", "sometimes", dir}, flag: "paging"},
		{name: "line range", args: []string{"-r", "5:2", dir}, flag: "line-range"},
		{name: "format", args: []string{"--format", "xml", dir}, flag: "format"},
		{name: "log level", args: []string{"--log-level", "loud", dir}, flag: "log-level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			var optErr *InvalidOptionError
			require.ErrorAs(t, err, &optErr)
			assert.Equal(t, tt.flag, optErr.Flag)
		})
	}
}

func TestRootCommand_DebugLogging(t *testing.T) {
	setupConfigHome(t)
	dir := makeFixture(t)

	out, stderr, err := execute(t, "--log-level", "debug", dir)
	require.NoError(t, err)
	assert.Equal(t, "a.txt  b.txt\n", out)
	assert.Contains(t, stderr, "running")
	assert.Contains(t, stderr, "read directory")
}

func TestRootCommand_JSON(t *testing.T) {
	setupConfigHome(t)
	dir := makeFixture(t)

	out, _, err := execute(t, "--format", "json", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"path": "`+dir+`"`)
	assert.Contains(t, out, `"name": "a.txt"`)
	assert.Contains(t, out, `"size": 12`)
}

func TestRootCommand_MissingPath(t *testing.T) {
	setupConfigHome(t)
	dir := makeFixture(t)
	missing := filepath.Join(dir, "missing")

	out, _, err := execute(t, missing, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, out, "a.txt  b.txt\n")
}

func TestListFlags_Selection(t *testing.T) {
	tests := []struct {
		name     string
		flags    listFlags
		expected listing.Selection
	}{
		{
			name:  "defaults show modified time",
			flags: listFlags{},
			expected: listing.Selection{
				Permissions: true,
				Size:        true,
				Owner:       true,
				Times:       []listing.TimeKind{listing.TimeModified},
			},
		},
		{
			name:  "no time",
			flags: listFlags{noTime: true, noUser: true},
			expected: listing.Selection{
				Permissions: true,
				Size:        true,
			},
		},
		{
			name:  "several time kinds",
			flags: listFlags{accessed: true, changed: true, noPermissions: true},
			expected: listing.Selection{
				Size:  true,
				Owner: true,
				Times: []listing.TimeKind{listing.TimeChanged, listing.TimeAccessed},
			},
		},
		{
			name:  "bytes wins over binary",
			flags: listFlags{bytes: true, binary: true, noFilesize: true, noTime: true, inode: true},
			expected: listing.Selection{
				Inode:       true,
				Permissions: true,
				Owner:       true,
				Bytes:       true,
			},
		},
		{
			name:  "optional columns",
			flags: listFlags{links: true, blocks: true, group: true, git: true, header: true, modified: true},
			expected: listing.Selection{
				Permissions: true,
				Links:       true,
				Size:        true,
				Blocks:      true,
				Owner:       true,
				Group:       true,
				Git:         true,
				Header:      true,
				Times:       []listing.TimeKind{listing.TimeModified},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.flags.selection())
		})
	}
}

func TestConfigCommands(t *testing.T) {
	home := setupConfigHome(t)
	path := filepath.Join(home, config.AppDir, config.ConfigFile)

	out, _, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, _, err = execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigExists)

	_, stderr, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Overwriting existing configuration at "+path)

	out, _, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `version: "1.0"`)
	assert.Contains(t, out, "theme: monokai")

	out, _, err = execute(t, "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"theme": "monokai"`)

	out, _, err = execute(t, "config", "show", "--format", "pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "print.wrap")

	_, _, err = execute(t, "config", "show", "--format", "toml")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	setupConfigHome(t)

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "eb version "+Version)

	out, _, err = execute(t, "--format", "json", "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "`+Version+`"`)
}

func TestReportError(t *testing.T) {
	var stderr bytes.Buffer
	old := ui.Stderr
	ui.Stderr = &stderr
	t.Cleanup(func() { ui.Stderr = old })
	ui.SetColorMode(ui.ColorNever)

	reportError(errors.Join(errors.New("first failure"), errors.New("second failure")))

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first failure")
	assert.Contains(t, lines[1], "second failure")
}
