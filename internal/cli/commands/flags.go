package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/aki/eb/internal/app"
	"github.com/aki/eb/internal/cli/ui"
	"github.com/aki/eb/internal/core/config"
	"github.com/aki/eb/internal/core/listing"
	"github.com/aki/eb/internal/core/printer"
	"github.com/aki/eb/internal/core/terminal"
	"github.com/aki/eb/internal/core/walk"
)

// InvalidOptionError reports a flag or configuration value outside its allowed set
type InvalidOptionError struct {
	Flag  string
	Value string
	Err   error
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid value %q for --%s: %v", e.Value, e.Flag, e.Err)
}

func (e *InvalidOptionError) Unwrap() error {
	return e.Err
}

// listFlags select the layout, filtering and long-view columns
type listFlags struct {
	oneLine bool
	grid    bool
	long    bool
	recurse bool
	tree    bool
	across  bool

	all       bool
	listDirs  bool
	onlyDirs  bool
	level     int
	dirsFirst bool

	binary        bool
	bytes         bool
	changed       bool
	group         bool
	header        bool
	inode         bool
	links         bool
	modified      bool
	numeric       bool
	blocks        bool
	accessed      bool
	created       bool
	noPermissions bool
	noFilesize    bool
	noUser        bool
	noTime        bool
	git           bool
}

func (f *listFlags) register(flags *pflag.FlagSet) {
	flags.BoolVarP(&f.oneLine, "oneline", "1", false, "Display one entry per line")
	flags.BoolVarP(&f.grid, "grid", "G", false, "Display the long view as a grid")
	flags.BoolVarP(&f.long, "long", "l", false, "Display extended metadata as a table")
	flags.BoolVarP(&f.recurse, "recurse", "R", false, "Recurse into directories")
	flags.BoolVarP(&f.tree, "tree", "T", false, "Recurse into directories as a tree")
	flags.BoolVarP(&f.across, "across", "x", false, "Sort the grid across, rather than downwards")

	flags.BoolVarP(&f.all, "all", "a", false, "Show hidden files")
	flags.BoolVarP(&f.listDirs, "list-dirs", "d", false, "List directories like regular files")
	flags.BoolVarP(&f.onlyDirs, "only-dirs", "D", false, "List only directories")
	flags.IntVarP(&f.level, "level", "L", -1, "Limit the depth of recursion (-1 for unlimited)")
	flags.BoolVarP(&f.dirsFirst, "group-directories-first", "q", false, "List directories before other files")

	flags.BoolVarP(&f.binary, "binary", "b", false, "List file sizes with binary prefixes")
	flags.BoolVarP(&f.bytes, "bytes", "B", false, "List file sizes in bytes, without any prefixes")
	flags.BoolVarP(&f.changed, "changed", "c", false, "Show the status-changed timestamp")
	flags.BoolVarP(&f.group, "group", "g", false, "List each file's group")
	flags.BoolVarP(&f.header, "header", "H", false, "Add a header row to each column")
	flags.BoolVarP(&f.inode, "inode", "i", false, "List each file's inode number")
	flags.BoolVarP(&f.links, "links", "k", false, "List each file's number of hard links")
	flags.BoolVarP(&f.modified, "modified", "m", false, "Show the modified timestamp")
	flags.BoolVarP(&f.numeric, "numeric", "n", false, "List numeric user and group IDs")
	flags.BoolVarP(&f.blocks, "blocks", "S", false, "Show the number of file system blocks")
	flags.BoolVarP(&f.accessed, "accessed", "u", false, "Show the accessed timestamp")
	flags.BoolVarP(&f.created, "created", "U", false, "Show the created timestamp")
	flags.BoolVarP(&f.noPermissions, "no-permissions", "o", false, "Suppress the permissions field")
	flags.BoolVarP(&f.noFilesize, "no-filesize", "z", false, "Suppress the filesize field")
	flags.BoolVarP(&f.noUser, "no-user", "y", false, "Suppress the user field")
	flags.BoolVarP(&f.noTime, "no-time", "t", false, "Suppress the time field")
	flags.BoolVar(&f.git, "git", false, "List each file's git status")
}

// selection maps the long-view switches onto listing columns. With no
// timestamp kind chosen the modified time is shown unless --no-time is set.
func (f *listFlags) selection() listing.Selection {
	sel := listing.Selection{
		Inode:       f.inode,
		Permissions: !f.noPermissions,
		Links:       f.links,
		Size:        !f.noFilesize,
		Blocks:      f.blocks,
		Owner:       !f.noUser,
		Group:       f.group,
		Git:         f.git,
		Bytes:       f.bytes,
		Binary:      f.binary && !f.bytes,
		Header:      f.header,
	}
	if f.noTime {
		return sel
	}
	for _, t := range []struct {
		on   bool
		kind listing.TimeKind
	}{
		{f.modified, listing.TimeModified},
		{f.changed, listing.TimeChanged},
		{f.created, listing.TimeCreated},
		{f.accessed, listing.TimeAccessed},
	} {
		if t.on {
			sel.Times = append(sel.Times, t.kind)
		}
	}
	if len(sel.Times) == 0 {
		sel.Times = []listing.TimeKind{listing.TimeModified}
	}
	return sel
}

// printFlags control how files are printed
type printFlags struct {
	showAll   bool
	fileName  string
	numbers   bool
	paging    string
	lineRange string
	wrap      string
	theme     string
	plain     bool
}

func (f *printFlags) register(flags *pflag.FlagSet) {
	flags.BoolVarP(&f.showAll, "show-all", "A", false, "Show non-printable characters")
	flags.StringVarP(&f.fileName, "file-name", "F", "", "Name to use for the file in headers and highlighting")
	flags.BoolVarP(&f.numbers, "numbers", "N", false, "Show line numbers")
	flags.StringVarP(&f.paging, "paging", "P", string(printer.PagingAuto), "When to use the pager (auto, never, always)")
	flags.StringVarP(&f.lineRange, "line-range", "r", "", "Only print lines N:M (1-based, inclusive)")
	flags.StringVarP(&f.wrap, "wrap", "w", string(printer.WrapAuto), "Text wrapping mode (auto, never, character)")
	flags.StringVar(&f.theme, "theme", printer.DefaultTheme, "Syntax highlighting theme")
	flags.BoolVar(&f.plain, "plain", false, "Disable syntax highlighting")
}

// applyConfig fills every flag the user did not set from the configuration file
func (o *rootOptions) applyConfig(flags *pflag.FlagSet, cfg *config.Config) {
	boolDefault(flags, "long", &o.long, cfg.List.Long)
	boolDefault(flags, "across", &o.across, cfg.List.Across)
	boolDefault(flags, "all", &o.all, cfg.List.All)
	boolDefault(flags, "group-directories-first", &o.dirsFirst, cfg.List.DirsFirst)
	boolDefault(flags, "header", &o.header, cfg.List.Header)
	boolDefault(flags, "binary", &o.binary, cfg.List.Binary)
	boolDefault(flags, "bytes", &o.bytes, cfg.List.Bytes)
	boolDefault(flags, "numeric", &o.numeric, cfg.List.Numeric)
	boolDefault(flags, "git", &o.git, cfg.List.Git)

	boolDefault(flags, "numbers", &o.numbers, cfg.Print.Numbers)
	boolDefault(flags, "plain", &o.plain, cfg.Print.Plain)
	stringDefault(flags, "wrap", &o.wrap, cfg.Print.Wrap)
	stringDefault(flags, "paging", &o.paging, cfg.Print.Paging)
	stringDefault(flags, "theme", &o.theme, cfg.Print.Theme)
}

// appOptions validates the flag values and describes the invocation for app.New
func (o *rootOptions) appOptions() (app.Options, error) {
	wrap, err := printer.ParseWrap(o.wrap)
	if err != nil {
		return app.Options{}, &InvalidOptionError{Flag: "wrap", Value: o.wrap, Err: err}
	}
	paging, err := printer.ParsePaging(o.paging)
	if err != nil {
		return app.Options{}, &InvalidOptionError{Flag: "paging", Value: o.paging, Err: err}
	}
	rng, err := printer.ParseRange(o.lineRange)
	if err != nil {
		return app.Options{}, &InvalidOptionError{Flag: "line-range", Value: o.lineRange, Err: err}
	}

	// Zero width means unknown: listings fall back to one entry per line
	width, _ := terminal.Width()
	height, _ := terminal.Height()

	return app.Options{
		Long:      o.long,
		Grid:      o.grid,
		OneLine:   o.oneLine,
		Across:    o.across,
		Recurse:   o.recurse,
		Tree:      o.tree,
		ListDirs:  o.listDirs,
		Selection: o.selection(),
		Numeric:   o.numeric,
		Walk: walk.Options{
			All:       o.all,
			OnlyDirs:  o.onlyDirs,
			DirsFirst: o.dirsFirst,
			Level:     o.level,
		},
		Print: printer.Options{
			Numbers:   o.numbers,
			ShowAll:   o.showAll,
			Wrap:      wrap,
			Highlight: ui.ColorEnabled() && !o.plain,
			Theme:     o.theme,
		},
		Range:    rng,
		Paging:   paging,
		FileName: o.fileName,
		Width:    width,
		Height:   height,
		Terminal: terminal.IsTerminal(os.Stdout),
		Location: time.Local,
		JSON:     ui.GlobalFormatter.IsJSON(),
		Style: app.Style{
			Name:   ui.StyleName,
			Header: func(s string) string { return ui.HeaderStyle.Render(s) },
			Path:   ui.PathLine,
		},
		Emit: ui.GlobalFormatter.Output,
	}, nil
}

func boolDefault(flags *pflag.FlagSet, name string, target *bool, value bool) {
	if !flags.Changed(name) {
		*target = value
	}
}

func stringDefault(flags *pflag.FlagSet, name string, target *string, value string) {
	if !flags.Changed(name) && value != "" {
		*target = value
	}
}
