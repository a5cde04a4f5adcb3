// Package printer renders file contents with line numbers, wrapping and
// syntax highlighting.
package printer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// TabWidth is the number of columns a tab advances to
const TabWidth = 4

// DefaultTheme is the chroma style used when none is configured
const DefaultTheme = "monokai"

const gutterSeparator = " │ "

// Wrap selects how long lines are broken
type Wrap string

const (
	// WrapAuto breaks at word boundaries, hard-breaking words that do not fit
	WrapAuto Wrap = "auto"
	// WrapCharacter breaks exactly at the available width
	WrapCharacter Wrap = "character"
	// WrapNever leaves lines as they are
	WrapNever Wrap = "never"
)

// ParseWrap validates a wrap mode name
func ParseWrap(s string) (Wrap, error) {
	switch w := Wrap(strings.ToLower(s)); w {
	case WrapAuto, WrapCharacter, WrapNever:
		return w, nil
	default:
		return "", fmt.Errorf("invalid wrap mode: %s (must be auto, character or never)", s)
	}
}

// Range selects lines by 1-based inclusive numbers. End < 0 means to the last line.
type Range struct {
	Start int
	End   int
}

// AllLines is the range covering a whole file
var AllLines = Range{Start: 1, End: -1}

// ErrInvalidRange is returned for ranges that select nothing
var ErrInvalidRange = errors.New("invalid line range")

// ParseRange parses "N:M", "N:", ":M" or "N"
func ParseRange(s string) (Range, error) {
	if s == "" {
		return AllLines, nil
	}

	startText, endText, found := strings.Cut(s, ":")
	if !found {
		endText = startText
	}

	r := AllLines
	if startText != "" {
		n, err := strconv.Atoi(startText)
		if err != nil || n < 1 {
			return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, s)
		}
		r.Start = n
	}
	if endText != "" {
		n, err := strconv.Atoi(endText)
		if err != nil || n < r.Start {
			return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, s)
		}
		r.End = n
	}
	return r, nil
}

// Contains reports whether line number n is selected
func (r Range) Contains(n int) bool {
	return n >= r.Start && (r.End < 0 || n <= r.End)
}

// Line is one line of a file without its terminator
type Line struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	// Newline records whether the line was terminated
	Newline bool `json:"-"`
}

// ReadLines reads the lines of r that fall inside rng
func ReadLines(r io.Reader, rng Range) ([]Line, error) {
	br := bufio.NewReader(r)

	var lines []Line
	for n := 1; ; n++ {
		text, err := br.ReadString('\n')
		if text != "" && rng.Contains(n) {
			line := Line{Number: n, Text: text}
			if strings.HasSuffix(text, "\n") {
				line.Text = strings.TrimSuffix(text, "\n")
				line.Newline = true
			}
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", n, err)
		}
		if rng.End >= 0 && n >= rng.End {
			return lines, nil
		}
	}
}

// Options control how lines are rendered
type Options struct {
	// Numbers prefixes each line with its number and a gutter
	Numbers bool
	// ShowAll replaces control characters with visible pictures
	ShowAll bool
	Wrap    Wrap
	// Width is the terminal width; zero disables wrapping
	Width int
	// Highlight colors lines with the lexer matched from Name
	Highlight bool
	Theme     string
	// Name selects the lexer and may differ from the file's real name
	Name string
}

// Printer renders lines according to Options
type Printer struct {
	opts Options
}

// New creates a printer
func New(opts Options) *Printer {
	if opts.Wrap == "" {
		opts.Wrap = WrapAuto
	}
	if opts.Theme == "" {
		opts.Theme = DefaultTheme
	}
	return &Printer{opts: opts}
}

// Render returns the display rows for lines. A wrapped line yields several
// rows; only the first carries the line number.
func (p *Printer) Render(lines []Line) ([]string, error) {
	texts := make([]string, len(lines))
	for i, l := range lines {
		if p.opts.ShowAll {
			texts[i] = controlPictures(l.Text, l.Newline)
		} else {
			texts[i] = expandTabs(l.Text)
		}
	}

	if p.opts.Highlight && !p.opts.ShowAll {
		highlighted, err := p.highlight(texts)
		if err != nil {
			return nil, err
		}
		texts = highlighted
	}

	numWidth := 0
	if p.opts.Numbers && len(lines) > 0 {
		numWidth = len(strconv.Itoa(lines[len(lines)-1].Number))
	}
	gutter := 0
	if p.opts.Numbers {
		gutter = numWidth + runewidth.StringWidth(gutterSeparator)
	}

	rows := make([]string, 0, len(lines))
	for i, text := range texts {
		for j, seg := range p.wrap(text, p.opts.Width-gutter) {
			if !p.opts.Numbers {
				rows = append(rows, seg)
				continue
			}
			number := ""
			if j == 0 {
				number = strconv.Itoa(lines[i].Number)
			}
			rows = append(rows, runewidth.FillLeft(number, numWidth)+gutterSeparator+seg)
		}
	}
	return rows, nil
}

func (p *Printer) wrap(text string, width int) []string {
	if p.opts.Wrap == WrapNever || p.opts.Width <= 0 || width < 1 {
		return []string{text}
	}

	var out string
	switch p.opts.Wrap {
	case WrapCharacter:
		out = wrap.String(text, width)
	default:
		out = wrap.String(wordwrap.String(text, width), width)
	}
	return strings.Split(out, "\n")
}

// highlight colors each text with terminal escape codes. Texts are tokenised
// together so multi-line constructs keep their state, then split back.
func (p *Printer) highlight(texts []string) ([]string, error) {
	lexer := lexers.Match(p.opts.Name)
	if lexer == nil {
		return texts, nil
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(p.opts.Theme)
	formatter := formatters.TTY256

	iterator, err := lexer.Tokenise(nil, strings.Join(texts, "\n")+"\n")
	if err != nil {
		return nil, fmt.Errorf("failed to tokenise: %w", err)
	}

	tokenLines := chroma.SplitTokensIntoLines(iterator.Tokens())
	out := make([]string, len(texts))
	for i := range texts {
		if i >= len(tokenLines) {
			out[i] = texts[i]
			continue
		}
		var sb strings.Builder
		if err := formatter.Format(&sb, style, chroma.Literator(trimNewline(tokenLines[i])...)); err != nil {
			return nil, fmt.Errorf("failed to format: %w", err)
		}
		out[i] = sb.String()
	}
	return out, nil
}

func trimNewline(tokens []chroma.Token) []chroma.Token {
	if len(tokens) == 0 {
		return tokens
	}
	last := tokens[len(tokens)-1]
	last.Value = strings.TrimSuffix(last.Value, "\n")
	trimmed := append([]chroma.Token(nil), tokens[:len(tokens)-1]...)
	if last.Value != "" {
		trimmed = append(trimmed, last)
	}
	return trimmed
}

// expandTabs replaces tabs with spaces up to the next tab stop
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := TabWidth - col%TabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// controlPictures maps C0 controls and DEL to their Unicode control pictures
// and marks a line end with "␊"
func controlPictures(s string, newline bool) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r < 0x20:
			sb.WriteRune(0x2400 + r)
		case r == 0x7f:
			sb.WriteRune('␡')
		default:
			sb.WriteRune(r)
		}
	}
	if newline {
		sb.WriteRune('␊')
	}
	return sb.String()
}
