// Package grid packs display strings into terminal-width-constrained columns.
package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Direction is the order in which cells fill the grid
type Direction int

const (
	// TopToBottom fills each column before moving to the next (ls default)
	TopToBottom Direction = iota
	// LeftToRight fills each row before moving to the next (ls -x)
	LeftToRight
)

const (
	// NameMargin separates columns of short-form names
	NameMargin = 2
	// LongMargin separates columns of long-form lines
	LongMargin = 4
)

// Cell is one display item and its width in terminal columns
type Cell struct {
	Contents string
	Width    int
}

// NewCell measures s, ignoring ANSI styling
func NewCell(s string) Cell {
	return Cell{Contents: s, Width: lipgloss.Width(s)}
}

// Cells wraps a list of strings
func Cells(items []string) []Cell {
	cells := make([]Cell, len(items))
	for i, s := range items {
		cells[i] = NewCell(s)
	}
	return cells
}

// Options configure a grid
type Options struct {
	Direction Direction
	// Margin is the number of spaces between columns
	Margin int
	// Header, when set, titles every column of a fitted grid and tops the
	// one-per-line fallback
	Header Cell
}

// Grid holds cells waiting to be laid out
type Grid struct {
	opts  Options
	cells []Cell
}

// New creates an empty grid
func New(opts Options) *Grid {
	return &Grid{opts: opts}
}

// Add appends cells in display order
func (g *Grid) Add(cells ...Cell) {
	g.cells = append(g.cells, cells...)
}

// layout is one candidate arrangement
type layout struct {
	rows   int
	cols   int
	widths []int
}

// FitIntoWidth searches for the largest column count whose total width fits.
// It returns false when no arrangement with at least two columns fits, in which
// case the caller should fall back to one cell per line.
func (g *Grid) FitIntoWidth(width int) (string, bool) {
	n := len(g.cells)
	if width <= 0 || n < 2 {
		return "", false
	}

	for c := n; c >= 2; c-- {
		l := g.arrange(c)
		if l.cols < 2 {
			continue
		}
		if l.total(g.opts.Margin) <= width {
			return g.render(l), true
		}
	}
	return "", false
}

// OnePerLine renders each cell on its own line
func (g *Grid) OnePerLine() string {
	var sb strings.Builder
	if g.hasHeader() {
		sb.WriteString(g.opts.Header.Contents)
		sb.WriteByte('\n')
	}
	for _, c := range g.cells {
		sb.WriteString(c.Contents)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Render fits the grid into width, falling back to one cell per line
func (g *Grid) Render(width int) string {
	if out, ok := g.FitIntoWidth(width); ok {
		return out
	}
	return g.OnePerLine()
}

func (g *Grid) arrange(cols int) layout {
	n := len(g.cells)
	rows := (n + cols - 1) / cols
	if g.opts.Direction == TopToBottom {
		// Column-major filling may not need every requested column.
		cols = (n + rows - 1) / rows
	}

	l := layout{rows: rows, cols: cols, widths: make([]int, cols)}
	if g.hasHeader() {
		for col := range l.widths {
			l.widths[col] = g.opts.Header.Width
		}
	}
	for i, cell := range g.cells {
		_, col := l.position(i, g.opts.Direction)
		if cell.Width > l.widths[col] {
			l.widths[col] = cell.Width
		}
	}
	return l
}

func (g *Grid) hasHeader() bool {
	return g.opts.Header.Contents != ""
}

func (l layout) position(i int, dir Direction) (row, col int) {
	if dir == TopToBottom {
		return i % l.rows, i / l.rows
	}
	return i / l.cols, i % l.cols
}

func (l layout) index(row, col int, dir Direction) int {
	if dir == TopToBottom {
		return col*l.rows + row
	}
	return row*l.cols + col
}

func (l layout) total(margin int) int {
	sum := margin * (l.cols - 1)
	for _, w := range l.widths {
		sum += w
	}
	return sum
}

func (g *Grid) render(l layout) string {
	n := len(g.cells)
	var sb strings.Builder
	if g.hasHeader() {
		// Every column is occupied in its first row, so each gets a title.
		for col := 0; col < l.cols; col++ {
			sb.WriteString(g.opts.Header.Contents)
			if col < l.cols-1 {
				sb.WriteString(strings.Repeat(" ", l.widths[col]-g.opts.Header.Width+g.opts.Margin))
			}
		}
		sb.WriteByte('\n')
	}
	for row := 0; row < l.rows; row++ {
		// Last occupied column in this row is left unpadded.
		last := -1
		for col := 0; col < l.cols; col++ {
			if l.index(row, col, g.opts.Direction) < n {
				last = col
			}
		}
		for col := 0; col <= last; col++ {
			i := l.index(row, col, g.opts.Direction)
			if i >= n {
				continue
			}
			cell := g.cells[i]
			sb.WriteString(cell.Contents)
			if col < last {
				sb.WriteString(strings.Repeat(" ", l.widths[col]-cell.Width+g.opts.Margin))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
