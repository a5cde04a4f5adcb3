package listing

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Formatter renders batches of entries under one Selection
type Formatter struct {
	sel     Selection
	opts    Options
	columns []column
}

// NewFormatter creates a formatter for the given selection
func NewFormatter(sel Selection, opts Options) *Formatter {
	f := &Formatter{sel: sel, opts: opts}
	f.columns = f.buildColumns()
	return f
}

// Batch is the result of formatting one set of entries
type Batch struct {
	// Header is the title row, empty unless the selection asks for one
	Header string
	// Lines holds one rendered line per visible entry, in input order
	Lines []string
	// Entries are the visible entries Lines were rendered from
	Entries []Entry

	widths widthTable
}

// widthTable holds the maximum display width seen per field
type widthTable [numFields]int

func (w *widthTable) update(field Field, text string) {
	if n := runewidth.StringWidth(text); n > w[field] {
		w[field] = n
	}
}

// Format measures every active field across the batch, then renders each entry
// with its fields padded to the column maximum. Hidden entries are dropped before
// either pass so the measured widths always match the rendered rows.
func (f *Formatter) Format(entries []Entry) (*Batch, error) {
	visible := Visible(entries, f.opts.Hidden)

	batch := &Batch{Entries: visible}

	// Measure. Field text is cached so the render pass never recomputes it.
	cells := make([][]string, len(visible))
	for i, e := range visible {
		row := make([]string, len(f.columns))
		for j, col := range f.columns {
			text, err := col.value(e)
			if err != nil {
				return nil, err
			}
			row[j] = text
			batch.widths.update(col.field, text)
		}
		cells[i] = row
	}

	if f.sel.Header {
		titles := make([]string, len(f.columns))
		for j, col := range f.columns {
			titles[j] = col.field.Header()
			batch.widths.update(col.field, titles[j])
		}
		batch.Header = f.renderRow(titles, NameHeader, &batch.widths)
	}

	// Render
	batch.Lines = make([]string, len(visible))
	for i, e := range visible {
		batch.Lines[i] = f.renderRow(cells[i], f.name(e), &batch.widths)
	}

	return batch, nil
}

func (f *Formatter) renderRow(texts []string, name string, widths *widthTable) string {
	var sb strings.Builder
	for j, col := range f.columns {
		width := widths[col.field]
		if col.align == AlignLeft {
			sb.WriteString(runewidth.FillRight(texts[j], width))
		} else {
			sb.WriteString(runewidth.FillLeft(texts[j], width))
		}
		sb.WriteByte(' ')
	}
	sb.WriteString(name)
	return sb.String()
}

func (f *Formatter) name(e Entry) string {
	if f.opts.Name != nil {
		return f.opts.Name(e)
	}
	return e.DisplayName()
}
