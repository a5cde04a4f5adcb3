package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a new table with consistent styling
func NewTable(headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	// Only the first column (the key) is emphasised
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})

	tbl.WithPadding(2)

	// Use lipgloss Width function to properly calculate string width with ANSI codes
	tbl.WithWidthFunc(lipgloss.Width)

	tbl.WithWriter(Stdout)

	return tbl
}
