package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"

	"github.com/sprite-ai/gerrit-cli/internal/model"
	"github.com/sprite-ai/gerrit-cli/internal/output"
	"github.com/sprite-ai/gerrit-cli/internal/report"
)

// layout converts a report into table columns and rows. Each column is as
// wide as its widest cell or header; cells are padded according to the
// column's alignment since the table itself only left-aligns.
func layout(rep *report.Report) ([]table.Column, []table.Row) {
	widths := make([]int, len(rep.Columns))
	for i, c := range rep.Columns {
		widths[i] = runewidth.StringWidth(c.Name)
	}

	cells := make([][]string, len(rep.Rows))
	for r, row := range rep.Rows {
		cells[r] = make([]string, len(rep.Columns))
		for i := range rep.Columns {
			if i >= len(row) {
				continue
			}
			s := output.CellString(row[i])
			cells[r][i] = s
			if w := runewidth.StringWidth(s); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cols := make([]table.Column, len(rep.Columns))
	for i, c := range rep.Columns {
		cols[i] = table.Column{Title: pad(c.Name, widths[i], c.Align), Width: widths[i]}
	}

	rows := make([]table.Row, len(cells))
	for r, line := range cells {
		row := make(table.Row, len(line))
		for i, s := range line {
			row[i] = pad(s, widths[i], rep.Columns[i].Align)
		}
		rows[r] = row
	}
	return cols, rows
}

func pad(s string, width int, align model.Alignment) string {
	if align == model.AlignLeft {
		return runewidth.FillRight(s, width)
	}
	return runewidth.FillLeft(s, width)
}
