// Package output renders reports and raw records for the terminal.
package output

import (
	"bytes"
	"cmp"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"

	"github.com/sprite-ai/gerrit-cli/internal/model"
	"github.com/sprite-ai/gerrit-cli/internal/report"
)

// Format selects how a report is written.
type Format int

const (
	FormatTable Format = iota
	FormatCSV
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTable:
		return "TABLE"
	case FormatCSV:
		return "CSV"
	case FormatJSON:
		return "JSON"
	default:
		return "unknown"
	}
}

// Formats lists the accepted --output-format values.
var Formats = []string{"TABLE", "CSV", "JSON"}

// ParseFormat matches s case-insensitively against Formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TABLE":
		return FormatTable, nil
	case "CSV":
		return FormatCSV, nil
	case "JSON":
		return FormatJSON, nil
	default:
		return FormatTable, fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(Formats, ", "))
	}
}

// Write renders rep to w in the given format.
func Write(w io.Writer, f Format, rep *report.Report) error {
	switch f {
	case FormatTable:
		return WriteTable(w, rep)
	case FormatCSV:
		return WriteCSV(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	default:
		return fmt.Errorf("unknown output format %d", f)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// WriteTable draws rep as a bordered table sorted by its first column.
func WriteTable(w io.Writer, rep *report.Report) error {
	if len(rep.Columns) == 0 {
		return nil
	}
	headers := make([]string, len(rep.Columns))
	for i, c := range rep.Columns {
		headers[i] = c.Name
	}

	rows := SortedRows(rep.Rows)
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = CellString(v)
		}
	}

	cols := rep.Columns
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col < len(cols) && cols[col].Align == model.AlignLeft {
				return style.Align(lipgloss.Left)
			}
			return style.Align(lipgloss.Right)
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// SortedRows returns a copy of rows stably sorted by the first cell.
// Integer cells compare numerically, everything else as text.
func SortedRows(rows []report.Row) []report.Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b report.Row) int {
		if len(a) == 0 || len(b) == 0 {
			return cmp.Compare(len(a), len(b))
		}
		ai, aok := a[0].(int64)
		bi, bok := b[0].(int64)
		if aok && bok {
			return cmp.Compare(ai, bi)
		}
		return cmp.Compare(CellString(a[0]), CellString(b[0]))
	})
	return out
}

// WriteCSV writes a header of display names followed by one line per row.
func WriteCSV(w io.Writer, rep *report.Report) error {
	cw := csv.NewWriter(w)
	headers := make([]string, len(rep.Columns))
	for i, c := range rep.Columns {
		headers[i] = c.Name
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = CellString(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// orderedRow marshals a row as an object whose keys follow column order.
type orderedRow struct {
	cols []model.Column
	row  report.Row
}

func (o orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range o.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Field)
		if err != nil {
			return nil, err
		}
		var v any
		if i < len(o.row) {
			v = o.row[i]
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Field, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON writes the report as an indented array of objects keyed by
// field name.
func WriteJSON(w io.Writer, rep *report.Report) error {
	objs := make([]orderedRow, len(rep.Rows))
	for i, row := range rep.Rows {
		objs[i] = orderedRow{cols: rep.Columns, row: row}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

// WriteRecord writes one raw record as indented JSON, highlighted when
// color is set.
func WriteRecord(w io.Writer, r model.Review, color bool) error {
	s, err := RecordString(r, color)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// RecordString renders r the same way WriteRecord does, without the
// trailing newline.
func RecordString(r model.Review, color bool) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	s := strings.TrimRight(string(pretty.Pretty(data)), "\n")
	if color {
		s = Colorize("json", s)
	}
	return s, nil
}

// CellString renders a cell value as text.
func CellString(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return model.ToString(v)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
