// Package report turns raw query output into a grid of formatted cells.
package report

import (
	"time"

	"github.com/sprite-ai/gerrit-cli/internal/format"
	"github.com/sprite-ai/gerrit-cli/internal/model"
)

// Row holds one formatted value per report column.
type Row []any

// Report pairs the formatted grid with the columns it was built for and the
// records it was built from.
type Report struct {
	Columns []model.Column
	Rows    []Row
	Reviews []model.Review
}

// Generate parses raw query output and formats every record. All age cells
// are measured against now.
func Generate(now time.Time, raw string, cols []model.Column) (*Report, error) {
	reviews, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Build(now, reviews, cols)
}

// Build formats already parsed records.
func Build(now time.Time, reviews []model.Review, cols []model.Column) (*Report, error) {
	rep := &Report{
		Columns: cols,
		Rows:    make([]Row, 0, len(reviews)),
		Reviews: reviews,
	}
	for _, r := range reviews {
		row := make(Row, len(cols))
		for i, c := range cols {
			v, err := format.Cell(now, c, r)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep, nil
}

// Index returns the position of the column rendered from field, or -1.
func (r *Report) Index(field string) int {
	for i, c := range r.Columns {
		if c.Field == field {
			return i
		}
	}
	return -1
}
