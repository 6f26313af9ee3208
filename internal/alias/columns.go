package alias

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sprite-ai/gerrit-cli/internal/model"
)

// DefaultColumns is the column set shown when nothing else is configured.
var DefaultColumns = []string{
	"number:right",
	"project:left",
	"owner:left",
	"subject:left:80",
	"age:right",
}

// CompileColumns expands column tokens against the results table and parses
// each one. A nil defaults list falls back to DefaultColumns.
func CompileColumns(tokens []string, results Table, defaults []string) ([]model.Column, error) {
	if len(tokens) == 0 {
		tokens = []string{DefaultToken}
	}
	if defaults == nil {
		defaults = DefaultColumns
	}

	expanded, err := Expand(tokens, results, defaults)
	if err != nil {
		return nil, err
	}

	cols := make([]model.Column, 0, len(expanded))
	for _, tok := range expanded {
		col, err := ParseColumn(tok)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// ParseColumn parses a "field[:align[:length]]" token.
func ParseColumn(token string) (model.Column, error) {
	parts := strings.Split(token, ":")
	field := parts[0]
	if field == "" {
		return model.Column{}, fmt.Errorf("%w: column %q has no field name", model.ErrConfiguration, token)
	}

	var alignText string
	if len(parts) > 1 {
		alignText = parts[1]
	}
	align, err := model.ParseAlignment(alignText)
	if err != nil {
		return model.Column{}, fmt.Errorf("column %q: %w", token, err)
	}

	length := 0
	if len(parts) > 2 && parts[2] != "" {
		length, err = strconv.Atoi(parts[2])
		if err != nil || length < 0 {
			return model.Column{}, fmt.Errorf("%w: column %q: length %q is not a non-negative integer",
				model.ErrConfiguration, token, parts[2])
		}
	}

	return model.NewColumn(field, align, length), nil
}
