package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sprite-ai/gerrit-cli/internal/model"
)

// Parse splits line-delimited query output into change records. The stats
// record that ends the stream must announce exactly as many rows as were
// received.
func Parse(raw string) ([]model.Review, error) {
	var (
		reviews  []model.Review
		rowCount int64
	)

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		var rec model.Review
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", model.ErrProtocol, i+1, err)
		}
		// One record per line; anything after it means the line is corrupt.
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: line %d: trailing data after record", model.ErrProtocol, i+1)
		}

		switch {
		case rec.IsChange():
			reviews = append(reviews, rec)
		case rec.IsStats():
			n, err := rec.Int("rowCount")
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", model.ErrProtocol, i+1, err)
			}
			rowCount = n
		case model.ToString(rec["type"]) == "error":
			return nil, fmt.Errorf("%w: server error: %s", model.ErrProtocol, model.ToString(rec["message"]))
		}
	}

	if int64(len(reviews)) != rowCount {
		return nil, fmt.Errorf("%w: expected %d rows, found %d", model.ErrDataIntegrity, rowCount, len(reviews))
	}
	return reviews, nil
}
