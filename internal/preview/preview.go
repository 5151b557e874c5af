// Package preview renders a bounded tabular preview of an extraction result.
//
// The parser is intentionally naive: it splits on newlines and commas with no
// RFC 4180 quote or escape handling, so quoted fields containing commas are
// split incorrectly and ragged rows are tolerated. This matches the product's
// preview behavior; the preview is cosmetic and the authoritative CSV is the
// stored object.
package preview

import (
	"strings"

	"app/internal/model"
)

// MaxRows is the number of data rows included in a preview.
const MaxRows = 5

// Parse returns up to MaxRows rows of csvText keyed by the header line.
func Parse(csvText string) []model.PreviewRow {
	lines := strings.Split(csvText, "\n")
	if len(lines) == 0 {
		return nil
	}
	headers := strings.Split(lines[0], ",")

	end := len(lines)
	if end > MaxRows+1 {
		end = MaxRows + 1
	}

	rows := make([]model.PreviewRow, 0, end-1)
	for _, line := range lines[1:end] {
		values := strings.Split(line, ",")
		row := make(model.PreviewRow, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = values[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
