package layout

import (
	"errors"
	"strings"

	"deckfit/deck"
)

// TablePage is one slide worth of table content. Every page carries the full
// header row; Rows holds data rows only.
type TablePage struct {
	Headers   []string
	Rows      [][]string
	PartIndex int
	PartTotal int
}

// ErrMalformedTable marks tables that cannot be rendered meaningfully: no
// headers, or no data rows once the duplicated header row is removed.
var ErrMalformedTable = errors.New("table has no renderable content")

// tableNormalization records what had to be corrected before pagination.
type tableNormalization struct {
	DroppedHeaderRow bool
	RaggedRows       int
}

// PaginateTable normalizes table rows and partitions them into consecutive
// pages of at most rowLimit data rows. The generator frequently repeats the
// header row as the first data row - such a row is dropped under
// case-insensitive, whitespace-trimmed, column-wise comparison.
func PaginateTable(t deck.TableData, rowLimit int) ([]TablePage, tableNormalization, error) {
	var norm tableNormalization

	if len(t.Headers) == 0 {
		return nil, norm, ErrMalformedTable
	}

	rows := t.Rows
	if len(rows) > 0 && rowEqualsFold(rows[0], t.Headers) {
		rows = rows[1:]
		norm.DroppedHeaderRow = true
	}
	if len(rows) == 0 {
		return nil, norm, ErrMalformedTable
	}

	rows, norm.RaggedRows = normalizeRowWidths(rows, len(t.Headers))

	total := ceilDiv(len(rows), rowLimit)
	pages := make([]TablePage, 0, total)
	for start := 0; start < len(rows); start += rowLimit {
		end := min(start+rowLimit, len(rows))
		pages = append(pages, TablePage{
			Headers:   append([]string(nil), t.Headers...),
			Rows:      rows[start:end],
			PartIndex: len(pages) + 1,
			PartTotal: total,
		})
	}
	return pages, norm, nil
}

// rowEqualsFold compares a data row to the header row column by column,
// ignoring case and surrounding whitespace.
func rowEqualsFold(row, headers []string) bool {
	if len(row) != len(headers) {
		return false
	}
	for i := range row {
		if !strings.EqualFold(strings.TrimSpace(row[i]), strings.TrimSpace(headers[i])) {
			return false
		}
	}
	return true
}

// normalizeRowWidths pads or clips rows to the header width. Returns the
// normalized rows and how many needed fixing.
func normalizeRowWidths(rows [][]string, width int) ([][]string, int) {
	fixed := 0
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == width {
			out[i] = row
			continue
		}
		fixed++
		normalized := make([]string, width)
		copy(normalized, row)
		out[i] = normalized
	}
	return out, fixed
}
