package sheetdb

import (
	"strings"
	"time"

	"whs-backend/internal/rowstore"
)

// notFound is the locate result for "no matching row".
const notFound = -1

// locate scans fetched rows top to bottom and returns the logical index
// of the first row whose column 0 parses to targetDate and, when
// targetName is non-empty, whose column 1 matches it case-insensitively
// after trimming. Rows with unparsable dates are skipped. The first
// match wins: if duplicates ever exist, the earliest row is the
// authoritative one. Callers translate the index to a sheet row by
// adding the table's first data row.
func locate(rows [][]rowstore.Cell, targetDate time.Time, targetName string) int {
	for i, row := range rows {
		d, ok := parseDate(rowstore.At(row, 0))
		if !ok || !sameDay(d, targetDate) {
			continue
		}
		if targetName != "" {
			name := strings.TrimSpace(rowstore.At(row, 1).String())
			if !strings.EqualFold(name, strings.TrimSpace(targetName)) {
				continue
			}
		}
		return i
	}
	return notFound
}

// locateByName is the roster-sheet variant: no date column, the name is
// column 0 of the fetched block.
func locateByName(rows [][]rowstore.Cell, targetName string) int {
	for i, row := range rows {
		name := strings.TrimSpace(rowstore.At(row, 0).String())
		if name != "" && strings.EqualFold(name, strings.TrimSpace(targetName)) {
			return i
		}
	}
	return notFound
}
