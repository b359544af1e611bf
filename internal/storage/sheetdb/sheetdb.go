// Package sheetdb implements the work-hours store on top of a
// rowstore.RowStore. The spreadsheet is the source of truth: nothing is
// cached between calls, every operation re-fetches the range it needs.
package sheetdb

import (
	"whs-backend/internal/rowstore"
)

// Table geometry. Column positions are fixed; the first data row is the
// header offset the Row Locator result gets translated by.
const (
	// detail table: date | name | hours | cashTips | creditTips | totalTips
	detailSheet    = "UserInput"
	detailRange    = "UserInput!A2:F"
	detailFirstRow = 2

	// summary table, one row per day:
	// date | cash | credit | total | hours | cash/h | credit/h | total/h | completionTo50
	summarySheet    = "SaveDay"
	summaryRange    = "SaveDay!A2:I"
	summaryFirstRow = 2

	// roster sheet: logins on fixed rows 2-3, names from row 4, and the
	// per-employee totals block in columns B-E
	rosterSheet    = "whs"
	loginsRange    = "whs!A2:B3"
	namesRange     = "whs!A4:A"
	totalsRange    = "whs!B4:E"
	rosterFirstRow = 4
)

type Store struct {
	rs rowstore.RowStore
}

func New(rs rowstore.RowStore) *Store {
	return &Store{rs: rs}
}
