// Package rowstore defines the capability interface the rest of the
// service uses to talk to a row-oriented table: fetch a range, append a
// row, overwrite a range. Backends live in subpackages (google, xlsx,
// mysqldb, memory); all table-specific knowledge (sheet names, ranges,
// header offsets) stays with the callers.
package rowstore

import (
	"context"
	"strconv"
	"strings"
)

// RowStore is the row-store collaborator contract. Ranges are A1-style
// strings like "UserInput!A2:F" (open-ended) or "SaveDay!A5:I5" (exact).
type RowStore interface {
	// Fetch returns the occupied rows inside the range, top to bottom.
	// A range with no data yields an empty slice, not an error.
	Fetch(ctx context.Context, rng string) ([][]Cell, error)

	// Append places one row after the last occupied row of the range.
	Append(ctx context.Context, rng string, row []Cell) error

	// Update overwrites the exact range with the given rows in place.
	Update(ctx context.Context, rng string, rows [][]Cell) error
}

type kind int

const (
	kindEmpty kind = iota
	kindText
	kindNumber
)

// Cell is one untyped spreadsheet value: text, number or empty.
type Cell struct {
	kind kind
	text string
	num  float64
}

// Empty is the zero Cell.
var Empty = Cell{}

func Text(s string) Cell {
	if s == "" {
		return Empty
	}
	return Cell{kind: kindText, text: s}
}

func Number(f float64) Cell {
	return Cell{kind: kindNumber, num: f}
}

func (c Cell) IsEmpty() bool { return c.kind == kindEmpty }

// String renders the cell the way it is written to a sheet. Numbers use
// the shortest round-tripping decimal form.
func (c Cell) String() string {
	switch c.kind {
	case kindText:
		return c.text
	case kindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	}
	return ""
}

// Float returns the numeric value of the cell. Text cells are parsed
// leniently; anything unparsable reports ok=false.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case kindNumber:
		return c.num, true
	case kindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// FloatOr0 is the lenient variant: unparsable cells count as zero.
func (c Cell) FloatOr0() float64 {
	f, ok := c.Float()
	if !ok {
		return 0
	}
	return f
}

// FromRaw converts a backend value (string, float64, int, nil...) into
// a Cell.
func FromRaw(v interface{}) Cell {
	switch t := v.(type) {
	case nil:
		return Empty
	case string:
		return Text(t)
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		if t {
			return Text("TRUE")
		}
		return Text("FALSE")
	default:
		return Empty
	}
}

// Raw converts a Cell back into the interface value backends expect.
func (c Cell) Raw() interface{} {
	switch c.kind {
	case kindText:
		return c.text
	case kindNumber:
		return c.num
	}
	return ""
}

// At returns row[i], or Empty when the row is shorter. Sheets trim
// trailing empty cells, so short rows are normal.
func At(row []Cell, i int) Cell {
	if i < 0 || i >= len(row) {
		return Empty
	}
	return row[i]
}

// Range is a parsed A1-style range. EndRow 0 means open-ended.
type Range struct {
	Sheet    string
	StartCol int // 1-based
	StartRow int // 1-based
	EndCol   int
	EndRow   int
}

// ParseRange parses "<Sheet>!<Col><Row>:<Col>[<Row>]" or a single-cell
// "<Sheet>!<Col><Row>" reference.
func ParseRange(rng string) (Range, bool) {
	var r Range
	sheet, ref, ok := strings.Cut(rng, "!")
	if !ok {
		return r, false
	}
	r.Sheet = sheet

	start, end, hasEnd := strings.Cut(ref, ":")
	r.StartCol, r.StartRow, ok = parseRef(start)
	if !ok || r.StartRow == 0 {
		return r, false
	}
	if !hasEnd {
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
		return r, true
	}
	r.EndCol, r.EndRow, ok = parseRef(end)
	if !ok {
		return r, false
	}
	return r, true
}

func parseRef(ref string) (col, row int, ok bool) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}
	if col == 0 {
		return 0, 0, false
	}
	if i == len(ref) {
		return col, 0, true
	}
	n, err := strconv.Atoi(ref[i:])
	if err != nil || n <= 0 {
		return 0, 0, false
	}
	return col, n, true
}

// ColName converts a 1-based column index to its letter form.
func ColName(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// RowRange builds the exact single-row range the Upsert Writer updates,
// e.g. RowRange("UserInput", "A", "F", 7) -> "UserInput!A7:F7".
func RowRange(sheet, startCol, endCol string, row int) string {
	return sheet + "!" + startCol + strconv.Itoa(row) + ":" + endCol + strconv.Itoa(row)
}
