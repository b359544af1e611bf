// Package mysqldb backs the row store with a relational cell table, so
// the service can run against MySQL instead of a spreadsheet. One row
// per occupied cell:
//
//	CREATE TABLE whs_cells (
//	    sheet_name VARCHAR(64)  NOT NULL,
//	    row_num    INT          NOT NULL,
//	    col_num    INT          NOT NULL,
//	    cell_value VARCHAR(255) NOT NULL,
//	    PRIMARY KEY (sheet_name, row_num, col_num)
//	);
package mysqldb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"whs-backend/internal/rowstore"
)

type Store struct {
	db *sql.DB
}

func New(dsn string) (*Store, error) {
	const op = "rowstore.mysqldb.New"

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Fetch(ctx context.Context, rng string) ([][]rowstore.Cell, error) {
	const op = "rowstore.mysqldb.Fetch"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return nil, fmt.Errorf("%s: malformed range %q", op, rng)
	}

	query := `SELECT row_num, col_num, cell_value FROM whs_cells
              WHERE sheet_name = ? AND row_num >= ? AND col_num BETWEEN ? AND ?`
	args := []interface{}{r.Sheet, r.StartRow, r.StartCol, endColOrMax(r)}
	if r.EndRow != 0 {
		query += ` AND row_num <= ?`
		args = append(args, r.EndRow)
	}
	query += ` ORDER BY row_num, col_num`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch %s: %w", op, rng, err)
	}
	defer rows.Close()

	// Collapse the sparse cell list into dense rows, the way a sheet
	// range read comes back: unoccupied rows inside the span dropped
	// only at the tail, gaps inside a row filled with empties.
	byRow := make(map[int][]rowstore.Cell)
	lastRow := r.StartRow - 1
	for rows.Next() {
		var rowNum, colNum int
		var value string
		if err := rows.Scan(&rowNum, &colNum, &value); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		line := byRow[rowNum]
		for len(line) < colNum-r.StartCol+1 {
			line = append(line, rowstore.Empty)
		}
		line[colNum-r.StartCol] = rowstore.Text(value)
		byRow[rowNum] = line
		if rowNum > lastRow {
			lastRow = rowNum
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var out [][]rowstore.Cell
	for rowNum := r.StartRow; rowNum <= lastRow; rowNum++ {
		out = append(out, byRow[rowNum])
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, rng string, row []rowstore.Cell) error {
	const op = "rowstore.mysqldb.Append"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return fmt.Errorf("%s: malformed range %q", op, rng)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var last sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(row_num) FROM whs_cells
         WHERE sheet_name = ? AND row_num >= ? AND col_num BETWEEN ? AND ?`,
		r.Sheet, r.StartRow, r.StartCol, endColOrMax(r),
	).Scan(&last)
	if err != nil {
		return fmt.Errorf("%s: find last row in %s: %w", op, rng, err)
	}

	target := r.StartRow
	if last.Valid {
		target = int(last.Int64) + 1
	}

	if err := writeRow(ctx, tx, r.Sheet, target, r.StartCol, row); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, rng string, rows [][]rowstore.Cell) error {
	const op = "rowstore.mysqldb.Update"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return fmt.Errorf("%s: malformed range %q", op, rng)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	for i, row := range rows {
		if err := writeRow(ctx, tx, r.Sheet, r.StartRow+i, r.StartCol, row); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}
	return nil
}

func writeRow(ctx context.Context, tx *sql.Tx, sheet string, rowNum, startCol int, row []rowstore.Cell) error {
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO whs_cells (sheet_name, row_num, col_num, cell_value)
        VALUES (?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE cell_value = VALUES(cell_value)
    `)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range row {
		if _, err := stmt.ExecContext(ctx, sheet, rowNum, startCol+i, c.String()); err != nil {
			return fmt.Errorf("write cell %s r%dc%d: %w", sheet, rowNum, startCol+i, err)
		}
	}
	return nil
}

func endColOrMax(r rowstore.Range) int {
	if r.EndCol == 0 {
		return 1 << 14
	}
	return r.EndCol
}
