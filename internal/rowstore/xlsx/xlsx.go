// Package xlsx backs the row store with a local .xlsx workbook via
// excelize, for deployments that keep the book on disk instead of in
// Google Sheets. Every write saves the file, matching the no-cache
// policy of the rest of the service.
package xlsx

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"whs-backend/internal/rowstore"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Fetch(_ context.Context, rng string) ([][]rowstore.Cell, error) {
	const op = "rowstore.xlsx.Fetch"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return nil, fmt.Errorf("%s: malformed range %q", op, rng)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: open %s: %w", op, s.path, err)
	}
	defer func() { _ = f.Close() }()

	all, err := f.GetRows(r.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %s: %w", op, r.Sheet, err)
	}

	var out [][]rowstore.Cell
	for row := r.StartRow; row <= len(all); row++ {
		if r.EndRow != 0 && row > r.EndRow {
			break
		}
		line := all[row-1]
		var cells []rowstore.Cell
		for col := r.StartCol; r.EndCol == 0 || col <= r.EndCol; col++ {
			if col > len(line) {
				break
			}
			cells = append(cells, rowstore.Text(line[col-1]))
		}
		out = append(out, cells)
	}
	for len(out) > 0 && emptyRow(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, rng string, row []rowstore.Cell) error {
	const op = "rowstore.xlsx.Append"

	existing, err := s.Fetch(ctx, rng)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return fmt.Errorf("%s: malformed range %q", op, rng)
	}

	target := r.StartRow + len(existing)
	return s.writeRows(r, target, [][]rowstore.Cell{row}, op)
}

func (s *Store) Update(_ context.Context, rng string, rows [][]rowstore.Cell) error {
	const op = "rowstore.xlsx.Update"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return fmt.Errorf("%s: malformed range %q", op, rng)
	}
	return s.writeRows(r, r.StartRow, rows, op)
}

func (s *Store) writeRows(r rowstore.Range, startRow int, rows [][]rowstore.Cell, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("%s: open %s: %w", op, s.path, err)
	}
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		raw := make([]interface{}, len(row))
		for j, c := range row {
			raw[j] = c.Raw()
		}
		cell := rowstore.ColName(r.StartCol) + fmt.Sprint(startRow+i)
		if err := f.SetSheetRow(r.Sheet, cell, &raw); err != nil {
			return fmt.Errorf("%s: write row %s!%s: %w", op, r.Sheet, cell, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("%s: save %s: %w", op, s.path, err)
	}
	return nil
}

func emptyRow(row []rowstore.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
