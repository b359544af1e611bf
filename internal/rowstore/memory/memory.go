// Package memory is an in-memory rowstore.RowStore used by tests. It
// keeps whole sheets as absolute grids so header offsets behave like
// the real backends.
package memory

import (
	"context"
	"fmt"
	"sync"

	"whs-backend/internal/rowstore"
)

type Store struct {
	mu     sync.Mutex
	sheets map[string][][]rowstore.Cell // absolute grid, [0] is sheet row 1
}

func New() *Store {
	return &Store{sheets: make(map[string][][]rowstore.Cell)}
}

// Seed overwrites a single absolute row of a sheet, growing the grid as
// needed. Row is 1-based.
func (s *Store) Seed(sheet string, row int, cells ...rowstore.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setRow(sheet, row, 1, cells)
}

func (s *Store) Fetch(_ context.Context, rng string) ([][]rowstore.Cell, error) {
	const op = "rowstore.memory.Fetch"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return nil, fmt.Errorf("%s: malformed range %q", op, rng)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.sheets[r.Sheet]
	var out [][]rowstore.Cell
	for row := r.StartRow; row <= len(grid); row++ {
		if r.EndRow != 0 && row > r.EndRow {
			break
		}
		out = append(out, slice(grid[row-1], r.StartCol, r.EndCol))
	}
	// like the Sheets API: rows after the last occupied one are omitted
	for len(out) > 0 && empty(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (s *Store) Append(_ context.Context, rng string, row []rowstore.Cell) error {
	const op = "rowstore.memory.Append"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return fmt.Errorf("%s: malformed range %q", op, rng)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.sheets[r.Sheet]
	last := r.StartRow - 1
	for abs := r.StartRow; abs <= len(grid); abs++ {
		if !empty(slice(grid[abs-1], r.StartCol, r.EndCol)) {
			last = abs
		}
	}
	s.setRow(r.Sheet, last+1, r.StartCol, row)
	return nil
}

func (s *Store) Update(_ context.Context, rng string, rows [][]rowstore.Cell) error {
	const op = "rowstore.memory.Update"

	r, ok := rowstore.ParseRange(rng)
	if !ok {
		return fmt.Errorf("%s: malformed range %q", op, rng)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range rows {
		s.setRow(r.Sheet, r.StartRow+i, r.StartCol, row)
	}
	return nil
}

func (s *Store) setRow(sheet string, row, startCol int, cells []rowstore.Cell) {
	grid := s.sheets[sheet]
	for len(grid) < row {
		grid = append(grid, nil)
	}
	line := grid[row-1]
	for i, c := range cells {
		col := startCol + i // 1-based
		for len(line) < col {
			line = append(line, rowstore.Empty)
		}
		line[col-1] = c
	}
	grid[row-1] = line
	s.sheets[sheet] = grid
}

func slice(line []rowstore.Cell, startCol, endCol int) []rowstore.Cell {
	var out []rowstore.Cell
	for col := startCol; endCol == 0 || col <= endCol; col++ {
		if col > len(line) {
			break
		}
		out = append(out, line[col-1])
	}
	for len(out) > 0 && out[len(out)-1].IsEmpty() {
		out = out[:len(out)-1]
	}
	return out
}

func empty(row []rowstore.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
