package sheetdb

import (
	"context"
	"fmt"
	"time"

	"whs-backend/internal/rowstore"
	"whs-backend/internal/storage"
)

// EntriesByDate returns the detail rows for one day, in sheet order.
// Unparsable hour/tip cells count as zero; rows with a bad date are
// skipped entirely.
func (s *Store) EntriesByDate(ctx context.Context, date time.Time) ([]storage.WorkEntry, error) {
	const op = "storage.sheetdb.EntriesByDate"

	rows, err := s.rs.Fetch(ctx, detailRange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var entries []storage.WorkEntry
	for _, row := range rows {
		d, ok := parseDate(rowstore.At(row, 0))
		if !ok || !sameDay(d, date) {
			continue
		}
		entries = append(entries, storage.WorkEntry{
			Date:       d,
			Name:       rowstore.At(row, 1).String(),
			Hours:      rowstore.At(row, 2).FloatOr0(),
			CashTips:   rowstore.At(row, 3).FloatOr0(),
			CreditTips: rowstore.At(row, 4).FloatOr0(),
			TotalTips:  rowstore.At(row, 5).FloatOr0(),
		})
	}
	return entries, nil
}

// UpsertWorkEntry writes the date/name/hours columns of one detail row,
// updating in place when a row for (date, name) already exists and
// appending otherwise. The tip columns are left alone; the next
// distribution rewrites them.
func (s *Store) UpsertWorkEntry(ctx context.Context, e storage.WorkEntry) error {
	const op = "storage.sheetdb.UpsertWorkEntry"

	rows, err := s.rs.Fetch(ctx, detailRange)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	row := []rowstore.Cell{
		rowstore.Text(formatDate(e.Date)),
		rowstore.Text(e.Name),
		rowstore.Number(e.Hours),
	}

	idx := locate(rows, e.Date, e.Name)
	if idx == notFound {
		if err := s.rs.Append(ctx, detailRange, row); err != nil {
			return fmt.Errorf("%s: append: %w", op, err)
		}
		return nil
	}

	rng := rowstore.RowRange(detailSheet, "A", "C", idx+detailFirstRow)
	if err := s.rs.Update(ctx, rng, [][]rowstore.Cell{row}); err != nil {
		return fmt.Errorf("%s: update %s: %w", op, rng, err)
	}
	return nil
}

// UpsertAllocations rewrites the full detail rows for one day from a
// freshly computed allocation set, superseding whatever tip values were
// there. Each allocation targets the first row matching (date, name);
// updates never shift rows, so one fetched snapshot serves the whole
// set.
func (s *Store) UpsertAllocations(ctx context.Context, date time.Time, allocs []storage.TipAllocation) error {
	const op = "storage.sheetdb.UpsertAllocations"

	rows, err := s.rs.Fetch(ctx, detailRange)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, a := range allocs {
		row := []rowstore.Cell{
			rowstore.Text(formatDate(date)),
			rowstore.Text(a.Name),
			rowstore.Number(a.Hours),
			rowstore.Number(a.CashTips),
			rowstore.Number(a.CreditTips),
			rowstore.Number(a.TotalTips),
		}

		idx := locate(rows, date, a.Name)
		if idx == notFound {
			if err := s.rs.Append(ctx, detailRange, row); err != nil {
				return fmt.Errorf("%s: append %s: %w", op, a.Name, err)
			}
			continue
		}

		rng := rowstore.RowRange(detailSheet, "A", "F", idx+detailFirstRow)
		if err := s.rs.Update(ctx, rng, [][]rowstore.Cell{row}); err != nil {
			return fmt.Errorf("%s: update %s: %w", op, rng, err)
		}
	}
	return nil
}
