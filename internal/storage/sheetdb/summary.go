package sheetdb

import (
	"context"
	"fmt"
	"time"

	"whs-backend/internal/rowstore"
	"whs-backend/internal/storage"
)

// SummaryByDate returns the summary row for one day, or
// storage.ErrNotFound when the day has not been seeded yet.
func (s *Store) SummaryByDate(ctx context.Context, date time.Time) (*storage.DaySummary, error) {
	const op = "storage.sheetdb.SummaryByDate"

	rows, err := s.rs.Fetch(ctx, summaryRange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx := locate(rows, date, "")
	if idx == notFound {
		return nil, fmt.Errorf("%s: %s: %w", op, formatDate(date), storage.ErrNotFound)
	}

	row := rows[idx]
	return &storage.DaySummary{
		Date:           date,
		CashTips:       rowstore.At(row, 1).FloatOr0(),
		CreditTips:     rowstore.At(row, 2).FloatOr0(),
		TotalTips:      rowstore.At(row, 3).FloatOr0(),
		TotalHours:     rowstore.At(row, 4).FloatOr0(),
		CashPerHour:    rowstore.At(row, 5).FloatOr0(),
		CreditPerHour:  rowstore.At(row, 6).FloatOr0(),
		TotalPerHour:   rowstore.At(row, 7).FloatOr0(),
		CompletionTo50: rowstore.At(row, 8).FloatOr0(),
	}, nil
}

// UpsertDaySummary writes one summary row, keyed by date: update in
// place when the day already has a row, append otherwise.
func (s *Store) UpsertDaySummary(ctx context.Context, sum storage.DaySummary) error {
	const op = "storage.sheetdb.UpsertDaySummary"

	rows, err := s.rs.Fetch(ctx, summaryRange)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	row := []rowstore.Cell{
		rowstore.Text(formatDate(sum.Date)),
		rowstore.Number(sum.CashTips),
		rowstore.Number(sum.CreditTips),
		rowstore.Number(sum.TotalTips),
		rowstore.Number(sum.TotalHours),
		rowstore.Number(sum.CashPerHour),
		rowstore.Number(sum.CreditPerHour),
		rowstore.Number(sum.TotalPerHour),
		rowstore.Number(sum.CompletionTo50),
	}

	idx := locate(rows, sum.Date, "")
	if idx == notFound {
		if err := s.rs.Append(ctx, summaryRange, row); err != nil {
			return fmt.Errorf("%s: append: %w", op, err)
		}
		return nil
	}

	rng := rowstore.RowRange(summarySheet, "A", "I", idx+summaryFirstRow)
	if err := s.rs.Update(ctx, rng, [][]rowstore.Cell{row}); err != nil {
		return fmt.Errorf("%s: update %s: %w", op, rng, err)
	}
	return nil
}
