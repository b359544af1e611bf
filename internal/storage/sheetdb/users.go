package sheetdb

import (
	"context"
	"fmt"
	"strings"

	"whs-backend/internal/rowstore"
	"whs-backend/internal/storage"
)

// Logins returns the credential rows from the roster sheet. Rows with a
// blank name or password are dropped.
func (s *Store) Logins(ctx context.Context) ([]storage.LoginUser, error) {
	const op = "storage.sheetdb.Logins"

	rows, err := s.rs.Fetch(ctx, loginsRange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var users []storage.LoginUser
	for _, row := range rows {
		name := strings.TrimSpace(rowstore.At(row, 0).String())
		pass := strings.TrimSpace(rowstore.At(row, 1).String())
		if name == "" || pass == "" {
			continue
		}
		users = append(users, storage.LoginUser{UserName: name, Password: pass})
	}
	return users, nil
}

// AddUser appends a name to the roster after a case-insensitive
// duplicate check.
func (s *Store) AddUser(ctx context.Context, name string) error {
	const op = "storage.sheetdb.AddUser"

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s: empty user name: %w", op, storage.ErrValidation)
	}

	rows, err := s.rs.Fetch(ctx, namesRange)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, row := range rows {
		existing := strings.TrimSpace(rowstore.At(row, 0).String())
		if strings.EqualFold(existing, strings.TrimSpace(name)) {
			return fmt.Errorf("%s: user %q: %w", op, name, storage.ErrAlreadyExists)
		}
	}

	if err := s.rs.Append(ctx, namesRange, []rowstore.Cell{rowstore.Text(name)}); err != nil {
		return fmt.Errorf("%s: append: %w", op, err)
	}
	return nil
}

// UpdateEmployeeTotals overwrites one row of the per-employee totals
// block on the roster sheet, located by name. Hours are serialized in
// the block's clock form.
func (s *Store) UpdateEmployeeTotals(ctx context.Context, t storage.EmployeeTotals) error {
	const op = "storage.sheetdb.UpdateEmployeeTotals"

	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%s: empty employee name: %w", op, storage.ErrValidation)
	}

	rows, err := s.rs.Fetch(ctx, totalsRange)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	idx := locateByName(rows, t.Name)
	if idx == notFound {
		return fmt.Errorf("%s: employee %q: %w", op, t.Name, storage.ErrNotFound)
	}

	row := []rowstore.Cell{
		rowstore.Text(t.Name),
		rowstore.Text(formatClock(t.Hours)),
		rowstore.Number(t.CashTips),
		rowstore.Number(t.CreditTips),
	}

	rng := rowstore.RowRange(rosterSheet, "B", "E", idx+rosterFirstRow)
	if err := s.rs.Update(ctx, rng, [][]rowstore.Cell{row}); err != nil {
		return fmt.Errorf("%s: update %s: %w", op, rng, err)
	}
	return nil
}
