// Package google backs the row store with the Google Sheets v4 API.
package google

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"whs-backend/internal/rowstore"
)

type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

func New(ctx context.Context, credentialsFile, spreadsheetID string) (*Store, error) {
	const op = "rowstore.google.New"

	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *Store) Fetch(ctx context.Context, rng string) ([][]rowstore.Cell, error) {
	const op = "rowstore.google.Fetch"

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: fetch %s: %w", op, rng, err)
	}

	rows := make([][]rowstore.Cell, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]rowstore.Cell, len(raw))
		for i, v := range raw {
			row[i] = rowstore.FromRaw(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) Append(ctx context.Context, rng string, row []rowstore.Cell) error {
	const op = "rowstore.google.Append"

	vr := &sheets.ValueRange{Values: [][]interface{}{rawRow(row)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: append %s: %w", op, rng, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, rng string, rows [][]rowstore.Cell) error {
	const op = "rowstore.google.Update"

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = rawRow(row)
	}

	vr := &sheets.ValueRange{Values: values}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: update %s: %w", op, rng, err)
	}
	return nil
}

func rawRow(row []rowstore.Cell) []interface{} {
	raw := make([]interface{}, len(row))
	for i, c := range row {
		raw[i] = c.Raw()
	}
	return raw
}
