// Package tips implements the tip distribution engine: splitting a
// day's cash and credit tip pools across the employees who worked that
// day, proportional to hours.
package tips

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"whs-backend/internal/storage"
)

// targetPerHour is the house target rate; CompletionTo50 is the gap
// left to it, never negative.
const targetPerHour = 50.0

type TipStorage interface {
	EntriesByDate(ctx context.Context, date time.Time) ([]storage.WorkEntry, error)
	SummaryByDate(ctx context.Context, date time.Time) (*storage.DaySummary, error)
	UpsertWorkEntry(ctx context.Context, e storage.WorkEntry) error
	UpsertDaySummary(ctx context.Context, sum storage.DaySummary) error
	UpsertAllocations(ctx context.Context, date time.Time, allocs []storage.TipAllocation) error
}

type TipService struct {
	storage TipStorage
}

func NewTipService(storage TipStorage) *TipService {
	return &TipService{storage: storage}
}

// Distribute recomputes a day's summary and per-employee allocations
// from the detail rows currently in the store, then writes both tables.
// Employees are iterated in fetched order. Repeating the call with the
// same inputs rewrites identical rows, so a failed run is safe to
// retry; there is no partial-commit guarantee between the two writes.
func (s *TipService) Distribute(ctx context.Context, date time.Time, cashTips, creditTips float64) (*storage.DaySummary, []storage.TipAllocation, error) {
	const op = "service.tips.Distribute"

	if cashTips < 0 || creditTips < 0 {
		return nil, nil, fmt.Errorf("%s: negative tips: %w", op, storage.ErrValidation)
	}

	entries, err := s.storage.EntriesByDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	var totalHours float64
	for _, e := range entries {
		totalHours += e.Hours
	}
	if totalHours <= 0 {
		return nil, nil, fmt.Errorf("%s: %s: %w", op, date.Format("01/02/2006"), storage.ErrInsufficientData)
	}

	totalTips := cashTips + creditTips
	cashPerHour := cashTips / totalHours
	creditPerHour := creditTips / totalHours
	totalPerHour := totalTips / totalHours

	completionTo50 := 0.0
	if totalPerHour < targetPerHour {
		completionTo50 = targetPerHour - totalPerHour
	}

	sum := storage.DaySummary{
		Date:           date,
		CashTips:       cashTips,
		CreditTips:     creditTips,
		TotalTips:      totalTips,
		TotalHours:     totalHours,
		CashPerHour:    cashPerHour,
		CreditPerHour:  creditPerHour,
		TotalPerHour:   totalPerHour,
		CompletionTo50: completionTo50,
	}

	allocs := make([]storage.TipAllocation, 0, len(entries))
	for _, e := range entries {
		cash := e.Hours * cashPerHour
		credit := e.Hours * creditPerHour
		allocs = append(allocs, storage.TipAllocation{
			Date:       date,
			Name:       e.Name,
			Hours:      e.Hours,
			CashTips:   cash,
			CreditTips: credit,
			TotalTips:  cash + credit,
		})
	}

	if err := s.storage.UpsertDaySummary(ctx, sum); err != nil {
		return nil, nil, fmt.Errorf("%s: write summary: %w", op, err)
	}
	if err := s.storage.UpsertAllocations(ctx, date, allocs); err != nil {
		return nil, nil, fmt.Errorf("%s: write allocations: %w", op, err)
	}

	return &sum, allocs, nil
}

// RecordHours upserts one employee's hours for a day and immediately
// redistributes that day's tips across the full employee set. The day
// summary must already exist: tips are seeded first, hours are
// distributed against them.
func (s *TipService) RecordHours(ctx context.Context, date time.Time, name string, hours float64) (*storage.DaySummary, []storage.TipAllocation, error) {
	const op = "service.tips.RecordHours"

	if strings.TrimSpace(name) == "" {
		return nil, nil, fmt.Errorf("%s: empty employee name: %w", op, storage.ErrValidation)
	}
	if hours <= 0 {
		return nil, nil, fmt.Errorf("%s: non-positive hours: %w", op, storage.ErrValidation)
	}

	sum, err := s.storage.SummaryByDate(ctx, date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, storage.ErrUnknownDay)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	entry := storage.WorkEntry{Date: date, Name: name, Hours: hours}
	if err := s.storage.UpsertWorkEntry(ctx, entry); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	// tips are not re-entered by the caller; reuse what the day already has
	return s.Distribute(ctx, date, sum.CashTips, sum.CreditTips)
}

type DayReport struct {
	Summary     *storage.DaySummary `json:"summary"`
	Allocations []storage.WorkEntry `json:"allocations"`
}

// Report fetches a day's summary row and detail rows concurrently.
// Read-only, so the no-locking policy is safe here.
func (s *TipService) Report(ctx context.Context, date time.Time) (*DayReport, error) {
	const op = "service.tips.Report"

	var (
		sum     *storage.DaySummary
		entries []storage.WorkEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sum, err = s.storage.SummaryByDate(gctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.storage.EntriesByDate(gctx, date)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &DayReport{Summary: sum, Allocations: entries}, nil
}
