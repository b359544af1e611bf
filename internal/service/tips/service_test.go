package tips_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"whs-backend/internal/rowstore"
	"whs-backend/internal/rowstore/memory"
	"whs-backend/internal/service/tips"
	"whs-backend/internal/storage"
	"whs-backend/internal/storage/sheetdb"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// newDay returns a service over a fresh in-memory sheet with Alice (4h)
// and Bob (6h) on the detail table.
func newDay(t *testing.T) (*tips.TipService, *sheetdb.Store, *memory.Store) {
	t.Helper()

	ms := memory.New()
	ms.Seed("UserInput", 2, rowstore.Text("06/01/2024"), rowstore.Text("Alice"), rowstore.Number(4))
	ms.Seed("UserInput", 3, rowstore.Text("06/01/2024"), rowstore.Text("Bob"), rowstore.Number(6))

	store := sheetdb.New(ms)
	return tips.NewTipService(store), store, ms
}

func TestDistribute(t *testing.T) {
	svc, _, _ := newDay(t)

	sum, allocs, err := svc.Distribute(context.Background(), day, 50, 30)
	require.NoError(t, err)

	assert.Equal(t, 10.0, sum.TotalHours)
	assert.Equal(t, 5.0, sum.CashPerHour)
	assert.Equal(t, 3.0, sum.CreditPerHour)
	assert.Equal(t, 8.0, sum.TotalPerHour)
	assert.Equal(t, 42.0, sum.CompletionTo50)
	assert.Equal(t, 80.0, sum.TotalTips)

	require.Len(t, allocs, 2)
	assert.Equal(t, "Alice", allocs[0].Name)
	assert.Equal(t, 20.0, allocs[0].CashTips)
	assert.Equal(t, 12.0, allocs[0].CreditTips)
	assert.Equal(t, 32.0, allocs[0].TotalTips)
	assert.Equal(t, "Bob", allocs[1].Name)
	assert.Equal(t, 30.0, allocs[1].CashTips)
	assert.Equal(t, 18.0, allocs[1].CreditTips)
	assert.Equal(t, 48.0, allocs[1].TotalTips)
}

func TestDistributeConservation(t *testing.T) {
	svc, _, _ := newDay(t)

	sum, allocs, err := svc.Distribute(context.Background(), day, 61.37, 28.99)
	require.NoError(t, err)

	var cash, credit float64
	for _, a := range allocs {
		cash += a.CashTips
		credit += a.CreditTips
	}
	assert.InDelta(t, sum.CashTips, cash, 1e-9)
	assert.InDelta(t, sum.CreditTips, credit, 1e-9)
}

func TestDistributeIdempotent(t *testing.T) {
	svc, store, ms := newDay(t)

	first, _, err := svc.Distribute(context.Background(), day, 50, 30)
	require.NoError(t, err)
	second, allocs, err := svc.Distribute(context.Background(), day, 50, 30)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// no duplicate rows in either table
	entries, err := store.EntriesByDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 20.0, entries[0].CashTips)
	require.Len(t, allocs, 2)

	rows, err := ms.Fetch(context.Background(), "SaveDay!A2:I")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDistributeCompletionCapsAtZero(t *testing.T) {
	svc, _, _ := newDay(t)

	// 600/10h = 60 per hour, past the 50 target
	sum, _, err := svc.Distribute(context.Background(), day, 400, 200)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.CompletionTo50)
}

func TestDistributeRejectsZeroHours(t *testing.T) {
	ms := memory.New()
	store := sheetdb.New(ms)
	svc := tips.NewTipService(store)

	// no employees at all
	_, _, err := svc.Distribute(context.Background(), day, 50, 30)
	assert.ErrorIs(t, err, storage.ErrInsufficientData)

	// employees present but all zero hours
	ms.Seed("UserInput", 2, rowstore.Text("06/01/2024"), rowstore.Text("Alice"), rowstore.Number(0))
	_, _, err = svc.Distribute(context.Background(), day, 50, 30)
	assert.ErrorIs(t, err, storage.ErrInsufficientData)

	// nothing was written
	rows, err := ms.Fetch(context.Background(), "SaveDay!A2:I")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDistributeRejectsNegativeTips(t *testing.T) {
	svc, _, _ := newDay(t)

	_, _, err := svc.Distribute(context.Background(), day, -1, 30)
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestRecordHours(t *testing.T) {
	svc, store, ms := newDay(t)
	ms.Seed("SaveDay", 2,
		rowstore.Text("06/01/2024"),
		rowstore.Number(50), rowstore.Number(30),
	)

	sum, allocs, err := svc.RecordHours(context.Background(), day, "Carol", 10)
	require.NoError(t, err)

	// tips come from the seeded summary, not the caller
	assert.Equal(t, 50.0, sum.CashTips)
	assert.Equal(t, 30.0, sum.CreditTips)
	assert.Equal(t, 20.0, sum.TotalHours)

	require.Len(t, allocs, 3)
	assert.Equal(t, "Carol", allocs[2].Name)
	assert.Equal(t, 25.0, allocs[2].CashTips) // 10h * 2.5/h

	entries, err := store.EntriesByDate(context.Background(), day)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRecordHoursReplacesExisting(t *testing.T) {
	svc, store, ms := newDay(t)
	ms.Seed("SaveDay", 2,
		rowstore.Text("06/01/2024"),
		rowstore.Number(50), rowstore.Number(30),
	)

	_, _, err := svc.RecordHours(context.Background(), day, "alice", 6)
	require.NoError(t, err)

	entries, err := store.EntriesByDate(context.Background(), day)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 6.0, entries[0].Hours)
	// 12h total now: cash 50/12 per hour
	assert.InDelta(t, 25.0, entries[0].CashTips, 1e-9)
}

func TestRecordHoursUnknownDay(t *testing.T) {
	svc, store, _ := newDay(t)

	// no SaveDay row seeded for the date
	_, _, err := svc.RecordHours(context.Background(), day, "Carol", 10)
	assert.ErrorIs(t, err, storage.ErrUnknownDay)

	// no detail append happened
	entries, err := store.EntriesByDate(context.Background(), day)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecordHoursValidation(t *testing.T) {
	mockStore := new(MockTipStorage)
	svc := tips.NewTipService(mockStore)

	_, _, err := svc.RecordHours(context.Background(), day, "", 5)
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, _, err = svc.RecordHours(context.Background(), day, "Alice", 0)
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, _, err = svc.RecordHours(context.Background(), day, "Alice", -3)
	assert.ErrorIs(t, err, storage.ErrValidation)

	// rejected before any store interaction
	mockStore.AssertNotCalled(t, "SummaryByDate")
	mockStore.AssertNotCalled(t, "UpsertWorkEntry")
}

func TestReport(t *testing.T) {
	svc, _, ms := newDay(t)
	ms.Seed("SaveDay", 2,
		rowstore.Text("06/01/2024"),
		rowstore.Number(50), rowstore.Number(30), rowstore.Number(80),
		rowstore.Number(10),
	)

	report, err := svc.Report(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, 80.0, report.Summary.TotalTips)
	require.Len(t, report.Allocations, 2)
	assert.Equal(t, "Alice", report.Allocations[0].Name)

	_, err = svc.Report(context.Background(), day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDistributeSummaryWriteFails(t *testing.T) {
	mockStore := new(MockTipStorage)
	svc := tips.NewTipService(mockStore)

	mockStore.On("EntriesByDate", mock.Anything, day).
		Return([]storage.WorkEntry{{Date: day, Name: "Alice", Hours: 4}}, nil)
	mockStore.On("UpsertDaySummary", mock.Anything, mock.Anything).
		Return(assert.AnError)

	_, _, err := svc.Distribute(context.Background(), day, 50, 30)
	assert.ErrorIs(t, err, assert.AnError)

	// the detail write never happens after a summary failure
	mockStore.AssertNotCalled(t, "UpsertAllocations")
	mockStore.AssertExpectations(t)
}

type MockTipStorage struct {
	mock.Mock
}

func (m *MockTipStorage) EntriesByDate(ctx context.Context, date time.Time) ([]storage.WorkEntry, error) {
	args := m.Called(ctx, date)

	var entries []storage.WorkEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]storage.WorkEntry)
	}
	return entries, args.Error(1)
}

func (m *MockTipStorage) SummaryByDate(ctx context.Context, date time.Time) (*storage.DaySummary, error) {
	args := m.Called(ctx, date)

	var sum *storage.DaySummary
	if args.Get(0) != nil {
		sum = args.Get(0).(*storage.DaySummary)
	}
	return sum, args.Error(1)
}

func (m *MockTipStorage) UpsertWorkEntry(ctx context.Context, e storage.WorkEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockTipStorage) UpsertDaySummary(ctx context.Context, sum storage.DaySummary) error {
	return m.Called(ctx, sum).Error(0)
}

func (m *MockTipStorage) UpsertAllocations(ctx context.Context, date time.Time, allocs []storage.TipAllocation) error {
	return m.Called(ctx, date, allocs).Error(0)
}
