package calculate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"whs-backend/internal/storage"
)

type MockDistributor struct {
	mock.Mock
}

func (m *MockDistributor) Distribute(ctx context.Context, date time.Time, cashTips, creditTips float64) (*storage.DaySummary, []storage.TipAllocation, error) {
	args := m.Called(ctx, date, cashTips, creditTips)

	var sum *storage.DaySummary
	if args.Get(0) != nil {
		sum = args.Get(0).(*storage.DaySummary)
	}
	var allocs []storage.TipAllocation
	if args.Get(1) != nil {
		allocs = args.Get(1).([]storage.TipAllocation)
	}
	return sum, allocs, args.Error(2)
}

func TestCalculateAndSaveTips_Success(t *testing.T) {
	mockDist := new(MockDistributor)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sum := &storage.DaySummary{
		Date: day, CashTips: 50, CreditTips: 30, TotalTips: 80,
		TotalHours: 10, CashPerHour: 5, CreditPerHour: 3,
		TotalPerHour: 8, CompletionTo50: 42,
	}
	allocs := []storage.TipAllocation{
		{Date: day, Name: "Alice", Hours: 4, CashTips: 20, CreditTips: 12, TotalTips: 32},
		{Date: day, Name: "Bob", Hours: 6, CashTips: 30, CreditTips: 18, TotalTips: 48},
	}

	mockDist.On("Distribute", mock.Anything, day, 50.0, 30.0).Return(sum, allocs, nil)

	handler := CalculateAndSaveTips(slog.Default(), mockDist)

	reqBody := `{"date": "2024-06-01", "cash_tips": 50, "credit_tips": 30}`
	req := httptest.NewRequest(http.MethodPost, "/api/ddt/calculate-and-save-tips", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var resp Resp
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)

	assert.Equal(t, 8.0, resp.Summary.TotalPerHour)
	assert.Equal(t, 42.0, resp.Summary.CompletionTo50)
	assert.Len(t, resp.Allocations, 2)
	assert.Equal(t, 32.0, resp.Allocations[0].TotalTips)

	mockDist.AssertExpectations(t)
}

func TestCalculateAndSaveTips_InvalidJSON(t *testing.T) {
	mockDist := new(MockDistributor)
	handler := CalculateAndSaveTips(slog.Default(), mockDist)

	req := httptest.NewRequest(http.MethodPost, "/api/ddt/calculate-and-save-tips", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockDist.AssertNotCalled(t, "Distribute")
}

func TestCalculateAndSaveTips_BadDate(t *testing.T) {
	mockDist := new(MockDistributor)
	handler := CalculateAndSaveTips(slog.Default(), mockDist)

	reqBody := `{"date": "06/01/2024", "cash_tips": 50, "credit_tips": 30}`
	req := httptest.NewRequest(http.MethodPost, "/api/ddt/calculate-and-save-tips", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockDist.AssertNotCalled(t, "Distribute")
}

func TestCalculateAndSaveTips_InsufficientData(t *testing.T) {
	mockDist := new(MockDistributor)
	mockDist.On("Distribute", mock.Anything, mock.Anything, 50.0, 30.0).
		Return(nil, nil, storage.ErrInsufficientData)

	handler := CalculateAndSaveTips(slog.Default(), mockDist)

	reqBody := `{"date": "2024-06-01", "cash_tips": 50, "credit_tips": 30}`
	req := httptest.NewRequest(http.MethodPost, "/api/ddt/calculate-and-save-tips", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "No employee hours")
	mockDist.AssertExpectations(t)
}

func TestCalculateAndSaveTips_ServiceError(t *testing.T) {
	mockDist := new(MockDistributor)
	mockDist.On("Distribute", mock.Anything, mock.Anything, 50.0, 30.0).
		Return(nil, nil, assert.AnError)

	handler := CalculateAndSaveTips(slog.Default(), mockDist)

	reqBody := `{"date": "2024-06-01", "cash_tips": 50, "credit_tips": 30}`
	req := httptest.NewRequest(http.MethodPost, "/api/ddt/calculate-and-save-tips", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockDist.AssertExpectations(t)
}
