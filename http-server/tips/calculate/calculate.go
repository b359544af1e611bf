package calculate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"whs-backend/internal/storage"
)

const apiDateLayout = "2006-01-02"

type Distributor interface {
	Distribute(ctx context.Context, date time.Time, cashTips, creditTips float64) (*storage.DaySummary, []storage.TipAllocation, error)
}

type Resp struct {
	Summary     *storage.DaySummary     `json:"summary"`
	Allocations []storage.TipAllocation `json:"allocations"`
}

// CalculateAndSaveTips splits a day's tip pools across its employees
// proportional to hours and writes both the summary and detail tables.
func CalculateAndSaveTips(log *slog.Logger, dist Distributor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tips.calculate.CalculateAndSaveTips"

		var req struct {
			Date       string  `json:"date"`
			CashTips   float64 `json:"cash_tips"`
			CreditTips float64 `json:"credit_tips"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		date, err := time.Parse(apiDateLayout, req.Date)
		if err != nil {
			http.Error(w, "Invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		sum, allocs, err := dist.Distribute(ctx, date, req.CashTips, req.CreditTips)
		switch {
		case errors.Is(err, storage.ErrValidation):
			http.Error(w, "Tips must not be negative", http.StatusBadRequest)
			return
		case errors.Is(err, storage.ErrInsufficientData):
			http.Error(w, "No employee hours available for the given date", http.StatusBadRequest)
			return
		case err != nil:
			log.Error("failed to distribute tips", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("tips distributed",
			slog.String("op", op),
			slog.String("date", req.Date),
			slog.Int("employees", len(allocs)),
		)

		render.JSON(w, r, Resp{Summary: sum, Allocations: allocs})
	}
}
