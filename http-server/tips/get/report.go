package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"whs-backend/internal/service/tips"
	"whs-backend/internal/storage"
)

const apiDateLayout = "2006-01-02"

type Reporter interface {
	Report(ctx context.Context, date time.Time) (*tips.DayReport, error)
}

// DayReport returns a day's summary row together with its detail rows.
func DayReport(log *slog.Logger, reporter Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tips.get.DayReport"

		date, err := time.Parse(apiDateLayout, r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "Invalid or missing date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report, err := reporter.Report(ctx, date)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "No summary for the given date", http.StatusNotFound)
			return
		case err != nil:
			log.Error("failed to build day report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, report)
	}
}
