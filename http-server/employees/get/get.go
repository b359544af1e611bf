package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"whs-backend/internal/storage"
)

// apiDateLayout is the wire format for dates in query strings and JSON
// bodies; the sheet keeps its own MM/dd/yyyy literal format internally.
const apiDateLayout = "2006-01-02"

type EntryProvider interface {
	EntriesByDate(ctx context.Context, date time.Time) ([]storage.WorkEntry, error)
}

// Employees returns the detail rows for one day.
func Employees(log *slog.Logger, entries EntryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.get.Employees"

		date, err := time.Parse(apiDateLayout, r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "Invalid or missing date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := entries.EntriesByDate(ctx, date)
		if err != nil {
			log.Error("failed to fetch employees", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if list == nil {
			list = []storage.WorkEntry{}
		}
		render.JSON(w, r, list)
	}
}
