package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"whs-backend/internal/storage"
	"whs-backend/internal/storage/sheetdb"
)

const apiDateLayout = "2006-01-02"

type HoursRecorder interface {
	RecordHours(ctx context.Context, date time.Time, name string, hours float64) (*storage.DaySummary, []storage.TipAllocation, error)
}

type Resp struct {
	Summary     *storage.DaySummary     `json:"summary"`
	Allocations []storage.TipAllocation `json:"allocations"`
}

// RecordHours upserts one employee's hours for a day and returns the
// redistributed tips. Hours accept a decimal ("7.5") or clock ("7:30")
// form. The day's tips must already be seeded.
func RecordHours(log *slog.Logger, recorder HoursRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.save.RecordHours"

		var req struct {
			Date  string      `json:"date"`
			Name  string      `json:"name"`
			Hours interface{} `json:"hours"`
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

		hours, ok := parseHours(req.Hours)
		if !ok {
			http.Error(w, "Invalid hours", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		sum, allocs, err := recorder.RecordHours(ctx, date, req.Name, hours)
		switch {
		case errors.Is(err, storage.ErrValidation):
			http.Error(w, "Invalid employee data", http.StatusBadRequest)
			return
		case errors.Is(err, storage.ErrUnknownDay):
			http.Error(w, "The provided date has no day summary yet", http.StatusBadRequest)
			return
		case errors.Is(err, storage.ErrInsufficientData):
			http.Error(w, "No employee hours available for the given date", http.StatusBadRequest)
			return
		case err != nil:
			log.Error("failed to record hours", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("hours recorded",
			slog.String("op", op),
			slog.String("name", req.Name),
			slog.Float64("hours", hours),
		)

		render.JSON(w, r, Resp{Summary: sum, Allocations: allocs})
	}
}

func parseHours(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, t >= 0
	case string:
		return sheetdb.ParseHours(t)
	}
	return 0, false
}
