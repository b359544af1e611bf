package update

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

type TotalsUpdater interface {
	UpdateEmployeeTotals(ctx context.Context, t storage.EmployeeTotals) error
}

// UpdateEmployee overwrites one employee's row in the totals block on
// the roster sheet, located by name.
func UpdateEmployee(log *slog.Logger, totals TotalsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.update.UpdateEmployee"

		var req storage.EmployeeTotals
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := totals.UpdateEmployeeTotals(ctx, req)
		switch {
		case errors.Is(err, storage.ErrValidation):
			http.Error(w, "Invalid employee data", http.StatusBadRequest)
			return
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		case err != nil:
			log.Error("failed to update employee", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"message": "Employee updated successfully",
		})
	}
}
