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
)

type UserSaver interface {
	AddUser(ctx context.Context, name string) error
}

// AddUser appends a new name to the roster sheet. Duplicate names (any
// case) are rejected.
func AddUser(log *slog.Logger, users UserSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.save.AddUser"

		var req struct {
			UserName string `json:"userName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := users.AddUser(ctx, req.UserName)
		switch {
		case errors.Is(err, storage.ErrValidation):
			http.Error(w, "Invalid user data", http.StatusBadRequest)
			return
		case errors.Is(err, storage.ErrAlreadyExists):
			http.Error(w, "User already exists", http.StatusConflict)
			return
		case err != nil:
			log.Error("failed to add user", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("user added", slog.String("op", op), slog.String("user", req.UserName))

		render.JSON(w, r, map[string]interface{}{
			"message": "User added successfully",
		})
	}
}
