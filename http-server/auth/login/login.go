package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"whs-backend/internal/config"
	"whs-backend/internal/middleware/auth"
	"whs-backend/internal/storage"
)

type UserProvider interface {
	Logins(ctx context.Context) ([]storage.LoginUser, error)
}

type Resp struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
}

// Login checks the submitted credentials against the login rows on the
// roster sheet and issues a bearer token.
func Login(log *slog.Logger, users UserProvider, jwtCfg config.JWT) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.Login"

		var req struct {
			UserName string `json:"userName"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if req.UserName == "" || req.Password == "" {
			http.Error(w, "Invalid login request", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := users.Logins(ctx)
		if err != nil {
			log.Error("failed to fetch logins", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		var matched bool
		for _, u := range list {
			if u.UserName == req.UserName && u.Password == req.Password {
				matched = true
				break
			}
		}
		if !matched {
			log.Warn("login rejected", slog.String("op", op), slog.String("user", req.UserName))
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		token, err := auth.NewToken(req.UserName, jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.Audience, jwtCfg.TTL)
		if err != nil {
			log.Error("failed to sign token", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{Token: token, UserName: req.UserName})
	}
}
