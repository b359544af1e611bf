package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"whs-backend/http-server/auth/login"
	employeesget "whs-backend/http-server/employees/get"
	employeessave "whs-backend/http-server/employees/save"
	employeesupdate "whs-backend/http-server/employees/update"
	tipscalc "whs-backend/http-server/tips/calculate"
	tipsget "whs-backend/http-server/tips/get"
	userssave "whs-backend/http-server/users/save"
	"whs-backend/internal/config"
	"whs-backend/internal/middleware/auth"
	"whs-backend/internal/service/tips"
	"whs-backend/internal/storage/sheetdb"
)

func routes(cfg config.Config, log *slog.Logger, store *sheetdb.Store, tipService *tips.TipService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/api/auth/login", login.Login(log, store, cfg.JWT))

	api := chi.NewRouter()
	api.Use(auth.JWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience))

	api.Post("/adduser", userssave.AddUser(log, store))
	api.Get("/employees-data", employeesget.Employees(log, store))
	api.Post("/input-day-employee", employeessave.RecordHours(log, tipService))
	api.Post("/calculate-and-save-tips", tipscalc.CalculateAndSaveTips(log, tipService))
	api.Put("/update-employee", employeesupdate.UpdateEmployee(log, store))
	api.Get("/day-report", tipsget.DayReport(log, tipService))

	router.Mount("/api/ddt", api)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return router
}
