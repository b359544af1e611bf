package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"whs-backend/internal/config"
	"whs-backend/internal/rowstore"
	"whs-backend/internal/rowstore/google"
	"whs-backend/internal/rowstore/mysqldb"
	"whs-backend/internal/rowstore/xlsx"
	"whs-backend/internal/service/tips"
	"whs-backend/internal/storage/sheetdb"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	rs, err := newRowStore(cfg)
	if err != nil {
		log.Error("failed to open row store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := sheetdb.New(rs)
	tipService := tips.NewTipService(store)

	log.Info("server started",
		slog.String("address", cfg.Address),
		slog.String("backend", cfg.Store.Backend),
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, store, tipService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	err = srv.ListenAndServe()
	if err != nil {
		log.Error("failed start server", slog.String("error", err.Error()))
	}

	log.Error("server stopped")
}

func newRowStore(cfg *config.Config) (rowstore.RowStore, error) {
	switch cfg.Store.Backend {
	case "xlsx":
		return xlsx.New(cfg.Store.WorkbookPath), nil
	case "mysql":
		return mysqldb.New(cfg.Store.MysqlDSN)
	default:
		return google.New(context.Background(), cfg.Store.CredentialsFile, cfg.Store.SpreadsheetID)
	}
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// errors also go to the log file
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		cloned := r.Clone()
		_ = h.errorHandler.Handle(ctx, cloned)
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
