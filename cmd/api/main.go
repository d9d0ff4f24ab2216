package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJamesThe3rd/buku/internal/backend"
	"github.com/MrJamesThe3rd/buku/internal/config"
	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	bukuHttp "github.com/MrJamesThe3rd/buku/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/buku/internal/http/dashboard"
	entryHandler "github.com/MrJamesThe3rd/buku/internal/http/entry"
	importHandler "github.com/MrJamesThe3rd/buku/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/buku/internal/http/report"
	"github.com/MrJamesThe3rd/buku/internal/importer"
	"github.com/MrJamesThe3rd/buku/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, logging.FormatJSON, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := backend.New(backend.Options{
		BaseURL: cfg.Backend.URL,
		Token:   cfg.Backend.Token,
		Timeout: cfg.Backend.Timeout,
		RPS:     cfg.Backend.RPS,
	})

	if client.Token() == "" && cfg.Backend.Email != "" {
		if _, err := client.Login(ctx, cfg.Backend.Email, cfg.Backend.Password); err != nil {
			slog.Error("failed to log in to backend", "error", err)
			os.Exit(1)
		}
	}

	if exp, ok := backend.TokenExpiry(client.Token()); ok {
		slog.Info("backend token loaded", "expires", exp.Format(time.RFC3339))
	}

	var (
		entryService     = entry.NewService(client)
		dashboardService = dashboard.NewService(entryService, cfg.DashboardOptions())
		importService    = importer.NewService()
	)

	var (
		dashboardH = dashboardHandler.NewHandler(dashboardService, time.Now)
		entryH     = entryHandler.NewHandler(entryService)
		importH    = importHandler.NewHandler(importService, entryService)
		reportH    = reportHandler.NewHandler(dashboardService, time.Now)
	)

	router := bukuHttp.New(bukuHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.Server.RateLimitRPS,
		RateBurst:      cfg.Server.RateLimitBurst,
		StaticToken:    client.Token() != "",
	}, dashboardH, entryH, importH, reportH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
