package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "admingeo/internal/auth/handler"
	authservice "admingeo/internal/auth/service"
	"admingeo/internal/jwttoken"
	locationhandler "admingeo/internal/location/handler"
	locationservice "admingeo/internal/location/service"
	locationstore "admingeo/internal/location/store"
	"admingeo/internal/platform/config"
	"admingeo/internal/platform/httpserver"
	"admingeo/internal/platform/logger"
	"admingeo/internal/platform/metrics"
	"admingeo/internal/platform/middleware"
	"admingeo/internal/platform/postgres"
	userhandler "admingeo/internal/user/handler"
	userservice "admingeo/internal/user/service"
	userstore "admingeo/internal/user/store"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	provinceSvc := locationservice.NewProvinceService(locationstore.NewProvincePostgres(db), log, m)
	districtStore := locationstore.NewDistrictPostgres(db)
	districtSvc := locationservice.NewDistrictService(districtStore, locationstore.NewProvincePostgres(db), log, m)
	constituencySvc := locationservice.NewConstituencyService(locationstore.NewConstituencyPostgres(db), districtStore, log, m)
	wardSvc := locationservice.NewWardService(locationstore.NewWardPostgres(db), locationstore.NewConstituencyPostgres(db), log, m)

	userSvc := userservice.NewService(userstore.NewPostgres(db), log, m)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTExpiry)
	authSvc := authservice.NewService(userSvc, tokens, log, m)
	requireAuth := middleware.RequireAuth(jwttoken.NewServiceAdapter(tokens), authSvc, log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		locationhandler.NewProvinceHandler(provinceSvc, requireAuth).Register(r)
		locationhandler.NewDistrictHandler(districtSvc, requireAuth).Register(r)
		locationhandler.NewConstituencyHandler(constituencySvc, requireAuth).Register(r)
		locationhandler.NewWardHandler(wardSvc, requireAuth).Register(r)
		userhandler.NewHandler(userSvc).Register(r)
		authhandler.NewHandler(authSvc, requireAuth).Register(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
