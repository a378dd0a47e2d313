// Package main is the entry point for the music room booking server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"musicroombooking/config"
	"musicroombooking/internal/adapters/auth"
	"musicroombooking/internal/calendar"
	"musicroombooking/internal/database"
	httpdelivery "musicroombooking/internal/delivery/http"
	"musicroombooking/internal/delivery/http/controllers"
	"musicroombooking/internal/delivery/http/middleware"
	"musicroombooking/internal/domain"
	"musicroombooking/internal/metrics"
	"musicroombooking/internal/repository/postgres"
	"musicroombooking/internal/schedule"
	"musicroombooking/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	loc := cfg.Location()
	quota := domain.Quota{
		DailyCapHours:  cfg.DailyCapHours,
		WeeklyCapHours: cfg.WeeklyCapHours,
	}

	bookingRepo := postgres.NewBookingRepository(db, quota, loc)
	participantRepo := postgres.NewParticipantRepository(db)

	bookingService := services.NewBookingService(bookingRepo, quota, loc, cfg.RequestTimeout)
	participantService := services.NewParticipantService(participantRepo, cfg.RequestTimeout)

	renderer := schedule.NewRenderer(cfg.ScheduleBackgroundPath, cfg.ScheduleFontPath, loc)
	exporter := calendar.NewExporter(
		cfg.CalendarName,
		cfg.CalendarDescription,
		cfg.CalendarDomain,
		cfg.CalendarLocation,
		cfg.CalendarProductID,
		cfg.Timezone,
	)

	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(registry)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	bookingController := controllers.NewBookingController(logger, bookingService, collector, loc)
	participantController := controllers.NewParticipantController(logger, participantService)
	scheduleController := controllers.NewScheduleController(logger, bookingService, renderer, exporter, collector)

	mux := httpdelivery.NewRouter(
		logger,
		verifier,
		bookingController,
		participantController,
		scheduleController,
		registry,
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, logger)
	defer rateLimiter.Stop()

	var handler http.Handler = mux
	if cfg.RateLimitPerMinute > 0 {
		handler = rateLimiter.Middleware(handler)
	}
	handler = middleware.Metrics(collector, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.Recovery(logger, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
