package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/oskarlind/sideline/internal/config"
	"github.com/oskarlind/sideline/internal/database"
	server "github.com/oskarlind/sideline/internal/http"
	"github.com/oskarlind/sideline/internal/metrics"
	"github.com/oskarlind/sideline/internal/session"
	"github.com/oskarlind/sideline/internal/store"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clock := clockwork.NewRealClock()
	saveStore := store.New(db, clock)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	sess := session.New(clock, metricsSvc)
	sess.SetAutoSaver(saveStore)
	sess.SetHalftimeBreak(cfg.Game.HalftimeBreakSeconds)
	if err := sess.Configure(cfg.Game.LengthMinutes, cfg.Game.PeriodCount); err != nil {
		log.Fatalf("Invalid game configuration: %s", err)
	}

	s := server.NewServer(
		sess,
		saveStore,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
