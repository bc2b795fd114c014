package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pitchside/strikeplan/internal/api"
	"github.com/pitchside/strikeplan/internal/config"
	"github.com/pitchside/strikeplan/internal/engine"
	"github.com/pitchside/strikeplan/internal/events"
	"github.com/pitchside/strikeplan/internal/model"
	"github.com/pitchside/strikeplan/internal/refdata"
	"github.com/pitchside/strikeplan/internal/scoring"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Classifier: loaded once, immutable for the process lifetime
	var classifier model.Classifier
	if cfg.Model.URL != "" {
		classifier, err = model.NewRemoteClassifier(ctx, cfg.Model.URL)
		if err != nil {
			logger.Error("failed to reach model server", "url", cfg.Model.URL, "error", err)
			os.Exit(1)
		}
		logger.Info("using remote classifier", "url", cfg.Model.URL)
	} else {
		classifier, err = model.LoadEnsemble(cfg.Model.Path)
		if err != nil {
			logger.Error("failed to load model artifact", "path", cfg.Model.Path, "error", err)
			os.Exit(1)
		}
		logger.Info("model artifact loaded", "path", cfg.Model.Path)
	}

	// Reference data: embedded, optionally replaced from Postgres
	registry, err := refdata.Embedded()
	if err != nil {
		logger.Error("failed to load embedded reference data", "error", err)
		os.Exit(1)
	}
	if cfg.Reference.DatabaseURL != "" {
		if pg, err := refdata.LoadPostgres(ctx, cfg.Reference.DatabaseURL); err != nil {
			logger.Warn("failed to load reference data from database, using embedded", "error", err)
		} else {
			registry = pg
			logger.Info("reference data loaded from database")
		}
	}

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event broker, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to event broker")
		}
	}

	// Recommendation engine
	weights := scoring.Weights{
		StrikeRotation: cfg.Scoring.Weights.StrikeRotation,
		Pressure:       cfg.Scoring.Weights.Pressure,
		Boundary:       cfg.Scoring.Weights.Boundary,
	}
	eng, err := engine.New(classifier, weights, logger)
	if err != nil {
		logger.Error("failed to build engine", "error", err)
		os.Exit(1)
	}

	// API server
	router := api.NewRouter(eng, registry, eventsClient, cfg.CORS.AllowedOrigins, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
