package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techpulse/ingest/app/api"
	"github.com/techpulse/ingest/app/cfg"
	"github.com/techpulse/ingest/app/classify"
	"github.com/techpulse/ingest/app/database"
	"github.com/techpulse/ingest/app/feed"
	"github.com/techpulse/ingest/app/retention"
	"github.com/techpulse/ingest/app/sources"
	"github.com/techpulse/ingest/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting TechPulse Ingest server", "version", appCfg.Version)

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Connected to database")

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations applied", "version", version, "dirty", dirty)

	// Initialize repositories
	sourceRepo := database.NewSourceRepository(db)
	contentRepo := database.NewContentRepository(db)
	metadataRepo := database.NewMetadataRepository(db)

	// Register sources from the YAML registry
	sourceConfigs, err := sources.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load source registry", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}

	registeredCount := 0
	for _, sc := range sourceConfigs {
		if err := sourceRepo.UpsertSource(sc.Name, sc.URL); err != nil {
			slog.Warn("Failed to register source", "source", sc.Name, "error", err)
			continue
		}
		registeredCount++
	}
	slog.Info("Registered sources", "registered", registeredCount, "configured", len(sourceConfigs))

	// Initialize pipeline components
	httpClient := &http.Client{Timeout: 30 * time.Second}
	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent, appCfg.FetchPerSource)
	classifier := classify.NewClassifier(classify.NewHFClient(appCfg.HFEndpoint, appCfg.HFToken))
	if appCfg.HFToken == "" {
		slog.Warn("HF_TOKEN not set, classification will always use keyword fallback")
	}
	retentionEngine := retention.NewEngine(contentRepo)

	runner := tasks.NewRunner(sourceRepo, contentRepo, metadataRepo, fetcher, classifier,
		retentionEngine, time.Duration(appCfg.StaleAfter)*time.Hour)

	// Initialize HTTP server
	apiHandler := api.NewHandler(sourceRepo, contentRepo, runner)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Kick off an initial ingestion if the store is stale
	runner.TriggerIfStale(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
