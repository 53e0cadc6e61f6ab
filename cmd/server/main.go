// Package main provides the entry point for the Ultraboard dashboard server.
package main

import (
	"context"
	"flag"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ultraboard/internal/config"
	"github.com/yourusername/ultraboard/internal/dataset"
	"github.com/yourusername/ultraboard/internal/health"
	"github.com/yourusername/ultraboard/internal/logger"
	"github.com/yourusername/ultraboard/internal/metrics"
	"github.com/yourusername/ultraboard/internal/models"
	"github.com/yourusername/ultraboard/internal/server"
	"github.com/yourusername/ultraboard/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		edition    = flag.String("edition", "", "Edition to load at startup (default: first configured)")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := dataset.NewRateLimitedHTTPClient(httpClientConfig(cfg), log)
	defer client.Close()

	store := dataset.NewStore(dataset.NewStaticJSONSource(client, log), logger.NewDatasetLogger(log))

	cache := service.NewChartCache(
		time.Duration(cfg.Server.CacheTTLSeconds)*time.Second,
		cfg.Server.CacheMaxSize,
	)
	charts := service.NewChartService(store, cfg, cache, log)

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Server.HealthPort),
		Logger:      log,
		Dataset:     store,
	})
	if err := healthServer.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start health server")
	}

	loadInitialEdition(ctx, cfg, store, log, *edition)
	healthServer.SetReady(true)

	api := server.New(cfg, store, charts, log)
	log.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
	}).Info("Ultraboard starting")

	if err := api.Start(ctx); err != nil {
		log.WithError(err).Fatal("API server failed")
	}

	log.Info("Ultraboard stopped")
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func httpClientConfig(cfg *config.Config) dataset.HTTPClientConfig {
	clientCfg := dataset.DefaultHTTPClientConfig()
	clientCfg.Timeout = time.Duration(cfg.Dataset.TimeoutSeconds) * time.Second
	clientCfg.MaxRetries = cfg.Dataset.MaxRetries
	clientCfg.RetryWaitMin = time.Duration(cfg.Dataset.RetryWaitMinMS) * time.Millisecond
	clientCfg.RetryWaitMax = time.Duration(cfg.Dataset.RetryWaitMaxMS) * time.Millisecond
	clientCfg.RateLimit = cfg.Dataset.RateLimit
	clientCfg.CircuitBreakerMax = cfg.Dataset.CircuitBreakerMax
	return clientCfg
}

// loadInitialEdition loads the startup edition and logs validation
// findings once. A failed initial load is not fatal: the dashboard
// comes up unready and a later edition switch can still succeed.
func loadInitialEdition(ctx context.Context, cfg *config.Config, store *dataset.Store, log *logrus.Logger, override string) {
	name := override
	if name == "" && len(cfg.Editions) > 0 {
		name = cfg.Editions[0].Name
	}

	edition, ok := cfg.EditionByName(name)
	if !ok {
		log.WithField("edition", name).Fatal("Startup edition is not configured")
	}

	snap, err := store.Switch(ctx, dataset.Location{
		Edition:    edition.Name,
		ResultsURL: edition.ResultsURL,
		LapsURL:    edition.LapsURL,
	})
	if err != nil {
		log.WithError(err).WithField("edition", name).Error("Initial edition load failed")
		return
	}

	validator := service.NewDataValidator(log)
	findings := validator.ValidateSnapshot(snap.Edition, snap.Results(), allLaps(snap))
	logger.NewDatasetLogger(log).LogValidationFindings(snap.Edition, findings)
}

func allLaps(snap *dataset.Snapshot) []models.LapRecord {
	var laps []models.LapRecord
	for _, r := range snap.Results() {
		laps = append(laps, snap.LapsFor(r.Bib)...)
	}
	return laps
}
