package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/cryopcm-lab/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/cryopcm-lab/internal/adapter/kafka"
	"github.com/couchcryptid/cryopcm-lab/internal/adapter/source"
	"github.com/couchcryptid/cryopcm-lab/internal/config"
	"github.com/couchcryptid/cryopcm-lab/internal/lab"
	"github.com/couchcryptid/cryopcm-lab/internal/observability"
	"github.com/couchcryptid/cryopcm-lab/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := source.Options{
		Timeout: cfg.SourceTimeout,
		S3: source.S3Options{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		},
		Logger: logger,
	}
	pcms, err := source.Open(ctx, cfg.PcmSource, opts)
	if err != nil {
		logger.Error("invalid pcm source", "source", cfg.PcmSource, "error", err)
		os.Exit(1)
	}
	properties, err := source.Open(ctx, cfg.PropertySource, opts)
	if err != nil {
		logger.Error("invalid property source", "source", cfg.PropertySource, "error", err)
		os.Exit(1)
	}

	loader := pipeline.New(pcms, properties, logger, metrics, cfg.SourceAttempts)
	session := lab.NewSession(loader, logger, metrics, lab.Options{DefaultProperty: cfg.DefaultProperty})

	// Curve export is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher httpadapter.CurvePublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger, metrics)
		publisher = writer
		metrics.ExportEnabled.Set(1)
		logger.Info("curve export enabled", "topic", cfg.KafkaCurveTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("curve export disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, session, publisher, logger)

	// Start HTTP server; /readyz reports not ready until the first load finishes.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := session.LoadAll(ctx); err != nil {
			logger.Warn("initial load degraded", "error", err)
		}
		logger.Info("session ready", "status", session.StatusMessage())
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
