package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"emosense/dsp"
	"emosense/internal/api"
	"emosense/internal/config"
	"emosense/internal/logging"
	"emosense/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	logger.Info("emosense backend starting",
		zap.String("port", cfg.Port),
		zap.String("artifacts", cfg.ArtifactsDir))

	// Реестр загружается один раз; при провале сервер всё равно стартует,
	// но health отвечает unavailable, а /predict отказывает
	registry, err := pipeline.Load(cfg.ArtifactsDir, logger)
	if err != nil {
		logger.Error("failed to load pipeline artifacts, serving unhealthy", zap.Error(err))
	} else {
		defer registry.Close()
	}

	extractor := dsp.NewExtractor(dsp.DefaultExtractorConfig())
	orchestrator := pipeline.NewOrchestrator(registry, extractor, logger)

	// Единственный прогревочный проход до начала приёма запросов
	if orchestrator.Ready() {
		logger.Info("running warm-up pass")
		if err := orchestrator.Warmup(); err != nil {
			logger.Warn("warm-up failed", zap.Error(err))
		} else {
			logger.Info("warm-up complete, application is ready")
		}
	}

	server := api.NewServer(cfg, orchestrator, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}
}
