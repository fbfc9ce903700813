package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/methkalz/edu-net-11-sub004/internal/api"
	"github.com/methkalz/edu-net-11-sub004/internal/config"
	"github.com/methkalz/edu-net-11-sub004/internal/configs/env"
	"github.com/methkalz/edu-net-11-sub004/internal/extract"
	"github.com/methkalz/edu-net-11-sub004/internal/indexer"
	"github.com/methkalz/edu-net-11-sub004/internal/infra/mongo"
	redisInfra "github.com/methkalz/edu-net-11-sub004/internal/infra/redis"
	"github.com/methkalz/edu-net-11-sub004/internal/logger"
	"github.com/methkalz/edu-net-11-sub004/internal/metrics"
	"github.com/methkalz/edu-net-11-sub004/internal/plagiarism"
	"github.com/methkalz/edu-net-11-sub004/internal/repository"
	"github.com/methkalz/edu-net-11-sub004/internal/stream"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := env.LoadEnv(); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file, continuing with system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	logger.Init(cfg.LogLevel)
	log.Info().Msg("Starting plagiarism engine server")

	metrics.InitPrometheus()
	log.Info().Msg("Prometheus metrics initialized")

	// Metrics server in a separate goroutine
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metricsMux,
	}
	go func() {
		log.Info().Str("port", cfg.MetricsPort).Msg("Metrics server started")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Metrics server failed to start")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect MongoDB
	mongoClient, err := mongo.NewClient(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create MongoDB client")
	}
	defer mongoClient.Close(ctx)

	// Connect Redis
	redisClient, err := redisInfra.NewClient(ctx, cfg.RedisHost, cfg.RedisPassword, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis client")
	}
	defer redisClient.Close()

	// Repositories
	mongoRepo := repository.NewMongoRepository(mongoClient)
	documentsRepo := repository.NewDocumentsRepository(mongoRepo)
	resultsRepo := repository.NewResultsRepository(mongoRepo)

	// Comparison engine
	engineCfg := plagiarism.Config{
		Weights: plagiarism.Weights{
			Fuzzy:      cfg.WeightFuzzy,
			Jaccard:    cfg.WeightJaccard,
			Sequence:   cfg.WeightSequence,
			Structural: cfg.WeightStructural,
		},
		RecordThreshold:  cfg.RecordThreshold,
		SegmentThreshold: cfg.SegmentThreshold,
		FlagThreshold:    cfg.FlagThreshold,
		ScanBudget:       cfg.ScanBudget,
		TokenCeiling:     cfg.TokenCeiling,
		MaxWordCount:     cfg.MaxWordCount,
	}
	engine, err := plagiarism.NewEngine(engineCfg, documentsRepo, plagiarism.SystemClock())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create comparison engine")
	}

	// Extraction client and index service
	extractor := extract.NewClient(cfg.ExtractorBaseURL, cfg.ExtractorAPIKey)
	indexerSvc := indexer.NewService(extractor, documentsRepo)

	// Retry handler and upload-stream consumer
	retryHandler := stream.NewRetryHandler(redisClient.Client, cfg.RedisDeadLetterKey)

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}
	consumerName := fmt.Sprintf("consumer-%s-%d-%s", hostname, os.Getpid(), uuid.New().String()[:8])
	consumer := stream.NewConsumer(
		redisClient.Client,
		cfg.RedisStreamKey,
		cfg.RedisConsumerGroup,
		consumerName,
		indexerSvc,
		retryHandler,
		cfg.StreamRetentionDuration,
	)
	log.Info().Str("consumer_name", consumerName).Msg("Upload stream consumer initialized")

	// Worker pool
	workerPool := plagiarism.NewWorkerPool(ctx)
	defer workerPool.Close()

	router := api.SetupRoutes(cfg, engine, resultsRepo, workerPool, redisClient)

	// Start stream consumer in background
	consumerCtx, consumerCancel := context.WithCancel(ctx)
	defer consumerCancel()
	go func() {
		if err := consumer.Start(consumerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Upload stream consumer error")
		}
	}()
	log.Info().Msg("Upload stream consumer started")

	srv := api.StartServer(router, cfg.ServerPort)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down gracefully...")

	if err := api.ShutdownServer(srv, 30*time.Second); err != nil {
		log.Error().Err(err).Msg("Error shutting down HTTP server")
	}

	metricsCtx, metricsCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer metricsCancel()
	if err := metricsServer.Shutdown(metricsCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down metrics server")
	}

	log.Info().Msg("Shutdown complete")
}
