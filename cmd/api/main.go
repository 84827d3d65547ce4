package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/navanish17/ai-career-advisor/internal/adapters/cache"
	"github.com/navanish17/ai-career-advisor/internal/adapters/database"
	"github.com/navanish17/ai-career-advisor/internal/adapters/events"
	"github.com/navanish17/ai-career-advisor/internal/adapters/search"
	"github.com/navanish17/ai-career-advisor/internal/api/handlers"
	"github.com/navanish17/ai-career-advisor/internal/api/middleware"
	"github.com/navanish17/ai-career-advisor/internal/api/routes"
	"github.com/navanish17/ai-career-advisor/internal/application/services"
	"github.com/navanish17/ai-career-advisor/internal/domain/providers"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/openai"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/postgres"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/redis"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/typesense"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/observability"
	"github.com/navanish17/ai-career-advisor/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry, continuing without traces")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database, *logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional: without it the engine runs uncached and unpublished.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis, *logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, running without cache and event bus")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient, *logger)
	}

	careerAdapter := database.NewCareerAdapter(pgClient)
	var careerRepo repositories.CareerRepository = careerAdapter
	if cacheProvider != nil {
		careerRepo = database.NewCachedCareerAdapter(careerAdapter, cacheProvider, *logger)
	}
	profileRepo := database.NewProfileAdapter(pgClient)
	interactionRepo := database.NewInteractionAdapter(pgClient)

	// Typesense is optional: catalog search falls back to Postgres ILIKE.
	var searchRepo repositories.CareerSearchRepository
	if cfg.Typesense.URL != "" {
		typesenseClient, err := typesense.NewClient(&cfg.Typesense, *logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Typesense unavailable, catalog search falls back to the database")
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := adapter.InitSchema(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to init Typesense schema")
			}
			searchRepo = adapter
		}
	}

	// Embeddings are optional: without a key every request scores keyword-only.
	var embedder providers.EmbeddingProvider
	if cfg.Embedding.APIKey != "" {
		embeddingClient, err := openai.NewClient(&cfg.Embedding)
		if err != nil {
			logger.Warn().Err(err).Msg("embedding client unavailable, running keyword-only")
		} else {
			embedder = embeddingClient
		}
	} else {
		logger.Info().Msg("no embedding API key configured, running keyword-only")
	}

	recommenderCfg := services.DefaultRecommenderConfig()
	recommenderCfg.ContentWeight = cfg.Recommender.ContentWeight
	recommenderCfg.CollaborativeWeight = cfg.Recommender.CollaborativeWeight
	recommenderCfg.SemanticWeight = cfg.Recommender.SemanticWeight
	recommenderCfg.KeywordWeight = cfg.Recommender.KeywordWeight
	recommenderCfg.MinInteractionsForCollab = cfg.Recommender.MinInteractionsForCollab
	recommenderCfg.DefaultTopK = cfg.Recommender.DefaultTopK
	recommenderCfg.MaxTopK = cfg.Recommender.MaxTopK
	recommenderCfg.DefaultSimilarK = cfg.Recommender.DefaultSimilarK

	recommendationService := services.NewRecommendationService(profileRepo, careerRepo, interactionRepo, embedder, recommenderCfg)
	preferenceService := services.NewPreferenceService(profileRepo)
	interactionService := services.NewInteractionService(interactionRepo, eventBus)
	similarService := services.NewSimilarCareerService(careerRepo, recommenderCfg)
	catalogService := services.NewCareerCatalogService(careerRepo, searchRepo)

	recommendationHandler := handlers.NewRecommendationHandler(
		recommendationService,
		preferenceService,
		interactionService,
		similarService,
		metrics,
	)
	careerHandler := handlers.NewCareerHandler(catalogService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, *logger)
	}

	router := routes.NewRouter(recommendationHandler, careerHandler, cacheMiddleware, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing event bus")
		}
	}

	logger.Info().Msg("server stopped")
}
