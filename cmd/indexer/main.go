package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/navanish17/ai-career-advisor/internal/adapters/database"
	"github.com/navanish17/ai-career-advisor/internal/adapters/search"
	"github.com/navanish17/ai-career-advisor/internal/application/services"
	"github.com/navanish17/ai-career-advisor/internal/domain/providers"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/openai"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/postgres"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/typesense"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/observability"
	"github.com/navanish17/ai-career-advisor/pkg/config"
)

// indexer backfills career semantic vectors and rebuilds the Typesense
// catalog index. Run it after seeding or editing the career catalog.
func main() {
	var workers int
	var force bool
	var skipVectors bool
	var skipReindex bool
	var careerName string

	flag.IntVar(&workers, "workers", 3, "Number of concurrent workers")
	flag.BoolVar(&force, "force", false, "Regenerate vectors that already exist")
	flag.BoolVar(&skipVectors, "skip-vectors", false, "Skip the embedding backfill")
	flag.BoolVar(&skipReindex, "skip-reindex", false, "Skip the search reindex")
	flag.StringVar(&careerName, "career", "", "Single career name to backfill")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	observability.InitLogger("career-advisor-indexer", cfg.Environment)
	logger := observability.GetLogger()

	pgClient, err := postgres.NewClient(&cfg.Database, *logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	careerRepo := database.NewCareerAdapter(pgClient)

	var embedder providers.EmbeddingProvider
	if !skipVectors {
		client, err := openai.NewClient(&cfg.Embedding)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create embedding client")
		}
		embedder = client
	}

	var searchRepo repositories.CareerSearchRepository
	if !skipReindex {
		if cfg.Typesense.URL == "" {
			logger.Fatal().Msg("TYPESENSE_URL is required unless -skip-reindex is set")
		}
		typesenseClient, err := typesense.NewClient(&cfg.Typesense, *logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Typesense")
		}
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	svc := services.NewVectorBackfillService(careerRepo, searchRepo, embedder, workers)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()

	if careerName != "" {
		career, err := careerRepo.GetByName(ctx, careerName)
		if err != nil {
			logger.Fatal().Err(err).Str("career", careerName).Msg("failed to load career")
		}
		if err := svc.BackfillSingle(ctx, career); err != nil {
			logger.Fatal().Err(err).Str("career", careerName).Msg("failed to backfill career")
		}
		logger.Info().Str("career", careerName).Msg("backfilled career vector")
		return
	}

	if !skipVectors {
		logger.Info().Int("workers", workers).Bool("force", force).Msg("starting vector backfill")
		summary, err := svc.BackfillVectors(ctx, force)
		if err != nil {
			logger.Fatal().Err(err).Msg("vector backfill failed")
		}
		logger.Info().
			Int("processed", summary.TotalProcessed).
			Int("success", summary.SuccessCount).
			Int("failed", summary.FailureCount).
			Int("skipped", summary.SkippedCount).
			Dur("elapsed", time.Since(start)).
			Msg("vector backfill complete")
	}

	if !skipReindex {
		logger.Info().Msg("reindexing catalog")
		summary, err := svc.ReindexCatalog(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("reindex failed")
		}
		logger.Info().
			Int("processed", summary.TotalProcessed).
			Int("success", summary.SuccessCount).
			Int("failed", summary.FailureCount).
			Dur("elapsed", time.Since(start)).
			Msg("reindex complete")
	}
}
