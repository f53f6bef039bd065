// API server entry point: wires config, logging, PostgreSQL, Redis,
// Kafka, metrics, and the HTTP interface, then serves until signalled.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/internal/config"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/lexicon"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/similarity"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/textproc"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/AnswerKey-Intelligence/internal/interfaces/http"
	"github.com/turtacn/AnswerKey-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/AnswerKey-Intelligence/internal/interfaces/http/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment variables only)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("starting answerkey api server", logging.Int("port", cfg.Server.Port))

	// PostgreSQL.
	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.Database.MigrationPath != "" {
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	answerRepo := repositories.NewPostgresAnswerRepo(conn, logger)
	referenceRepo := repositories.NewPostgresReferenceRepo(conn, logger)
	analysisRepo := repositories.NewPostgresAnalysisRepo(conn, logger)

	// Redis cache. The cache is an accelerator; startup proceeds
	// without it if Redis is down.
	var analysisCache analysis.AnalysisCache
	var redisClient *redis.Client
	if redisClient, err = redis.NewClient(cfg.Redis, logger); err != nil {
		logger.Warn("redis unavailable, analysis caching disabled", logging.Err(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		cache := redis.NewRedisCache(redisClient, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix+":"),
			redis.WithDefaultTTL(cfg.Analysis.CacheTTL))
		analysisCache = redis.NewAnalysisCache(cache, cfg.Analysis.CacheTTL)
	}

	// Kafka. Event publishing is best-effort.
	var publisher analysis.EventPublisher
	producer, err := kafka.NewProducer(cfg.Kafka, logger)
	if err != nil {
		logger.Warn("kafka unavailable, event publishing disabled", logging.Err(err))
	} else {
		defer producer.Close()
		publisher = kafka.NewEventPublisher(producer)
		ensureTopics(cfg, logger)
	}

	// Metrics.
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "answerkey",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	appMetrics := prometheus.NewAppMetrics(collector)

	// Domain.
	lex, err := resolveLexicon(cfg)
	if err != nil {
		return err
	}
	normalizer, err := textproc.NewNormalizer()
	if err != nil {
		return err
	}

	service := analysis.NewService(analysis.Deps{
		Answers:       answerRepo,
		References:    referenceRepo,
		Analyses:      analysisRepo,
		Cache:         analysisCache,
		Publisher:     publisher,
		Metrics:       prometheus.NewRecorder(appMetrics),
		Lexicon:       lex,
		Scorer:        similarity.NewScorer(normalizer),
		Logger:        logger,
		MaxTextLength: cfg.Analysis.MaxTextLength,
	})

	// HTTP.
	checks := map[string]handlers.Pinger{
		"postgres": postgresPinger{conn},
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	corsCfg := middleware.DefaultCORSConfig()
	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnswerHandler:    handlers.NewAnswerHandler(service),
		ReferenceHandler: handlers.NewReferenceHandler(service),
		AnalysisHandler:  handlers.NewAnalysisHandler(service),
		HealthHandler:    handlers.NewHealthHandler(checks, logger),
		Logger:           logger,
		Metrics:          appMetrics,
		MetricsCollector: collector,
		CORS:             &corsCfg,
		Mode:             ginMode(cfg.Server.Mode),
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func resolveLexicon(cfg *config.Config) (*lexicon.DomainLexicon, error) {
	if cfg.Analysis.LexiconPath != "" {
		return lexicon.LoadFile(cfg.Analysis.LexiconPath)
	}
	return lexicon.NewSociologyLexicon(), nil
}

// ensureTopics creates the event topics if the broker allows it. A
// failure is logged, not fatal; the producer can still publish to
// topics created elsewhere.
func ensureTopics(cfg *config.Config, logger logging.Logger) {
	manager, err := kafka.NewTopicManager(cfg.Kafka.Brokers, logger)
	if err != nil {
		logger.Warn("failed to reach kafka for topic setup", logging.Err(err))
		return
	}
	defer manager.Close()

	if err := manager.EnsureDefaultTopics(context.Background(),
		cfg.Kafka.NumPartitions, cfg.Kafka.ReplicationFactor); err != nil {
		logger.Warn("failed to ensure kafka topics", logging.Err(err))
	}
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
