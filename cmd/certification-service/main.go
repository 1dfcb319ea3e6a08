package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/cache"
	"github.com/SAP-F-2025/certification-service/internal/catalog"
	"github.com/SAP-F-2025/certification-service/internal/config"
	"github.com/SAP-F-2025/certification-service/internal/handlers"
	"github.com/SAP-F-2025/certification-service/internal/metrics"
	"github.com/SAP-F-2025/certification-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/certification-service/internal/scoring"
	"github.com/SAP-F-2025/certification-service/internal/services"
	"github.com/SAP-F-2025/certification-service/internal/utils"
	"github.com/SAP-F-2025/certification-service/internal/validator"
	"github.com/SAP-F-2025/certification-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(cfg.IsProduction())
	slogger := logger.Slog()

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.Migrate(db); err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	cacheService := newCache(initCtx, cfg, logger)

	catalogClient := catalog.NewCachedClient(
		catalog.NewHTTPClient(catalog.Options{
			BaseURL: cfg.Catalog.BaseURL,
			APIKey:  cfg.Catalog.APIKey,
			Timeout: cfg.Catalog.Timeout,
			Logger:  slogger,
		}),
		cacheService,
		cfg.Catalog.CacheTTL,
		slogger,
	)
	if err := catalogClient.Preload(initCtx); err != nil {
		logger.Warn("Catalog preload failed, the cache will fill on demand", "error", err)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	v := validator.New()
	m := metrics.New()

	profileService := services.NewProfileService(repo, catalogClient, slogger)
	certificationService := services.NewCertificationService(services.CertificationServiceDeps{
		Repo:      repo,
		Profile:   profileService,
		Selection: services.NewChallengeSelectionService(repo, v, slogger),
		Catalog:   catalogClient,
		Engine:    scoring.NewEngine(cfg.Scoring),
		Publisher: publisher,
		Metrics:   m,
		Logger:    slogger,
	})

	var tokenParser handlers.TokenParser
	if cfg.Auth.Enabled {
		tokenParser = handlers.NewCasdoorTokenParser(cfg.Auth)
	} else {
		logger.Warn("Authentication disabled, trusting the X-User-ID header")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handlers.NewHandlerManager(handlers.HandlerDeps{
		Certification: certificationService,
		Answer:        services.NewAnswerService(repo, v, slogger),
		Export:        services.NewExportService(certificationService, slogger),
		Validator:     v,
		Logger:        logger,
		Metrics:       m,
		Health:        repo,
		TokenParser:   tokenParser,
	}).SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// newCache uses Redis when configured and reachable, memory otherwise
func newCache(ctx context.Context, cfg *config.Config, logger utils.Logger) cache.CacheService {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, using in-memory catalog cache")
		return cache.NewMemoryCache()
	}

	client, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory catalog cache", "error", err)
		return cache.NewMemoryCache()
	}
	return cache.NewRedisCache(client, "certification", logger.Slog())
}
