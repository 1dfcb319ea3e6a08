package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/cache"
	"github.com/SAP-F-2025/certification-service/internal/models"
)

const (
	challengesKey  = "catalog:challenges"
	competencesKey = "catalog:competences"
)

// CachedClient is a read-through cache in front of a catalog Client.
// Concurrent misses may both fetch.
type CachedClient struct {
	next   Client
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedClient(next Client, cacheService cache.CacheService, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		next:   next,
		cache:  cacheService,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedClient) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	return readThrough(ctx, c, challengesKey, c.next.ListChallenges)
}

func (c *CachedClient) ListCompetences(ctx context.Context) ([]models.Competence, error) {
	return readThrough(ctx, c, competencesKey, c.next.ListCompetences)
}

// Preload fetches every table and stores it, replacing cached entries
func (c *CachedClient) Preload(ctx context.Context) error {
	challenges, err := c.next.ListChallenges(ctx)
	if err != nil {
		return fmt.Errorf("failed to preload challenges: %w", err)
	}
	if err := c.cache.Set(ctx, challengesKey, challenges, c.ttl); err != nil {
		return fmt.Errorf("failed to cache challenges: %w", err)
	}

	competences, err := c.next.ListCompetences(ctx)
	if err != nil {
		return fmt.Errorf("failed to preload competences: %w", err)
	}
	if err := c.cache.Set(ctx, competencesKey, competences, c.ttl); err != nil {
		return fmt.Errorf("failed to cache competences: %w", err)
	}

	c.logger.Info("Catalog preloaded", "challenges", len(challenges), "competences", len(competences))
	return nil
}

// Invalidate drops every cached catalog table
func (c *CachedClient) Invalidate(ctx context.Context) error {
	return c.cache.DeletePattern(ctx, "catalog:*")
}

func readThrough[T any](ctx context.Context, c *CachedClient, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	err := c.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// cache errors degrade to a direct fetch
		c.logger.WarnContext(ctx, "Catalog cache read failed", "key", key, "error", err)
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, fresh, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "Catalog cache write failed", "key", key, "error", err)
	}
	return fresh, nil
}
