package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/observability"
	"github.com/huevos-organicos/backend/internal/repository"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

const (
	overviewCacheKey    = "stats:overview"
	clientStatsCacheKey = "stats:clientes"
)

// StatsCache stores JSON-encodable values with a TTL.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Overview is the public landing-page summary.
type Overview struct {
	ActiveProducts int64 `json:"totalProductos"`
	ActiveUsers    int64 `json:"totalUsuarios"`
}

// StatsService computes dashboard counters, caching them when a cache is set.
type StatsService struct {
	products repository.ProductRepository
	users    repository.UserRepository
	clients  repository.ClientRepository
	cache    StatsCache
	ttl      time.Duration
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// StatsDependencies bundles collaborators of the stats service.
type StatsDependencies struct {
	Products repository.ProductRepository
	Users    repository.UserRepository
	Clients  repository.ClientRepository
	Cache    StatsCache
	TTL      time.Duration
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// NewStatsService builds the service. A nil Cache disables caching.
func NewStatsService(deps StatsDependencies) *StatsService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		products: deps.Products,
		users:    deps.Users,
		clients:  deps.Clients,
		cache:    deps.Cache,
		ttl:      deps.TTL,
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// Overview counts active products and active accounts.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	return cached(ctx, s, overviewCacheKey, func(ctx context.Context) (*Overview, error) {
		products, err := s.products.CountActive(ctx)
		if err != nil {
			return nil, err
		}
		users, err := s.users.CountActive(ctx)
		if err != nil {
			return nil, err
		}
		return &Overview{ActiveProducts: products, ActiveUsers: users}, nil
	})
}

// ClientStats summarizes active clients.
func (s *StatsService) ClientStats(ctx context.Context) (*domain.ClientStats, error) {
	return cached(ctx, s, clientStatsCacheKey, s.clients.Stats)
}

// InvalidateClientStats drops the cached client summary after a write.
func (s *StatsService) InvalidateClientStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, clientStatsCacheKey); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

// cached serves key from the cache, falling back to load. Cache failures are
// logged and never fail the request.
func cached[T any](ctx context.Context, s *StatsService, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		var hit T
		found, err := s.cache.Get(ctx, key, &hit)
		switch {
		case err != nil:
			s.metrics.RecordCacheLookup("error")
			s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		case found:
			s.metrics.RecordCacheLookup("hit")
			return hit, nil
		default:
			s.metrics.RecordCacheLookup("miss")
		}
	}

	value, err := load(ctx)
	if err != nil {
		return zero, apperrors.MapError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}
