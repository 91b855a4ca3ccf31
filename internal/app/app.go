package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/tdi-leaderboards/external/infinitode"
	"github.com/riskibarqy/tdi-leaderboards/internal/config"
	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/infrastructure/rediscache"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/resilience"
	"github.com/riskibarqy/tdi-leaderboards/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// App holds the client and services built from one configuration.
type App struct {
	Client  *infinitode.Client
	Sweep   *usecase.SweepService
	Profile *usecase.ProfileService

	cacheBackend string
	redis        *redis.Client
	logger       *logging.Logger
}

// New wires the client. When Redis is enabled but unreachable the in-memory cache is used.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport.(*http.Transport).Clone()),
	}

	out := &App{
		cacheBackend: CacheBackendMemory,
		logger:       logger,
	}

	var cache infinitode.Cache
	if cfg.RedisEnabled {
		client, err := rediscache.Dial(ctx, rediscache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.WarnContext(ctx, "redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			out.redis = client
			out.cacheBackend = CacheBackendRedis
			cache = rediscache.New[infinitode.CacheKey, *leaderboard.Leaderboard](client, cfg.RedisKeyPrefix, cfg.CacheTTL, logger)
		}
	}

	out.Client = infinitode.NewClient(infinitode.ClientConfig{
		HTTPClient: httpClient,
		APIURL:     cfg.APIURL,
		XDXURL:     cfg.XDXURL,
		Logger:     logger,
		Cache:      cache,
		CacheTTL:   cfg.CacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
		RequestsPerMinute: cfg.RateLimitPerMinute,
	})
	out.Sweep = usecase.NewSweepService(out.Client, cfg.SweepConcurrency, logger.Named("sweep"))
	out.Profile = usecase.NewProfileService(out.Client)

	logger.DebugContext(ctx, "app initialized", "cache_backend", out.cacheBackend, "env", cfg.AppEnv)
	return out, nil
}

func (a *App) CacheBackend() string {
	return a.cacheBackend
}

func (a *App) Close() error {
	var errs []error
	if a.Client != nil {
		errs = append(errs, a.Client.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}
