package infinitode

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/tdi-leaderboards/internal/domain/leaderboard"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/cache"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIURL   = "https://infinitode.prineside.com/"
	DefaultXDXURL   = "https://infinitode.prineside.com/xdx/index.php"
	DefaultCacheTTL = 60 * time.Second

	apiVersion  = "1"
	gameID      = "com.prineside.tdi2"
	gameVersion = "282"
	gameMode    = "BASIC_LEVELS"
)

type ClientConfig struct {
	// HTTPClient defaults to a client with an otelhttp transport and no timeout; deadlines
	// come from the caller's context.
	HTTPClient *http.Client
	APIURL     string
	XDXURL     string
	Logger     *logging.Logger
	// Cache defaults to an in-memory store expiring entries after CacheTTL.
	Cache    Cache
	CacheTTL time.Duration
	// CircuitBreaker is off unless Enabled is set; resilience.DefaultCircuitBreakerConfig
	// gives the usual settings.
	CircuitBreaker resilience.CircuitBreakerConfig
	// RequestsPerMinute throttles outbound requests when positive.
	RequestsPerMinute int
	Now               func() time.Time
}

// Client talks to both Infinitode 2 surfaces: the JSON API and the XDX markup pages.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiURL     string
	xdxURL     string
	logger     *logging.Logger
	cache      Cache
	breaker    *resilience.CircuitBreaker
	limiter    *rate.Limiter
	now        func() time.Time

	closeOnce sync.Once
	closed    atomic.Bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		base := http.DefaultTransport.(*http.Transport).Clone()
		httpClient = &http.Client{Transport: otelhttp.NewTransport(base)}
	}

	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	xdxURL := strings.TrimSpace(cfg.XDXURL)
	if xdxURL == "" {
		xdxURL = DefaultXDXURL
	}

	store := cfg.Cache
	if store == nil {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		store = cache.NewStore[CacheKey, *leaderboard.Leaderboard](ttl)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	client := &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
		xdxURL:     xdxURL,
		logger:     logger.With("component", "infinitode"),
		cache:      store,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		limiter:    limiter,
		now:        now,
	}
	client.logger.Debug("infinitode client ready",
		"api_url", apiURL,
		"circuit_breaker", client.breaker.Enabled(),
		"requests_per_minute", cfg.RequestsPerMinute,
	)
	return client
}

// Close releases idle connections. Calls made after Close fail with ErrAPI.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.httpClient.CloseIdleConnections()
	})
	return nil
}
