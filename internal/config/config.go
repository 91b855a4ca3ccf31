package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
)

// Config stores runtime configuration for the CLI and any embedding service.
type Config struct {
	AppEnv         string
	LogLevel       logging.Level
	ServiceName    string
	ServiceVersion string

	APIURL                string
	XDXURL                string
	HTTPTimeout           time.Duration
	CacheTTL              time.Duration
	RateLimitPerMinute    int
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
	SweepConcurrency      int
	SweepMaps             []string

	RedisEnabled   bool
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	UptraceEnabled bool
	UptraceDSN     string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	httpTimeout, err := time.ParseDuration(getEnv("TDI_HTTP_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_HTTP_TIMEOUT: %w", err)
	}
	if httpTimeout <= 0 {
		return Config{}, fmt.Errorf("TDI_HTTP_TIMEOUT must be > 0")
	}

	cacheTTL, err := time.ParseDuration(getEnv("TDI_CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("TDI_CACHE_TTL must be > 0")
	}

	rateLimit, err := getEnvAsInt("TDI_RATE_LIMIT_PER_MINUTE", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if rateLimit < 0 {
		return Config{}, fmt.Errorf("TDI_RATE_LIMIT_PER_MINUTE must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("TDI_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("TDI_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("TDI_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("TDI_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	sweepConcurrency, err := getEnvAsInt("TDI_SWEEP_CONCURRENCY", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse TDI_SWEEP_CONCURRENCY: %w", err)
	}
	if sweepConcurrency <= 0 {
		return Config{}, fmt.Errorf("TDI_SWEEP_CONCURRENCY must be > 0")
	}

	redisEnabled, err := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_ENABLED: %w", err)
	}
	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", "localhost:6379"))
	if redisEnabled && redisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when REDIS_ENABLED=true")
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	return Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "tdi"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:              logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		APIURL:                strings.TrimSpace(getEnv("TDI_API_URL", "https://infinitode.prineside.com/")),
		XDXURL:                strings.TrimSpace(getEnv("TDI_XDX_URL", "https://infinitode.prineside.com/xdx/index.php")),
		HTTPTimeout:           httpTimeout,
		CacheTTL:              cacheTTL,
		RateLimitPerMinute:    rateLimit,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		SweepConcurrency:      sweepConcurrency,
		SweepMaps:             splitCSV(getEnv("TDI_SWEEP_MAPS", "")),
		RedisEnabled:          redisEnabled,
		RedisAddr:             redisAddr,
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		RedisKeyPrefix:        getEnv("REDIS_KEY_PREFIX", "tdi:"),
		UptraceEnabled:        uptraceEnabled,
		UptraceDSN:            uptraceDSN,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case EnvDev, EnvStage, EnvProd:
		return v, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
