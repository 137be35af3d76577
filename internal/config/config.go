package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	LLM       LLMConfig
	GitHub    GitHubConfig
	Gap       GapConfig
	Ingest    IngestConfig
	Collector CollectorConfig
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	CORSAllowOrigins string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	RunSeeders    bool
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LLMConfig drives the Gemini-backed extraction and market generation paths.
// An empty API key disables them; callers fall back to pattern extraction and
// seeded market data.
type LLMConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

type GitHubConfig struct {
	Token    string
	BaseURL  string
	MaxRepos int
}

type GapConfig struct {
	CoveredThreshold float64
}

// IngestConfig points the API at the posting-collector service. An empty
// base URL disables remote collection triggers; an empty internal token
// disables the completion webhook.
type IngestConfig struct {
	ScraperBaseURL string
	InternalToken  string
	Workers        int
	RequestTimeout time.Duration
	MarketMaxAge   time.Duration
}

// CollectorConfig drives the standalone posting-collector binary. The
// API process never reads it; the shared secret it sends with webhook
// deliveries comes from the Ingest section.
type CollectorConfig struct {
	HTTPPort       string
	CallbackURL    string
	Workers        int
	Pages          int
	SourceLimit    int
	RequestTimeout time.Duration
	RunTimeout     time.Duration
	RapidAPIKey    string
	RapidAPIHost   string
	RemoteOK       bool
	BoardTargets   string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	optFloat := func(key string, def float64) float64 {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return f
	}
	optBool := func(key string, def bool) bool {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:          req("APP_NAME"),
		Environment:      req("APP_ENV"),
		HTTPPort:         req("HTTP_PORT"),
		CORSAllowOrigins: optDefault("CORS_ALLOW_ORIGINS", "*"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),

		RunMigrations: optBool("DB_RUN_MIGRATIONS", true),
		RunSeeders:    optBool("DB_RUN_SEEDERS", true),
	}

	cfg.JWT = JWTConfig{
		Secret:     req("JWT_SECRET"),
		Issuer:     optDefault("JWT_ISSUER", "career-compass"),
		AccessTTL:  optDuration("JWT_ACCESS_TTL", 24*time.Hour),
		RefreshTTL: optDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.LLM = LLMConfig{
		GeminiAPIKey: opt("GEMINI_API_KEY"),
		GeminiModel:  optDefault("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	cfg.GitHub = GitHubConfig{
		Token:    opt("GITHUB_TOKEN"),
		BaseURL:  optDefault("GITHUB_API_BASE_URL", "https://api.github.com"),
		MaxRepos: optInt("GITHUB_MAX_REPOS", 10),
	}

	cfg.Gap = GapConfig{
		CoveredThreshold: optFloat("GAP_COVERED_THRESHOLD", 0.15),
	}

	cfg.Ingest = IngestConfig{
		ScraperBaseURL: opt("SCRAPER_BASE_URL"),
		InternalToken:  opt("SCRAPER_INTERNAL_TOKEN"),
		Workers:        optInt("SCRAPER_WORKERS", 4),
		RequestTimeout: optDuration("SCRAPER_REQUEST_TIMEOUT", 15*time.Second),
		MarketMaxAge:   optDuration("MARKET_SNAPSHOT_MAX_AGE", 24*time.Hour),
	}

	cfg.Collector = CollectorConfig{
		HTTPPort:       optDefault("COLLECTOR_HTTP_PORT", "8090"),
		CallbackURL:    opt("COLLECTOR_CALLBACK_URL"),
		Workers:        optInt("COLLECTOR_WORKERS", 4),
		Pages:          optInt("COLLECTOR_PAGES", 2),
		SourceLimit:    optInt("COLLECTOR_SOURCE_LIMIT", 50),
		RequestTimeout: optDuration("COLLECTOR_REQUEST_TIMEOUT", 25*time.Second),
		RunTimeout:     optDuration("COLLECTOR_RUN_TIMEOUT", 5*time.Minute),
		RapidAPIKey:    opt("RAPIDAPI_KEY"),
		RapidAPIHost:   optDefault("RAPIDAPI_LINKEDIN_HOST", "linkedin-job-search-api.p.rapidapi.com"),
		RemoteOK:       optBool("COLLECTOR_REMOTEOK", true),
		BoardTargets:   opt("COLLECTOR_BOARD_TARGETS"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
