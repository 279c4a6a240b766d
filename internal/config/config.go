package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported document store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Store        StoreConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Admin        AdminConfig
	CORS         CORSConfig
	Notification NotificationConfig
	Geo          GeoConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AdminConfig holds the single shared admin identity.
type AdminConfig struct {
	Username string
	Password string
	// PasswordBcrypt, when set, is used instead of Password.
	PasswordBcrypt string
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// NotificationConfig configures the Telegram operator channel and the dispatch pool.
type NotificationConfig struct {
	TelegramBotToken   string
	TelegramChatID     string
	TelegramAPIBaseURL string
	TimeoutSeconds     int
	Workers            int
	QueueSize          int
}

// GeoConfig configures the IP-to-country lookup.
type GeoConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	postgresDSN := os.Getenv("POSTGRES_DSN")
	driver, err := resolveDriver(os.Getenv("STORE_DRIVER"), postgresDSN)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "leads-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8001"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Driver: driver,
		},
		Postgres: PostgresConfig{
			DSN:            postgresDSN,
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "leads"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Admin: AdminConfig{
			Username:       getEnv("ADMIN_USERNAME", "admin"),
			Password:       getEnv("ADMIN_PASSWORD", "admin123"),
			PasswordBcrypt: os.Getenv("ADMIN_PASSWORD_BCRYPT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		Notification: NotificationConfig{
			TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
			TelegramChatID:     os.Getenv("TELEGRAM_CHAT_ID"),
			TelegramAPIBaseURL: getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
			TimeoutSeconds:     getEnvAsInt("NOTIFY_TIMEOUT_SECONDS", 5),
			Workers:            getEnvAsInt("NOTIFY_WORKERS", 2),
			QueueSize:          getEnvAsInt("NOTIFY_QUEUE_SIZE", 64),
		},
		Geo: GeoConfig{
			BaseURL:        getEnv("GEO_API_BASE_URL", "http://ip-api.com"),
			TimeoutSeconds: getEnvAsInt("GEO_TIMEOUT_SECONDS", 3),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout bounds a single notification delivery.
func (n NotificationConfig) Timeout() time.Duration {
	return secondsOr(n.TimeoutSeconds, 5)
}

// Enabled reports whether Telegram delivery is configured.
func (n NotificationConfig) Enabled() bool {
	return strings.TrimSpace(n.TelegramBotToken) != "" && strings.TrimSpace(n.TelegramChatID) != ""
}

// Timeout bounds a single geo lookup.
func (g GeoConfig) Timeout() time.Duration {
	return secondsOr(g.TimeoutSeconds, 3)
}

// AllowsAnyOrigin reports whether the wildcard origin is configured.
func (c CORSConfig) AllowsAnyOrigin() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

func resolveDriver(raw, postgresDSN string) (string, error) {
	driver := strings.ToLower(strings.TrimSpace(raw))
	if driver == "" {
		if postgresDSN != "" {
			return StoreDriverPostgres, nil
		}
		return StoreDriverMemory, nil
	}
	switch driver {
	case StoreDriverMemory, StoreDriverPostgres, StoreDriverRedis:
		return driver, nil
	default:
		return "", fmt.Errorf("invalid STORE_DRIVER %q", raw)
	}
}

func secondsOr(seconds, fallback int) time.Duration {
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
