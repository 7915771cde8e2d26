package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/cache"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/jwtx"
	"github.com/shopspring/decimal"
)

type Config struct {
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseDriver  string // sqlite or postgres (default: sqlite)
	DatabaseURL     string // sqlite file path or Postgres DSN (default: renewal.db)
	DatabaseMigrate bool   // Apply embedded migrations at startup (default: true)

	AuthIssuer    string        // Expected iss of provider tokens, empty skips the check
	AuthAudience  []string      // Expected aud of provider tokens (default: authenticated)
	AuthAlgorithm string        // EdDSA, ES256 or RS256 (default: ES256)
	JWKSURL       string        // Provider JWKS endpoint
	JWKSJSON      string        // Inline JWKS, takes precedence over JWKSURL
	JWKSRefresh   time.Duration // JWKS refresh interval (default: 1h)

	CronSecret     string // Shared secret of the batch trigger
	CronSecretHash string // argon2id PHC hash of the shared secret, takes precedence

	ExchangeRateURL      string          // Live USD to KRW source
	ExchangeRateTTL      time.Duration   // Server-side cache window (default: 1h)
	ExchangeRateFallback decimal.Decimal // Rate used when no live value is available (default: 1400)

	RedisURL            string // Optional: shared rate cache and reminder publishing
	NotificationChannel string // Redis pub/sub channel for reminders

	PlansFile            string        // Optional: YAML plan table
	Timezone             string        // Calendar used for "today" (default: Asia/Seoul)
	InvitationAcceptURL  string        // Base of the invitation link sent to invitees
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	InvitationRetention  time.Duration // Retention of finished invitations (default: 720h)
}

func LoadConfig() Config {
	return Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		DatabaseDriver:  strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:     getEnvOrDefault("DATABASE_URL", "renewal.db"),
		DatabaseMigrate: getEnvBoolOrDefault("DATABASE_MIGRATE", true),

		AuthIssuer:    os.Getenv("AUTH_ISSUER"),
		AuthAudience:  splitList(getEnvOrDefault("AUTH_AUDIENCE", "authenticated")),
		AuthAlgorithm: getEnvOrDefault("AUTH_ALGORITHM", jwtx.AlgES256),
		JWKSURL:       os.Getenv("AUTH_JWKS_URL"),
		JWKSJSON:      os.Getenv("AUTH_JWKS_JSON"),
		JWKSRefresh:   getEnvDurationOrDefault("AUTH_JWKS_REFRESH", time.Hour),

		CronSecret:     os.Getenv("CRON_SECRET"),
		CronSecretHash: os.Getenv("CRON_SECRET_HASH"),

		ExchangeRateURL:      getEnvOrDefault("EXCHANGE_RATE_URL", service.DefaultExchangeRateURL),
		ExchangeRateTTL:      getEnvDurationOrDefault("EXCHANGE_RATE_TTL", service.DefaultExchangeRateTTL),
		ExchangeRateFallback: getEnvDecimalOrDefault("EXCHANGE_RATE_FALLBACK", decimal.NewFromInt(1400)),

		RedisURL:            os.Getenv("REDIS_URL"),
		NotificationChannel: getEnvOrDefault("NOTIFICATION_CHANNEL", cache.DefaultNotificationChannel),

		PlansFile:            os.Getenv("PLANS_FILE"),
		Timezone:             getEnvOrDefault("TIMEZONE", "Asia/Seoul"),
		InvitationAcceptURL:  os.Getenv("INVITATION_ACCEPT_URL"),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
		InvitationRetention:  getEnvDurationOrDefault("INVITATION_RETENTION", service.DefaultInvitationRetention),
	}
}

// Validate reports configuration the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", c.DatabaseDriver))
	}
	switch c.AuthAlgorithm {
	case jwtx.AlgEdDSA, jwtx.AlgES256, jwtx.AlgRS256:
	default:
		errs = append(errs, fmt.Errorf("AUTH_ALGORITHM must be EdDSA, ES256 or RS256, got %q", c.AuthAlgorithm))
	}
	if c.JWKSURL == "" && c.JWKSJSON == "" {
		errs = append(errs, errors.New("one of AUTH_JWKS_URL or AUTH_JWKS_JSON is required"))
	}
	if !c.ExchangeRateFallback.IsPositive() {
		errs = append(errs, errors.New("EXCHANGE_RATE_FALLBACK must be positive"))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func getEnvDecimalOrDefault(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, err := decimal.NewFromString(value); err == nil {
		return d
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
