package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	RevocationBackendMemory = "memory"
	RevocationBackendRedis  = "redis"

	// devJWTSecret is only meant for local runs; deployments set JWT_SECRET.
	devJWTSecret = "local-development-secret-change-me-0123456789"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	PricingUnitRate decimal.Decimal
	PricingETADays  int

	RevocationBackend       string
	RedisAddr               string
	RevocationPurgeSchedule string
	StatusReportSchedule    string

	KafkaBroker        string
	KafkaShipmentTopic string

	LoginRateLimit int

	AdminUsername string
	AdminPassword string
}

// LoadConfig reads .env from the working directory when present and then the process
// environment. Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the configuration from lookup, applying defaults for unset keys.
func ConfigFromEnv(lookup func(string) string) (Config, error) {
	r := envReader{lookup: lookup}

	cfg := Config{
		HTTPPort:   r.str("HTTP_PORT", "8080"),
		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "postgres"),
		DBPassword: r.str("DB_PASSWORD", "postgres"),
		DBName:     r.str("DB_NAME", "logistics"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		JWTSecret:     r.str("JWT_SECRET", devJWTSecret),
		JWTAccessTTL:  r.seconds("JWT_ACCESS_TTL", 3600),
		JWTRefreshTTL: r.seconds("JWT_REFRESH_TTL", 86400),

		PricingUnitRate: r.decimal("PRICING_UNIT_RATE", "10"),
		PricingETADays:  r.integer("PRICING_ETA_DAYS", 3),

		RevocationBackend:       strings.ToLower(r.str("REVOCATION_BACKEND", RevocationBackendMemory)),
		RedisAddr:               r.str("REDIS_ADDR", "localhost:6379"),
		RevocationPurgeSchedule: r.str("REVOCATION_PURGE_SCHEDULE", "0 */5 * * * *"),
		StatusReportSchedule:    r.str("STATUS_REPORT_SCHEDULE", ""),

		KafkaBroker:        r.str("KAFKA_BROKER", ""),
		KafkaShipmentTopic: r.str("KAFKA_SHIPMENT_TOPIC", "shipment-events"),

		LoginRateLimit: r.integer("LOGIN_RATE_LIMIT", 10),

		AdminUsername: r.str("ADMIN_USERNAME", "admin"),
		AdminPassword: r.str("ADMIN_PASSWORD", ""),
	}

	if cfg.RevocationBackend != RevocationBackendMemory && cfg.RevocationBackend != RevocationBackendRedis {
		r.fail(errs.NewValueIsInvalidErrorWithCause("REVOCATION_BACKEND",
			fmt.Errorf("%q is not %s or %s", cfg.RevocationBackend, RevocationBackendMemory, RevocationBackendRedis)))
	}
	if cfg.JWTAccessTTL <= 0 || cfg.JWTRefreshTTL <= 0 {
		r.fail(errs.NewValueIsInvalidError("JWT TTLs must be positive"))
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envReader struct {
	lookup func(string) string
	errs   []error
}

func (r *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(r.lookup(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return n
}

func (r *envReader) seconds(key string, fallback int) time.Duration {
	return time.Duration(r.integer(key, fallback)) * time.Second
}

func (r *envReader) decimal(key, fallback string) decimal.Decimal {
	raw := r.str(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		r.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return decimal.Zero
	}
	return d
}

func (r *envReader) fail(err error) {
	r.errs = append(r.errs, err)
}
