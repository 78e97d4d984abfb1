package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Invest   InvestConfig
	Prices   PriceConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// GatewayConfig configures the payment gateway collaborator. With Sandbox set
// the offline gateway is used and no network calls are made; signature
// verification still runs against KeySecret.
type GatewayConfig struct {
	BaseURL       string
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Timeout       time.Duration
	Sandbox       bool
}

type InvestConfig struct {
	AutoRecommendCount int
}

type PriceConfig struct {
	RefreshSchedule string // cron spec for the background refresh
	MaxWalkBps      int    // max random-walk step per refresh, in basis points
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DATABASE_DSN", "roundvest:roundvest@tcp(localhost:3306)/roundvest?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-me-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
			Issuer: getEnv("JWT_ISSUER", "roundvest"),
		},
		Gateway: GatewayConfig{
			BaseURL:       getEnv("GATEWAY_BASE_URL", "https://api.razorpay.com/v1"),
			KeyID:         getEnv("GATEWAY_KEY_ID", "rzp_test_key"),
			KeySecret:     getEnv("GATEWAY_KEY_SECRET", "rzp_test_secret"),
			WebhookSecret: getEnv("GATEWAY_WEBHOOK_SECRET", ""),
			Timeout:       getEnvAsDuration("GATEWAY_TIMEOUT", 15*time.Second),
			Sandbox:       getEnvAsBool("GATEWAY_SANDBOX", true),
		},
		Invest: InvestConfig{
			AutoRecommendCount: getEnvAsInt("AUTO_RECOMMEND_COUNT", 3),
		},
		Prices: PriceConfig{
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 30s"),
			MaxWalkBps:      getEnvAsInt("PRICE_MAX_WALK_BPS", 300),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
