// Package config provides configuration management for the quantum ledger
// backend. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// InsecureDevSecret is the signing secret used when JWT_SECRET is unset.
// It exists so the demo runs out of the box; the server logs a warning when
// it is active.
const InsecureDevSecret = "dev_fallback_secret"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Market  MarketConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string
	// UsingDevSecret is true when JWTSecret fell back to InsecureDevSecret.
	UsingDevSecret bool
	TokenTTL       time.Duration
	BcryptCost     int
}

// MarketConfig holds market data gateway configuration
type MarketConfig struct {
	BaseURL        string
	VsCurrency     string
	AssetIDs       []string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

// RedisConfig holds the optional quote cache configuration
type RedisConfig struct {
	Enabled        bool
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// Load .env file (optional in production)
	if err := godotenv.Load(); err != nil {
		// .env file is optional - environment variables can be set directly
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	secret := getEnv("JWT_SECRET", "")
	usingDevSecret := false
	if secret == "" {
		secret = InsecureDevSecret
		usingDevSecret = true
	}

	config := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "4000"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:      secret,
			UsingDevSecret: usingDevSecret,
			TokenTTL:       getEnvAsDuration("TOKEN_TTL", time.Hour),
			BcryptCost:     getEnvAsInt("BCRYPT_COST", 10),
		},
		Market: MarketConfig{
			BaseURL:        getEnv("MARKET_BASE_URL", "https://api.coingecko.com/api/v3"),
			VsCurrency:     getEnv("MARKET_VS_CURRENCY", "usd"),
			AssetIDs:       getEnvAsSlice("MARKET_ASSET_IDS", []string{"bitcoin", "ethereum", "tether", "solana"}),
			RequestTimeout: getEnvAsDuration("MARKET_REQUEST_TIMEOUT", 10*time.Second),
			CacheTTL:       getEnvAsDuration("MARKET_CACHE_TTL", 20*time.Second),
		},
		Redis: RedisConfig{
			Enabled:        getEnvAsBool("REDIS_ENABLED", false),
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 50),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice gets a comma-separated environment variable as a string slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
