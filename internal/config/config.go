package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cart store backends
const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

// Trace exporters
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Shipping  ShippingConfig
	CORS      CORSConfig
	Telemetry TelemetryConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type CatalogConfig struct {
	Sources []string // empty means the embedded catalog
}

type CartConfig struct {
	Store    string
	RedisURL string
	TTL      time.Duration
}

type ShippingConfig struct {
	FreeThreshold int64
	FlatFee       int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TelemetryConfig struct {
	ServiceName  string
	Exporter     string
	OTLPEndpoint string
}

// Load reads configuration from environment variables. A .env file named by
// ENV_FILE (default ".env") is read first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Catalog: CatalogConfig{
			Sources: getEnvAsSlice("CATALOG_SOURCES", nil),
		},
		Cart: CartConfig{
			Store:    strings.ToLower(getEnv("CART_STORE", CartStoreMemory)),
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      getEnvAsDuration("CART_TTL", 7*24*time.Hour),
		},
		Shipping: ShippingConfig{
			FreeThreshold: getEnvAsInt64("FREE_SHIPPING_THRESHOLD", 7500),
			FlatFee:       getEnvAsInt64("FLAT_SHIPPING_FEE", 250),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "storefront"),
			Exporter:     strings.ToLower(getEnv("OTEL_TRACES_EXPORTER", ExporterNone)),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Cart.Store {
	case CartStoreMemory:
	case CartStoreRedis:
		if c.Cart.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CART_STORE is redis")
		}
	default:
		return fmt.Errorf("invalid cart store: %s (must be memory or redis)", c.Cart.Store)
	}

	if c.Cart.TTL < 0 {
		return fmt.Errorf("CART_TTL must not be negative")
	}

	if c.Shipping.FreeThreshold <= 0 {
		return fmt.Errorf("FREE_SHIPPING_THRESHOLD must be positive")
	}
	if c.Shipping.FlatFee <= 0 {
		return fmt.Errorf("FLAT_SHIPPING_FEE must be positive")
	}

	switch c.Telemetry.Exporter {
	case ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		return fmt.Errorf("invalid traces exporter: %s (must be none, stdout, or otlp)", c.Telemetry.Exporter)
	}

	return nil
}

// Helper functions for reading environment variables

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
