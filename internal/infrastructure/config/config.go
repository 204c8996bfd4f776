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

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	OTLP    OTLPConfig
}

type ServerConfig struct {
	Port               string
	Host               string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
}

type StorageConfig struct {
	Driver string
	Mongo  MongoConfig
}

type MongoConfig struct {
	URI      string
	Database string
	AppName  string
}

type OTLPConfig struct {
	Endpoint      string
	ServiceName   string
	Environment   string
	ExportEnabled bool
}

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory, if present, is applied first
// without overriding variables already set.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	exportEnabled, err := getEnvBool("OTEL_EXPORT_ENABLED", true)
	if err != nil {
		return nil, err
	}

	serviceName := getEnv("OTEL_SERVICE_NAME", "product-service")

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "0.0.0.0"),
			Port:               getEnv("SERVER_PORT", "8080"),
			ShutdownTimeout:    shutdownTimeout,
			CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongo)),
			Mongo: MongoConfig{
				URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
				Database: getEnv("MONGO_DATABASE", "product-service"),
				AppName:  serviceName,
			},
		},
		OTLP: OTLPConfig{
			Endpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:   serviceName,
			Environment:   getEnv("OTEL_ENVIRONMENT", "development"),
			ExportEnabled: exportEnabled,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageMongo:
		if c.Storage.Mongo.URI == "" {
			return errors.New("MONGO_URI is required for the mongo storage driver")
		}
		if c.Storage.Mongo.Database == "" {
			return errors.New("MONGO_DATABASE is required for the mongo storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (must be %s or %s)", c.Storage.Driver, StorageMongo, StorageMemory)
	}

	if c.OTLP.ExportEnabled && c.OTLP.Endpoint == "" {
		return errors.New("OTEL_EXPORTER_OTLP_ENDPOINT is required when export is enabled")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
