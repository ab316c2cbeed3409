package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/algolend/loan-engine/pkg/auth"
	"github.com/algolend/loan-engine/pkg/kafka"
	"github.com/algolend/loan-engine/pkg/observability"
	"github.com/algolend/loan-engine/pkg/postgres"
)

// Config is the full runtime configuration, loaded from environment
// variables with development defaults.
type Config struct {
	ServiceName string
	GRPCPort    int
	HTTPPort    int

	DB    postgres.Config
	Kafka kafka.Config
	JWT   auth.JWTConfig

	Log     observability.LogConfig
	Tracing observability.TracingConfig

	// Bureau settings for the external credit-bureau client.
	BureauBaseURL    string
	BureauAPIKey     string
	BureauMaxRetries int

	// Aggregator settings for the external bank-data client.
	AggregatorBaseURL string
	AggregatorAPIKey  string

	TLSCertFile string
	TLSKeyFile  string
}

// Load reads configuration from the environment.
func Load() Config {
	serviceName := "loan-engine"
	return Config{
		ServiceName: serviceName,
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "algolend"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "loan_engine"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Kafka: kafka.Config{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		JWT: auth.JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyPEM:  getEnv("JWT_PUBLIC_KEY", ""),
			PrivateKeyPEM: getEnv("JWT_PRIVATE_KEY", ""),
			Issuer:        getEnv("JWT_ISSUER", serviceName),
		},
		Log: observability.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		BureauBaseURL:     getEnv("BUREAU_BASE_URL", ""),
		BureauAPIKey:      getEnv("BUREAU_API_KEY", ""),
		BureauMaxRetries:  getEnvInt("BUREAU_MAX_RETRIES", 3),
		AggregatorBaseURL: getEnv("AGGREGATOR_BASE_URL", ""),
		AggregatorAPIKey:  getEnv("AGGREGATOR_API_KEY", ""),
		TLSCertFile:       getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:        getEnv("TLS_KEY_FILE", ""),
	}
}

// Validate checks the settings a production deployment cannot run without.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPEM == "" {
		return fmt.Errorf("JWT_SECRET or JWT_PUBLIC_KEY is required")
	}
	return nil
}

func (c Config) GRPCAddr() string { return fmt.Sprintf(":%d", c.GRPCPort) }
func (c Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
