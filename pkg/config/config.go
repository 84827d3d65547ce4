package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Typesense   TypesenseConfig
	Embedding   EmbeddingConfig
	Recommender RecommenderConfig
	OTEL        OTELConfig
	Environment string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration. An empty URL disables the
// search index and catalog search falls back to the database.
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// EmbeddingConfig holds the embedding provider configuration. An empty API
// key disables semantic scoring entirely.
type EmbeddingConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	RateLimitRPM   int
	RateLimitBurst int
}

// RecommenderConfig holds the tunable ranking constants.
type RecommenderConfig struct {
	ContentWeight            float64
	CollaborativeWeight      float64
	SemanticWeight           float64
	KeywordWeight            float64
	MinInteractionsForCollab int
	DefaultTopK              int
	MaxTopK                  int
	DefaultSimilarK          int
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "career_advisor"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", ""),
			APIKey: getEnv("TYPESENSE_API_KEY", ""),
		},
		Embedding: EmbeddingConfig{
			APIKey:         getEnv("EMBEDDING_API_KEY", ""),
			Model:          getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			BaseURL:        getEnv("EMBEDDING_BASE_URL", ""),
			RateLimitRPM:   getEnvAsInt("EMBEDDING_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("EMBEDDING_RATE_LIMIT_BURST", 5),
		},
		Recommender: RecommenderConfig{
			ContentWeight:            getEnvAsFloat("RECO_CONTENT_WEIGHT", 0.6),
			CollaborativeWeight:      getEnvAsFloat("RECO_COLLABORATIVE_WEIGHT", 0.4),
			SemanticWeight:           getEnvAsFloat("RECO_SEMANTIC_WEIGHT", 0.7),
			KeywordWeight:            getEnvAsFloat("RECO_KEYWORD_WEIGHT", 0.3),
			MinInteractionsForCollab: getEnvAsInt("RECO_MIN_INTERACTIONS", 3),
			DefaultTopK:              getEnvAsInt("RECO_DEFAULT_TOP_K", 5),
			MaxTopK:                  getEnvAsInt("RECO_MAX_TOP_K", 10),
			DefaultSimilarK:          getEnvAsInt("RECO_DEFAULT_SIMILAR_K", 3),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "career-advisor"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Environment: getEnv("APP_ENV", "development"),
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address.
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
