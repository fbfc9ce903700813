package config

import (
	"fmt"
	"time"

	"github.com/methkalz/edu-net-11-sub004/internal/configs/env"
)

// Config holds all configuration for the application
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDBName string

	// Redis
	RedisHost               string
	RedisPassword           string
	RedisStreamKey          string
	RedisConsumerGroup      string
	RedisDeadLetterKey      string
	StreamRetentionDuration time.Duration

	// Extraction Service
	ExtractorBaseURL string
	ExtractorAPIKey  string

	// JWT
	JWTSecret string
	JWTIssuer string

	// Rate Limiting
	RateLimitRPS float64

	// Concurrency
	MaxConcurrentCompare int

	// Engine policy. The weights and thresholds are fixed product policy;
	// they are exposed here so deployments can override without a rebuild.
	WeightFuzzy      float64
	WeightJaccard    float64
	WeightSequence   float64
	WeightStructural float64
	RecordThreshold  float64
	SegmentThreshold float64
	FlagThreshold    float64
	ScanBudget       time.Duration
	TokenCeiling     int
	MaxWordCount     int

	// Logging
	LogLevel string

	// Server
	ServerPort  string
	MetricsPort string
}

func Load() (*Config, error) {
	cfg := &Config{}

	// MongoDB
	cfg.MongoURI = env.GetEnv("MONGO_URI", "")
	cfg.MongoDBName = env.GetEnv("MONGO_DB_NAME", "")

	// Redis
	cfg.RedisHost = env.GetEnv("REDIS_HOST", "localhost:6379")
	cfg.RedisPassword = env.GetEnv("REDIS_PASSWORD", "")
	cfg.RedisStreamKey = env.GetEnv("REDIS_STREAM_KEY", "documents:uploads")
	cfg.RedisConsumerGroup = env.GetEnv("REDIS_CONSUMER_GROUP", "documents:indexers")
	cfg.RedisDeadLetterKey = env.GetEnv("REDIS_DEAD_LETTER_KEY", "documents:dlq")
	retentionHours := env.GetEnvInt("STREAM_RETENTION_HOURS", 24)
	cfg.StreamRetentionDuration = time.Duration(retentionHours) * time.Hour

	// Extraction Service
	cfg.ExtractorBaseURL = env.GetEnv("EXTRACTOR_BASE_URL", "")
	cfg.ExtractorAPIKey = env.GetEnv("EXTRACTOR_API_KEY", "")

	// JWT
	cfg.JWTSecret = env.GetEnv("JWT_SECRET", "")
	cfg.JWTIssuer = env.GetEnv("JWT_ISSUER", "edu-net")

	// Rate Limiting
	cfg.RateLimitRPS = env.GetEnvFloat("RATE_LIMIT_RPS", 10.0)

	// Concurrency
	cfg.MaxConcurrentCompare = env.GetEnvInt("MAX_CONCURRENT_COMPARE", 5)

	// Engine policy
	cfg.WeightFuzzy = env.GetEnvFloat("ENGINE_WEIGHT_FUZZY", 0.35)
	cfg.WeightJaccard = env.GetEnvFloat("ENGINE_WEIGHT_JACCARD", 0.25)
	cfg.WeightSequence = env.GetEnvFloat("ENGINE_WEIGHT_SEQUENCE", 0.25)
	cfg.WeightStructural = env.GetEnvFloat("ENGINE_WEIGHT_STRUCTURAL", 0.15)
	cfg.RecordThreshold = env.GetEnvFloat("ENGINE_RECORD_THRESHOLD", 0.30)
	cfg.SegmentThreshold = env.GetEnvFloat("ENGINE_SEGMENT_THRESHOLD", 0.50)
	cfg.FlagThreshold = env.GetEnvFloat("ENGINE_FLAG_THRESHOLD", 0.70)
	budgetSeconds := env.GetEnvInt("ENGINE_SCAN_BUDGET_SECONDS", 25)
	cfg.ScanBudget = time.Duration(budgetSeconds) * time.Second
	cfg.TokenCeiling = env.GetEnvInt("ENGINE_TOKEN_CEILING", 50000)
	cfg.MaxWordCount = env.GetEnvInt("ENGINE_MAX_WORD_COUNT", 500000)

	// Logging
	cfg.LogLevel = env.GetEnv("LOG_LEVEL", "info")

	// Server
	cfg.ServerPort = env.GetEnv("SERVER_PORT", "8080")
	cfg.MetricsPort = env.GetEnv("METRICS_PORT", "2112")

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.MongoDBName == "" {
		return fmt.Errorf("MONGO_DB_NAME is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.MaxConcurrentCompare <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_COMPARE must be greater than 0")
	}
	weightSum := c.WeightFuzzy + c.WeightJaccard + c.WeightSequence + c.WeightStructural
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("engine weights must sum to 1.0, got %.3f", weightSum)
	}
	if c.RecordThreshold < 0 || c.RecordThreshold > 1 {
		return fmt.Errorf("ENGINE_RECORD_THRESHOLD must be in [0,1]")
	}
	if c.FlagThreshold < c.SegmentThreshold {
		return fmt.Errorf("ENGINE_FLAG_THRESHOLD must not be below ENGINE_SEGMENT_THRESHOLD")
	}
	if c.ScanBudget <= 0 {
		return fmt.Errorf("ENGINE_SCAN_BUDGET_SECONDS must be greater than 0")
	}
	if c.TokenCeiling <= 0 {
		return fmt.Errorf("ENGINE_TOKEN_CEILING must be greater than 0")
	}
	if c.MaxWordCount <= 0 {
		return fmt.Errorf("ENGINE_MAX_WORD_COUNT must be greater than 0")
	}
	if c.StreamRetentionDuration <= 0 {
		return fmt.Errorf("STREAM_RETENTION_HOURS must be greater than 0")
	}
	return nil
}
