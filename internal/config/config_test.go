package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB_NAME", "edunet")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := validConfig(t)

	assert.Equal(t, "localhost:6379", cfg.RedisHost)
	assert.Equal(t, "documents:uploads", cfg.RedisStreamKey)
	assert.Equal(t, 5, cfg.MaxConcurrentCompare)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "2112", cfg.MetricsPort)

	assert.Equal(t, 0.35, cfg.WeightFuzzy)
	assert.Equal(t, 0.25, cfg.WeightJaccard)
	assert.Equal(t, 0.25, cfg.WeightSequence)
	assert.Equal(t, 0.15, cfg.WeightStructural)
	assert.Equal(t, 0.30, cfg.RecordThreshold)
	assert.Equal(t, 0.50, cfg.SegmentThreshold)
	assert.Equal(t, 0.70, cfg.FlagThreshold)
	assert.Equal(t, 25*time.Second, cfg.ScanBudget)
	assert.Equal(t, 50000, cfg.TokenCeiling)
	assert.Equal(t, 500000, cfg.MaxWordCount)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENGINE_FLAG_THRESHOLD", "0.80")
	t.Setenv("ENGINE_SCAN_BUDGET_SECONDS", "40")

	cfg := validConfig(t)
	assert.Equal(t, 0.80, cfg.FlagThreshold)
	assert.Equal(t, 40*time.Second, cfg.ScanBudget)
}

func TestValidate(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())

	missingMongo := *cfg
	missingMongo.MongoURI = ""
	assert.Error(t, missingMongo.Validate())

	missingSecret := *cfg
	missingSecret.JWTSecret = ""
	assert.Error(t, missingSecret.Validate())

	badWeights := *cfg
	badWeights.WeightFuzzy = 0.9
	assert.Error(t, badWeights.Validate())

	badOrder := *cfg
	badOrder.FlagThreshold = 0.40
	assert.Error(t, badOrder.Validate())
}
